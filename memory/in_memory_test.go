package memory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymesh/studymesh/core"
)

func TestSlidingWindowBound(t *testing.T) {
	window := 20
	s := NewInMemoryStore(func(o *InMemoryStoreOptions) { o.Window = window })

	// Each turn appends a user and an assistant message; run window+5 turns.
	turns := window + 5
	for i := 0; i < turns; i++ {
		err := s.Append("u1", "tutor",
			core.NewMessage(core.RoleUser, fmt.Sprintf("question %d", i)),
			core.NewMessage(core.RoleAssistant, fmt.Sprintf("answer %d", i)),
		)
		require.NoError(t, err)
	}

	history, err := s.History("u1", "tutor", 0)
	require.NoError(t, err)
	require.Len(t, history, window)

	// Oldest evicted first: the window holds the most recent messages only.
	assert.Equal(t, fmt.Sprintf("question %d", turns-window/2), history[0].Content)
	assert.Equal(t, fmt.Sprintf("answer %d", turns-1), history[len(history)-1].Content)
}

func TestHistoryLimitAndIsolation(t *testing.T) {
	s := NewInMemoryStore()
	require.NoError(t, s.Append("u1", "tutor",
		core.NewMessage(core.RoleUser, "a"),
		core.NewMessage(core.RoleAssistant, "b"),
		core.NewMessage(core.RoleUser, "c"),
	))
	require.NoError(t, s.Append("u1", "planner", core.NewMessage(core.RoleUser, "other agent")))
	require.NoError(t, s.Append("u2", "tutor", core.NewMessage(core.RoleUser, "other user")))

	history, err := s.History("u1", "tutor", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "b", history[0].Content)
	assert.Equal(t, "c", history[1].Content)

	planner, _ := s.History("u1", "planner", 0)
	assert.Len(t, planner, 1)
}

func TestHistoryReturnsCopy(t *testing.T) {
	s := NewInMemoryStore()
	require.NoError(t, s.Append("u1", "tutor", core.NewMessage(core.RoleUser, "original")))

	history, _ := s.History("u1", "tutor", 0)
	history[0].Content = "mutated"

	again, _ := s.History("u1", "tutor", 0)
	assert.Equal(t, "original", again[0].Content)
}

func TestClear(t *testing.T) {
	s := NewInMemoryStore()
	require.NoError(t, s.Append("u1", "tutor", core.NewMessage(core.RoleUser, "hello")))
	require.NotEmpty(t, s.ConversationID("u1", "tutor"))

	require.NoError(t, s.Clear("u1", "tutor"))

	history, err := s.History("u1", "tutor", 0)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.Empty(t, s.ConversationID("u1", "tutor"))
}

func TestConversationIDStable(t *testing.T) {
	s := NewInMemoryStore()
	assert.Empty(t, s.ConversationID("u1", "tutor"))

	require.NoError(t, s.Append("u1", "tutor", core.NewMessage(core.RoleUser, "hello")))
	id := s.ConversationID("u1", "tutor")
	require.NotEmpty(t, id)

	require.NoError(t, s.Append("u1", "tutor", core.NewMessage(core.RoleAssistant, "hi")))
	assert.Equal(t, id, s.ConversationID("u1", "tutor"))
}
