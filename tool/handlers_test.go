package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudyTimeEstimate(t *testing.T) {
	out, err := (&studyTimeTool{}).Call(context.Background(), nil, map[string]any{
		"complexity": "medium",
		"task_type":  "exam_prep",
	})
	require.NoError(t, err)

	est := out.(map[string]any)
	// medium 60-120 scaled by 1.6 gives 96-192, midpoint 144.
	assert.Equal(t, 144, est["estimated_minutes"])
	assert.Equal(t, [2]int{96, 192}, est["range_minutes"])

	split := est["split"].(map[string]int)
	assert.Equal(t, 43, split["reading"])
	assert.Equal(t, 65, split["practice"])
	assert.Equal(t, 36, split["review"])
}

func TestStudyTimeDefaultsMultiplier(t *testing.T) {
	out, err := (&studyTimeTool{}).Call(context.Background(), nil, map[string]any{"complexity": "low"})
	require.NoError(t, err)
	assert.Equal(t, 45, out.(map[string]any)["estimated_minutes"])
}

func TestStudyTimeUnknownComplexity(t *testing.T) {
	_, err := (&studyTimeTool{}).Call(context.Background(), nil, map[string]any{"complexity": "impossible"})
	assert.ErrorContains(t, err, "unknown complexity")
}

func TestCalendarSortsUpcoming(t *testing.T) {
	sc := newScope()
	out, err := (&calendarTool{}).Call(context.Background(), sc, map[string]any{})
	require.NoError(t, err)

	entries := out.([]CalendarEntry)
	require.Len(t, entries, 2)
	assert.Equal(t, "a1", entries[0].ID)
	assert.Equal(t, "assignment", entries[0].Kind)
	assert.Equal(t, "e1", entries[1].ID)
	assert.True(t, entries[0].Date.Before(entries[1].Date))
}

func TestCalendarHorizon(t *testing.T) {
	sc := newScope()
	out, err := (&calendarTool{}).Call(context.Background(), sc, map[string]any{"days": 7})
	require.NoError(t, err)

	entries := out.([]CalendarEntry)
	// The exam is two weeks out and falls outside the horizon.
	require.Len(t, entries, 1)
	assert.Equal(t, "a1", entries[0].ID)
}

func TestFlashcardsFromDefinitions(t *testing.T) {
	content := "Base case: the input small enough to answer directly\n" +
		"Recursive case: the self-referential reduction step\n" +
		"Stack frame - the bookkeeping for one active call\n" +
		"Tail call: a recursive call in final position\n"

	out, err := (&flashcardsTool{}).Call(context.Background(), nil, map[string]any{"content": content})
	require.NoError(t, err)

	cards := out.([]Flashcard)
	require.Len(t, cards, 4)
	assert.Equal(t, "Base case", cards[0].Front)
	assert.Equal(t, "the input small enough to answer directly", cards[0].Back)
	assert.Equal(t, "easy", cards[0].Difficulty)
	assert.Equal(t, "hard", cards[3].Difficulty)
}

func TestFlashcardsRespectsCount(t *testing.T) {
	content := "Memoization: caching prior results\nIteration: looping without self-calls\nInduction: proof technique mirroring recursion\n"
	out, err := (&flashcardsTool{}).Call(context.Background(), nil, map[string]any{"content": content, "count": 2})
	require.NoError(t, err)
	assert.Len(t, out.([]Flashcard), 2)
}

func TestFlashcardsEmptyContent(t *testing.T) {
	_, err := (&flashcardsTool{}).Call(context.Background(), nil, map[string]any{"content": "hi"})
	assert.ErrorContains(t, err, "no usable flashcards")
}

func TestCallAgentRejectsEmptyTask(t *testing.T) {
	sc := newScope()
	_, err := (&callAgentTool{}).Call(context.Background(), sc, map[string]any{"agent": "planner", "task": "  "})
	assert.ErrorContains(t, err, "must not be empty")
}

func TestFindResourcesDeterministic(t *testing.T) {
	sc := newScope()

	first, err := (&resourcesTool{}).Call(context.Background(), sc, map[string]any{"topic": "recursion"})
	require.NoError(t, err)
	second, err := (&resourcesTool{}).Call(context.Background(), sc, map[string]any{"topic": "recursion"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
