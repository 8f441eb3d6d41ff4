package memory

import (
	"sync"

	"github.com/studymesh/studymesh/core"
)

// DefaultWindow is the message cap applied when no override is given.
const DefaultWindow = 20

// conversation is the stored state for one (user, agent) pair.
type conversation struct {
	id       string
	messages []core.Message
}

// InMemoryStore is a process-local Store keeping one bounded conversation per
// (user, agent) pair. Safe for concurrent access via RWMutex. Suitable for a
// single process; swap in a durable implementation for anything that must
// survive restarts.
type InMemoryStore struct {
	mu            sync.RWMutex
	conversations map[string]*conversation
	window        int
}

// InMemoryStoreOptions configures the in-memory store.
type InMemoryStoreOptions struct {
	// Window caps the stored messages per conversation.
	Window int
}

// NewInMemoryStore creates an empty store with the default window.
func NewInMemoryStore(optFns ...func(o *InMemoryStoreOptions)) *InMemoryStore {
	opts := InMemoryStoreOptions{Window: DefaultWindow}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}
	return &InMemoryStore{
		conversations: make(map[string]*conversation),
		window:        opts.Window,
	}
}

// History implements Store.
func (s *InMemoryStore) History(userID, agent string, limit int) ([]core.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[key(userID, agent)]
	if !ok {
		return nil, nil
	}
	msgs := conv.messages
	if limit > 0 && limit < len(msgs) {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]core.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

// Append implements Store, trimming the conversation back to the window so
// the most recent messages are retained and the oldest evicted first.
func (s *InMemoryStore) Append(userID, agent string, msgs ...core.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(userID, agent)
	conv, ok := s.conversations[k]
	if !ok {
		conv = &conversation{id: core.NewID()}
		s.conversations[k] = conv
	}
	conv.messages = append(conv.messages, msgs...)
	if excess := len(conv.messages) - s.window; excess > 0 {
		conv.messages = append(conv.messages[:0:0], conv.messages[excess:]...)
	}
	return nil
}

// Clear implements Store.
func (s *InMemoryStore) Clear(userID, agent string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conversations, key(userID, agent))
	return nil
}

// ConversationID returns the lazily assigned conversation id for a pair, or
// empty if the pair has no history yet.
func (s *InMemoryStore) ConversationID(userID, agent string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if conv, ok := s.conversations[key(userID, agent)]; ok {
		return conv.id
	}
	return ""
}

func key(userID, agent string) string { return userID + "\x00" + agent }
