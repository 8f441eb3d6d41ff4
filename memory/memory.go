package memory

import "github.com/studymesh/studymesh/core"

// Store is the per (user, agent) conversation history contract. All
// implementations must enforce the sliding window on Append and create
// conversations lazily on first access.
type Store interface {
	// History returns the stored messages for the pair, oldest first. A limit
	// of 0 (or more than stored) returns everything in the window.
	History(userID, agent string, limit int) ([]core.Message, error)

	// Append adds messages for the pair, evicting the oldest beyond the window.
	Append(userID, agent string, msgs ...core.Message) error

	// Clear drops the conversation for the pair.
	Clear(userID, agent string) error
}
