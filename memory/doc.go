// Package memory contains the bounded per (user, agent) conversation store.
// The Store interface is dependency-injected into the agent executor so tests
// can swap in an isolated store instead of relying on shared process state.
//
// The history is a sliding window, not a growing log: each conversation keeps
// the most recent N messages and evicts the oldest first. Conversations are
// created lazily on first access, live for the process lifetime (or until
// explicitly cleared) and are not persisted across restarts.
package memory
