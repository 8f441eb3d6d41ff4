package core

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a conversation message.
type Role string

const (
	// RoleSystem marks persona / instruction messages.
	RoleSystem Role = "system"
	// RoleUser marks messages authored by the requesting user.
	RoleUser Role = "user"
	// RoleAssistant marks messages authored by an agent.
	RoleAssistant Role = "assistant"
	// RoleTool marks messages carrying tool results back to the model.
	RoleTool Role = "tool"
)

// Message is one turn in an agent's conversation. It appears both in the
// bounded per (user, agent) memory and in the transient message list built
// while executing a single step. ToolCalls is populated on assistant messages
// that requested tools; ToolResults on tool role messages answering them.
type Message struct {
	Role        Role         `json:"role"`
	Content     string       `json:"content"`
	ToolCalls   []ToolCall   `json:"tool_calls,omitempty"`
	ToolResults []ToolResult `json:"tool_results,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
}

// NewMessage creates a message stamped with the current UTC time.
func NewMessage(role Role, content string) Message {
	return Message{Role: role, Content: content, Timestamp: time.Now().UTC()}
}

// NewID generates a new unique identifier for workflows, steps and tool calls.
func NewID() string { return uuid.NewString() }
