package model

import (
	"context"

	"github.com/studymesh/studymesh/core"
)

// ToolDefinition declaratively exposes a callable tool to the model.
// Parameters is a JSON Schema object (minimal subset).
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request captures one normalized completion request.
type Request struct {
	// Instructions is the persona / system text.
	Instructions string `json:"instructions"`
	// Messages are the prior turns plus the current user text, in order.
	Messages []core.Message `json:"messages"`
	// Tools, when non-empty, enables tool calling for this completion.
	Tools []ToolDefinition `json:"tools,omitempty"`
	// JSONMode requests a structured JSON object response (used for routing).
	JSONMode bool `json:"json_mode,omitempty"`
}

// Response is the completed model output: free text and/or requested tool
// invocations.
type Response struct {
	Text      string          `json:"text"`
	ToolCalls []core.ToolCall `json:"tool_calls,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"`
	SupportsTools bool   `json:"supports_tools"`
}

// Model is the minimal interface the router, executor and synthesizer need
// to drive generation.
type Model interface {
	Complete(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}
