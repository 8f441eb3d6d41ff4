package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/studymesh/studymesh/internal/util"
)

// Tool defines one narrow, named capability an agent may invoke.
//
// Implementations should provide clear names and descriptions (the model
// sees both), declare a JSON schema for their arguments, and be safe for
// concurrent use; all built-in tools are stateless after construction.
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns the human-readable description shown to the model.
	Description() string

	// Parameters returns a JSON schema describing the expected arguments.
	Parameters() map[string]any

	// Call executes the tool. Arguments have been schema-validated; handlers
	// still decode them into a typed struct before use. Errors returned here
	// are converted to failed ToolResults by the Executor, never propagated.
	Call(ctx context.Context, sc *Scope, args map[string]any) (any, error)
}

// ValidationError re-exports the internal schema validation error type.
type ValidationError = util.ValidationError

// Error codes attached to ToolError for categorization.
const (
	// CodeValidation marks schema / argument mismatches.
	CodeValidation = "VALIDATION_ERROR"
	// CodeExecution marks handler failures.
	CodeExecution = "EXECUTION_ERROR"
	// CodeUnknownTool marks dispatch on a name outside the closed set.
	CodeUnknownTool = "UNKNOWN_TOOL"
	// CodeDepthExceeded marks a delegation blocked by the hop budget.
	CodeDepthExceeded = "DEPTH_EXCEEDED"
)

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}

// decodeArgs round-trips a validated argument map into a typed args struct so
// each handler works with one concrete shape instead of an open map.
func decodeArgs(args map[string]any, into any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode args: %w", err)
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("decode args: %w", err)
	}
	return nil
}
