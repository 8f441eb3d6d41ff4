package core

import "encoding/json"

// The closed enumeration of tool names known to the engine. Agents reference
// these in their allow-lists; the tool executor dispatches on them.
const (
	ToolSearchMaterials    = "search_materials"
	ToolSearchNotes        = "search_notes"
	ToolCalculateStudyTime = "calculate_study_time"
	ToolCheckCalendar      = "check_calendar"
	ToolCreateTask         = "create_task"
	ToolUpdateSchedule     = "update_schedule"
	ToolGenerateFlashcards = "generate_flashcards"
	ToolFindResources      = "find_resources"
	ToolCallAgent          = "call_agent"
)

// ToolCall is a tool invocation request surfaced by the completion service.
// Tool names are drawn from the closed set registered with the tool executor;
// Arguments is the raw JSON argument object exactly as the model produced it.
type ToolCall struct {
	ID        string          `json:"id"`
	Tool      string          `json:"tool"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// ToolResult is the answer to a single ToolCall. Tool execution never raises
// past this boundary: every failure, including panics and malformed
// arguments, is captured as Success=false with Error set.
type ToolResult struct {
	CallID  string `json:"call_id"`
	Tool    string `json:"tool"`
	Content any    `json:"content,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
