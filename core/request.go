package core

import "time"

// MaterialSummary is a short rendering of one course material supplied by the
// caller as read-only context. The orchestrator never fetches materials
// itself.
type MaterialSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NoteSummary is a short rendering of one user note.
type NoteSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// AssignmentSummary carries the fields the calendar tool needs to reason
// about upcoming work.
type AssignmentSummary struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	DueDate time.Time `json:"due_date"`
}

// ExamSummary carries the fields the calendar tool needs for upcoming exams.
type ExamSummary struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
}

// Request is the unit of work handed to the orchestrator: a free-text prompt,
// the owning user, an optional course scope, and the context bundle the tools
// operate on. Treat it as immutable for the duration of one orchestration.
type Request struct {
	Prompt      string              `json:"prompt"`
	UserID      string              `json:"user_id"`
	CourseID    string              `json:"course_id,omitempty"`
	Materials   []MaterialSummary   `json:"materials,omitempty"`
	Notes       []NoteSummary       `json:"notes,omitempty"`
	Assignments []AssignmentSummary `json:"assignments,omitempty"`
	Exams       []ExamSummary       `json:"exams,omitempty"`
}

// Citation links part of the final answer back to a supplied material or
// note. Labels are running 1-based indexes assigned by the extractor.
type Citation struct {
	Label    int    `json:"label"`
	SourceID string `json:"source_id"`
	Title    string `json:"title,omitempty"`
	Snippet  string `json:"snippet,omitempty"`
}

// AgentCall records one delegation between agents for the caller-facing
// summary.
type AgentCall struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Purpose string `json:"purpose"`
	Result  string `json:"result,omitempty"`
}

// ToolUsage records which agent used which tool in which step.
type ToolUsage struct {
	StepID string `json:"step_id"`
	Agent  string `json:"agent"`
	Tool   string `json:"tool"`
}
