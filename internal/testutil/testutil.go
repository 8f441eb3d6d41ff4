// Package testutil carries shared fixtures for the package tests.
package testutil

import (
	"encoding/json"
	"time"

	"github.com/studymesh/studymesh/core"
)

// StudyRequest builds a request with a small but realistic context bundle:
// two materials about recursion, one note, one assignment and one exam.
func StudyRequest(prompt string) *core.Request {
	now := time.Now().UTC()
	return &core.Request{
		UserID:   "u-test",
		CourseID: "cs101",
		Prompt:   prompt,
		Materials: []core.MaterialSummary{
			{ID: "m1", Title: "Lecture 4: Recursion", Content: "Recursion solves a problem by reducing it to smaller instances of itself until a base case is reached."},
			{ID: "m2", Title: "Reading: Divide and Conquer", Content: "Divide and conquer algorithms use recursion to split work, solve the pieces, and merge results."},
		},
		Notes: []core.NoteSummary{
			{ID: "n1", Title: "My recursion notes", Content: "Remember: every recursion needs a base case or it never terminates."},
		},
		Assignments: []core.AssignmentSummary{
			{ID: "a1", Title: "Problem set 3", DueDate: now.Add(72 * time.Hour)},
		},
		Exams: []core.ExamSummary{
			{ID: "e1", Title: "Midterm", Date: now.Add(14 * 24 * time.Hour)},
		},
	}
}

// RouteJSON renders a routing decision the way the model is asked to emit it.
func RouteJSON(agent string, confidence float64, collaborators ...string) string {
	decision := map[string]any{
		"agent":                  agent,
		"confidence":             confidence,
		"reasoning":              "scripted routing decision",
		"requires_collaboration": len(collaborators) > 0,
	}
	if len(collaborators) > 0 {
		decision["collaborators"] = collaborators
	}
	data, err := json.Marshal(decision)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// ToolCall builds a core.ToolCall with JSON-encoded arguments.
func ToolCall(id, tool string, args map[string]any) core.ToolCall {
	data, err := json.Marshal(args)
	if err != nil {
		panic(err)
	}
	return core.ToolCall{ID: id, Tool: tool, Arguments: data}
}
