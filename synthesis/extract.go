package synthesis

import (
	"encoding/json"
	"strings"

	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/router"
	"github.com/studymesh/studymesh/tool"
)

// Citations walks the workflow and emits one citation per search result that
// a search step surfaced. A step qualifies when it called search_materials
// or search_notes and its output parses as a result list; anything else is
// skipped rather than guessed at.
func Citations(wf *core.Workflow) []core.Citation {
	var citations []core.Citation
	label := 0
	seen := make(map[string]bool)

	for _, step := range wf.Snapshot() {
		if !calledSearch(step) {
			continue
		}
		for _, r := range parseResults(step.Output) {
			if r.ID == "" || seen[r.ID] {
				continue
			}
			seen[r.ID] = true
			label++
			citations = append(citations, core.Citation{
				Label:    label,
				SourceID: r.ID,
				Title:    r.Title,
				Snippet:  r.Snippet,
			})
		}
	}
	return citations
}

// AgentCalls records every delegation in the workflow. The result text is
// taken from the first later step attributed to the target agent, which is
// where the delegated work landed.
func AgentCalls(wf *core.Workflow) []core.AgentCall {
	steps := wf.Snapshot()
	var calls []core.AgentCall

	for i, step := range steps {
		for _, tc := range step.ToolCalls {
			if tc.Tool != core.ToolCallAgent {
				continue
			}
			var args struct {
				Agent string `json:"agent"`
				Task  string `json:"task"`
			}
			if err := json.Unmarshal(tc.Arguments, &args); err != nil {
				continue
			}
			call := core.AgentCall{From: step.Agent, To: args.Agent, Purpose: args.Task}
			for _, later := range steps[i+1:] {
				if later.Agent == args.Agent {
					call.Result = later.Output
					break
				}
			}
			calls = append(calls, call)
		}
	}
	return calls
}

// ToolsUsed lists every (step, tool call) pair in workflow order.
func ToolsUsed(wf *core.Workflow) []core.ToolUsage {
	var usage []core.ToolUsage
	for _, step := range wf.Snapshot() {
		for _, tc := range step.ToolCalls {
			usage = append(usage, core.ToolUsage{
				StepID: step.ID,
				Agent:  step.Agent,
				Tool:   tc.Tool,
			})
		}
	}
	return usage
}

// ReasoningTrace concatenates per-step reasoning into one readable trace,
// one line per step, each prefixed with the agent name.
func ReasoningTrace(wf *core.Workflow) string {
	var lines []string
	for _, step := range wf.Snapshot() {
		if step.Action == router.StepAction || step.Reasoning == "" {
			continue
		}
		lines = append(lines, "["+step.Agent+"] "+step.Reasoning)
	}
	return strings.Join(lines, "\n")
}

func calledSearch(step *core.WorkflowStep) bool {
	for _, tc := range step.ToolCalls {
		if tc.Tool == core.ToolSearchMaterials || tc.Tool == core.ToolSearchNotes {
			return true
		}
	}
	return false
}

// parseResults accepts either a bare result array or an object wrapping one
// under "results". Unparsable output yields nil.
func parseResults(output string) []tool.SearchResult {
	data := []byte(output)

	var list []tool.SearchResult
	if err := json.Unmarshal(data, &list); err == nil {
		return list
	}

	var wrapped struct {
		Results []tool.SearchResult `json:"results"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil {
		return wrapped.Results
	}
	return nil
}
