package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/internal/util"
)

// prevOutputExcerpt bounds how much of the preceding step's output is carried
// into a delegated task for continuity.
const prevOutputExcerpt = 200

// callAgentTool delegates a task to another agent. The delegated step is
// appended to the same shared workflow; recursion depth is enforced by the
// scope's hop budget.
type callAgentTool struct{}

type callAgentArgs struct {
	Agent string `json:"agent" description:"Name of the agent to delegate to"`
	Task  string `json:"task" description:"What the agent should do"`
}

func (t *callAgentTool) Name() string { return core.ToolCallAgent }

func (t *callAgentTool) Description() string {
	return "Delegate a task to another specialized agent when it is better suited to handle it."
}

func (t *callAgentTool) Parameters() map[string]any {
	return util.SchemaFromStruct(callAgentArgs{})
}

func (t *callAgentTool) Call(ctx context.Context, sc *Scope, args map[string]any) (any, error) {
	var a callAgentArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if strings.TrimSpace(a.Agent) == "" || strings.TrimSpace(a.Task) == "" {
		return nil, fmt.Errorf("agent and task must not be empty")
	}

	task := a.Task
	if prev := strings.TrimSpace(sc.PrevOutput); prev != "" {
		runes := []rune(prev)
		if len(runes) > prevOutputExcerpt {
			prev = string(runes[:prevOutputExcerpt]) + "…"
		}
		task = fmt.Sprintf("Context from the previous step: %s\n\nTask: %s", prev, a.Task)
	}

	step, err := sc.Delegate(ctx, a.Agent, task)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"agent":   a.Agent,
		"step_id": step.ID,
		"status":  string(step.Status),
		"output":  step.Output,
	}, nil
}
