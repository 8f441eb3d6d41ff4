package tool

import (
	"context"

	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/logging"
)

// Delegator re-enters the agent executor on behalf of the call_agent tool.
// The agent executor implements it, making the executor↔tool mutual
// recursion an explicit, narrow interface instead of an implicit cycle.
type Delegator interface {
	// Delegate runs one step for the named agent, appending it to the shared
	// workflow carried by the scope.
	Delegate(ctx context.Context, agent, task string, sc *Scope) (*core.WorkflowStep, error)
}

// Scope is the request-scoped context handed to every tool call: the
// immutable orchestration request, the shared workflow, the delegation hop
// count, and the output of the step preceding this one (used for continuity
// when one agent's result feeds another).
type Scope struct {
	Request    *core.Request
	Workflow   *core.Workflow
	Hop        int
	PrevOutput string
	Logger     logging.Logger

	delegator Delegator
	maxHops   int
}

// NewScope builds the root scope for one agent step.
func NewScope(req *core.Request, wf *core.Workflow, logger logging.Logger) *Scope {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Scope{Request: req, Workflow: wf, Logger: logger}
}

// Delegate invokes another agent through the executor, enforcing the hop
// budget. The returned step has already been appended to the shared workflow.
func (sc *Scope) Delegate(ctx context.Context, agent, task string) (*core.WorkflowStep, error) {
	if sc.delegator == nil {
		return nil, NewToolError(core.ToolCallAgent, "delegation unavailable in this scope", CodeExecution)
	}
	if sc.Hop >= sc.maxHops {
		return nil, NewToolError(core.ToolCallAgent, "delegation depth exceeded", CodeDepthExceeded)
	}
	child := *sc
	child.Hop++
	child.PrevOutput = ""
	return sc.delegator.Delegate(ctx, agent, task, &child)
}
