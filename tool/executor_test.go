package tool

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/internal/testutil"
)

type panicTool struct{}

func (t *panicTool) Name() string               { return core.ToolSearchMaterials }
func (t *panicTool) Description() string        { return "always panics" }
func (t *panicTool) Parameters() map[string]any { return map[string]any{"type": "object"} }
func (t *panicTool) Call(context.Context, *Scope, map[string]any) (any, error) {
	panic("boom")
}

type fakeDelegator struct {
	lastAgent string
	lastTask  string
}

func (d *fakeDelegator) Delegate(_ context.Context, agent, task string, sc *Scope) (*core.WorkflowStep, error) {
	d.lastAgent = agent
	d.lastTask = task
	step := sc.Workflow.BeginStep(agent, "respond", task)
	step.Complete("delegated answer")
	return step, nil
}

func newScope() *Scope {
	return NewScope(testutil.StudyRequest("Explain recursion"), core.NewWorkflow(), nil)
}

func TestExecuteUnknownTool(t *testing.T) {
	e := NewExecutor(nil)

	result := e.Execute(context.Background(), core.ToolCall{ID: "c1", Tool: "teleport"}, newScope())

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "UNKNOWN_TOOL")
	assert.Equal(t, "c1", result.CallID)
}

func TestExecuteMalformedArguments(t *testing.T) {
	e := NewExecutor(nil)
	call := core.ToolCall{ID: "c1", Tool: core.ToolSearchMaterials, Arguments: json.RawMessage(`{not json`)}

	result := e.Execute(context.Background(), call, newScope())

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "malformed arguments")
}

func TestExecuteMissingRequiredArgument(t *testing.T) {
	e := NewExecutor(nil)
	call := core.ToolCall{ID: "c1", Tool: core.ToolSearchMaterials, Arguments: json.RawMessage(`{"limit": 2}`)}

	result := e.Execute(context.Background(), call, newScope())

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "VALIDATION_ERROR")
}

func TestExecuteRecoversPanic(t *testing.T) {
	e := NewExecutor(nil, func(o *ExecutorOptions) {
		o.ExtraTools = []Tool{&panicTool{}}
	})
	call := core.ToolCall{ID: "c1", Tool: core.ToolSearchMaterials, Arguments: json.RawMessage(`{}`)}

	result := e.Execute(context.Background(), call, newScope())

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "panic")
}

func TestExecuteSuccess(t *testing.T) {
	e := NewExecutor(nil)
	call := core.ToolCall{ID: "c1", Tool: core.ToolSearchMaterials, Arguments: json.RawMessage(`{"query":"recursion"}`)}

	result := e.Execute(context.Background(), call, newScope())

	require.True(t, result.Success, result.Error)
	results, ok := result.Content.([]SearchResult)
	require.True(t, ok)
	assert.NotEmpty(t, results)
}

func TestDefinitionsPreserveAllowListOrder(t *testing.T) {
	e := NewExecutor(nil)

	defs := e.Definitions([]string{core.ToolCheckCalendar, core.ToolSearchNotes, "bogus"})

	require.Len(t, defs, 2)
	assert.Equal(t, core.ToolCheckCalendar, defs[0].Name)
	assert.Equal(t, core.ToolSearchNotes, defs[1].Name)
	assert.NotEmpty(t, defs[0].Description)
	assert.NotNil(t, defs[0].Parameters)
}

func TestDelegationDepthExceeded(t *testing.T) {
	d := &fakeDelegator{}
	e := NewExecutor(d, func(o *ExecutorOptions) {
		o.MaxDelegationDepth = 1
	})
	sc := newScope()
	sc.Hop = 1

	call := core.ToolCall{ID: "c1", Tool: core.ToolCallAgent, Arguments: json.RawMessage(`{"agent":"planner","task":"plan my week"}`)}
	result := e.Execute(context.Background(), call, sc)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "DEPTH_EXCEEDED")
	assert.Empty(t, d.lastAgent)
}

func TestDelegationCarriesPreviousOutput(t *testing.T) {
	d := &fakeDelegator{}
	e := NewExecutor(d)
	sc := newScope()
	sc.PrevOutput = "the tutor explained base cases"

	call := core.ToolCall{ID: "c1", Tool: core.ToolCallAgent, Arguments: json.RawMessage(`{"agent":"planner","task":"plan my week"}`)}
	result := e.Execute(context.Background(), call, sc)

	require.True(t, result.Success, result.Error)
	assert.Equal(t, "planner", d.lastAgent)
	assert.Contains(t, d.lastTask, "Context from the previous step: the tutor explained base cases")
	assert.Contains(t, d.lastTask, "Task: plan my week")

	content, ok := result.Content.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "delegated answer", content["output"])
	assert.Equal(t, string(core.StepCompleted), content["status"])
}
