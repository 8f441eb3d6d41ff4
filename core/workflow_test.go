package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginStepAppendsInOrder(t *testing.T) {
	wf := NewWorkflow()
	require.NotEmpty(t, wf.ID)
	assert.Equal(t, WorkflowPlanning, wf.Status)

	first := wf.BeginStep("router", "route", "explain recursion")
	second := wf.BeginStep("tutor", "respond", "explain recursion")

	assert.Equal(t, StepRunning, first.Status)
	assert.False(t, first.StartedAt.IsZero())

	steps := wf.Snapshot()
	require.Len(t, steps, 2)
	assert.Same(t, first, steps[0])
	assert.Same(t, second, steps[1])
	assert.NotEqual(t, first.ID, second.ID)
}

func TestStepCompleteAndFail(t *testing.T) {
	wf := NewWorkflow()

	step := wf.BeginStep("tutor", "respond", "in")
	step.RecordToolCall(ToolCall{ID: "c1", Tool: ToolSearchMaterials})
	step.Complete("done")

	assert.Equal(t, StepCompleted, step.Status)
	assert.Equal(t, "done", step.Output)
	assert.False(t, step.EndedAt.IsZero())
	require.Len(t, step.ToolCalls, 1)

	// Terminal states latch.
	step.Fail("later", "should not apply")
	assert.Equal(t, StepCompleted, step.Status)
	assert.Equal(t, "done", step.Output)

	failed := wf.BeginStep("planner", "respond", "in")
	failed.Fail("sorry", "llm unavailable")
	assert.Equal(t, StepError, failed.Status)
	assert.Equal(t, "sorry", failed.Output)
	assert.Equal(t, "llm unavailable", failed.Reasoning)
}

func TestWorkflowStatusLatch(t *testing.T) {
	wf := NewWorkflow()

	wf.SetStatus(WorkflowExecuting)
	assert.Equal(t, WorkflowExecuting, wf.Status)

	wf.Complete()
	assert.Equal(t, WorkflowCompleted, wf.Status)
	assert.False(t, wf.EndedAt.IsZero())

	wf.Fail()
	assert.Equal(t, WorkflowCompleted, wf.Status)
}

func TestWorkflowJSONOmitsOpenEnd(t *testing.T) {
	wf := NewWorkflow()
	step := wf.BeginStep("tutor", "respond", "in")

	data, err := json.Marshal(step)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "ended_at")

	step.Complete("done")
	data, err = json.Marshal(step)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ended_at")
}
