package synthesis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/model"
	"github.com/studymesh/studymesh/router"
)

func TestSynthesizePassthroughSingleLongStep(t *testing.T) {
	llm := model.NewMockModel()
	wf := core.NewWorkflow()
	wf.BeginStep(router.StepAgent, router.StepAction, "p").Complete("{}")
	long := strings.Repeat("Recursion reduces a problem to smaller instances. ", 4)
	wf.BeginStep("tutor", "respond", "p").Complete(long)

	answer, err := New(llm).Synthesize(context.Background(), wf, "Explain recursion")
	require.NoError(t, err)

	assert.Equal(t, long, answer)
	assert.Empty(t, llm.Requests(), "passthrough must not call the model")
}

func TestSynthesizeMergesShortSingleStep(t *testing.T) {
	llm := model.NewMockModel()
	llm.EnqueueText("Recursion is self-reference with a base case, as your lecture notes put it.")
	wf := core.NewWorkflow()
	wf.BeginStep(router.StepAgent, router.StepAction, "p").Complete("{}")
	wf.BeginStep("tutor", "respond", "p").Complete("Self-reference plus base case.")

	answer, err := New(llm).Synthesize(context.Background(), wf, "Explain recursion")
	require.NoError(t, err)

	assert.Contains(t, answer, "base case")
	require.Len(t, llm.Requests(), 1)
}

func TestSynthesizeMergesMultipleSteps(t *testing.T) {
	llm := model.NewMockModel()
	llm.EnqueueText("Merged answer.")
	wf := core.NewWorkflow()
	wf.BeginStep(router.StepAgent, router.StepAction, "p").Complete("{}")
	wf.BeginStep("coach", "respond", "p").Complete("Drill flashcards nightly.")
	wf.BeginStep("planner", "respond", "p").Complete("Reserve Tuesday and Thursday evenings.")

	answer, err := New(llm).Synthesize(context.Background(), wf, "Prep me for the exam and plan my week")
	require.NoError(t, err)
	assert.Equal(t, "Merged answer.", answer)

	reqs := llm.Requests()
	require.Len(t, reqs, 1)
	prompt := reqs[0].Messages[0].Content
	assert.Contains(t, prompt, "Original question: Prep me for the exam and plan my week")
	assert.Contains(t, prompt, "## coach")
	assert.Contains(t, prompt, "Drill flashcards nightly.")
	assert.Contains(t, prompt, "## planner")
	assert.NotContains(t, prompt, "## router")
}

func TestSynthesizeErrorPropagates(t *testing.T) {
	llm := model.NewMockModel()
	llm.EnqueueError(errors.New("provider down"))
	wf := core.NewWorkflow()
	wf.BeginStep(router.StepAgent, router.StepAction, "p").Complete("{}")
	wf.BeginStep("coach", "respond", "p").Complete("a")
	wf.BeginStep("planner", "respond", "p").Complete("b")

	_, err := New(llm).Synthesize(context.Background(), wf, "p")
	assert.ErrorContains(t, err, "merge completion")
}

func TestSynthesizeRequiresAgentSteps(t *testing.T) {
	wf := core.NewWorkflow()
	wf.BeginStep(router.StepAgent, router.StepAction, "p").Complete("{}")

	_, err := New(model.NewMockModel()).Synthesize(context.Background(), wf, "p")
	assert.ErrorContains(t, err, "no agent steps")
}
