package router

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymesh/studymesh/model"
	"github.com/studymesh/studymesh/registry"
)

func newRouter(llm model.Model) *Router {
	return New(registry.NewDefault(), llm)
}

func TestRouteParsesDecision(t *testing.T) {
	llm := model.NewMockModel()
	llm.EnqueueText(`{"agent":"planner","confidence":0.82,"reasoning":"Scheduling question.","requires_collaboration":false}`)

	d, err := newRouter(llm).Route(context.Background(), "plan my week")
	require.NoError(t, err)

	assert.Equal(t, "planner", d.Agent)
	assert.InDelta(t, 0.82, d.Confidence, 1e-9)
	assert.False(t, d.RequiresCollaboration)
	assert.Nil(t, d.Collaborators)

	// The classification runs in JSON mode with no tools.
	reqs := llm.Requests()
	require.Len(t, reqs, 1)
	assert.True(t, reqs[0].JSONMode)
	assert.Empty(t, reqs[0].Tools)
	assert.Contains(t, reqs[0].Instructions, "planner")
	assert.Contains(t, reqs[0].Instructions, "scout")
}

func TestRouteToleratesCodeFence(t *testing.T) {
	llm := model.NewMockModel()
	llm.EnqueueText("```json\n{\"agent\":\"coach\",\"confidence\":0.9,\"reasoning\":\"Exam prep.\",\"requires_collaboration\":false}\n```")

	d, err := newRouter(llm).Route(context.Background(), "make flashcards")
	require.NoError(t, err)
	assert.Equal(t, "coach", d.Agent)
}

func TestRouteUnknownAgentFallsBack(t *testing.T) {
	llm := model.NewMockModel()
	llm.EnqueueText(`{"agent":"janitor","confidence":0.95,"reasoning":"?","requires_collaboration":false}`)

	d, err := newRouter(llm).Route(context.Background(), "help")
	require.NoError(t, err)
	assert.Equal(t, registry.GeneralAgent, d.Agent)
}

func TestRouteLowConfidenceFallsBack(t *testing.T) {
	llm := model.NewMockModel()
	llm.EnqueueText(`{"agent":"planner","confidence":0.2,"reasoning":"Unsure.","requires_collaboration":false}`)

	d, err := newRouter(llm).Route(context.Background(), "hmm")
	require.NoError(t, err)
	assert.Equal(t, registry.GeneralAgent, d.Agent)
}

func TestRouteFiltersCollaborators(t *testing.T) {
	llm := model.NewMockModel()
	llm.EnqueueText(`{"agent":"coach","confidence":0.9,"reasoning":"Exam prep plus scheduling.",` +
		`"requires_collaboration":true,"collaborators":["coach","planner","planner","ghost"]}`)

	d, err := newRouter(llm).Route(context.Background(), "prep and plan")
	require.NoError(t, err)

	assert.Equal(t, "coach", d.Agent)
	assert.True(t, d.RequiresCollaboration)
	assert.Equal(t, []string{"planner"}, d.Collaborators)
}

func TestRouteCollaborationClearedWhenAllFiltered(t *testing.T) {
	llm := model.NewMockModel()
	llm.EnqueueText(`{"agent":"coach","confidence":0.9,"reasoning":"x","requires_collaboration":true,"collaborators":["coach"]}`)

	d, err := newRouter(llm).Route(context.Background(), "prep")
	require.NoError(t, err)
	assert.False(t, d.RequiresCollaboration)
	assert.Empty(t, d.Collaborators)
}

func TestRouteCompletionErrorIsFatal(t *testing.T) {
	llm := model.NewMockModel()
	llm.EnqueueError(errors.New("provider down"))

	_, err := newRouter(llm).Route(context.Background(), "help")
	assert.ErrorContains(t, err, "routing completion failed")
}

func TestRouteUnparsableDecisionIsFatal(t *testing.T) {
	llm := model.NewMockModel()
	llm.EnqueueText("I would pick the planner for this one.")

	_, err := newRouter(llm).Route(context.Background(), "help")
	assert.ErrorContains(t, err, "routing decision unparsable")
}
