package core

import (
	"sync"
	"time"
)

// StepStatus tracks the lifecycle of a single workflow step.
type StepStatus string

const (
	// StepPending marks a created but not yet started step.
	StepPending StepStatus = "pending"
	// StepRunning marks a step currently executing.
	StepRunning StepStatus = "running"
	// StepCompleted marks a successfully finished step.
	StepCompleted StepStatus = "completed"
	// StepError marks a step that failed; its output holds a short explanation.
	StepError StepStatus = "error"
)

// Terminal reports whether the status is completed or error.
func (s StepStatus) Terminal() bool { return s == StepCompleted || s == StepError }

// WorkflowStatus tracks the lifecycle of a whole workflow.
type WorkflowStatus string

const (
	// WorkflowPlanning covers the routing phase.
	WorkflowPlanning WorkflowStatus = "planning"
	// WorkflowExecuting covers agent and tool execution.
	WorkflowExecuting WorkflowStatus = "executing"
	// WorkflowCompleted marks a finished workflow.
	WorkflowCompleted WorkflowStatus = "completed"
	// WorkflowError marks a workflow aborted by a routing or synthesis failure.
	WorkflowError WorkflowStatus = "error"
)

// Terminal reports whether the status is completed or error.
func (s WorkflowStatus) Terminal() bool { return s == WorkflowCompleted || s == WorkflowError }

// WorkflowStep is one entry in the workflow timeline. Its ID is fixed at
// creation; status, output, reasoning and the end timestamp transition until
// the step reaches a terminal status, after which the step never changes.
type WorkflowStep struct {
	ID        string     `json:"id"`
	Agent     string     `json:"agent"`
	Action    string     `json:"action"`
	Input     string     `json:"input"`
	Output    string     `json:"output,omitempty"`
	Status    StepStatus `json:"status"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   time.Time  `json:"ended_at,omitzero"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	Reasoning string     `json:"reasoning,omitempty"`
}

// RecordToolCall appends a tool call issued during this step.
func (s *WorkflowStep) RecordToolCall(call ToolCall) {
	s.ToolCalls = append(s.ToolCalls, call)
}

// Complete marks the step finished with the given output.
func (s *WorkflowStep) Complete(output string) {
	if s.Status.Terminal() {
		return
	}
	s.Output = output
	s.Status = StepCompleted
	s.EndedAt = time.Now().UTC()
}

// Fail marks the step errored. Output carries the user-facing explanation,
// reasoning the underlying error text.
func (s *WorkflowStep) Fail(output, reason string) {
	if s.Status.Terminal() {
		return
	}
	s.Output = output
	s.Reasoning = reason
	s.Status = StepError
	s.EndedAt = time.Now().UTC()
}

// Workflow is the ordered, append-only record of every step taken to answer
// one request, including nested delegations. One instance exists per
// top-level orchestration call and is shared by reference across every
// nested agent execution so all steps land in a single timeline.
//
// Step order is insertion order and is never reordered. Orchestration runs
// as one sequential chain; the mutex only guards appends against callers that
// inspect a workflow while it is still executing.
type Workflow struct {
	ID        string          `json:"id"`
	Steps     []*WorkflowStep `json:"steps"`
	Status    WorkflowStatus  `json:"status"`
	StartedAt time.Time       `json:"started_at"`
	EndedAt   time.Time       `json:"ended_at,omitzero"`
	mu        sync.Mutex
}

// NewWorkflow creates an empty workflow in the planning state.
func NewWorkflow() *Workflow {
	return &Workflow{
		ID:        NewID(),
		Status:    WorkflowPlanning,
		StartedAt: time.Now().UTC(),
	}
}

// BeginStep creates a step in the running state and appends it immediately,
// so partial progress stays visible even if the step later errors.
func (w *Workflow) BeginStep(agent, action, input string) *WorkflowStep {
	step := &WorkflowStep{
		ID:        NewID(),
		Agent:     agent,
		Action:    action,
		Input:     input,
		Status:    StepRunning,
		StartedAt: time.Now().UTC(),
	}
	w.mu.Lock()
	w.Steps = append(w.Steps, step)
	w.mu.Unlock()
	return step
}

// SetStatus transitions the workflow status. Terminal statuses latch: once
// completed or error the status never changes again.
func (w *Workflow) SetStatus(status WorkflowStatus) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Status.Terminal() {
		return
	}
	w.Status = status
	if status.Terminal() {
		w.EndedAt = time.Now().UTC()
	}
}

// Complete marks the workflow finished.
func (w *Workflow) Complete() { w.SetStatus(WorkflowCompleted) }

// Fail marks the workflow aborted.
func (w *Workflow) Fail() { w.SetStatus(WorkflowError) }

// Snapshot returns a copy of the step slice in insertion order. The step
// pointers are shared; callers must treat terminal steps as immutable.
func (w *Workflow) Snapshot() []*WorkflowStep {
	w.mu.Lock()
	defer w.mu.Unlock()
	steps := make([]*WorkflowStep, len(w.Steps))
	copy(steps, w.Steps)
	return steps
}
