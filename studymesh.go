// Package studymesh orchestrates a team of study-assistant agents over a
// language model. A request is routed to a primary agent, executed as one or
// more tool-enabled workflow steps (including nested delegations between
// agents), and synthesized into a single answer with derived citations,
// delegation records and tool usage.
//
// Typical use:
//
//	orc := studymesh.New(llm)
//	resp, err := orc.Orchestrate(ctx, &core.Request{
//		UserID: "u1",
//		Prompt: "Explain recursion using my lecture notes",
//	})
package studymesh

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/studymesh/studymesh/agent"
	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/logging"
	"github.com/studymesh/studymesh/memory"
	"github.com/studymesh/studymesh/model"
	"github.com/studymesh/studymesh/registry"
	"github.com/studymesh/studymesh/router"
	"github.com/studymesh/studymesh/synthesis"
	"github.com/studymesh/studymesh/tool"
)

// Options configures an Orchestrator. Zero values select the default
// catalog, an in-memory store and a no-op logger.
type Options struct {
	// Registry holds the agent identities. Defaults to registry.NewDefault.
	Registry *registry.Registry

	// Memory stores per (user, agent) conversation history. Defaults to an
	// in-process sliding-window store.
	Memory memory.Store

	// Logger receives orchestration events. Defaults to logging.NoOpLogger.
	Logger logging.Logger

	// MaxDelegationDepth bounds call_agent recursion. Zero means
	// tool.DefaultMaxDelegationDepth.
	MaxDelegationDepth int

	// MinRouteConfidence is the routing confidence floor below which the
	// general agent handles the request. Zero means
	// router.DefaultMinConfidence.
	MinRouteConfidence float64

	// HistoryLimit caps remembered messages included per turn. Zero means
	// agent.DefaultHistoryLimit.
	HistoryLimit int

	// ExtraTools are registered alongside the built-in tools and may shadow
	// them.
	ExtraTools []tool.Tool
}

// Response is the orchestration result. It is built once after synthesis and
// not mutated afterwards.
type Response struct {
	Answer       string           `json:"answer"`
	PrimaryAgent string           `json:"primary_agent"`
	Workflow     *core.Workflow   `json:"workflow"`
	Citations    []core.Citation  `json:"citations,omitempty"`
	AgentCalls   []core.AgentCall `json:"agent_calls,omitempty"`
	ToolsUsed    []core.ToolUsage `json:"tools_used,omitempty"`
	Reasoning    string           `json:"reasoning,omitempty"`
}

// Orchestrator wires the router, the agent executor and the synthesizer
// around one completion model. It is safe for concurrent use; each call gets
// its own workflow.
type Orchestrator struct {
	registry *registry.Registry
	memory   memory.Store
	router   *router.Router
	executor *agent.Executor
	synth    *synthesis.Synthesizer
	logger   logging.Logger
}

// New constructs an Orchestrator over a completion model.
func New(llm model.Model, optFns ...func(o *Options)) *Orchestrator {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Registry == nil {
		opts.Registry = registry.NewDefault()
	}
	if opts.Memory == nil {
		opts.Memory = memory.NewInMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	rt := router.New(opts.Registry, llm, func(o *router.Options) {
		if opts.MinRouteConfidence > 0 {
			o.MinConfidence = opts.MinRouteConfidence
		}
		o.Logger = opts.Logger
	})
	exec := agent.NewExecutor(opts.Registry, llm, opts.Memory, func(o *agent.Options) {
		if opts.MaxDelegationDepth > 0 {
			o.MaxDelegationDepth = opts.MaxDelegationDepth
		}
		if opts.HistoryLimit > 0 {
			o.HistoryLimit = opts.HistoryLimit
		}
		o.Logger = opts.Logger
		o.ExtraTools = opts.ExtraTools
	})
	synth := synthesis.New(llm, func(o *synthesis.Options) {
		o.Logger = opts.Logger
	})

	return &Orchestrator{
		registry: opts.Registry,
		memory:   opts.Memory,
		router:   rt,
		executor: exec,
		synth:    synth,
		logger:   opts.Logger,
	}
}

// Orchestrate answers one request end to end. Routing and synthesis failures
// abort the call with an error and an error-status workflow; individual step
// and tool failures are absorbed into the workflow and synthesis proceeds
// with whatever was gathered.
func (o *Orchestrator) Orchestrate(ctx context.Context, req *core.Request) (*Response, error) {
	if req == nil || req.Prompt == "" {
		return nil, fmt.Errorf("studymesh: empty request")
	}

	wf := core.NewWorkflow()
	o.logger.Info("orchestration started", "workflow_id", wf.ID, "user_id", req.UserID)

	routeStep := wf.BeginStep(router.StepAgent, router.StepAction, req.Prompt)
	decision, err := o.router.Route(ctx, req.Prompt)
	if err != nil {
		routeStep.Fail("", err.Error())
		wf.Fail()
		return nil, fmt.Errorf("studymesh: routing: %w", err)
	}
	routeStep.Reasoning = decision.Reasoning
	routeStep.Complete(renderDecision(decision))
	wf.SetStatus(core.WorkflowExecuting)

	step, err := o.executor.ExecuteStep(ctx, decision.Agent, req.Prompt, req, wf, "")
	if err != nil {
		wf.Fail()
		return nil, fmt.Errorf("studymesh: primary step: %w", err)
	}
	prev := step.Output

	if decision.RequiresCollaboration {
		for _, collaborator := range decision.Collaborators {
			collabStep, err := o.executor.ExecuteStep(ctx, collaborator, req.Prompt, req, wf, prev)
			if err != nil {
				wf.Fail()
				return nil, fmt.Errorf("studymesh: collaborator step: %w", err)
			}
			prev = collabStep.Output
		}
	}

	answer, err := o.synth.Synthesize(ctx, wf, req.Prompt)
	if err != nil {
		wf.Fail()
		return nil, fmt.Errorf("studymesh: %w", err)
	}
	wf.Complete()

	resp := &Response{
		Answer:       answer,
		PrimaryAgent: decision.Agent,
		Workflow:     wf,
		Citations:    synthesis.Citations(wf),
		AgentCalls:   synthesis.AgentCalls(wf),
		ToolsUsed:    synthesis.ToolsUsed(wf),
		Reasoning:    synthesis.ReasoningTrace(wf),
	}
	o.logger.Info("orchestration completed",
		"workflow_id", wf.ID,
		"primary", decision.Agent,
		"steps", len(wf.Snapshot()),
	)
	return resp, nil
}

// ClearMemory drops the stored conversation history for a user across every
// registered agent.
func (o *Orchestrator) ClearMemory(userID string) error {
	for _, name := range o.registry.Names() {
		if err := o.memory.Clear(userID, name); err != nil {
			return fmt.Errorf("studymesh: clear memory for %s: %w", name, err)
		}
	}
	return nil
}

// renderDecision produces the routing step's recorded output.
func renderDecision(d *router.Decision) string {
	data, err := json.Marshal(d)
	if err != nil {
		return d.Agent
	}
	return string(data)
}
