// Package router classifies an incoming request into the agent best suited
// to answer it. One structured completion enumerates the known identities
// and asks for a JSON decision object; ambiguous or low-confidence requests
// fall back to the registry's general agent instead of failing.
//
// A completion error or unparsable decision is a hard failure of the whole
// orchestration and propagates to the caller.
package router

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/logging"
	"github.com/studymesh/studymesh/model"
	"github.com/studymesh/studymesh/registry"
)

// DefaultMinConfidence is the threshold below which routing falls back to
// the general agent.
const DefaultMinConfidence = 0.4

// StepAgent and StepAction identify the routing step recorded at the head of
// every workflow. Synthesis and the extractors skip steps tagged this way.
const (
	StepAgent  = "router"
	StepAction = "route"
)

// Decision is the parsed routing outcome. Agent is always a known identity;
// Collaborators never contains the primary agent and is only populated when
// RequiresCollaboration is true.
type Decision struct {
	Agent                 string   `json:"agent"`
	Confidence            float64  `json:"confidence"`
	Reasoning             string   `json:"reasoning"`
	RequiresCollaboration bool     `json:"requires_collaboration"`
	Collaborators         []string `json:"collaborators,omitempty"`
}

// Options configures the router.
type Options struct {
	// MinConfidence below which the general agent is chosen.
	MinConfidence float64
	// Logger receives routing logs; defaults to NoOpLogger.
	Logger logging.Logger
}

// Router issues the single classification completion.
type Router struct {
	registry      *registry.Registry
	llm           model.Model
	minConfidence float64
	logger        logging.Logger
}

// New constructs a Router over a registry and completion model.
func New(reg *registry.Registry, llm model.Model, optFns ...func(o *Options)) *Router {
	opts := Options{
		MinConfidence: DefaultMinConfidence,
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Router{
		registry:      reg,
		llm:           llm,
		minConfidence: opts.MinConfidence,
		logger:        opts.Logger,
	}
}

// Route classifies a prompt. The returned decision always names a known
// agent; errors from the completion service or an unparsable decision are
// returned as-is (no fallback routing on hard failure).
func (r *Router) Route(ctx context.Context, prompt string) (*Decision, error) {
	resp, err := r.llm.Complete(ctx, model.Request{
		Instructions: r.instructions(),
		Messages:     []core.Message{core.NewMessage(core.RoleUser, prompt)},
		JSONMode:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("routing completion failed: %w", err)
	}

	decision, err := parseDecision(resp.Text)
	if err != nil {
		return nil, fmt.Errorf("routing decision unparsable: %w", err)
	}

	r.normalize(decision)
	logging.LogRouteDecision(r.logger, decision.Agent, decision.Confidence, decision.RequiresCollaboration,
		"collaborators", strings.Join(decision.Collaborators, ","))
	return decision, nil
}

// instructions enumerates every known identity with its responsibility and
// pins down the decision object shape.
func (r *Router) instructions() string {
	var b strings.Builder
	b.WriteString("You route student requests to the specialized agent best suited to answer.\n")
	b.WriteString("Known agents:\n")
	for _, id := range r.registry.List() {
		fmt.Fprintf(&b, "- %s: %s\n", id.Name, id.Description)
	}
	b.WriteString("\nRespond with a JSON object of this exact shape:\n")
	b.WriteString(`{"agent": "<name>", "confidence": <0..1>, "reasoning": "<one sentence>", ` +
		`"requires_collaboration": <bool>, "collaborators": ["<name>", ...]}` + "\n")
	b.WriteString("Pick exactly one primary agent. Only list collaborators when the request genuinely spans ")
	b.WriteString("multiple responsibilities, and never list the primary agent as its own collaborator.")
	return b.String()
}

// parseDecision extracts the first JSON object from the completion text,
// tolerating code fences and surrounding prose.
func parseDecision(text string) (*Decision, error) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in %q", text)
	}
	var d Decision
	if err := json.Unmarshal([]byte(text[start:end+1]), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// normalize enforces the routing guarantees: the primary is always a known
// identity (general fallback for unknown or low-confidence picks) and
// collaborators are known, deduplicated and never the primary.
func (r *Router) normalize(d *Decision) {
	general := r.registry.General().Name
	if !r.registry.Has(d.Agent) || d.Confidence < r.minConfidence {
		if d.Agent != general {
			r.logger.Debug("router.fallback", "from", d.Agent, "to", general, "confidence", d.Confidence)
		}
		d.Agent = general
	}

	if !d.RequiresCollaboration {
		d.Collaborators = nil
		return
	}
	seen := map[string]bool{d.Agent: true}
	var collaborators []string
	for _, name := range d.Collaborators {
		if seen[name] || !r.registry.Has(name) {
			continue
		}
		seen[name] = true
		collaborators = append(collaborators, name)
	}
	d.Collaborators = collaborators
	if len(collaborators) == 0 {
		d.RequiresCollaboration = false
	}
}
