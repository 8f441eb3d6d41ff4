package agent

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/logging"
	"github.com/studymesh/studymesh/memory"
	"github.com/studymesh/studymesh/model"
	"github.com/studymesh/studymesh/registry"
	"github.com/studymesh/studymesh/tool"
)

const (
	// DefaultHistoryLimit is how many memory messages are replayed into a
	// turn's prompt. It is smaller than the memory window so long
	// conversations do not crowd out the request context.
	DefaultHistoryLimit = 6

	contextExcerptLen   = 160
	prevOutputLen       = 300
	maxContextSummaries = 3

	errorOutput = "I ran into a problem while working on this. Please try again in a moment."
)

// Options configures an Executor.
type Options struct {
	// HistoryLimit caps the number of remembered messages included in a
	// turn's prompt.
	HistoryLimit int

	// MaxDelegationDepth bounds call_agent recursion. Zero means
	// tool.DefaultMaxDelegationDepth.
	MaxDelegationDepth int

	// Logger receives execution events. Defaults to logging.NoOpLogger.
	Logger logging.Logger

	// ExtraTools are registered in addition to the built-in tools and may
	// shadow them.
	ExtraTools []tool.Tool
}

// Executor runs single agent turns against a model, a registry of agent
// identities and a shared memory store.
type Executor struct {
	registry     *registry.Registry
	llm          model.Model
	memory       memory.Store
	tools        *tool.Executor
	historyLimit int
	logger       logging.Logger
}

// NewExecutor creates an Executor. It builds its own tool executor and wires
// itself in as the delegation target for call_agent.
func NewExecutor(reg *registry.Registry, llm model.Model, mem memory.Store, optFns ...func(o *Options)) *Executor {
	opts := Options{
		HistoryLimit:       DefaultHistoryLimit,
		MaxDelegationDepth: tool.DefaultMaxDelegationDepth,
		Logger:             logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = DefaultHistoryLimit
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	e := &Executor{
		registry:     reg,
		llm:          llm,
		memory:       mem,
		historyLimit: opts.HistoryLimit,
		logger:       opts.Logger,
	}
	e.tools = tool.NewExecutor(e, func(o *tool.ExecutorOptions) {
		o.MaxDelegationDepth = opts.MaxDelegationDepth
		o.Logger = opts.Logger
		o.ExtraTools = opts.ExtraTools
	})
	return e
}

// Tools exposes the underlying tool executor, mainly so callers can check
// tool availability.
func (e *Executor) Tools() *tool.Executor {
	return e.tools
}

// ExecuteStep runs one turn for the named agent and records it on the
// workflow. prevOutput carries the preceding step's text when agents are
// chained; pass "" for the first step.
//
// The returned error is non-nil only for an unknown agent. Completion and
// tool failures are absorbed into the step, which comes back with an error
// status.
func (e *Executor) ExecuteStep(ctx context.Context, agentName, prompt string, req *core.Request, wf *core.Workflow, prevOutput string) (*core.WorkflowStep, error) {
	sc := tool.NewScope(req, wf, e.logger)
	sc.PrevOutput = prevOutput
	return e.run(ctx, agentName, prompt, sc)
}

// Delegate implements tool.Delegator. The tool layer has already advanced
// the hop count on the scope it hands us.
func (e *Executor) Delegate(ctx context.Context, agentName, task string, sc *tool.Scope) (*core.WorkflowStep, error) {
	return e.run(ctx, agentName, task, sc)
}

func (e *Executor) run(ctx context.Context, agentName, prompt string, sc *tool.Scope) (*core.WorkflowStep, error) {
	identity, ok := e.registry.Get(agentName)
	if !ok {
		return nil, fmt.Errorf("agent: unknown agent %q", agentName)
	}

	step := sc.Workflow.BeginStep(agentName, "respond", prompt)
	e.logger.Info("agent step started", "agent", agentName, "step_id", step.ID, "hop", sc.Hop)

	userID := ""
	if sc.Request != nil {
		userID = sc.Request.UserID
	}

	history, err := e.memory.History(userID, agentName, e.historyLimit)
	if err != nil {
		e.logger.Warn("memory history unavailable", "agent", agentName, "error", err)
		history = nil
	}

	userText := prompt
	if block := buildContext(sc.Request, sc.PrevOutput); block != "" {
		userText = prompt + "\n\n" + block
	}

	messages := make([]core.Message, 0, len(history)+3)
	messages = append(messages, history...)
	messages = append(messages, core.NewMessage(core.RoleUser, userText))

	resp, err := e.complete(ctx, model.Request{
		Instructions: identity.Instruction,
		Messages:     messages,
		Tools:        e.tools.Definitions(identity.Tools),
	})
	if err != nil {
		e.failStep(step, agentName, err)
		return step, nil
	}

	output := resp.Text
	toolCalls := resp.ToolCalls

	if len(toolCalls) > 0 {
		assistant := core.NewMessage(core.RoleAssistant, resp.Text)
		assistant.ToolCalls = toolCalls
		toolMsg := core.Message{Role: core.RoleTool, Timestamp: assistant.Timestamp}

		for _, call := range toolCalls {
			step.RecordToolCall(call)
			toolMsg.ToolResults = append(toolMsg.ToolResults, e.dispatch(ctx, identity, call, sc))
		}
		messages = append(messages, assistant, toolMsg)

		followUp, err := e.complete(ctx, model.Request{
			Instructions: identity.Instruction,
			Messages:     messages,
		})
		if err != nil {
			e.failStep(step, agentName, err)
			return step, nil
		}
		output = followUp.Text
	}

	step.Reasoning = e.deriveReasoning(ctx, identity, output, toolCalls)

	remember := core.NewMessage(core.RoleAssistant, output)
	remember.ToolCalls = toolCalls
	if err := e.memory.Append(userID, agentName, core.NewMessage(core.RoleUser, prompt), remember); err != nil {
		e.logger.Warn("memory append failed", "agent", agentName, "error", err)
	}

	step.Complete(output)
	e.logger.Info("agent step completed", "agent", agentName, "step_id", step.ID, "tool_calls", len(toolCalls))
	return step, nil
}

// complete issues one model completion, recording its latency and outcome.
func (e *Executor) complete(ctx context.Context, req model.Request) (*model.Response, error) {
	start := time.Now()
	resp, err := e.llm.Complete(ctx, req)
	logging.LogLLMCall(e.logger, e.llm.Info().Name, time.Since(start), err == nil, err)
	return resp, err
}

// dispatch runs one tool call after checking it against the agent's
// allow-list. The model only sees allowed tools, but nothing stops it from
// naming others, so calls outside the list are refused without executing.
func (e *Executor) dispatch(ctx context.Context, identity registry.Identity, call core.ToolCall, sc *tool.Scope) core.ToolResult {
	if !identity.AllowsTool(call.Tool) {
		err := tool.NewToolError(call.Tool, fmt.Sprintf("not available to agent %q", identity.Name), tool.CodeValidation)
		e.logger.Warn("tool call refused", "agent", identity.Name, "tool", call.Tool, "call_id", call.ID)
		return core.ToolResult{CallID: call.ID, Tool: call.Tool, Success: false, Error: err.Error()}
	}
	return e.tools.Execute(ctx, call, sc)
}

func (e *Executor) failStep(step *core.WorkflowStep, agentName string, err error) {
	e.logger.Error("agent step failed", "agent", agentName, "step_id", step.ID, "error", err)
	step.Fail(errorOutput, err.Error())
}

// buildContext renders the request bundle and any preceding step output into
// a labeled prompt block. Empty bundles produce an empty string.
func buildContext(req *core.Request, prevOutput string) string {
	var b strings.Builder

	if req != nil && len(req.Materials) > 0 {
		b.WriteString("Course materials:\n")
		for i, m := range req.Materials {
			if i == maxContextSummaries {
				break
			}
			fmt.Fprintf(&b, "- [%s] %s: %s\n", m.ID, m.Title, excerpt(m.Content, contextExcerptLen))
		}
	}
	if req != nil && len(req.Notes) > 0 {
		b.WriteString("Student notes:\n")
		for i, n := range req.Notes {
			if i == maxContextSummaries {
				break
			}
			fmt.Fprintf(&b, "- [%s] %s: %s\n", n.ID, n.Title, excerpt(n.Content, contextExcerptLen))
		}
	}
	if req != nil && len(req.Assignments) > 0 {
		b.WriteString("Upcoming assignments:\n")
		for i, a := range req.Assignments {
			if i == maxContextSummaries {
				break
			}
			fmt.Fprintf(&b, "- [%s] %s (due %s)\n", a.ID, a.Title, a.DueDate.Format("2006-01-02"))
		}
	}
	if req != nil && len(req.Exams) > 0 {
		b.WriteString("Upcoming exams:\n")
		for i, x := range req.Exams {
			if i == maxContextSummaries {
				break
			}
			fmt.Fprintf(&b, "- [%s] %s (%s)\n", x.ID, x.Title, x.Date.Format("2006-01-02"))
		}
	}
	if prevOutput != "" {
		fmt.Fprintf(&b, "Result from the previous step: %s\n", excerpt(prevOutput, prevOutputLen))
	}
	return strings.TrimRight(b.String(), "\n")
}

func excerpt(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:limit]), " ") + "..."
}
