package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/internal/util"
	"github.com/studymesh/studymesh/logging"
	"github.com/studymesh/studymesh/model"
)

// DefaultMaxDelegationDepth bounds call_agent recursion when no override is
// given: a primary step may delegate, and that delegate may delegate twice
// more, before further hops are refused.
const DefaultMaxDelegationDepth = 3

// ExecutorOptions configures the tool executor.
type ExecutorOptions struct {
	// MaxDelegationDepth bounds recursive call_agent hops.
	MaxDelegationDepth int
	// Logger receives tool execution logs; defaults to NoOpLogger.
	Logger logging.Logger
	// ExtraTools are registered in addition to the built-in set and may
	// shadow built-ins by name (used by tests to inject failing handlers).
	ExtraTools []Tool
}

// Executor is the dispatch table for the closed tool set. Execute never
// returns an error: every failure mode becomes a ToolResult with
// Success=false so the orchestration always gets an answer for a call it
// issued.
type Executor struct {
	tools     map[string]Tool
	delegator Delegator
	maxHops   int
	logger    logging.Logger
}

// NewExecutor builds an executor with the built-in tools registered. The
// delegator backs the call_agent tool and may be nil, in which case
// delegation fails cleanly at call time.
func NewExecutor(delegator Delegator, optFns ...func(o *ExecutorOptions)) *Executor {
	opts := ExecutorOptions{
		MaxDelegationDepth: DefaultMaxDelegationDepth,
		Logger:             logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	e := &Executor{
		tools:     make(map[string]Tool),
		delegator: delegator,
		maxHops:   opts.MaxDelegationDepth,
		logger:    opts.Logger,
	}
	for _, t := range builtinTools() {
		e.tools[t.Name()] = t
	}
	for _, t := range opts.ExtraTools {
		e.tools[t.Name()] = t
	}
	return e
}

func builtinTools() []Tool {
	return []Tool{
		&searchMaterialsTool{},
		&searchNotesTool{},
		&studyTimeTool{},
		&calendarTool{},
		&createTaskTool{},
		&updateScheduleTool{},
		&flashcardsTool{},
		&resourcesTool{},
		&callAgentTool{},
	}
}

// Has reports whether a tool name is registered.
func (e *Executor) Has(name string) bool {
	_, ok := e.tools[name]
	return ok
}

// Definitions renders the registered tools named in allowed as model-facing
// tool definitions, preserving the allow-list order. Unknown names are
// skipped.
func (e *Executor) Definitions(allowed []string) []model.ToolDefinition {
	defs := make([]model.ToolDefinition, 0, len(allowed))
	for _, name := range allowed {
		t, ok := e.tools[name]
		if !ok {
			continue
		}
		defs = append(defs, model.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return defs
}

// Execute dispatches one tool call. The scope gains this executor's
// delegation wiring so nested call_agent hops share the same budget.
func (e *Executor) Execute(ctx context.Context, call core.ToolCall, sc *Scope) core.ToolResult {
	sc.delegator = e.delegator
	sc.maxHops = e.maxHops
	if sc.Logger == nil {
		sc.Logger = e.logger
	}

	start := time.Now()
	result, err := e.run(ctx, call, sc)
	logging.LogToolCall(e.logger, call.Tool, time.Since(start), err == nil, err, "call_id", call.ID)
	if err != nil {
		return core.ToolResult{CallID: call.ID, Tool: call.Tool, Success: false, Error: err.Error()}
	}
	return core.ToolResult{CallID: call.ID, Tool: call.Tool, Content: result, Success: true}
}

func (e *Executor) run(ctx context.Context, call core.ToolCall, sc *Scope) (result any, err error) {
	impl, ok := e.tools[call.Tool]
	if !ok {
		return nil, NewToolError(call.Tool, "tool not found", CodeUnknownTool)
	}

	args := map[string]any{}
	if len(call.Arguments) > 0 {
		if jsonErr := json.Unmarshal(call.Arguments, &args); jsonErr != nil {
			return nil, &ToolError{
				Tool:    call.Tool,
				Message: fmt.Sprintf("malformed arguments: %v", jsonErr),
				Code:    CodeValidation,
			}
		}
	}

	if vErr := util.ValidateParameters(args, impl.Parameters()); vErr != nil {
		return nil, &ToolError{
			Tool:    call.Tool,
			Message: fmt.Sprintf("parameter validation failed: %v", vErr),
			Code:    CodeValidation,
			Details: vErr,
		}
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("tool.call.panic", "tool", call.Tool, "recover", r, "stack", string(debug.Stack()))
			result = nil
			err = &ToolError{Tool: call.Tool, Message: fmt.Sprintf("panic: %v", r), Code: CodeExecution}
		}
	}()

	result, err = impl.Call(ctx, sc, args)
	if err != nil {
		if _, ok := err.(*ToolError); ok {
			return nil, err
		}
		return nil, &ToolError{Tool: call.Tool, Message: err.Error(), Code: CodeExecution}
	}
	return result, nil
}
