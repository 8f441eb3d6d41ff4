// Package agent contains the step executor: the component that runs one
// "turn" for one agent identity. A turn assembles prompt context from the
// request bundle and the agent's bounded memory, requests a tool-enabled
// completion, executes any requested tools sequentially, requests a
// follow-up completion when tools ran, derives a short reasoning trace, and
// records the whole thing as a WorkflowStep on the shared workflow.
//
// The executor implements tool.Delegator, closing the mutual recursion with
// the tool layer: the call_agent tool re-enters ExecuteStep for the named
// collaborator, hop-bounded by the tool scope.
//
// Failure model: a completion error inside a step never propagates. The step
// is marked error with a short user-facing output and the error text as its
// reasoning, and execution continues so synthesis can work with whatever was
// gathered. Only an unknown agent id is a hard error, because it indicates a
// caller bug rather than a transient fault.
package agent
