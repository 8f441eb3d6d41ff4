// Package tool implements the tool execution layer: a dispatch table mapping
// the closed set of tool names to handlers with schema-validated arguments
// and a hard failure boundary. Handlers read request-scoped context
// (materials, notes, calendar-like data) through a Scope; they perform no
// external I/O.
//
// The one exception to "no side effects beyond the return value" is
// call_agent, which recursively re-enters the agent executor through the
// Delegator interface, appending further steps to the same shared workflow.
// The recursion is bounded by the hop count threaded through every Scope so
// two agents configured to delegate to each other cannot loop forever.
//
// Failure policy: the orchestration must always get a core.ToolResult for a
// core.ToolCall it issued, never an error or a panic. The Executor converts
// unknown tools, malformed arguments, handler errors and recovered panics
// into ToolResult{Success: false}.
package tool
