// Package core defines the shared domain types threaded through every layer
// of StudyMesh: the orchestration request and its context bundle, conversation
// messages, tool calls and results, and the workflow timeline that records
// every step taken to answer one request.
//
// Design rules enforced here:
//   - Workflow steps are append-only and keep insertion order; a delegated
//     step always lands after the step that delegated to it.
//   - Once a workflow or step reaches a terminal status it never changes.
//   - ToolResult is the only way a tool outcome crosses a boundary; tool
//     failures are data, not panics or errors.
//
// Higher layers (router, agent, tool, synthesis) depend on this package and
// never on each other's internals, which keeps the mutual recursion between
// the agent executor and the tool layer an explicit, narrow interface.
package core
