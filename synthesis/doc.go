// Package synthesis turns a finished workflow into the final answer and the
// derived summaries returned alongside it.
//
// The Synthesizer merges step outputs with one completion call, short
// circuiting to the single step's own text when only one agent ran. The
// extractors are pure folds over workflow state: citations from search-step
// outputs, agent-call records from delegations, and a per-call tool usage
// list. Running an extractor twice over the same workflow yields identical
// results.
package synthesis
