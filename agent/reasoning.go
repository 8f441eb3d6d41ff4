package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/model"
	"github.com/studymesh/studymesh/registry"
)

const (
	maxReasoningSentences = 2
	reflectionThreshold   = 200
	taskLineLen           = 80
)

// causalMarkers flag sentences that already explain themselves. Matching is
// case-insensitive against the whole sentence.
var causalMarkers = []string{
	"because",
	"since",
	"therefore",
	"thus",
	"so that",
	"in order to",
	"this means",
	"which means",
}

// deriveReasoning builds the human-readable trace attached to a step. It
// prefers explanatory sentences already present in the output; when the
// output is too short to contain any, it asks the model for a one-line
// reflection. Tool activity is appended as one line per call.
func (e *Executor) deriveReasoning(ctx context.Context, identity registry.Identity, output string, calls []core.ToolCall) string {
	parts := reasoningSentences(output)

	if len(parts) == 0 && utf8.RuneCountInString(output) < reflectionThreshold {
		if line := e.reflect(ctx, identity, output); line != "" {
			parts = append(parts, line)
		}
	}
	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("Answered directly as the %s agent.", identity.Name))
	}

	for _, call := range calls {
		parts = append(parts, toolLine(call))
	}
	return strings.Join(parts, " ")
}

// reasoningSentences picks up to maxReasoningSentences sentences from text
// that carry a causal marker.
func reasoningSentences(text string) []string {
	var picked []string
	for _, sentence := range splitSentences(text) {
		lower := strings.ToLower(sentence)
		for _, marker := range causalMarkers {
			if strings.Contains(lower, marker) {
				picked = append(picked, sentence)
				break
			}
		}
		if len(picked) == maxReasoningSentences {
			break
		}
	}
	return picked
}

func splitSentences(text string) []string {
	var out []string
	start := 0
	runes := []rune(text)
	for i, r := range runes {
		if r == '.' || r == '!' || r == '?' {
			s := strings.TrimSpace(string(runes[start : i+1]))
			if utf8.RuneCountInString(s) > 3 {
				out = append(out, s)
			}
			start = i + 1
		}
	}
	if tail := strings.TrimSpace(string(runes[start:])); utf8.RuneCountInString(tail) > 3 {
		out = append(out, tail)
	}
	return out
}

// reflect asks the model for a one-sentence explanation of the answer.
// Failures degrade to an empty string; reasoning is best effort.
func (e *Executor) reflect(ctx context.Context, identity registry.Identity, output string) string {
	prompt := fmt.Sprintf("In one short sentence, explain the approach behind this answer:\n\n%s", output)
	resp, err := e.complete(ctx, model.Request{
		Instructions: identity.Instruction,
		Messages:     []core.Message{core.NewMessage(core.RoleUser, prompt)},
	})
	if err != nil {
		e.logger.Warn("reflection completion failed", "agent", identity.Name, "error", err)
		return ""
	}
	return strings.TrimSpace(resp.Text)
}

// toolLine renders one tool call for the reasoning trace. Delegations name
// the target agent and its task; other tools name the tool and its most
// telling argument.
func toolLine(call core.ToolCall) string {
	var args map[string]any
	_ = json.Unmarshal(call.Arguments, &args)

	if call.Tool == core.ToolCallAgent {
		agent, _ := args["agent"].(string)
		task, _ := args["task"].(string)
		return fmt.Sprintf("Delegated to %s: %s", agent, excerpt(task, taskLineLen))
	}

	for _, key := range []string{"query", "topic", "content", "title", "complexity"} {
		if v, ok := args[key].(string); ok && v != "" {
			return fmt.Sprintf("Used %s (%s %q).", call.Tool, key, excerpt(v, taskLineLen))
		}
	}
	return fmt.Sprintf("Used %s.", call.Tool)
}
