package synthesis

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/logging"
	"github.com/studymesh/studymesh/model"
	"github.com/studymesh/studymesh/router"
)

// PassthroughMinRunes is the minimum output length for the single-step short
// circuit. Shorter outputs still go through a merge completion so the final
// answer addresses the prompt properly.
const PassthroughMinRunes = 100

const mergeInstructions = `You combine the findings of several study assistants into one final answer.
Merge the labeled sections into a single coherent response that directly addresses the student's original question.
Remove redundancy, keep every concrete recommendation, and order the material logically.
Do not mention the assistants or the merging process.`

// Options configures a Synthesizer.
type Options struct {
	Logger logging.Logger
}

// Synthesizer produces the final answer text from a finished workflow.
type Synthesizer struct {
	llm    model.Model
	logger logging.Logger
}

// New constructs a Synthesizer over a completion model.
func New(llm model.Model, optFns ...func(o *Options)) *Synthesizer {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Synthesizer{llm: llm, logger: opts.Logger}
}

// Synthesize merges the workflow's agent step outputs into one answer. With
// exactly one agent step whose output is long enough, that output is
// returned verbatim. Errors from the merge completion propagate; there is no
// local recovery at this stage.
func (s *Synthesizer) Synthesize(ctx context.Context, wf *core.Workflow, prompt string) (string, error) {
	steps := agentSteps(wf)
	if len(steps) == 0 {
		return "", fmt.Errorf("synthesis: workflow %s has no agent steps", wf.ID)
	}

	if len(steps) == 1 && utf8.RuneCountInString(steps[0].Output) >= PassthroughMinRunes {
		s.logger.Debug("synthesis passthrough", "workflow_id", wf.ID, "agent", steps[0].Agent)
		return steps[0].Output, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Original question: %s\n", prompt)
	for _, step := range steps {
		fmt.Fprintf(&b, "\n## %s\n%s\n", step.Agent, step.Output)
	}

	resp, err := s.llm.Complete(ctx, model.Request{
		Instructions: mergeInstructions,
		Messages:     []core.Message{core.NewMessage(core.RoleUser, b.String())},
	})
	if err != nil {
		return "", fmt.Errorf("synthesis: merge completion: %w", err)
	}
	s.logger.Debug("synthesis merged", "workflow_id", wf.ID, "steps", len(steps))
	return resp.Text, nil
}

// agentSteps returns the workflow's steps minus the routing step, keeping
// only those that produced output.
func agentSteps(wf *core.Workflow) []*core.WorkflowStep {
	var out []*core.WorkflowStep
	for _, step := range wf.Snapshot() {
		if step.Action == router.StepAction {
			continue
		}
		if step.Output == "" {
			continue
		}
		out = append(out, step)
	}
	return out
}
