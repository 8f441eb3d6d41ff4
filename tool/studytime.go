package tool

import (
	"context"
	"fmt"
	"math"

	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/internal/util"
)

// studyTimeTool maps a coarse complexity label to a base duration range,
// applies a task-type multiplier and returns an estimate plus a
// reading/practice/review split.
type studyTimeTool struct{}

type studyTimeArgs struct {
	Complexity string `json:"complexity" description:"low, medium or high"`
	TaskType   string `json:"task_type,omitempty" description:"reading, homework, essay, project or exam_prep"`
}

// base duration ranges in minutes per complexity label.
var complexityRanges = map[string][2]int{
	"low":    {30, 60},
	"medium": {60, 120},
	"high":   {120, 240},
}

// task-type multipliers: reading is faster, projects and essays slower,
// exam preparation slowest.
var taskMultipliers = map[string]float64{
	"reading":   0.8,
	"homework":  1.0,
	"essay":     1.4,
	"project":   1.5,
	"exam_prep": 1.6,
}

func (t *studyTimeTool) Name() string { return core.ToolCalculateStudyTime }

func (t *studyTimeTool) Description() string {
	return "Estimate how long a piece of study work will take, with a reading/practice/review split."
}

func (t *studyTimeTool) Parameters() map[string]any {
	return util.SchemaFromStruct(studyTimeArgs{})
}

func (t *studyTimeTool) Call(_ context.Context, _ *Scope, args map[string]any) (any, error) {
	var a studyTimeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	rng, ok := complexityRanges[a.Complexity]
	if !ok {
		return nil, fmt.Errorf("unknown complexity %q (expected low, medium or high)", a.Complexity)
	}
	mult, ok := taskMultipliers[a.TaskType]
	if !ok {
		mult = 1.0
	}

	low := int(math.Round(float64(rng[0]) * mult))
	high := int(math.Round(float64(rng[1]) * mult))
	estimate := (low + high) / 2

	return map[string]any{
		"estimated_minutes": estimate,
		"range_minutes":     [2]int{low, high},
		"split": map[string]int{
			"reading":  int(math.Round(float64(estimate) * 0.30)),
			"practice": int(math.Round(float64(estimate) * 0.45)),
			"review":   int(math.Round(float64(estimate) * 0.25)),
		},
	}, nil
}
