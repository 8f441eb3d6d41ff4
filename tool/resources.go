package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/internal/util"
)

// resourcesTool suggests external learning resources for a topic. It
// performs no network I/O: suggestions are deterministic templates the
// student can search for, which keeps the tool layer side-effect free.
type resourcesTool struct{}

type resourcesArgs struct {
	Topic string `json:"topic" description:"Topic to find resources for"`
	Level string `json:"level,omitempty" description:"beginner, intermediate or advanced"`
}

// Resource is one suggested external learning resource.
type Resource struct {
	Title string `json:"title"`
	Kind  string `json:"kind"`
	Why   string `json:"why"`
}

func (t *resourcesTool) Name() string { return core.ToolFindResources }

func (t *resourcesTool) Description() string {
	return "Suggest external learning resources (videos, courses, practice sets) for a topic."
}

func (t *resourcesTool) Parameters() map[string]any {
	return util.SchemaFromStruct(resourcesArgs{})
}

func (t *resourcesTool) Call(_ context.Context, _ *Scope, args map[string]any) (any, error) {
	var a resourcesArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	topic := strings.TrimSpace(a.Topic)
	if topic == "" {
		return nil, fmt.Errorf("topic must not be empty")
	}

	resources := []Resource{
		{
			Title: fmt.Sprintf("Khan Academy: %s", topic),
			Kind:  "video course",
			Why:   "Short guided videos with practice checkpoints, good for a first pass.",
		},
		{
			Title: fmt.Sprintf("MIT OpenCourseWare lectures on %s", topic),
			Kind:  "lecture series",
			Why:   "Full university lectures with problem sets and solutions.",
		},
		{
			Title: fmt.Sprintf("Practice problem sets for %s", topic),
			Kind:  "practice",
			Why:   "Active recall beats rereading; work problems before checking answers.",
		},
	}
	if strings.EqualFold(a.Level, "advanced") {
		resources = append(resources, Resource{
			Title: fmt.Sprintf("Survey papers and textbooks on %s", topic),
			Kind:  "reading",
			Why:   "Primary sources once the fundamentals are solid.",
		})
	}
	return resources, nil
}
