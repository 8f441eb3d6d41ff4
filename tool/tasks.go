package tool

import (
	"context"
	"time"

	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/internal/util"
)

// createTaskTool and updateScheduleTool are acknowledgement stubs: the
// orchestrator has no write access to the application's task and schedule
// stores, so both return a queued payload the UI layer can act on.

type createTaskTool struct{}

type createTaskArgs struct {
	Title   string `json:"title" description:"Task title"`
	DueDate string `json:"due_date,omitempty" description:"Due date, ISO 8601"`
	Notes   string `json:"notes,omitempty" description:"Free-form details"`
}

func (t *createTaskTool) Name() string { return core.ToolCreateTask }

func (t *createTaskTool) Description() string {
	return "Queue creation of a study task for the student. The task is created by the application, not this tool."
}

func (t *createTaskTool) Parameters() map[string]any {
	return util.SchemaFromStruct(createTaskArgs{})
}

func (t *createTaskTool) Call(_ context.Context, _ *Scope, args map[string]any) (any, error) {
	var a createTaskArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return map[string]any{
		"status":    "queued",
		"task_id":   core.NewID(),
		"title":     a.Title,
		"due_date":  a.DueDate,
		"queued_at": time.Now().UTC(),
	}, nil
}

type updateScheduleTool struct{}

type updateScheduleArgs struct {
	Change string `json:"change" description:"Description of the schedule change"`
}

func (t *updateScheduleTool) Name() string { return core.ToolUpdateSchedule }

func (t *updateScheduleTool) Description() string {
	return "Queue a change to the student's study schedule. The change is applied by the application, not this tool."
}

func (t *updateScheduleTool) Parameters() map[string]any {
	return util.SchemaFromStruct(updateScheduleArgs{})
}

func (t *updateScheduleTool) Call(_ context.Context, _ *Scope, args map[string]any) (any, error) {
	var a updateScheduleArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return map[string]any{
		"status":    "queued",
		"change":    a.Change,
		"queued_at": time.Now().UTC(),
	}, nil
}
