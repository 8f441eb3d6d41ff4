package tool

import (
	"context"
	"sort"
	"time"

	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/internal/util"
)

const calendarDefaultLimit = 5

// calendarTool filters the supplied assignments and exams down to upcoming
// entries, soonest first.
type calendarTool struct{}

type calendarArgs struct {
	Days  *int `json:"days,omitempty" description:"Only include entries due within this many days"`
	Limit *int `json:"limit,omitempty" description:"Maximum number of entries"`
}

// CalendarEntry is one upcoming deadline.
type CalendarEntry struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Kind  string    `json:"kind"` // assignment or exam
	Date  time.Time `json:"date"`
}

func (t *calendarTool) Name() string { return core.ToolCheckCalendar }

func (t *calendarTool) Description() string {
	return "List the student's upcoming assignment deadlines and exam dates, soonest first."
}

func (t *calendarTool) Parameters() map[string]any {
	return util.SchemaFromStruct(calendarArgs{})
}

func (t *calendarTool) Call(_ context.Context, sc *Scope, args map[string]any) (any, error) {
	var a calendarArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	now := time.Now()
	var horizon time.Time
	if a.Days != nil && *a.Days > 0 {
		horizon = now.AddDate(0, 0, *a.Days)
	}

	var entries []CalendarEntry
	for _, as := range sc.Request.Assignments {
		if as.DueDate.After(now) && (horizon.IsZero() || as.DueDate.Before(horizon)) {
			entries = append(entries, CalendarEntry{ID: as.ID, Title: as.Title, Kind: "assignment", Date: as.DueDate})
		}
	}
	for _, ex := range sc.Request.Exams {
		if ex.Date.After(now) && (horizon.IsZero() || ex.Date.Before(horizon)) {
			entries = append(entries, CalendarEntry{ID: ex.ID, Title: ex.Title, Kind: "exam", Date: ex.Date})
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })

	limit := calendarDefaultLimit
	if a.Limit != nil && *a.Limit > 0 {
		limit = *a.Limit
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
