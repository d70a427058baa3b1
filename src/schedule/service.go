package schedule

import (
	"context"
	"fmt"

	"github.com/ivkamenev/school_schedule_bot/src/entities"
	sheetsapi "github.com/ivkamenev/school_schedule_bot/src/google_docs/sheets_api"
)

// Service reads the schedule and exam sheets and aggregates them into
// per-group views. Holds no state between reads.
type Service struct {
	store         sheetsapi.RowStore
	scheduleSheet string
	examsSheet    string
	groups        []string
}

func NewService(store sheetsapi.RowStore, scheduleSheet, examsSheet string, groups []string) *Service {
	return &Service{
		store:         store,
		scheduleSheet: scheduleSheet,
		examsSheet:    examsSheet,
		groups:        groups,
	}
}

func (srv *Service) ScheduleMap(ctx context.Context) (map[string]entities.ScheduleView, error) {
	rows, err := srv.store.ReadAll(ctx, srv.scheduleSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule rows: %w", err)
	}
	return AggregateSchedule(rows, srv.groups), nil
}

func (srv *Service) ExamsMap(ctx context.Context) (map[string]entities.ExamView, error) {
	rows, err := srv.store.ReadAll(ctx, srv.examsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read exam rows: %w", err)
	}
	return AggregateExams(rows, srv.groups), nil
}

// RowCounts reports raw row counts of both sheets for the admin status view.
func (srv *Service) RowCounts(ctx context.Context) (scheduleRows, examRows int, err error) {
	schedule, err := srv.store.ReadAll(ctx, srv.scheduleSheet)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read schedule rows: %w", err)
	}
	exams, err := srv.store.ReadAll(ctx, srv.examsSheet)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read exam rows: %w", err)
	}
	return len(schedule), len(exams), nil
}
