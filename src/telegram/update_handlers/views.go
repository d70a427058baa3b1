package update_handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/ivkamenev/school_schedule_bot/src/config"
	"github.com/ivkamenev/school_schedule_bot/src/schedule"
	"github.com/ivkamenev/school_schedule_bot/src/telegram/update_handlers/constants"
	datetime "github.com/ivkamenev/school_schedule_bot/src/utils/date_time"
)

// SchedulePresenter renders the schedule and exam views a user can request
// from the command list or the inline menu.
type SchedulePresenter struct {
	schedule *schedule.Service
	cfg      *config.Config
}

func NewSchedulePresenter(scheduleSrv *schedule.Service, cfg *config.Config) *SchedulePresenter {
	return &SchedulePresenter{schedule: scheduleSrv, cfg: cfg}
}

// RenderAction builds the reply text for one of the menu actions. The
// action names double as command names.
func (presenter *SchedulePresenter) RenderAction(ctx context.Context, action, group string) (string, error) {
	now := presenter.cfg.Now()
	switch action {
	case constants.TODAY_COMMAND:
		return presenter.dayText(ctx, group, now)
	case constants.TOMORROW_COMMAND:
		return presenter.dayText(ctx, group, now.AddDate(0, 0, 1))
	case constants.WEEK_COMMAND:
		return presenter.weekText(ctx, group, datetime.MondayOfWeek(now))
	case constants.NEXTWEEK_COMMAND:
		return presenter.weekText(ctx, group, datetime.MondayOfWeek(now).AddDate(0, 0, 7))
	case constants.EXAMS_COMMAND:
		return presenter.upcomingExamsText(ctx, group, now)
	case constants.EXAMS_WEEK_COMMAND:
		return presenter.weekExamsText(ctx, group, datetime.MondayOfWeek(now), "на неделю")
	case constants.EXAMS_NEXTWEEK_COMMAND:
		return presenter.weekExamsText(ctx, group, datetime.MondayOfWeek(now).AddDate(0, 0, 7), "на след. неделю")
	}
	return "", fmt.Errorf("unknown schedule action %s", action)
}

// DateText renders the schedule of the weekday a calendar date falls on.
func (presenter *SchedulePresenter) DateText(ctx context.Context, group string, day time.Time) (string, error) {
	return presenter.dayText(ctx, group, day)
}

func (presenter *SchedulePresenter) dayText(ctx context.Context, group string, day time.Time) (string, error) {
	scheduleMap, err := presenter.schedule.ScheduleMap(ctx)
	if err != nil {
		return "", err
	}
	return schedule.FormatDay(scheduleMap[group], day, "02.01.2006"), nil
}

func (presenter *SchedulePresenter) weekText(ctx context.Context, group string, monday time.Time) (string, error) {
	scheduleMap, err := presenter.schedule.ScheduleMap(ctx)
	if err != nil {
		return "", err
	}
	return schedule.FormatWeek(scheduleMap[group], monday), nil
}

func (presenter *SchedulePresenter) upcomingExamsText(ctx context.Context, group string, now time.Time) (string, error) {
	examsMap, err := presenter.schedule.ExamsMap(ctx)
	if err != nil {
		return "", err
	}
	start := now.Format(datetime.ISO_DATE_LAYOUT)
	end := now.AddDate(0, 0, constants.EXAMS_HORIZON_DAYS).Format(datetime.ISO_DATE_LAYOUT)
	exams := schedule.ExamsForRange(examsMap[group], start, end)
	title := fmt.Sprintf("📌 Контрольные (ближайшие), группа %s", group)
	return schedule.FormatExams(exams, title), nil
}

func (presenter *SchedulePresenter) weekExamsText(ctx context.Context, group string, monday time.Time, span string) (string, error) {
	examsMap, err := presenter.schedule.ExamsMap(ctx)
	if err != nil {
		return "", err
	}
	start := monday.Format(datetime.ISO_DATE_LAYOUT)
	end := monday.AddDate(0, 0, 6).Format(datetime.ISO_DATE_LAYOUT)
	exams := schedule.ExamsForRange(examsMap[group], start, end)
	title := fmt.Sprintf("📅 Контрольные %s (%s), группа %s", span, datetime.WeekRangeString(monday), group)
	return schedule.FormatExams(exams, title), nil
}
