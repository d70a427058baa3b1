package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ivkamenev/school_schedule_bot/src/entities"
	"github.com/ivkamenev/school_schedule_bot/src/schedule"
)

type Task interface {
	Run(context.Context)
}

type ScheduleSourceDigest interface {
	ScheduleMap(ctx context.Context) (map[string]entities.ScheduleView, error)
}

type SubscribersDigest interface {
	ListByGroup(ctx context.Context, group string) ([]int64, error)
}

type SenderDigest interface {
	Dispatch(ctx context.Context, recipients []int64, text string) (sent, failed int)
}

var _ Task = (*DigestTask)(nil)

// DigestTask sends every subscriber tomorrow's lessons for their group.
type DigestTask struct {
	source      ScheduleSourceDigest
	subscribers SubscribersDigest
	sender      SenderDigest
	groups      []string
	loc         *time.Location
}

func NewDigestTask(source ScheduleSourceDigest, subscribers SubscribersDigest, sender SenderDigest, groups []string, loc *time.Location) *DigestTask {
	return &DigestTask{source: source, subscribers: subscribers, sender: sender, groups: groups, loc: loc}
}

func (task *DigestTask) Run(ctx context.Context) {
	scheduleMap, err := task.source.ScheduleMap(ctx)
	if err != nil {
		slog.Error(fmt.Errorf("failed to read schedule for daily digest: %w", err).Error())
		return
	}
	tomorrow := time.Now().In(task.loc).AddDate(0, 0, 1)
	for _, group := range task.groups {
		targets, err := task.subscribers.ListByGroup(ctx, group)
		if err != nil {
			slog.Error(fmt.Errorf("failed to list subscribers of group %s for daily digest: %w", group, err).Error())
			continue
		}
		if len(targets) == 0 {
			continue
		}
		text := fmt.Sprintf("📅 Расписание на завтра, группа %s\n%s",
			group, schedule.FormatDay(scheduleMap[group], tomorrow, "02.01.2006"))
		sent, failed := task.sender.Dispatch(ctx, targets, text)
		slog.Info("daily digest dispatched", "group", group, "sent", sent, "failed", failed)
	}
}
