package watcher

import (
	"context"
	"log/slog"
	"time"

	"github.com/ivkamenev/school_schedule_bot/src/entities"
	"github.com/ivkamenev/school_schedule_bot/src/schedule"
)

type ScheduleSource interface {
	ScheduleMap(ctx context.Context) (map[string]entities.ScheduleView, error)
	ExamsMap(ctx context.Context) (map[string]entities.ExamView, error)
}

type Subscribers interface {
	ListByGroup(ctx context.Context, group string) ([]int64, error)
}

type Sender interface {
	Dispatch(ctx context.Context, recipients []int64, text string) (sent, failed int)
}

// Watcher polls the sheet at a fixed interval and notifies a group's
// subscribers when the group's fingerprint changes. Only content deltas
// trigger a notification: the first observation of a group seeds its
// baseline silently, and a read failure leaves all baselines untouched.
type Watcher struct {
	source      ScheduleSource
	subscribers Subscribers
	sender      Sender

	groups   []string
	interval time.Duration
	loc      *time.Location

	lastDigest map[string]string
}

func NewWatcher(source ScheduleSource, subscribers Subscribers, sender Sender, groups []string, interval time.Duration, loc *time.Location) *Watcher {
	return &Watcher{
		source:      source,
		subscribers: subscribers,
		sender:      sender,
		groups:      groups,
		interval:    interval,
		loc:         loc,
		lastDigest:  map[string]string{},
	}
}

// Run blocks until ctx is cancelled. One poll cycle is ever in flight, so a
// group's comparison and digest update never interleave with another cycle.
func (watcher *Watcher) Run(ctx context.Context) {
	if err := watcher.seed(ctx); err != nil {
		slog.Warn("initial sheet read failed", "err", err.Error())
	}
	slog.Info("watcher started", "interval", watcher.interval.String())

	ticker := time.NewTicker(watcher.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("watcher stopped")
			return
		case <-ticker.C:
			if err := watcher.poll(ctx); err != nil {
				slog.Error("watch cycle failed", "err", err.Error())
			}
		}
	}
}

func (watcher *Watcher) seed(ctx context.Context) error {
	digests, err := watcher.digests(ctx)
	if err != nil {
		return err
	}
	watcher.lastDigest = digests
	return nil
}

func (watcher *Watcher) poll(ctx context.Context) error {
	digests, err := watcher.digests(ctx)
	if err != nil {
		return err
	}
	for _, group := range watcher.groups {
		current := digests[group]
		last, seeded := watcher.lastDigest[group]
		if !seeded {
			// A group added to the tracked set mid-run establishes its
			// baseline without announcing it.
			watcher.lastDigest[group] = current
			continue
		}
		if last == current {
			continue
		}
		watcher.lastDigest[group] = current
		watcher.notify(ctx, group)
	}
	return nil
}

func (watcher *Watcher) digests(ctx context.Context) (map[string]string, error) {
	scheduleMap, err := watcher.source.ScheduleMap(ctx)
	if err != nil {
		return nil, err
	}
	examsMap, err := watcher.source.ExamsMap(ctx)
	if err != nil {
		return nil, err
	}
	digests := make(map[string]string, len(watcher.groups))
	for _, group := range watcher.groups {
		digests[group] = schedule.Fingerprint(scheduleMap[group], examsMap[group])
	}
	return digests, nil
}

func (watcher *Watcher) notify(ctx context.Context, group string) {
	targets, err := watcher.subscribers.ListByGroup(ctx, group)
	if err != nil {
		slog.Error("failed to list subscribers for change alert", "group", group, "err", err.Error())
		return
	}
	if len(targets) == 0 {
		return
	}
	sent, failed := watcher.sender.Dispatch(ctx, targets, schedule.ChangeAlert(group, time.Now().In(watcher.loc)))
	slog.Info("change alert dispatched", "group", group, "sent", sent, "failed", failed)
}
