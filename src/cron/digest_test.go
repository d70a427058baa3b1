package cron

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ivkamenev/school_schedule_bot/src/entities"
)

type fakeDigestSource struct {
	schedule map[string]entities.ScheduleView
}

func (source *fakeDigestSource) ScheduleMap(ctx context.Context) (map[string]entities.ScheduleView, error) {
	return source.schedule, nil
}

type fakeDigestSubscribers struct {
	byGroup map[string][]int64
}

func (subs *fakeDigestSubscribers) ListByGroup(ctx context.Context, group string) ([]int64, error) {
	return subs.byGroup[group], nil
}

type fakeDigestSender struct {
	texts []string
}

func (sender *fakeDigestSender) Dispatch(ctx context.Context, recipients []int64, text string) (sent, failed int) {
	sender.texts = append(sender.texts, text)
	return len(recipients), 0
}

func TestDigestSkipsGroupsWithoutSubscribers(t *testing.T) {
	source := &fakeDigestSource{schedule: map[string]entities.ScheduleView{}}
	subs := &fakeDigestSubscribers{byGroup: map[string][]int64{"10": {101}}}
	sender := &fakeDigestSender{}
	task := NewDigestTask(source, subs, sender, []string{"10", "11"}, time.UTC)

	task.Run(context.Background())

	if len(sender.texts) != 1 {
		t.Fatalf("dispatched %d digests, want 1", len(sender.texts))
	}
	if !strings.Contains(sender.texts[0], "группа 10") {
		t.Errorf("digest text = %q", sender.texts[0])
	}
}
