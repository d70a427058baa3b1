package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

type TasksRepository interface {
	Add(ctx context.Context, task PersistedTask) error
	GetCompleted(ctx context.Context, after time.Time) ([]PersistedTask, error)
}

type PersistedTask struct {
	ExecutedAt time.Time
	Name       string
}

const DIGEST_JOB_NAME = "daily digest"

// TasksController owns the cron scheduler. Executed jobs are persisted so
// that a restart on the same day does not resend the digest.
type TasksController struct {
	digest    Task
	tasksRepo TasksRepository
	loc       *time.Location
	jobs      []gocron.Job
}

func NewTasksController(digest Task, tasks TasksRepository, loc *time.Location) *TasksController {
	return &TasksController{
		digest:    digest,
		tasksRepo: tasks,
		loc:       loc,
	}
}

func (controller *TasksController) InitTasks(ctx context.Context) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(controller.loc))
	if err != nil {
		slog.Error(fmt.Errorf("failed to init cron scheduler: %w", err).Error())
		return
	}

	daily := gocron.CronJob("0 19 * * *", false)

	digestJob, err := scheduler.NewJob(daily, gocron.NewTask(func() { controller.digest.Run(ctx) }),
		gocron.WithName(DIGEST_JOB_NAME), gocron.WithContext(ctx),
		gocron.WithEventListeners(gocron.AfterJobRuns(func(jobID uuid.UUID, jobName string) {
			err := controller.tasksRepo.Add(ctx, PersistedTask{ExecutedAt: time.Now().In(controller.loc), Name: jobName})
			if err != nil {
				slog.Error("failed to persist executed task", "task", jobName, "err", err.Error())
			}
		})))
	if err != nil {
		slog.Error(fmt.Errorf("failed to init daily digest cron: %w", err).Error())
		return
	}
	controller.jobs = append(controller.jobs, digestJob)

	scheduler.Start()
	controller.TasksExec(ctx)
	<-ctx.Done()
	err = scheduler.Shutdown()
	if err != nil {
		slog.Error(fmt.Errorf("failed to shutdown cron scheduler: %w", err).Error())
	}
}

// TasksExec runs the jobs immediately at startup unless the task log shows
// they already ran today.
func (controller *TasksController) TasksExec(ctx context.Context) {
	now := time.Now().In(controller.loc)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, controller.loc)
	tasks, err := controller.tasksRepo.GetCompleted(ctx, startOfDay)
	if err != nil {
		slog.Error(fmt.Sprintf("failed to get completed tasks in tasks exec: %v", err))
	}
	ranToday := map[string]bool{}
	for _, task := range tasks {
		ranToday[task.Name] = true
	}
	for _, job := range controller.jobs {
		if ranToday[job.Name()] {
			continue
		}
		err := job.RunNow()
		if err != nil {
			slog.Error(fmt.Sprintf("failed to run task: %s, error: %v", job.Name(), err))
		}
	}
}
