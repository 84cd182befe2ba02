package job

import (
	"context"
	"log/slog"
	"time"

	"socialdesk/internal/repository"
	"socialdesk/internal/service"
)

// dueGrace keeps the sweep from racing the delayed task queue: only
// posts overdue by more than this are picked up here.
const dueGrace = 5 * time.Minute

type SchedulerJob struct {
	pr        repository.PostRepository
	publisher service.PublisherService
}

func NewSchedulerJob(pr repository.PostRepository, publisher service.PublisherService) *SchedulerJob {
	return &SchedulerJob{
		pr:        pr,
		publisher: publisher,
	}
}

// PublishDue is the safety net for scheduled posts whose queue task was
// lost. It publishes everything still SCHEDULED past its time.
func (j *SchedulerJob) PublishDue() {
	ctx := context.Background()

	posts, err := j.pr.ListDue(ctx, time.Now().Add(-dueGrace))
	if err != nil {
		slog.Info(err.Error())
		return
	}

	for _, post := range posts {
		outcome, err := j.publisher.Publish(ctx, post)
		if err != nil {
			slog.Error("sweep publish failed", "post_id", post.ID, "error", err)
			continue
		}
		slog.Info("sweep published overdue post", "post_id", post.ID, "delivered", outcome.Delivered())
	}
}
