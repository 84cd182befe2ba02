package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"socialdesk/internal/models"
)

// HandlePublishPostTask delivers a scheduled post when its task fires.
// Posts that were rejected or deleted in the meantime are skipped
// without retry; a delivery error is returned so asynq retries it.
func (w *Worker) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	post, err := w.pr.GetByID(ctx, payload.PostID)
	if err != nil {
		return err
	}
	if post == nil {
		slog.Info("scheduled post no longer exists", "post_id", payload.PostID)
		return nil
	}

	switch post.Status {
	case models.PostStatusScheduled, models.PostStatusApproved:
	default:
		slog.Info("skipping publish, post not in a publishable state",
			"post_id", post.ID, "status", post.Status)
		return nil
	}

	if _, err := w.publisher.Publish(ctx, post); err != nil {
		return err
	}
	return nil
}
