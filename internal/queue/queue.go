package queue

import (
	"socialdesk/internal/repository"
	"socialdesk/internal/service"
)

const TaskTypePublishPost = "publish:post"

type PublishPostPayload struct {
	PostID int64 `json:"post_id"`
}

type Worker struct {
	pr        repository.PostRepository
	publisher service.PublisherService
}

func NewWorker(pr repository.PostRepository, publisher service.PublisherService) *Worker {
	return &Worker{
		pr:        pr,
		publisher: publisher,
	}
}
