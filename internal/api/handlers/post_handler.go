package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"

	"socialdesk/internal/models"
	"socialdesk/internal/queue"
	"socialdesk/internal/service"
	"socialdesk/internal/transfer"
)

type PostHandler struct {
	s           service.PostService
	publisher   service.PublisherService
	AsynqClient *asynq.Client
}

func NewPostHandler(s service.PostService, publisher service.PublisherService, asynqClient *asynq.Client) *PostHandler {
	return &PostHandler{s: s, publisher: publisher, AsynqClient: asynqClient}
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	actor := GetActor(c)

	var req transfer.PostCreation
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	post, err := h.s.Create(c.Context(), actor, &req)
	if err != nil {
		return HandleError(c, err)
	}

	if post.Status == models.PostStatusScheduled && post.ScheduledAt != nil {
		h.enqueue(post)
	}

	if req.PublishNow && post.Status == models.PostStatusDraft {
		outcome, err := h.publisher.Publish(c.Context(), post)
		if err != nil {
			return HandleError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"post":            post,
			"publish_outcome": outcome,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"post": post,
	})
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	actor := GetActor(c)
	clientID := int64(c.QueryInt("client_id", 0))
	status := c.Query("status")

	posts, err := h.s.List(c.Context(), actor, clientID, status)
	if err != nil {
		return HandleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"posts": posts,
	})
}

func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	actor := GetActor(c)
	postID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post id",
		})
	}

	detail, err := h.s.Info(c.Context(), actor, int64(postID))
	if err != nil {
		return HandleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(detail)
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	actor := GetActor(c)
	postID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post id",
		})
	}

	var patch transfer.PostUpdate
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	post, err := h.s.Update(c.Context(), actor, int64(postID), &patch)
	if err != nil {
		return HandleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"post": post,
	})
}

func (h *PostHandler) DeletePost(c *fiber.Ctx) error {
	actor := GetActor(c)
	postID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post id",
		})
	}

	if err := h.s.Remove(c.Context(), actor, int64(postID)); err != nil {
		return HandleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post deleted",
	})
}

// ApprovePost moves a pending post forward. Approved posts with a
// schedule are handed to the delayed queue; the rest go out now.
func (h *PostHandler) ApprovePost(c *fiber.Ctx) error {
	actor := GetActor(c)
	postID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post id",
		})
	}

	post, err := h.s.Approve(c.Context(), actor, int64(postID))
	if err != nil {
		return HandleError(c, err)
	}

	if post.ScheduledAt != nil && post.ScheduledAt.After(time.Now()) {
		h.enqueue(post)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"post": post,
		})
	}

	outcome, err := h.publisher.Publish(c.Context(), post)
	if err != nil {
		return HandleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"post":            post,
		"publish_outcome": outcome,
	})
}

func (h *PostHandler) RejectPost(c *fiber.Ctx) error {
	actor := GetActor(c)
	postID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post id",
		})
	}

	var req transfer.RejectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	post, err := h.s.Reject(c.Context(), actor, int64(postID), req.Reason)
	if err != nil {
		return HandleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"post": post,
	})
}

func (h *PostHandler) PublishPost(c *fiber.Ctx) error {
	actor := GetActor(c)
	postID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post id",
		})
	}

	post, err := h.s.ForPublish(c.Context(), actor, int64(postID))
	if err != nil {
		return HandleError(c, err)
	}

	outcome, err := h.publisher.Publish(c.Context(), post)
	if err != nil {
		return HandleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"post":            post,
		"publish_outcome": outcome,
	})
}

// enqueue schedules the delayed publish task. Failures are logged
// only; the cron sweep picks up anything the queue missed.
func (h *PostHandler) enqueue(post *models.Post) {
	delay := time.Until(*post.ScheduledAt)
	if delay < 0 {
		delay = 0
	}
	if err := queue.EnqueuePost(h.AsynqClient, queue.PublishPostPayload{PostID: post.ID}, delay); err != nil {
		slog.Error("failed to enqueue publish task", "post_id", post.ID, "error", err)
	}
}
