package service

import (
	"context"
	"strings"
	"time"

	"socialdesk/internal/models"
	"socialdesk/internal/repository"
	"socialdesk/internal/transfer"
	"socialdesk/pkg/apperrors"
)

type PostService interface {
	Create(ctx context.Context, actor transfer.Actor, pc *transfer.PostCreation) (*models.Post, error)
	List(ctx context.Context, actor transfer.Actor, clientID int64, status string) ([]*models.Post, error)
	Info(ctx context.Context, actor transfer.Actor, postID int64) (*transfer.PostDetail, error)
	Update(ctx context.Context, actor transfer.Actor, postID int64, patch *transfer.PostUpdate) (*models.Post, error)
	Approve(ctx context.Context, actor transfer.Actor, postID int64) (*models.Post, error)
	Reject(ctx context.Context, actor transfer.Actor, postID int64, reason string) (*models.Post, error)
	Remove(ctx context.Context, actor transfer.Actor, postID int64) error
	ForPublish(ctx context.Context, actor transfer.Actor, postID int64) (*models.Post, error)
}

type postService struct {
	access AccessService
	pr     repository.PostRepository
	cr     repository.ClientRepository
	ph     repository.PostingHistoryRepository
}

func NewPostService(
	access AccessService,
	pr repository.PostRepository,
	cr repository.ClientRepository,
	ph repository.PostingHistoryRepository) PostService {
	return &postService{
		access: access,
		pr:     pr,
		cr:     cr,
		ph:     ph,
	}
}

// Create validates the request, resolves the initial status from the
// schedule and the actor's role, and stores the post. Fan-out for
// immediate publishing is the caller's next step, not Create's.
func (s *postService) Create(ctx context.Context, actor transfer.Actor, pc *transfer.PostCreation) (*models.Post, error) {
	if err := s.access.Authorize(ctx, actor, OpCreatePost, pc.ClientID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(pc.Content) == "" {
		return nil, apperrors.New(apperrors.InvalidArgument, "content cannot be empty")
	}
	if !models.ValidMediaType(pc.MediaType) {
		return nil, apperrors.Newf(apperrors.InvalidArgument, "unknown media type %q", pc.MediaType)
	}
	for _, platform := range pc.Platforms {
		if !models.ValidPlatform(platform) {
			return nil, apperrors.Newf(apperrors.InvalidArgument, "unknown platform %q", platform)
		}
	}

	client, err := s.cr.GetByID(ctx, pc.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperrors.New(apperrors.NotFound, "client not found")
	}

	var scheduledAt *time.Time
	if pc.ScheduledAt != "" {
		t, err := time.Parse(time.RFC3339, pc.ScheduledAt)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.InvalidArgument, "invalid scheduled time", err)
		}
		scheduledAt = &t
	}

	status := models.PostStatusDraft
	if scheduledAt != nil {
		if actor.Role == models.RoleSuperAdmin {
			status = models.PostStatusScheduled
		} else {
			status = models.PostStatusPendingApproval
		}
	}

	post := &models.Post{
		ClientID:    pc.ClientID,
		CreatorID:   actor.UserID,
		Content:     pc.Content,
		MediaURLs:   pc.MediaURLs,
		MediaType:   pc.MediaType,
		Platforms:   pc.Platforms,
		Status:      status,
		ScheduledAt: scheduledAt,
	}

	id, err := s.pr.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	return s.pr.GetByID(ctx, id)
}

func (s *postService) List(ctx context.Context, actor transfer.Actor, clientID int64, status string) ([]*models.Post, error) {
	if err := s.access.Authorize(ctx, actor, OpListPosts, clientID); err != nil {
		return nil, err
	}
	if status != "" && !models.ValidStatus(status) {
		return nil, apperrors.Newf(apperrors.InvalidArgument, "unknown status %q", status)
	}
	return s.pr.List(ctx, clientID, status)
}

// fetchAuthorized loads a post and gates it behind the actor's access.
// Actors who cannot read the client's content get the same "post not
// found" answer whether or not the post exists, so lookups cannot be
// used to enumerate other clients' posts.
func (s *postService) fetchAuthorized(ctx context.Context, actor transfer.Actor, postID int64, op string) (*models.Post, error) {
	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperrors.New(apperrors.NotFound, "post not found")
	}

	if err := s.access.Authorize(ctx, actor, OpListPosts, post.ClientID); err != nil {
		if apperrors.IsKind(err, apperrors.Forbidden) {
			return nil, apperrors.New(apperrors.NotFound, "post not found")
		}
		return nil, err
	}
	if op != OpListPosts {
		if err := s.access.Authorize(ctx, actor, op, post.ClientID); err != nil {
			return nil, err
		}
	}

	return post, nil
}

func (s *postService) Info(ctx context.Context, actor transfer.Actor, postID int64) (*transfer.PostDetail, error) {
	post, err := s.fetchAuthorized(ctx, actor, postID, OpListPosts)
	if err != nil {
		return nil, err
	}

	history, err := s.ph.ListByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &transfer.PostDetail{Post: post, History: history}, nil
}

// Update applies a patch to a non-terminal post. It changes status only
// when the patch names one explicitly and never re-triggers fan-out.
func (s *postService) Update(ctx context.Context, actor transfer.Actor, postID int64, patch *transfer.PostUpdate) (*models.Post, error) {
	post, err := s.fetchAuthorized(ctx, actor, postID, OpUpdatePost)
	if err != nil {
		return nil, err
	}

	if post.Terminal() {
		return nil, apperrors.Newf(apperrors.InvalidState, "post in status %s cannot be updated", post.Status)
	}
	fromStatus := post.Status

	if patch.Content != nil {
		if strings.TrimSpace(*patch.Content) == "" {
			return nil, apperrors.New(apperrors.InvalidArgument, "content cannot be empty")
		}
		post.Content = *patch.Content
	}
	if patch.MediaURLs != nil {
		post.MediaURLs = *patch.MediaURLs
	}
	if patch.MediaType != nil {
		if !models.ValidMediaType(*patch.MediaType) {
			return nil, apperrors.Newf(apperrors.InvalidArgument, "unknown media type %q", *patch.MediaType)
		}
		post.MediaType = *patch.MediaType
	}
	if patch.ScheduledAt != nil {
		if *patch.ScheduledAt == "" {
			post.ScheduledAt = nil
		} else {
			t, err := time.Parse(time.RFC3339, *patch.ScheduledAt)
			if err != nil {
				return nil, apperrors.Wrap(apperrors.InvalidArgument, "invalid scheduled time", err)
			}
			post.ScheduledAt = &t
		}
	}
	if patch.Status != nil {
		if !models.ValidStatus(*patch.Status) {
			return nil, apperrors.Newf(apperrors.InvalidArgument, "unknown status %q", *patch.Status)
		}
		post.Status = *patch.Status
	}

	// The write only lands if the post still holds the status we read.
	// A reviewer's decision arriving in between wins and this patch is
	// rejected rather than silently overwriting it.
	ok, err := s.pr.Update(ctx, post, fromStatus)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.New(apperrors.InvalidState, "post was changed concurrently")
	}

	return s.pr.GetByID(ctx, postID)
}

// Approve moves a pending post to APPROVED. The repository performs the
// transition conditionally, so a concurrent reject cannot also win.
func (s *postService) Approve(ctx context.Context, actor transfer.Actor, postID int64) (*models.Post, error) {
	if _, err := s.fetchAuthorized(ctx, actor, postID, OpApprovePost); err != nil {
		return nil, err
	}

	ok, err := s.pr.Approve(ctx, postID, actor.UserID, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.New(apperrors.InvalidState, "post is not pending approval")
	}

	return s.pr.GetByID(ctx, postID)
}

func (s *postService) Reject(ctx context.Context, actor transfer.Actor, postID int64, reason string) (*models.Post, error) {
	if _, err := s.fetchAuthorized(ctx, actor, postID, OpRejectPost); err != nil {
		return nil, err
	}

	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.New(apperrors.InvalidArgument, "rejection reason is required")
	}

	ok, err := s.pr.Reject(ctx, postID, actor.UserID, reason, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.New(apperrors.InvalidState, "post is not pending approval")
	}

	return s.pr.GetByID(ctx, postID)
}

// Remove hard-deletes; history of what happened to the post lives in
// the audit log, not a tombstone.
func (s *postService) Remove(ctx context.Context, actor transfer.Actor, postID int64) error {
	if _, err := s.fetchAuthorized(ctx, actor, postID, OpDeletePost); err != nil {
		return err
	}

	return s.pr.Remove(ctx, postID)
}

// ForPublish authorizes a manual publish and checks the post is in a
// publishable state.
func (s *postService) ForPublish(ctx context.Context, actor transfer.Actor, postID int64) (*models.Post, error) {
	post, err := s.fetchAuthorized(ctx, actor, postID, OpPublishPost)
	if err != nil {
		return nil, err
	}

	switch post.Status {
	case models.PostStatusDraft, models.PostStatusApproved, models.PostStatusScheduled:
		return post, nil
	}
	return nil, apperrors.Newf(apperrors.InvalidState, "post in status %s cannot be published", post.Status)
}
