package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	config "socialdesk/configs"
	"socialdesk/internal/models"
	"socialdesk/internal/repository"
	"socialdesk/internal/transfer"
	"socialdesk/pkg/utils"
)

// Deliverer posts one piece of content to one external platform. The
// account it receives carries a decrypted credential.
type Deliverer interface {
	Deliver(ctx context.Context, post *models.Post, account *models.SocialAccount) (externalID string, err error)
}

type PublisherService interface {
	// Publish attempts delivery to every platform the post targets,
	// isolating per-platform failure. The post is marked PUBLISHED when
	// at least one platform accepted it; otherwise its status is left
	// alone and the outcome tells the caller what went wrong where.
	Publish(ctx context.Context, post *models.Post) (transfer.PublishOutcome, error)
}

type publisherService struct {
	cfg        config.Config
	sa         repository.SocialAccountRepository
	pr         repository.PostRepository
	ph         repository.PostingHistoryRepository
	cr         repository.ClientRepository
	seo        SEOService
	deliverers map[string]Deliverer
}

func NewPublisherService(
	cfg config.Config,
	sa repository.SocialAccountRepository,
	pr repository.PostRepository,
	ph repository.PostingHistoryRepository,
	cr repository.ClientRepository,
	seo SEOService,
	deliverers map[string]Deliverer) PublisherService {
	return &publisherService{
		cfg:        cfg,
		sa:         sa,
		pr:         pr,
		ph:         ph,
		cr:         cr,
		seo:        seo,
		deliverers: deliverers,
	}
}

func (s *publisherService) Publish(ctx context.Context, post *models.Post) (transfer.PublishOutcome, error) {
	outcome := make(transfer.PublishOutcome, len(post.Platforms))
	if len(post.Platforms) == 0 {
		return outcome, nil
	}

	industry := s.clientIndustry(ctx, post.ClientID)
	content := s.seo.OptimizeCaption(post.Content, industry)

	concurrency := s.cfg.PublishConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	semaphore := make(chan struct{}, concurrency)

	for _, platform := range post.Platforms {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(platform string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			text := s.captionFor(content, industry, platform)
			result, accountID := s.attempt(ctx, post, platform, text)

			mu.Lock()
			outcome[platform] = result
			mu.Unlock()

			s.journal(post.ID, platform, accountID, result)
		}(platform)
	}

	wg.Wait()

	// Single write-back after all attempts have been merged.
	if outcome.Delivered() && post.Status != models.PostStatusPublished {
		if err := s.pr.UpdateStatus(ctx, models.PostStatusPublished, post.ID); err != nil {
			slog.Error("failed to mark post published", "post_id", post.ID, "error", err)
			return outcome, err
		}
		post.Status = models.PostStatusPublished
	}

	return outcome, nil
}

func (s *publisherService) attempt(ctx context.Context, post *models.Post, platform, text string) (transfer.PlatformResult, *int64) {
	account, err := s.sa.FindByClient(ctx, post.ClientID, platform)
	if err != nil {
		return transfer.PlatformResult{Status: transfer.OutcomeFailed, Reason: "account lookup failed: " + err.Error()}, nil
	}
	if account == nil {
		return transfer.PlatformResult{Status: transfer.OutcomeSkipped, Reason: "no connected account"}, nil
	}

	deliverer, ok := s.deliverers[platform]
	if !ok {
		return transfer.PlatformResult{Status: transfer.OutcomeSkipped, Reason: "unsupported platform"}, &account.ID
	}

	token, err := utils.Decrypt(account.AccessToken, []byte(s.cfg.TokenCryptKey))
	if err != nil {
		return transfer.PlatformResult{Status: transfer.OutcomeFailed, Reason: "credential decrypt failed"}, &account.ID
	}

	delivery := *account
	delivery.AccessToken = token

	payload := *post
	payload.Content = text

	cctx, cancel := context.WithTimeout(ctx, s.cfg.PublishTimeout)
	defer cancel()

	externalID, err := deliverer.Deliver(cctx, &payload, &delivery)
	if err != nil {
		slog.Info("delivery failed", "post_id", post.ID, "platform", platform, "error", err)
		return transfer.PlatformResult{Status: transfer.OutcomeFailed, Reason: err.Error()}, &account.ID
	}

	return transfer.PlatformResult{Status: transfer.OutcomeDelivered, ExternalID: externalID}, &account.ID
}

func (s *publisherService) journal(postID int64, platform string, accountID *int64, result transfer.PlatformResult) {
	entry := &models.PostingHistory{
		PostID:       postID,
		AccountID:    accountID,
		Platform:     platform,
		Outcome:      result.Status,
		ErrorMessage: result.Reason,
	}
	if _, err := s.ph.Create(context.Background(), entry); err != nil {
		slog.Error("failed to record posting history", "post_id", postID, "platform", platform, "error", err)
	}
}

func (s *publisherService) clientIndustry(ctx context.Context, clientID int64) string {
	client, err := s.cr.GetByID(ctx, clientID)
	if err != nil || client == nil {
		return ""
	}
	return client.Industry
}

// captionFor decorates the optimized caption with platform hashtags.
// The helper is best-effort; an empty tag set leaves the text as is.
func (s *publisherService) captionFor(content, industry, platform string) string {
	tags := s.seo.GenerateHashtags(industry, platform)
	if len(tags) == 0 {
		return content
	}
	return content + "\n" + strings.Join(tags, " ")
}
