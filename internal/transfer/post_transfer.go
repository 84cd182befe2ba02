package transfer

import "socialdesk/internal/models"

type PostCreation struct {
	ClientID    int64    `json:"client_id"`
	Content     string   `json:"content"`
	MediaURLs   []string `json:"media_urls"`
	MediaType   string   `json:"media_type"`
	Platforms   []string `json:"platforms"`
	ScheduledAt string   `json:"scheduled_at,omitempty"`
	PublishNow  bool     `json:"publish_now,omitempty"`
}

type PostUpdate struct {
	Content     *string   `json:"content,omitempty"`
	MediaURLs   *[]string `json:"media_urls,omitempty"`
	MediaType   *string   `json:"media_type,omitempty"`
	ScheduledAt *string   `json:"scheduled_at,omitempty"`
	Status      *string   `json:"status,omitempty"`
}

type RejectionRequest struct {
	Reason string `json:"reason"`
}

type PostDetail struct {
	Post    *models.Post             `json:"post"`
	History []*models.PostingHistory `json:"history"`
}

const (
	OutcomeDelivered = "delivered"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
)

type PlatformResult struct {
	Status     string `json:"status"`
	Reason     string `json:"reason,omitempty"`
	ExternalID string `json:"external_id,omitempty"`
}

// PublishOutcome maps each requested platform to its delivery result.
type PublishOutcome map[string]PlatformResult

// Delivered reports whether at least one platform accepted the post.
func (o PublishOutcome) Delivered() bool {
	for _, res := range o {
		if res.Status == OutcomeDelivered {
			return true
		}
	}
	return false
}
