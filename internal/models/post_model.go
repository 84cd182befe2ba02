package models

import "time"

type Post struct {
	ID              int64      `db:"id" json:"id"`
	ClientID        int64      `db:"client_id" json:"client_id"`
	CreatorID       int64      `db:"creator_id" json:"creator_id"`
	Content         string     `db:"content" json:"content"`
	MediaURLs       []string   `db:"media_urls" json:"media_urls"`
	MediaType       string     `db:"media_type" json:"media_type"`
	Platforms       []string   `db:"platforms" json:"platforms"`
	Status          string     `db:"status" json:"status"`
	ScheduledAt     *time.Time `db:"scheduled_at" json:"scheduled_at,omitempty"`
	ApprovedBy      *int64     `db:"approved_by" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `db:"approved_at" json:"approved_at,omitempty"`
	RejectedBy      *int64     `db:"rejected_by" json:"rejected_by,omitempty"`
	RejectedAt      *time.Time `db:"rejected_at" json:"rejected_at,omitempty"`
	RejectionReason string     `db:"rejection_reason" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

const (
	PostStatusDraft           = "DRAFT"
	PostStatusPendingApproval = "PENDING_APPROVAL"
	PostStatusScheduled       = "SCHEDULED"
	PostStatusApproved        = "APPROVED"
	PostStatusRejected        = "REJECTED"
	PostStatusPublished       = "PUBLISHED"
)

const (
	MediaTypeText  = "TEXT"
	MediaTypeImage = "IMAGE"
	MediaTypeVideo = "VIDEO"
)

// Terminal reports whether no further transition leaves the status.
func (p *Post) Terminal() bool {
	return p.Status == PostStatusPublished || p.Status == PostStatusRejected
}

func ValidStatus(status string) bool {
	switch status {
	case PostStatusDraft, PostStatusPendingApproval, PostStatusScheduled,
		PostStatusApproved, PostStatusRejected, PostStatusPublished:
		return true
	}
	return false
}

func ValidMediaType(mediaType string) bool {
	switch mediaType {
	case MediaTypeText, MediaTypeImage, MediaTypeVideo:
		return true
	}
	return false
}
