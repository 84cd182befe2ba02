package models

import "time"

type SocialAccount struct {
	ID          int64     `db:"id" json:"id"`
	ClientID    int64     `db:"client_id" json:"client_id"`
	Platform    string    `db:"platform" json:"platform"`
	PlatformID  string    `db:"platform_id" json:"platform_id"`
	AccessToken string    `db:"access_token" json:"-"`
	ProfileName string    `db:"profile_name" json:"profile_name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

const (
	PlatformFacebook  = "FACEBOOK"
	PlatformInstagram = "INSTAGRAM"
	PlatformTwitter   = "TWITTER"
	PlatformLinkedin  = "LINKEDIN"
)

func ValidPlatform(platform string) bool {
	switch platform {
	case PlatformFacebook, PlatformInstagram, PlatformTwitter, PlatformLinkedin:
		return true
	}
	return false
}

// PostingHistory is the per-attempt delivery journal for a post.
type PostingHistory struct {
	ID           int64     `db:"id" json:"id"`
	PostID       int64     `db:"post_id" json:"post_id"`
	AccountID    *int64    `db:"account_id" json:"account_id,omitempty"`
	Platform     string    `db:"platform" json:"platform"`
	Outcome      string    `db:"outcome" json:"outcome"`
	ErrorMessage string    `db:"error_message" json:"error_message,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type MediaAsset struct {
	ID         int64     `db:"id" json:"id"`
	UploaderID int64     `db:"uploader_id" json:"uploader_id"`
	FileName   string    `db:"file_name" json:"file_name"`
	FileType   string    `db:"file_type" json:"file_type"`
	FileSize   int64     `db:"file_size" json:"file_size"`
	FileURL    string    `db:"file_url" json:"file_url"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
