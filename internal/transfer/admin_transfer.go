package transfer

import "socialdesk/internal/models"

type EmployeeCreation struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	JobTitle string `json:"job_title"`
}

type AccessAssignment struct {
	UserID          int64  `json:"user_id"`
	ClientID        int64  `json:"client_id"`
	PermissionLevel string `json:"permission_level"`
}

type ClientCreation struct {
	Name     string `json:"name"`
	Industry string `json:"industry,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

type ClientUpdate struct {
	Name     *string `json:"name,omitempty"`
	Industry *string `json:"industry,omitempty"`
	Timezone *string `json:"timezone,omitempty"`
}

type ClientDetail struct {
	Client      *models.Client          `json:"client"`
	Accounts    []*models.SocialAccount `json:"accounts"`
	RecentPosts []*models.Post          `json:"recent_posts"`
}

type AccountCreation struct {
	ClientID    int64  `json:"client_id"`
	Platform    string `json:"platform"`
	PlatformID  string `json:"platform_id"`
	AccessToken string `json:"access_token"`
	ProfileName string `json:"profile_name"`
}
