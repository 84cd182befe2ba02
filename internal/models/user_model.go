package models

import "time"

type User struct {
	ID        int64     `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"`
	Name      string    `db:"name" json:"name"`
	Role      string    `db:"role" json:"role"`
	JobTitle  string    `db:"job_title" json:"job_title"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleEmployee   = "EMPLOYEE"
)

// ClientAccess grants one user a permission level on one client.
// Unique per (user, client); re-granting overwrites the level.
type ClientAccess struct {
	UserID          int64     `db:"user_id" json:"user_id"`
	ClientID        int64     `db:"client_id" json:"client_id"`
	PermissionLevel string    `db:"permission_level" json:"permission_level"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

const (
	PermissionFull      = "FULL_ACCESS"
	PermissionContent   = "CONTENT_ONLY"
	PermissionAnalytics = "ANALYTICS_ONLY"
	PermissionNone      = "NONE"
)

func ValidPermissionLevel(level string) bool {
	switch level {
	case PermissionFull, PermissionContent, PermissionAnalytics, PermissionNone:
		return true
	}
	return false
}

// PermissionRank orders levels by breadth:
// FULL_ACCESS > CONTENT_ONLY > ANALYTICS_ONLY > NONE.
func PermissionRank(level string) int {
	switch level {
	case PermissionFull:
		return 3
	case PermissionContent:
		return 2
	case PermissionAnalytics:
		return 1
	}
	return 0
}
