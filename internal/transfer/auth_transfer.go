package transfer

import "github.com/golang-jwt/jwt/v5"

type CustomClaims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Actor is the resolved identity behind a request. The pipeline trusts
// it as produced by the auth middleware and never re-verifies tokens.
type Actor struct {
	UserID int64
	Role   string
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
