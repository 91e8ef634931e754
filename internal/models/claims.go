package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims carries the authenticated user identity inside JWTs.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
}
