package dto

import "time"

// CreateTokenBody is the login request of both browser tools. Kind selects
// the password directory checked: "group" logs an evaluator pair in,
// "evaluator" an individual, "admin" the dashboard. Name is unused for the
// admin kind.
type CreateTokenBody struct {
	Kind     string `json:"kind" binding:"required,oneof=group evaluator admin"`
	Name     string `json:"name"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}
