package domain

import "time"

// TokenStage distinguishes the two steps of the login flow
type TokenStage string

const (
	// StagePreliminary is issued after username/password and only unlocks OTP verification
	StagePreliminary TokenStage = "preliminary"
	// StageFinal is issued after OTP verification and unlocks the API
	StageFinal TokenStage = "final"
)

// DefaultDisplayName is returned when no display name is configured
const DefaultDisplayName = "Demo User"

// AuthContext contains authenticated user info for request context
type AuthContext struct {
	Username string     `json:"username"`
	Stage    TokenStage `json:"stage"`
}

// IsFinal reports whether the token passed OTP verification
func (a *AuthContext) IsFinal() bool {
	return a != nil && a.Stage == StageFinal
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the preliminary token
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// OTPRequest represents an OTP verification attempt
type OTPRequest struct {
	OTP              string `json:"otp"`
	PreliminaryToken string `json:"preliminary_token"`
}

// OTPResponse carries the final token
type OTPResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenClaims represents the JWT token payload
type TokenClaims struct {
	Username  string     `json:"username"`
	Stage     TokenStage `json:"stage"`
	IssuedAt  int64      `json:"iat"`
	ExpiresAt int64      `json:"exp"`
}
