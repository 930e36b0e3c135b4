package driving

import (
	"context"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
)

// AuthService handles the two-step login stub
type AuthService interface {
	// Login accepts any non-empty username and password and issues a preliminary token
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)

	// VerifyOTP exchanges a preliminary token and a matching OTP for a final token
	VerifyOTP(ctx context.Context, req domain.OTPRequest) (*domain.OTPResponse, error)

	// ValidateToken validates a final token and returns the auth context
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)
}
