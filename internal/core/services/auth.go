package services

import (
	"context"
	"strings"
	"time"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// AuthConfig configures the login stub
type AuthConfig struct {
	OTPHash        string // hash of the accepted OTP, produced by AuthAdapter.HashSecret
	DisplayName    string
	PreliminaryTTL time.Duration
	TokenTTL       time.Duration
}

// authService implements the two-step login stub. Any non-empty
// username/password pair passes the first step; the second step accepts
// one configured OTP.
type authService struct {
	authAdapter    driven.AuthAdapter
	otpHash        string
	displayName    string
	preliminaryTTL time.Duration
	tokenTTL       time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(authAdapter driven.AuthAdapter, cfg AuthConfig) driving.AuthService {
	s := &authService{
		authAdapter:    authAdapter,
		otpHash:        cfg.OTPHash,
		displayName:    cfg.DisplayName,
		preliminaryTTL: cfg.PreliminaryTTL,
		tokenTTL:       cfg.TokenTTL,
	}
	if s.displayName == "" {
		s.displayName = domain.DefaultDisplayName
	}
	if s.preliminaryTTL <= 0 {
		s.preliminaryTTL = 5 * time.Minute
	}
	if s.tokenTTL <= 0 {
		s.tokenTTL = 24 * time.Hour
	}
	return s
}

// Login issues a preliminary token for any non-empty credentials
func (s *authService) Login(_ context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.issue(username, domain.StagePreliminary, s.preliminaryTTL)
	if err != nil {
		return nil, err
	}
	return &domain.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// VerifyOTP checks the preliminary token and the OTP, then issues the final token
func (s *authService) VerifyOTP(_ context.Context, req domain.OTPRequest) (*domain.OTPResponse, error) {
	if req.OTP == "" || req.PreliminaryToken == "" {
		return nil, domain.ErrInvalidInput
	}

	claims, err := s.authAdapter.ParseToken(req.PreliminaryToken)
	if err != nil {
		return nil, err
	}
	if claims.Stage != domain.StagePreliminary {
		return nil, domain.ErrTokenInvalid
	}
	if time.Now().Unix() > claims.ExpiresAt {
		return nil, domain.ErrTokenExpired
	}

	if s.otpHash == "" || !s.authAdapter.VerifySecret(req.OTP, s.otpHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.issue(claims.Username, domain.StageFinal, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &domain.OTPResponse{
		Token:     token,
		Username:  s.displayName,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateToken accepts only final tokens
func (s *authService) ValidateToken(_ context.Context, token string) (*domain.AuthContext, error) {
	claims, err := s.authAdapter.ParseToken(token)
	if err != nil {
		return nil, err
	}
	if time.Now().Unix() > claims.ExpiresAt {
		return nil, domain.ErrTokenExpired
	}
	if claims.Stage != domain.StageFinal {
		return nil, domain.ErrUnauthorized
	}
	return &domain.AuthContext{Username: claims.Username, Stage: claims.Stage}, nil
}

func (s *authService) issue(username string, stage domain.TokenStage, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	token, err := s.authAdapter.GenerateToken(&domain.TokenClaims{
		Username:  username,
		Stage:     stage,
		IssuedAt:  now.Unix(),
		ExpiresAt: expiresAt.Unix(),
	})
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}
