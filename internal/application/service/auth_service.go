package service

import (
	"context"
	"crypto/subtle"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ipremium/repairdesk-api/internal/config"
	"github.com/ipremium/repairdesk-api/pkg/apperror"
	"github.com/ipremium/repairdesk-api/pkg/utils"
)

// AuthService exchanges the shop access code for a staff token
type AuthService struct {
	cfg        config.AuthConfig
	jwtManager *utils.JWTManager
	logger     *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(cfg config.AuthConfig, jwtManager *utils.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		cfg:        cfg,
		jwtManager: jwtManager,
		logger:     logger.Named("auth_service"),
	}
}

// LoginResult represents the login response payload
type LoginResult struct {
	Token     string
	StaffName string
}

// Login verifies the shared access code and issues a JWT carrying the staff
// member's name. The plain-code path exists for local development only; a
// production deployment sets AUTH_ACCESS_CODE_HASH.
func (s *AuthService) Login(ctx context.Context, accessCode, staffName string) (*LoginResult, error) {
	if staffName == "" {
		staffName = "Staff"
	}

	if !s.verify(accessCode) {
		s.logger.Warn("rejected login attempt", zap.String("staff_name", staffName))
		return nil, apperror.ErrInvalidCode
	}

	token, err := s.jwtManager.GenerateToken(staffName)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}

	return &LoginResult{Token: token, StaffName: staffName}, nil
}

func (s *AuthService) verify(accessCode string) bool {
	if s.cfg.AccessCodeHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.AccessCodeHash), []byte(accessCode)) == nil
	}
	if s.cfg.AccessCode != "" {
		return subtle.ConstantTimeCompare([]byte(s.cfg.AccessCode), []byte(accessCode)) == 1
	}
	return false
}
