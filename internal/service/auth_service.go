package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/kairos-api/internal/models"
	appErrors "github.com/noah-isme/kairos-api/pkg/errors"
)

type authAdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
}

// AuthConfig defines how provider-issued access tokens are verified.
type AuthConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

// providerClaims mirrors the access token minted by the hosted auth provider.
type providerClaims struct {
	Email        string `json:"email"`
	UserMetadata struct {
		FullName string `json:"full_name"`
	} `json:"user_metadata"`
	jwt.RegisteredClaims
}

// AuthService verifies access tokens and maps them onto admin accounts.
// Sign-in itself happens at the auth provider; no tokens are issued here.
type AuthService struct {
	repo   authAdminRepository
	logger *zap.Logger
	config AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authAdminRepository, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{repo: repo, logger: logger, config: config}
}

// ValidateToken parses and validates an access token returning the identity claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.AuthClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}
	if s.config.Audience != "" {
		opts = append(opts, jwt.WithAudience(s.config.Audience))
	}

	claims := &providerClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Secret), nil
	}, opts...)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}
	if !token.Valid || strings.TrimSpace(claims.Email) == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return &models.AuthClaims{
		Subject:  claims.Subject,
		Email:    strings.ToLower(strings.TrimSpace(claims.Email)),
		FullName: strings.TrimSpace(claims.UserMetadata.FullName),
	}, nil
}

// ResolveAdmin returns the admin account belonging to the token identity.
func (s *AuthService) ResolveAdmin(ctx context.Context, claims *models.AuthClaims) (*models.Admin, error) {
	admin, err := s.repo.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "admin account not registered")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load admin")
	}
	return admin, nil
}

// EnsureAdmin returns the admin for the identity, registering a pending account on first sign-in.
func (s *AuthService) EnsureAdmin(ctx context.Context, claims *models.AuthClaims) (*models.Admin, bool, error) {
	admin, err := s.repo.FindByEmail(ctx, claims.Email)
	if err == nil {
		return admin, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load admin")
	}

	name := claims.FullName
	if name == "" {
		name = claims.Email
	}
	admin = &models.Admin{Email: claims.Email, Name: name}
	if err := s.repo.Create(ctx, admin); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to register admin")
	}
	s.logger.Info("pending admin registered", zap.String("admin_id", admin.ID), zap.String("email", admin.Email))
	return admin, true, nil
}
