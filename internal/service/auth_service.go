package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/workflow"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// AuthService handles registration, login and profile administration.
type AuthService struct {
	cfg      config.AuthConfig
	profiles repository.ProfileRepository
	tokens   *auth.TokenManager
	cache    *auth.ProfileCache
	logger   *zap.Logger
}

// AuthDependencies bundles collaborators for auth service.
type AuthDependencies struct {
	ProfileRepo repository.ProfileRepository
	Cache       *auth.ProfileCache
	Logger      *zap.Logger
}

// RegisterInput describes the registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginResult bundles the issued token with the profile.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Profile   *domain.Profile
}

// ProfileAdminInput describes admin edits to a profile; nil leaves a field
// unchanged.
type ProfileAdminInput struct {
	Role   *domain.UserRole
	Active *bool
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		cfg:      cfg,
		profiles: deps.ProfileRepo,
		tokens:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL()),
		cache:    deps.Cache,
		logger:   deps.Logger,
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// Register creates a profile. Self-registration always yields the user role;
// agents and admins are promoted by an admin afterwards.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.Profile, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.NewValidationError("name and valid email required", nil)
	}
	if len(input.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	if existing, err := s.profiles.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	profile := &domain.Profile{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Active:       true,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	profile, err := s.profiles.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if !profile.Active {
		return nil, apperrors.NewUnauthorized("account disabled")
	}
	if err := auth.ComparePassword(profile.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(profile)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cache.Set(ctx, profile)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Profile: profile}, nil
}

// ListProfiles returns profiles for admin screens; requires the
// manage-users flag.
func (s *AuthService) ListProfiles(ctx context.Context, actor Actor, filter repository.ProfileFilter) ([]domain.Profile, error) {
	if !workflow.PermissionsFor(actor.Role).CanManageUsers {
		return nil, apperrors.NewForbidden("user management denied")
	}
	profiles, err := s.profiles.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return profiles, nil
}

// UpdateProfile applies admin edits (role, active flag) and invalidates the
// session cache so the change takes effect on the next request.
func (s *AuthService) UpdateProfile(ctx context.Context, actor Actor, profileID string, input ProfileAdminInput) (*domain.Profile, error) {
	if !workflow.PermissionsFor(actor.Role).CanManageUsers {
		return nil, apperrors.NewForbidden("user management denied")
	}
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("profile", map[string]any{"profile_id": profileID})
		}
		return nil, apperrors.MapError(err)
	}

	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": *input.Role})
		}
		profile.Role = *input.Role
	}
	if input.Active != nil {
		profile.Active = *input.Active
	}
	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cache.Invalidate(ctx, profile.ID)
	return profile, nil
}

// EnsureBootstrapAdmin creates the configured admin account on first boot.
func (s *AuthService) EnsureBootstrapAdmin(ctx context.Context) error {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		return nil
	}
	email := strings.ToLower(strings.TrimSpace(s.cfg.AdminEmail))
	if _, err := s.profiles.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(s.cfg.AdminPassword, s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	admin := &domain.Profile{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Active:       true,
	}
	if err := s.profiles.Create(ctx, admin); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.Info("bootstrap admin created", zap.String("email", email))
	}
	return nil
}
