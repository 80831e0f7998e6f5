package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/proton-market/marketplace-api/internal/core/auth"
	"github.com/proton-market/marketplace-api/internal/core/domain"
	"github.com/proton-market/marketplace-api/internal/core/ports"
	"github.com/proton-market/marketplace-api/internal/pkg/metrics"
)

// AuthOptions tunes signup policy.
type AuthOptions struct {
	// AllowAdminSignup lets anyone self-register with the admin role. Off by
	// default; admins come from the startup seed instead.
	AllowAdminSignup bool
}

// AuthService implements signup, login and account status changes.
type AuthService struct {
	users   ports.UserRepository
	hasher  *auth.Hasher
	codec   *auth.TokenCodec
	limiter ports.LoginLimiter
	audit   ports.AuditRecorder
	opts    AuthOptions
	log     zerolog.Logger
	now     func() time.Time
}

// NewAuthService wires the service. limiter and audit may be nil.
func NewAuthService(
	users ports.UserRepository,
	hasher *auth.Hasher,
	codec *auth.TokenCodec,
	limiter ports.LoginLimiter,
	audit ports.AuditRecorder,
	opts AuthOptions,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:   users,
		hasher:  hasher,
		codec:   codec,
		limiter: limiter,
		audit:   audit,
		opts:    opts,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Signup registers a new account and returns a token for it.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error) {
	email := domain.NormalizeEmail(in.Email)
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	if role == domain.RoleAdmin && !s.opts.AllowAdminSignup {
		s.log.Warn().Str("email", email).Msg("admin self-signup rejected")
		return nil, domain.ErrAdminSignupDisabled
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	created, err := s.createUser(ctx, in.Name, email, in.Password, role)
	if err != nil {
		return nil, err
	}

	token, err := s.codec.Issue(created.Email, created.Role)
	if err != nil {
		return nil, err
	}

	metrics.SignupsTotal.WithLabelValues(string(role)).Inc()
	s.record(domain.AuthEventSignup, created.Email, created.Role, "")
	s.log.Info().Str("email", created.Email).Str("role", string(role)).Msg("account created")

	return &ports.AuthResult{AccessToken: token, TokenType: auth.TokenType, User: created.Sanitize()}, nil
}

// Login verifies credentials and issues a token for an active account.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = domain.NormalizeEmail(email)

	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("login throttle check failed, continuing")
		} else if !ok {
			metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if user == nil || !s.hasher.Verify(password, user.PasswordHash) {
		s.failedLogin(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		metrics.LoginAttemptsTotal.WithLabelValues("deactivated").Inc()
		s.record(domain.AuthEventDeactivated, user.Email, user.Role, "")
		return nil, domain.ErrDeactivated
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("failed to reset login throttle")
		}
	}

	token, err := s.codec.Issue(user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.record(domain.AuthEventLogin, user.Email, user.Role, "")

	return &ports.AuthResult{AccessToken: token, TokenType: auth.TokenType, User: user.Sanitize()}, nil
}

// SetActive flips the is_active flag of the account identified by email.
func (s *AuthService) SetActive(ctx context.Context, actor *domain.SanitizedUser, email string, active bool) (*domain.SanitizedUser, error) {
	updated, err := s.users.SetActive(ctx, domain.NormalizeEmail(email), active)
	if err != nil {
		return nil, err
	}

	s.record(domain.AuthEventStatusChange, updated.Email, updated.Role, actor.Email)
	s.log.Info().
		Str("email", updated.Email).
		Bool("is_active", active).
		Str("actor", actor.Email).
		Msg("account status changed")

	return updated.Sanitize(), nil
}

// EnsureAdmin provisions an admin account at startup when none exists for
// email. It is the supported path for creating admins while self-signup of
// the admin role is disabled.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return false, nil
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		s.log.Info().Str("email", email).Msg("admin account exists, skipping seed")
		return false, nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return false, fmt.Errorf("check admin account: %w", err)
	}

	if _, err := s.createUser(ctx, name, email, password, domain.RoleAdmin); err != nil {
		return false, fmt.Errorf("seed admin account: %w", err)
	}
	s.log.Warn().Str("email", email).Msg("admin account seeded")
	return true, nil
}

func (s *AuthService) createUser(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return s.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: hash,
		KYCStatus:    domain.KYCPending,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (s *AuthService) failedLogin(ctx context.Context, email string) {
	metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
	s.record(domain.AuthEventLoginFailed, email, "", "")
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RegisterFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("failed to record login failure")
	}
}

func (s *AuthService) record(kind domain.AuthEventKind, email string, role domain.Role, actor string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuthEvent{
		Email:      email,
		Kind:       kind,
		Role:       role,
		OccurredAt: s.now(),
		Actor:      actor,
	})
}
