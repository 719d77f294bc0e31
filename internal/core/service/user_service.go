package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tenantscore/rental-admin/internal/api/metrics"
	"github.com/tenantscore/rental-admin/internal/core/domain"
	"github.com/tenantscore/rental-admin/internal/core/password"
	"github.com/tenantscore/rental-admin/internal/core/ports"
	"github.com/tenantscore/rental-admin/internal/core/token"
)

// UserService implements the account lifecycle: admin-issued registration,
// login, self-service password change, and the forced first-login reset.
type UserService struct {
	repo     ports.UserRepository
	tokens   *token.Service
	notifier ports.Notifier
	limiter  ports.LoginLimiter
	log      zerolog.Logger

	// strictTempPasswords makes generated temporary credentials satisfy the
	// same policy as self-service ones. Off by default to match the original
	// hex-based behaviour.
	strictTempPasswords bool
}

// UserServiceOption customises a UserService at construction time.
type UserServiceOption func(*UserService)

// WithStrictTempPasswords makes Register issue temporary passwords that
// pass the account password policy.
func WithStrictTempPasswords() UserServiceOption {
	return func(s *UserService) { s.strictTempPasswords = true }
}

// WithLoginLimiter throttles repeated failed logins per email.
func WithLoginLimiter(limiter ports.LoginLimiter) UserServiceOption {
	return func(s *UserService) { s.limiter = limiter }
}

func NewUserService(
	repo ports.UserRepository,
	tokens *token.Service,
	notifier ports.Notifier,
	log zerolog.Logger,
	opts ...UserServiceOption,
) *UserService {
	s := &UserService{
		repo:     repo,
		tokens:   tokens,
		notifier: notifier,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register provisions a new account with a generated temporary password and
// the reset flag raised; the holder cannot log in until the forced reset
// completes. Reached only behind the admin gate.
func (s *UserService) Register(ctx context.Context, input ports.RegisterInput) (*ports.RegisterResult, error) {
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidRole
	}

	tempPassword, err := s.generateTempPassword()
	if err != nil {
		return nil, err
	}

	hash, err := password.Hash(tempPassword)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Firstname:             input.Firstname,
		Middlename:            input.Middlename,
		Surname:               input.Surname,
		Email:                 input.Email,
		Phone:                 input.Phone,
		Role:                  input.Role,
		PasswordHash:          hash,
		PasswordResetRequired: true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	// Fire-and-forget: a failed notification never fails the registration.
	if err := s.notifier.AccountCreated(ctx, created.Email); err != nil {
		s.log.Error().Err(err).Str("email", created.Email).Msg("account-created notification failed")
	}

	metrics.RegistrationsTotal.WithLabelValues(created.Role).Inc()
	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")

	return &ports.RegisterResult{User: created, TempPassword: tempPassword}, nil
}

// Login authenticates by email and password and issues an identity token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, pass string) (string, *domain.User, error) {
	if email == "" || pass == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login limiter unavailable, allowing attempt")
		} else if !ok {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			s.recordFailure(ctx, email)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !password.Verify(pass, user.PasswordHash) {
		s.recordFailure(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	if user.PasswordResetRequired {
		metrics.LoginsTotal.WithLabelValues("reset_required").Inc()
		return "", nil, domain.ErrPasswordResetRequired
	}

	tkn, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login counter")
		}
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login successful")

	return tkn, user, nil
}

// UpdatePassword overwrites the caller's own password after a policy check.
// Reached only behind the account-owner gate. It deliberately leaves the
// reset flag alone; first-login resets go through ForcePasswordChange.
func (s *UserService) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	if err := password.Validate(newPassword); err != nil {
		return err
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	metrics.PasswordChangesTotal.WithLabelValues("self_service").Inc()
	s.log.Info().Str("user_id", userID).Msg("password updated")
	return nil
}

// ForcePasswordChange completes the first-login reset for an admin-issued
// account. It requires no token: the account has no usable password yet.
// The flag is cleared by a single conditional update, so only one call can
// ever succeed per provisioning.
func (s *UserService) ForcePasswordChange(ctx context.Context, email, newPassword string) error {
	if err := password.Validate(newPassword); err != nil {
		return err
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if !user.PasswordResetRequired {
		return domain.ErrResetNotRequired
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePasswordAndClearReset(ctx, user.ID, hash); err != nil {
		return err
	}

	metrics.PasswordChangesTotal.WithLabelValues("forced_reset").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("forced password change completed")
	return nil
}

func (s *UserService) generateTempPassword() (string, error) {
	if s.strictTempPasswords {
		return password.GenerateStrong()
	}
	return password.GenerateTemporary()
}

func (s *UserService) recordFailure(ctx context.Context, email string) {
	metrics.LoginsTotal.WithLabelValues("failure").Inc()
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}
