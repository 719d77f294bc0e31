package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tenantscore/rental-admin/internal/core/domain"
	"github.com/tenantscore/rental-admin/internal/core/password"
	"github.com/tenantscore/rental-admin/internal/core/ports"
	"github.com/tenantscore/rental-admin/internal/core/token"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) UpdatePasswordAndClearReset(_ context.Context, id, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if !u.PasswordResetRequired {
		return domain.ErrResetNotRequired
	}
	u.PasswordHash = hash
	u.PasswordResetRequired = false
	return nil
}

type stubNotifier struct {
	sent []string
	err  error
}

func (n *stubNotifier) AccountCreated(_ context.Context, email string) error {
	n.sent = append(n.sent, email)
	return n.err
}

type stubLimiter struct {
	allow    bool
	failures int
	resets   int
}

func (l *stubLimiter) Allow(_ context.Context, _ string) (bool, error) { return l.allow, nil }
func (l *stubLimiter) RecordFailure(_ context.Context, _ string) error {
	l.failures++
	return nil
}
func (l *stubLimiter) Reset(_ context.Context, _ string) error {
	l.resets++
	return nil
}

func newTestService(repo ports.UserRepository, notifier ports.Notifier, opts ...UserServiceOption) *UserService {
	return NewUserService(repo, token.NewService("secret", time.Hour), notifier, zerolog.Nop(), opts...)
}

func TestUserService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	notifier := &stubNotifier{}
	svc := newTestService(repo, notifier)

	result, err := svc.Register(context.Background(), ports.RegisterInput{
		Firstname: "Ada",
		Surname:   "Okafor",
		Email:     "ada@example.com",
		Role:      domain.RoleTenant,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if result.TempPassword == "" {
		t.Fatalf("expected a temporary password")
	}
	if !result.User.PasswordResetRequired {
		t.Fatalf("expected reset flag raised")
	}
	if result.User.PasswordHash == result.TempPassword {
		t.Fatalf("expected password to be hashed")
	}
	if !password.Verify(result.TempPassword, result.User.PasswordHash) {
		t.Fatalf("stored hash does not match temporary password")
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != "ada@example.com" {
		t.Fatalf("expected one notification to ada@example.com, got %v", notifier.sent)
	}
}

func TestUserService_Register_InvalidRole(t *testing.T) {
	svc := newTestService(newStubUserRepo(), &stubNotifier{})

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Firstname: "Ada", Surname: "Okafor", Email: "ada@example.com", Role: "superuser",
	}); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, &stubNotifier{})

	input := ports.RegisterInput{Firstname: "Ada", Surname: "Okafor", Email: "ada@example.com", Role: domain.RoleTenant}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Register_NotificationFailureIgnored(t *testing.T) {
	repo := newStubUserRepo()
	notifier := &stubNotifier{err: fmt.Errorf("smtp down")}
	svc := newTestService(repo, notifier)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Firstname: "Ada", Surname: "Okafor", Email: "ada@example.com", Role: domain.RoleTenant,
	}); err != nil {
		t.Fatalf("register should not fail on notification error, got %v", err)
	}
}

func TestUserService_Register_StrictTempPasswords(t *testing.T) {
	svc := newTestService(newStubUserRepo(), &stubNotifier{}, WithStrictTempPasswords())

	result, err := svc.Register(context.Background(), ports.RegisterInput{
		Firstname: "Ada", Surname: "Okafor", Email: "ada@example.com", Role: domain.RoleTenant,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := password.Validate(result.TempPassword); err != nil {
		t.Fatalf("strict temp password %q fails policy: %v", result.TempPassword, err)
	}
}

func TestUserService_Login_BlockedWhileResetRequired(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, &stubNotifier{})

	result, err := svc.Register(context.Background(), ports.RegisterInput{
		Firstname: "Ada", Surname: "Okafor", Email: "ada@example.com", Role: domain.RoleTenant,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Even the correct temporary password is refused until the reset clears.
	if _, _, err := svc.Login(context.Background(), "ada@example.com", result.TempPassword); err != domain.ErrPasswordResetRequired {
		t.Fatalf("expected ErrPasswordResetRequired, got %v", err)
	}
}

func TestUserService_Login_UnknownAndWrongPasswordIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, &stubNotifier{})

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Firstname: "Ada", Surname: "Okafor", Email: "ada@example.com", Role: domain.RoleTenant,
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, unknownErr := svc.Login(context.Background(), "ghost@example.com", "whatever")
	_, _, wrongErr := svc.Login(context.Background(), "ada@example.com", "wrong-password")

	if unknownErr != domain.ErrInvalidCredentials || wrongErr != domain.ErrInvalidCredentials {
		t.Fatalf("expected identical ErrInvalidCredentials, got %v / %v", unknownErr, wrongErr)
	}
}

func TestUserService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	limiter := &stubLimiter{allow: false}
	svc := newTestService(repo, &stubNotifier{}, WithLoginLimiter(limiter))

	if _, _, err := svc.Login(context.Background(), "ada@example.com", "whatever"); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestUserService_ForcePasswordChange_ClearsFlagExactlyOnce(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, &stubNotifier{})

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Firstname: "Ada", Surname: "Okafor", Email: "ada@example.com", Role: domain.RoleTenant,
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.ForcePasswordChange(context.Background(), "ada@example.com", "Str0ng&Pass"); err != nil {
		t.Fatalf("force change failed: %v", err)
	}

	// A second reset against the same provisioning is refused.
	if err := svc.ForcePasswordChange(context.Background(), "ada@example.com", "An0ther&Pass"); err != domain.ErrResetNotRequired {
		t.Fatalf("expected ErrResetNotRequired on second call, got %v", err)
	}
}

func TestUserService_ForcePasswordChange_WeakPassword(t *testing.T) {
	svc := newTestService(newStubUserRepo(), &stubNotifier{})

	if err := svc.ForcePasswordChange(context.Background(), "ada@example.com", "weak"); err != password.ErrWeakPassword {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestUserService_ForcePasswordChange_UnknownEmail(t *testing.T) {
	svc := newTestService(newStubUserRepo(), &stubNotifier{})

	if err := svc.ForcePasswordChange(context.Background(), "ghost@example.com", "Str0ng&Pass"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_UpdatePassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, &stubNotifier{})

	result, err := svc.Register(context.Background(), ports.RegisterInput{
		Firstname: "Ada", Surname: "Okafor", Email: "ada@example.com", Role: domain.RoleTenant,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	userID := result.User.ID

	if err := svc.UpdatePassword(context.Background(), userID, "weak"); err != password.ErrWeakPassword {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}

	if err := svc.UpdatePassword(context.Background(), userID, "Str0ng&Pass"); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	stored, err := repo.FindByID(context.Background(), userID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if !password.Verify("Str0ng&Pass", stored.PasswordHash) {
		t.Fatalf("stored hash does not match new password")
	}
	// UpdatePassword never touches the reset flag.
	if !stored.PasswordResetRequired {
		t.Fatalf("reset flag should be untouched by self-service change")
	}
}

func TestUserService_ProvisioningScenario(t *testing.T) {
	repo := newStubUserRepo()
	limiter := &stubLimiter{allow: true}
	svc := newTestService(repo, &stubNotifier{}, WithLoginLimiter(limiter))
	ctx := context.Background()

	// Admin provisions the tenant: temp password issued, reset required.
	result, err := svc.Register(ctx, ports.RegisterInput{
		Firstname: "Tunde", Surname: "Bello", Email: "t@x.com", Role: domain.RoleTenant,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Login is refused until the forced reset completes.
	if _, _, err := svc.Login(ctx, "t@x.com", result.TempPassword); err != domain.ErrPasswordResetRequired {
		t.Fatalf("expected ErrPasswordResetRequired, got %v", err)
	}

	// Forced reset with a strong password succeeds.
	if err := svc.ForcePasswordChange(ctx, "t@x.com", "Fresh&Start1"); err != nil {
		t.Fatalf("force change failed: %v", err)
	}

	// Login with the new password now issues a verifiable token.
	tkn, user, err := svc.Login(ctx, "t@x.com", "Fresh&Start1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Email != "t@x.com" || user.Role != domain.RoleTenant {
		t.Fatalf("unexpected user projection: %+v", user)
	}

	claims, err := token.NewService("secret", time.Hour).Verify(tkn)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != domain.RoleTenant {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if limiter.resets != 1 {
		t.Fatalf("expected limiter reset after success, got %d", limiter.resets)
	}
}
