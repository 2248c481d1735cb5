package usecases

import (
	"context"
	"sync"
	"testing"

	"chatwarden/internal/domain/owner"
	infraauth "chatwarden/internal/infrastructure/auth"
	"chatwarden/internal/shared/config"
	apperrors "chatwarden/internal/shared/errors"
	"chatwarden/internal/shared/logger"
)

// mockOwnerRepository is an in-memory owner.Repository for the auth tests.
type mockOwnerRepository struct {
	mu     sync.RWMutex
	owners map[uint]*owner.Owner
	nextID uint
}

func newMockOwnerRepository() *mockOwnerRepository {
	return &mockOwnerRepository{owners: make(map[uint]*owner.Owner)}
}

func (m *mockOwnerRepository) Create(ctx context.Context, o *owner.Owner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o.ID() == 0 {
		m.nextID++
		o.SetID(m.nextID)
	}
	m.owners[o.ID()] = o
	return nil
}

func (m *mockOwnerRepository) Update(ctx context.Context, o *owner.Owner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.owners[o.ID()] = o
	return nil
}

func (m *mockOwnerRepository) FindByID(ctx context.Context, id uint) (*owner.Owner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.owners[id]
	if !ok {
		return nil, owner.ErrOwnerNotFound
	}
	return o, nil
}

func (m *mockOwnerRepository) FindByLogin(ctx context.Context, login string) (*owner.Owner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, o := range m.owners {
		if o.Login() == login {
			return o, nil
		}
	}
	return nil, owner.ErrOwnerNotFound
}

func (m *mockOwnerRepository) ListActive(ctx context.Context) ([]*owner.Owner, error) {
	return nil, nil
}

func (m *mockOwnerRepository) List(ctx context.Context) ([]*owner.Owner, error) {
	return nil, nil
}

// nopLogger discards everything; the auth tests only care about outcomes.
type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any)                   {}
func (nopLogger) Info(msg string, args ...any)                    {}
func (nopLogger) Warn(msg string, args ...any)                    {}
func (nopLogger) Error(msg string, args ...any)                   {}
func (nopLogger) Fatal(msg string, args ...any)                   {}
func (n nopLogger) With(args ...any) logger.Interface             { return n }
func (n nopLogger) Named(name string) logger.Interface            { return n }
func (nopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Fatalw(msg string, keysAndValues ...interface{}) {}

func newLoginFixture(t *testing.T) (*LoginUseCase, *mockOwnerRepository, *owner.Owner) {
	t.Helper()

	repo := newMockOwnerRepository()
	hasher := infraauth.NewBcryptPasswordHasher(4)
	tokens := infraauth.NewJWTService("test-secret", 30, 7)
	guard := config.LoginGuardConfig{MaxFailures: 3, LockoutMinutes: 15}

	hash, err := hasher.Hash("correct horse")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	ow, err := owner.NewOwner("tenant", hash, "Test", "Owner", "", "", "en", false)
	if err != nil {
		t.Fatalf("NewOwner() error = %v", err)
	}
	if err := repo.Create(context.Background(), ow); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	uc := NewLoginUseCase(repo, hasher, tokens, guard, nopLogger{})
	return uc, repo, ow
}

func wantErrorType(t *testing.T, err error, want apperrors.ErrorType) {
	t.Helper()
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		t.Fatalf("error = %v, want AppError of type %s", err, want)
	}
	if appErr.Type != want {
		t.Errorf("error type = %s, want %s", appErr.Type, want)
	}
}

func TestLogin_Success(t *testing.T) {
	uc, repo, ow := newLoginFixture(t)

	result, err := uc.Execute(context.Background(), LoginCommand{Login: "tenant", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("token pair must be issued on success")
	}
	if result.Owner.ID() != ow.ID() {
		t.Errorf("result owner id = %d, want %d", result.Owner.ID(), ow.ID())
	}

	saved, _ := repo.FindByID(context.Background(), ow.ID())
	if saved.LastLogin() == nil {
		t.Error("successful login should be stamped")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, repo, ow := newLoginFixture(t)

	_, err := uc.Execute(context.Background(), LoginCommand{Login: "tenant", Password: "wrong"})
	wantErrorType(t, err, apperrors.ErrorTypeInvalidCredentials)

	saved, _ := repo.FindByID(context.Background(), ow.ID())
	if saved.FailedLoginAttempts() != 1 {
		t.Errorf("failures = %d, want 1", saved.FailedLoginAttempts())
	}
}

func TestLogin_UnknownLoginSameError(t *testing.T) {
	uc, _, _ := newLoginFixture(t)

	unknownErr := func() error {
		_, err := uc.Execute(context.Background(), LoginCommand{Login: "nobody", Password: "x"})
		return err
	}()
	wrongErr := func() error {
		_, err := uc.Execute(context.Background(), LoginCommand{Login: "tenant", Password: "wrong"})
		return err
	}()

	wantErrorType(t, unknownErr, apperrors.ErrorTypeInvalidCredentials)
	wantErrorType(t, wrongErr, apperrors.ErrorTypeInvalidCredentials)
	if unknownErr.Error() != wrongErr.Error() {
		t.Error("unknown login and wrong password must be indistinguishable")
	}
}

func TestLogin_LockoutAfterRepeatedFailures(t *testing.T) {
	uc, _, _ := newLoginFixture(t)

	for i := 0; i < 3; i++ {
		_, err := uc.Execute(context.Background(), LoginCommand{Login: "tenant", Password: "wrong"})
		wantErrorType(t, err, apperrors.ErrorTypeInvalidCredentials)
	}

	// Even the correct password is refused while the window holds.
	_, err := uc.Execute(context.Background(), LoginCommand{Login: "tenant", Password: "correct horse"})
	wantErrorType(t, err, apperrors.ErrorTypeAccountLocked)
}

func TestLogin_InactiveAccount(t *testing.T) {
	uc, repo, ow := newLoginFixture(t)
	ow.Deactivate()
	if err := repo.Update(context.Background(), ow); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	_, err := uc.Execute(context.Background(), LoginCommand{Login: "tenant", Password: "correct horse"})
	wantErrorType(t, err, apperrors.ErrorTypeAccountInactive)
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	_, repo, ow := newLoginFixture(t)
	tokens := infraauth.NewJWTService("test-secret", 30, 7)

	pair, err := tokens.Generate(ow.ID(), ow.Login(), ow.IsAdmin())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	uc := NewRefreshTokenUseCase(repo, tokens, nopLogger{})

	if _, err := uc.Execute(context.Background(), RefreshTokenCommand{RefreshToken: pair.AccessToken}); err == nil {
		t.Error("an access token must not pass as a refresh token")
	}

	result, err := uc.Execute(context.Background(), RefreshTokenCommand{RefreshToken: pair.RefreshToken})
	if err != nil {
		t.Fatalf("Execute() with refresh token error = %v", err)
	}
	if result.AccessToken == "" {
		t.Error("refresh must issue a fresh access token")
	}
}
