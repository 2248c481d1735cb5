package owner

import (
	"testing"
	"time"
)

func newTestOwner(t *testing.T) *Owner {
	t.Helper()
	o, err := NewOwner("tenant", "hash", "Test", "Owner", "t@example.com", "", "en", false)
	if err != nil {
		t.Fatalf("NewOwner() error = %v", err)
	}
	return o
}

func TestNewOwner_Validation(t *testing.T) {
	if _, err := NewOwner("ab", "hash", "", "", "", "", "", false); err != ErrInvalidLogin {
		t.Errorf("short login: error = %v, want ErrInvalidLogin", err)
	}
	if _, err := NewOwner("  ab  ", "hash", "", "", "", "", "", false); err != ErrInvalidLogin {
		t.Errorf("padded short login: error = %v, want ErrInvalidLogin", err)
	}
	if _, err := NewOwner("tenant", "", "", "", "", "", "", false); err != ErrEmptyPasswordHash {
		t.Errorf("empty hash: error = %v, want ErrEmptyPasswordHash", err)
	}

	o, err := NewOwner("tenant", "hash", "", "", "", "", "", false)
	if err != nil {
		t.Fatalf("NewOwner() error = %v", err)
	}
	if o.LanguageCode() != "en" {
		t.Errorf("language = %q, want default en", o.LanguageCode())
	}
	if !o.IsActive() {
		t.Error("new owner should start active")
	}
}

func TestOwner_LockoutAfterRepeatedFailures(t *testing.T) {
	o := newTestOwner(t)
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		o.RecordLoginFailure(now, 5, 15*time.Minute)
	}
	if o.IsLocked(now) {
		t.Fatal("owner locked before the failure threshold")
	}
	if o.FailedLoginAttempts() != 4 {
		t.Errorf("failures = %d, want 4", o.FailedLoginAttempts())
	}

	o.RecordLoginFailure(now, 5, 15*time.Minute)
	if !o.IsLocked(now) {
		t.Fatal("owner should be locked at the threshold")
	}
	if o.FailedLoginAttempts() != 0 {
		t.Errorf("failures = %d, counter should reset on lockout", o.FailedLoginAttempts())
	}

	if o.IsLocked(now.Add(16 * time.Minute)) {
		t.Error("lockout should expire after the window")
	}
}

func TestOwner_RecordLoginClearsFailureState(t *testing.T) {
	o := newTestOwner(t)
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		o.RecordLoginFailure(now, 5, 15*time.Minute)
	}
	o.RecordLogin(now.Add(20 * time.Minute))

	if o.IsLocked(now.Add(21 * time.Minute)) {
		t.Error("successful login should clear the lockout")
	}
	if o.FailedLoginAttempts() != 0 {
		t.Errorf("failures = %d, want 0 after login", o.FailedLoginAttempts())
	}
	if o.LastLogin() == nil {
		t.Error("last login should be stamped")
	}
}

func TestOwner_LockoutDisabledWithZeroThreshold(t *testing.T) {
	o := newTestOwner(t)
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 50; i++ {
		o.RecordLoginFailure(now, 0, 15*time.Minute)
	}
	if o.IsLocked(now) {
		t.Error("zero threshold must never lock the account")
	}
	if o.FailedLoginAttempts() != 50 {
		t.Errorf("failures = %d, want 50", o.FailedLoginAttempts())
	}
}

func TestOwner_ChangePassword(t *testing.T) {
	o := newTestOwner(t)

	if err := o.ChangePassword(""); err != ErrEmptyPasswordHash {
		t.Errorf("empty hash: error = %v, want ErrEmptyPasswordHash", err)
	}
	if err := o.ChangePassword("newhash"); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}
	if o.PasswordHash() != "newhash" {
		t.Errorf("hash = %q, want %q", o.PasswordHash(), "newhash")
	}
}

func TestOwner_FullName(t *testing.T) {
	o := newTestOwner(t)
	if o.FullName() != "Test Owner" {
		t.Errorf("full name = %q, want %q", o.FullName(), "Test Owner")
	}

	o.UpdateProfile("Solo", "", "", "", "")
	if o.FullName() != "Solo" {
		t.Errorf("full name = %q, want %q", o.FullName(), "Solo")
	}
	if o.LanguageCode() != "en" {
		t.Errorf("language = %q, empty update must keep the previous value", o.LanguageCode())
	}
}
