package reconciler

import (
	"context"
	"errors"
	"testing"

	"chatwarden/internal/application/reconciler/testutil"
	"chatwarden/internal/domain/employee"
	"chatwarden/internal/infrastructure/telegram"
)

// TestResolver_MatchByTelegramID verifies the primary identity rule: a stored
// telegram_user_id wins, and the live username and name refresh the record.
func TestResolver_MatchByTelegramID(t *testing.T) {
	repo := testutil.NewMockEmployeeRepository()
	log := testutil.NewMockLogger()
	resolver := NewResolver(repo, log)

	stored, err := employee.NewEmployee(1, "Old Name", int64Ptr(100), strPtr("oldname"), false)
	if err != nil {
		t.Fatalf("NewEmployee() error = %v", err)
	}
	stored.Deactivate()
	if err := repo.Create(context.Background(), stored); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := resolver.Resolve(context.Background(), 1, telegram.User{
		ID:        100,
		FirstName: "New",
		LastName:  "Name",
		Username:  "newname",
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got.ID() != stored.ID() {
		t.Errorf("resolved employee id = %d, want %d", got.ID(), stored.ID())
	}
	if got.UsernameValue() != "newname" {
		t.Errorf("username = %q, want %q", got.UsernameValue(), "newname")
	}
	if got.FullName() != "New Name" {
		t.Errorf("full name = %q, want %q", got.FullName(), "New Name")
	}
	if !got.IsActive() {
		t.Error("employee should be reactivated on observation")
	}
}

// TestResolver_AdoptTelegramID verifies the secondary rule: a username-only
// record adopts the remote id on first sighting.
func TestResolver_AdoptTelegramID(t *testing.T) {
	repo := testutil.NewMockEmployeeRepository()
	log := testutil.NewMockLogger()
	resolver := NewResolver(repo, log)

	stored, err := employee.NewEmployee(1, "Jane Doe", nil, strPtr("janedoe"), false)
	if err != nil {
		t.Fatalf("NewEmployee() error = %v", err)
	}
	if err := repo.Create(context.Background(), stored); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := resolver.Resolve(context.Background(), 1, telegram.User{
		ID:        200,
		FirstName: "Jane",
		LastName:  "Doe",
		Username:  "JaneDoe", // different case than stored
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got.ID() != stored.ID() {
		t.Errorf("resolved employee id = %d, want %d", got.ID(), stored.ID())
	}
	if !got.HasTelegramID() || got.TelegramIDValue() != 200 {
		t.Errorf("telegram id = %d, want 200", got.TelegramIDValue())
	}
}

// TestResolver_UsernameCollision verifies that a username bound to a different
// remote id deactivates the stored record and resolves the remote user fresh.
func TestResolver_UsernameCollision(t *testing.T) {
	repo := testutil.NewMockEmployeeRepository()
	log := testutil.NewMockLogger()
	resolver := NewResolver(repo, log)

	stored, err := employee.NewEmployee(1, "Old Holder", int64Ptr(100), strPtr("shared"), false)
	if err != nil {
		t.Fatalf("NewEmployee() error = %v", err)
	}
	if err := repo.Create(context.Background(), stored); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := resolver.Resolve(context.Background(), 1, telegram.User{
		ID:        999, // disagrees with the stored binding
		FirstName: "New",
		LastName:  "Holder",
		Username:  "shared",
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got.ID() == stored.ID() {
		t.Error("collision must not resolve to the stored record")
	}
	if got.TelegramIDValue() != 999 {
		t.Errorf("new record telegram id = %d, want 999", got.TelegramIDValue())
	}
	if !got.IsExternal() {
		t.Error("freshly observed record should be external")
	}

	kept, err := repo.FindByID(context.Background(), stored.ID())
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if kept.IsActive() {
		t.Error("stored record should be deactivated after collision")
	}
	if kept.TelegramIDValue() != 100 {
		t.Errorf("stored record telegram id = %d, want unchanged 100", kept.TelegramIDValue())
	}
}

// TestResolver_CreatesExternal verifies the fallback rule: an unknown remote
// user becomes an active external record.
func TestResolver_CreatesExternal(t *testing.T) {
	repo := testutil.NewMockEmployeeRepository()
	log := testutil.NewMockLogger()
	resolver := NewResolver(repo, log)

	got, err := resolver.Resolve(context.Background(), 1, telegram.User{
		ID:        300,
		FirstName: "Stranger",
		Username:  "stranger",
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got.ID() == 0 {
		t.Fatal("created record was not persisted")
	}
	if !got.IsExternal() || !got.IsActive() {
		t.Errorf("created record external=%v active=%v, want both true", got.IsExternal(), got.IsActive())
	}
	if got.IsBot() {
		t.Error("resolver must never produce bot records")
	}
	if got.FullName() != "Stranger" {
		t.Errorf("full name = %q, want %q", got.FullName(), "Stranger")
	}
}

// TestResolver_TenantScope verifies that matching never crosses owners.
func TestResolver_TenantScope(t *testing.T) {
	repo := testutil.NewMockEmployeeRepository()
	log := testutil.NewMockLogger()
	resolver := NewResolver(repo, log)

	other, err := employee.NewEmployee(2, "Other Tenant", int64Ptr(100), strPtr("otheruser"), false)
	if err != nil {
		t.Fatalf("NewEmployee() error = %v", err)
	}
	if err := repo.Create(context.Background(), other); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := resolver.Resolve(context.Background(), 1, telegram.User{
		ID:       100,
		Username: "otheruser",
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got.ID() == other.ID() {
		t.Error("resolution crossed the owner boundary")
	}
	if got.UserID() != 1 {
		t.Errorf("created record user_id = %d, want 1", got.UserID())
	}
}

// TestResolver_MissingRemoteID verifies a zero remote id is rejected.
func TestResolver_MissingRemoteID(t *testing.T) {
	repo := testutil.NewMockEmployeeRepository()
	log := testutil.NewMockLogger()
	resolver := NewResolver(repo, log)

	_, err := resolver.Resolve(context.Background(), 1, telegram.User{Username: "ghost"})
	if !errors.Is(err, employee.ErrNoIdentity) {
		t.Errorf("Resolve() error = %v, want ErrNoIdentity", err)
	}
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }
