package mockapi

import (
	"errors"
	"testing"
	"time"

	"github.com/msomdec/edunova/internal/domain"
)

const testJWTSecret = "test-secret-key-for-unit-tests-0123456789"

func newTestAccounts(t *testing.T) (*accounts, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)}
	// Use cost 4 for fast tests.
	return newAccounts(testJWTSecret, 4, time.Hour, clock.now), clock
}

func TestAccounts_Register_Success(t *testing.T) {
	a, _ := newTestAccounts(t)

	user, err := a.register(Account{FirstName: "New", LastName: "User", Email: "new@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected user ID to be set")
	}
	if user.Role != string(domain.RoleStudent) {
		t.Fatalf("expected default role %s, got %s", domain.RoleStudent, user.Role)
	}
	if user.CreatedAt != "2024-09-01T08:00:00Z" {
		t.Fatalf("unexpected created_at %s", user.CreatedAt)
	}
}

func TestAccounts_Register_DuplicateEmail(t *testing.T) {
	a, _ := newTestAccounts(t)

	if _, err := a.register(Account{FirstName: "A", LastName: "A", Email: "dup@example.com", Password: "password123"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := a.register(Account{FirstName: "B", LastName: "B", Email: "dup@example.com", Password: "password456"})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAccounts_Register_WeakPassword(t *testing.T) {
	a, _ := newTestAccounts(t)

	_, err := a.register(Account{FirstName: "W", LastName: "W", Email: "weak@example.com", Password: "short"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAccounts_LoginAndValidate(t *testing.T) {
	a, _ := newTestAccounts(t)
	registered, _ := a.register(Account{FirstName: "L", LastName: "L", Email: "login@example.com", Password: "password123"})

	if _, _, err := a.login("login@example.com", "wrong"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong password, got %v", err)
	}
	if _, _, err := a.login("nobody@example.com", "password123"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown email, got %v", err)
	}

	user, token, err := a.login("login@example.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.LastLogin == "" {
		t.Fatal("expected last_login to be set")
	}

	got, sessionID, err := a.validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.ID != registered.ID {
		t.Fatalf("expected user %d, got %d", registered.ID, got.ID)
	}
	if sessionID == 0 {
		t.Fatal("expected a session id")
	}
}

func TestAccounts_ValidateRejectsRevokedAndExpired(t *testing.T) {
	a, clock := newTestAccounts(t)
	a.register(Account{FirstName: "R", LastName: "R", Email: "r@example.com", Password: "password123"})

	_, token, _ := a.login("r@example.com", "password123")
	_, sid, err := a.validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if !a.revoke(sid) {
		t.Fatal("expected revoke to find the session")
	}
	if _, _, err := a.validate(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected revoked token to be rejected, got %v", err)
	}

	_, token, _ = a.login("r@example.com", "password123")
	clock.advance(2 * time.Hour)
	if _, _, err := a.validate(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}

func TestAccounts_ValidateRejectsForeignSignature(t *testing.T) {
	a, _ := newTestAccounts(t)
	a.register(Account{FirstName: "F", LastName: "F", Email: "f@example.com", Password: "password123"})
	_, token, _ := a.login("f@example.com", "password123")

	other := newAccounts("another-secret-key-that-is-long-enough!", 4, time.Hour, time.Now)
	if _, _, err := other.validate(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, _, err := a.validate("not-a-jwt"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for garbage, got %v", err)
	}
}

func TestAccounts_RemoveDropsSessions(t *testing.T) {
	a, _ := newTestAccounts(t)
	user, _ := a.register(Account{FirstName: "D", LastName: "D", Email: "d@example.com", Password: "password123"})
	a.login("d@example.com", "password123")
	a.login("d@example.com", "password123")

	if n := len(a.listSessions(user.ID)); n != 2 {
		t.Fatalf("expected 2 sessions, got %d", n)
	}
	if err := a.remove(user.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if n := len(a.listSessions(0)); n != 0 {
		t.Fatalf("expected no sessions left, got %d", n)
	}
	if err := a.remove(user.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
