package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/edunova/internal/domain"
)

func sampleUser(id int64, email string) *domain.User {
	return &domain.User{
		ID:         id,
		FirstName:  "John",
		LastName:   "Doe",
		Email:      email,
		Role:       domain.RoleStudent,
		IsVerified: true,
		CreatedAt:  "2024-12-25T12:00:00",
		UpdatedAt:  "2024-12-25T12:00:00",
	}
}

func TestUserRepository_UpsertAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	user := sampleUser(42, "john@example.com")
	user.AuthToken = "token-1"
	user.IsLoggedIn = true
	if err := repo.Upsert(ctx, user); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	found, err := repo.GetByID(ctx, 42)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if *found != *user {
		t.Fatalf("expected %+v, got %+v", *user, *found)
	}

	byEmail, err := repo.GetByEmail(ctx, "john@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.ID != 42 {
		t.Fatalf("expected id 42, got %d", byEmail.ID)
	}
}

func TestUserRepository_GetByEmail_CaseSensitive(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	if err := repo.Upsert(ctx, sampleUser(1, "john@example.com")); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	_, err := repo.GetByEmail(ctx, "JOHN@example.com")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_GetLoggedIn(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	if _, err := repo.GetLoggedIn(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty store, got %v", err)
	}

	if err := repo.Upsert(ctx, sampleUser(1, "a@example.com")); err != nil {
		t.Fatalf("Upsert a: %v", err)
	}
	logged := sampleUser(2, "b@example.com")
	logged.AuthToken = "tok"
	logged.IsLoggedIn = true
	if err := repo.Upsert(ctx, logged); err != nil {
		t.Fatalf("Upsert b: %v", err)
	}

	found, err := repo.GetLoggedIn(ctx)
	if err != nil {
		t.Fatalf("GetLoggedIn: %v", err)
	}
	if found.ID != 2 || found.AuthToken != "tok" {
		t.Fatalf("expected user 2 with token, got %+v", found)
	}
}

func TestUserRepository_LogoutAll(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	for i, email := range []string{"a@example.com", "b@example.com"} {
		u := sampleUser(int64(i+1), email)
		u.AuthToken = "tok"
		u.IsLoggedIn = true
		if err := repo.Upsert(ctx, u); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}

	if err := repo.LogoutAll(ctx); err != nil {
		t.Fatalf("LogoutAll: %v", err)
	}

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected users to be kept, got %d", len(users))
	}
	for _, u := range users {
		if u.IsLoggedIn || u.AuthToken != "" {
			t.Fatalf("expected user %d logged out, got %+v", u.ID, u)
		}
	}
}

func TestUserRepository_UpdateAuthToken(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	u := sampleUser(7, "t@example.com")
	u.AuthToken = "old"
	u.IsLoggedIn = true
	if err := repo.Upsert(ctx, u); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := repo.UpdateAuthToken(ctx, 7, "new"); err != nil {
		t.Fatalf("UpdateAuthToken: %v", err)
	}
	found, err := repo.GetByID(ctx, 7)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.AuthToken != "new" || found.FirstName != "John" {
		t.Fatalf("expected only the token to change, got %+v", found)
	}

	if err := repo.UpdateAuthToken(ctx, 99, "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}
}

func TestUserRepository_UpsertDetails_KeepsSession(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	u := sampleUser(3, "s@example.com")
	u.AuthToken = "session"
	u.IsLoggedIn = true
	if err := repo.Upsert(ctx, u); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	remote := sampleUser(3, "s@example.com")
	remote.FirstName = "Renamed"
	if err := repo.UpsertDetails(ctx, remote); err != nil {
		t.Fatalf("UpsertDetails: %v", err)
	}

	found, err := repo.GetByID(ctx, 3)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.FirstName != "Renamed" {
		t.Fatalf("expected first name updated, got %q", found.FirstName)
	}
	if !found.IsLoggedIn || found.AuthToken != "session" {
		t.Fatalf("expected session columns untouched, got %+v", found)
	}
}

func TestUserRepository_UpsertDetails_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	if err := repo.UpsertDetails(ctx, sampleUser(1, "dup@example.com")); err != nil {
		t.Fatalf("UpsertDetails 1: %v", err)
	}
	err := repo.UpsertDetails(ctx, sampleUser(2, "dup@example.com"))
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	if err := repo.Upsert(ctx, sampleUser(999, "gone@example.com")); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := repo.Delete(ctx, 999); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
}
