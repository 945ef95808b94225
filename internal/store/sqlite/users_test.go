package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/reeltrack/reeltrack-server/internal/store"
)

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := makeTestUser("user-1", "Alice@Example.com")
	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := s.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Email != user.Email {
		t.Errorf("Email: got %q, want %q", got.Email, user.Email)
	}
	if got.PasswordHash != user.PasswordHash {
		t.Errorf("PasswordHash: got %q, want %q", got.PasswordHash, user.PasswordHash)
	}
	if got.Name != user.Name {
		t.Errorf("Name: got %q, want %q", got.Name, user.Name)
	}
	if !got.CreatedAt.Equal(user.CreatedAt) {
		t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, user.CreatedAt)
	}
	if got.LastLoginAt != nil {
		t.Errorf("LastLoginAt: got %v, want nil", got.LastLoginAt)
	}
}

func TestGetUserByEmail_CaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateUser(t, s, "user-1", "Alice@Example.com")

	got, err := s.GetUserByEmail(ctx, "  alice@EXAMPLE.com ")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != "user-1" {
		t.Errorf("ID: got %q, want %q", got.ID, "user-1")
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateUser(t, s, "user-1", "alice@example.com")

	err := s.CreateUser(ctx, makeTestUser("user-2", "ALICE@example.com"))
	if !errors.Is(err, store.ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
}

func TestCreateUser_DuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateUser(t, s, "user-1", "alice@example.com")

	err := s.CreateUser(ctx, makeTestUser("user-1", "bob@example.com"))
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetUser(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetUser: expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetUserByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetUserByEmail: expected ErrNotFound, got %v", err)
	}
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := mustCreateUser(t, s, "user-1", "alice@example.com")

	login := time.Now().Add(time.Minute)
	user.Name = "Alice"
	user.LastLoginAt = &login
	user.UpdatedAt = login
	if err := s.UpdateUser(ctx, user); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	got, err := s.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Name != "Alice" {
		t.Errorf("Name: got %q, want %q", got.Name, "Alice")
	}
	if got.LastLoginAt == nil || !got.LastLoginAt.Equal(login) {
		t.Errorf("LastLoginAt: got %v, want %v", got.LastLoginAt, login)
	}
}

func TestUpdateUser_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateUser(context.Background(), makeTestUser("ghost", "ghost@example.com"))
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
