package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCreateUserAndAuthenticate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreateUser(ctx, "komal", "komal@example.com", "secret")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected a non-zero user id")
	}

	byUsername, err := store.Authenticate(ctx, "komal", "secret")
	if err != nil {
		t.Fatalf("Authenticate by username: %v", err)
	}
	if byUsername.ID != created.ID {
		t.Fatalf("authenticated wrong user: %+v", byUsername)
	}

	byEmail, err := store.Authenticate(ctx, "komal@example.com", "secret")
	if err != nil {
		t.Fatalf("Authenticate by email: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Fatalf("authenticated wrong user: %+v", byEmail)
	}
}

func TestAuthenticateRejectsBadPassword(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.CreateUser(ctx, "komal", "komal@example.com", "secret"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	_, err := store.Authenticate(ctx, "komal", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	_, err = store.Authenticate(ctx, "nobody", "secret")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestCreateUserDetectsDuplicates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.CreateUser(ctx, "komal", "komal@example.com", "secret"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	_, err := store.CreateUser(ctx, "komal", "other@example.com", "secret")
	if !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser for username collision, got %v", err)
	}

	_, err = store.CreateUser(ctx, "other", "komal@example.com", "secret")
	if !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser for email collision, got %v", err)
	}
}

func TestFindUserAndLogChat(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreateUser(ctx, "komal", "komal@example.com", "secret")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	found, ok, err := store.FindUser(ctx, "komal")
	if err != nil || !ok {
		t.Fatalf("FindUser: ok=%v err=%v", ok, err)
	}
	if found.ID != created.ID {
		t.Fatalf("found wrong user: %+v", found)
	}

	_, ok, err = store.FindUser(ctx, "ghost")
	if err != nil {
		t.Fatalf("FindUser unknown: %v", err)
	}
	if ok {
		t.Fatal("unknown identifier must not resolve")
	}

	if err := store.LogChat(ctx, created.ID, "s1", "hello", "hi there"); err != nil {
		t.Fatalf("LogChat: %v", err)
	}
}
