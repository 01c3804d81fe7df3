package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/garnizeh/careerpages/pkg/models"
	"github.com/garnizeh/careerpages/pkg/repository/mock"
	"golang.org/x/crypto/bcrypt"
)

// countingChecker records every hash Authenticate verifies against.
type countingChecker struct {
	*Hasher
	hashes []string
}

func (c *countingChecker) Verify(password, hash string) bool {
	c.hashes = append(c.hashes, hash)
	return c.Hasher.Verify(password, hash)
}

func TestAuthenticate_UnknownEmailRunsBcrypt(t *testing.T) {
	h := NewHasher(6)
	hash, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	store := mock.NewStore()
	c := &models.Company{Slug: "acme", Name: "Acme"}
	u := &models.User{Email: "jane@acme.test", Name: "Jane", PasswordHash: hash}
	if err := store.CreateTenant(context.Background(), c, u, nil); err != nil {
		t.Fatalf("CreateTenant: %v", err)
	}

	checker := &countingChecker{Hasher: h}
	iss := &Issuer{users: store, companies: store, hasher: checker, secret: []byte("s"), duration: time.Hour, now: time.Now}

	for _, email := range []string{"jane@acme.test", "nobody@acme.test"} {
		checker.hashes = nil
		_, err := iss.Authenticate(context.Background(), email, "wrong-password")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("%s: expected ErrInvalidCredentials, got %v", email, err)
		}
		if len(checker.hashes) != 1 {
			t.Fatalf("%s: expected one bcrypt comparison, got %d", email, len(checker.hashes))
		}
		cost, err := bcrypt.Cost([]byte(checker.hashes[0]))
		if err != nil || cost != 6 {
			t.Fatalf("%s: compared against hash of cost %d (%v), want 6", email, cost, err)
		}
	}
}

func TestDummyHashIsStableAndMatchesNothing(t *testing.T) {
	h := NewHasher(4)
	d := h.dummyHash()
	if d == "" || d != h.dummyHash() {
		t.Fatalf("dummy hash should be computed once, got %q", d)
	}
	for _, pw := range []string{"", "password123", "wrong-password"} {
		if h.Verify(pw, d) {
			t.Fatalf("dummy hash matched %q", pw)
		}
	}
}
