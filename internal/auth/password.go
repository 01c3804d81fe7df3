package auth

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// ErrPasswordTooLong is returned by Hash for passwords over MaxPasswordBytes.
var ErrPasswordTooLong = errors.New("password longer than 72 bytes")

// Hasher hashes and checks passwords with bcrypt.
type Hasher struct {
	cost int

	dummyOnce sync.Once
	dummy     string
}

// NewHasher returns a Hasher using cost; values outside bcrypt's range fall
// back to bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether password matches hash. A malformed hash is a
// mismatch.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// dummyHash is a valid hash at h's cost that matches no real password.
// Checking against it makes a lookup miss cost the same as a wrong password.
func (h *Hasher) dummyHash() string {
	h.dummyOnce.Do(func() {
		b, err := bcrypt.GenerateFromPassword([]byte("no user has this password"), h.cost)
		if err == nil {
			h.dummy = string(b)
		}
	})
	return h.dummy
}
