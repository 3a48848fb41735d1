package auth

import (
	"errors"
	"fmt"

	"github.com/alexivanou/geotrip-api/internal/apperr"
	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes and verifies passwords with bcrypt.
type Hasher struct {
	cost  int
	dummy []byte
}

// NewHasher returns a Hasher using the given bcrypt cost. Out-of-range costs
// fall back to bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	return &Hasher{cost: cost, dummy: dummy}
}

// Hash returns the salted bcrypt hash of plain.
func (h *Hasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperr.Wrap(apperr.BadRequest, err, "password is too long")
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}

// Verify compares plain with hash in constant time.
func (h *Hasher) Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// VerifyMissing burns the same work as Verify for an identifier that does not
// exist, so both failure paths take the same time. It always returns false.
func (h *Hasher) VerifyMissing(plain string) bool {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(plain))
	return false
}
