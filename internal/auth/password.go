// Package auth provides the credential primitives of the service: one-way
// password hashing and signed session tokens.
package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher abstracts the hashing algorithm so the service layer never
// touches bcrypt directly and tests can substitute a cheap implementation.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(plain string) (string, error)

	// Verify reports whether plain matches the stored hash.  It returns
	// false for any mismatch, including a malformed hash.
	Verify(plain, hash string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt at a fixed cost.  The
// salt is generated per call and embedded in the output, so hashing the
// same password twice yields different strings.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher returns a hasher with the given cost.  A cost outside
// bcrypt's valid range falls back to the library default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{Cost: cost}
}

// Hash returns the bcrypt hash of plain.
func (h *BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify safely compares a bcrypt hash and a plain password.  bcrypt's
// comparison is constant time over the derived key.
func (h *BcryptHasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
