package auth

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 10

// Hasher hashes and verifies passwords. Every password is suffixed with a
// process-wide secret salt before it reaches bcrypt, on top of bcrypt's own
// per-call random salt.
type Hasher struct {
	salt string
}

// NewHasher creates a Hasher using the given global salt.
func NewHasher(salt string) *Hasher {
	return &Hasher{salt: salt}
}

// Hash returns the bcrypt hash of the salted password.
func (h *Hasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password+h.salt), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether password matches the stored hash. A malformed stored
// hash yields false rather than an error; the caller only ever learns
// match/no-match. Comparison is constant-time via bcrypt.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password+h.salt)) == nil
}
