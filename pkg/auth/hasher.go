package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher is the pluggable hashing capability used to verify
// credentials. Implementations must be safe for concurrent use.
type PasswordHasher interface {
	// Hash derives a storable hash from a plaintext password.
	Hash(password []byte) ([]byte, error)

	// Compare checks a plaintext password against a stored hash.
	// Returns an error on mismatch.
	Compare(hash, password []byte) error
}

// BcryptHasher is the default PasswordHasher.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher creates a bcrypt hasher. Non-positive cost falls back to
// the bcrypt default.
func NewBcryptHasher(cost int) BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return BcryptHasher{Cost: cost}
}

func (h BcryptHasher) Hash(password []byte) ([]byte, error) {
	return bcrypt.GenerateFromPassword(password, h.Cost)
}

func (h BcryptHasher) Compare(hash, password []byte) error {
	return bcrypt.CompareHashAndPassword(hash, password)
}
