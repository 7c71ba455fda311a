package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch is returned when a password does not match the stored hash.
var ErrMismatch = errors.New("password does not match")

// maxPasswordBytes is the longest input bcrypt reads; anything after it is ignored.
const maxPasswordBytes = 72

// PasswordHasher hashes and verifies passwords with bcrypt.
type PasswordHasher struct {
	cost      int
	dummyHash []byte
}

// NewPasswordHasher creates a hasher using the given bcrypt cost.
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("user-auth-be/dummy"), cost)
	if err != nil {
		return nil, fmt.Errorf("generate dummy hash: %w", err)
	}
	return &PasswordHasher{cost: cost, dummyHash: dummy}, nil
}

// Hash returns the bcrypt hash of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare checks password against hash. It returns ErrMismatch for a wrong
// password and any other error for a malformed hash. Passwords longer than
// bcrypt accepts never match, since Hash refuses to produce them.
func (h *PasswordHasher) Compare(hash, password string) error {
	if len(password) > maxPasswordBytes {
		h.CompareDummy(password)
		return ErrMismatch
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}

// CompareDummy spends the same work as Compare for an account that does not
// exist, so unknown emails and wrong passwords take similar time.
func (h *PasswordHasher) CompareDummy(password string) {
	if len(password) > maxPasswordBytes {
		password = password[:maxPasswordBytes]
	}
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(password))
}
