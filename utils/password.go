package utils

import (
	"github.com/matthewhartstonge/argon2"
)

// PasswordHasher hashes and verifies passwords with argon2id. Every hash
// carries its own random salt and parameters in the encoded string.
type PasswordHasher struct {
	config argon2.Config
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{config: argon2.DefaultConfig()}
}

// NewPasswordHasherWithConfig is mostly useful in tests, where the default
// memory cost makes suites slow.
func NewPasswordHasherWithConfig(cfg argon2.Config) *PasswordHasher {
	return &PasswordHasher{config: cfg}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	encoded, err := h.config.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// Verify reports whether password matches encodedHash. A malformed hash is
// an error, a wrong password is just false.
func (h *PasswordHasher) Verify(encodedHash, password string) (bool, error) {
	ok, err := argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
	if err != nil {
		return false, err
	}
	return ok, nil
}
