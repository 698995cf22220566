// Package auth provides the credential primitives for the API: one-way
// password hashing and signed, time-bounded session tokens. Both are
// deliberately stateless; there is no server-side session storage.
package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a bcrypt hash of the given plaintext password.
// The hash embeds its own salt and cost and is safe to store as-is.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether the plaintext password matches the stored
// bcrypt hash. The hash is treated as an opaque one-way value; any
// malformed hash simply fails verification.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
