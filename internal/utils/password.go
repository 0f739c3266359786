package utils

import (
    "errors"

    "golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when hashing an empty password.
var ErrEmptyPassword = errors.New("password must not be empty")

// HashPassword returns the bcrypt hash of plain at the given cost.  A cost
// outside bcrypt's range falls back to bcrypt.DefaultCost; passwords over
// 72 bytes are rejected by bcrypt itself.
func HashPassword(plain string, cost int) (string, error) {
    if plain == "" {
        return "", ErrEmptyPassword
    }
    if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
        cost = bcrypt.DefaultCost
    }
    b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
    if err != nil {
        return "", err
    }
    return string(b), nil
}

// VerifyPassword compares a stored bcrypt hash with a login attempt.
func VerifyPassword(hash, plain string) bool {
    return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
