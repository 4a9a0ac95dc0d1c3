package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

func HashToken(token string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(token), 10)
	return string(bytes), err
}

// CompareAdminToken checks a presented admin token against the configured
// secret. When hashed is non-empty it wins over the plain token so deployments
// can avoid keeping the secret in the environment in clear text.
func CompareAdminToken(presented, plain, hashed string) bool {
	if hashed != "" {
		return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(presented)) == nil
	}
	if plain == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(plain)) == 1
}

func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid token length")
	}

	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	return hex.EncodeToString(bytes), nil
}
