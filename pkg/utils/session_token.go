package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the signed cookie payload tracking a visitor's quiz
// activity between submissions.
type SessionClaims struct {
	Submissions  int    `json:"submissions"`
	LastFortune  string `json:"last_fortune,omitempty"`
	SessionStart string `json:"session_start,omitempty"`
	jwt.RegisteredClaims
}

func CreateSessionToken(key []byte, claims *SessionClaims) (string, error) {
	if claims.SessionStart == "" {
		claims.SessionStart = time.Now().Format(time.RFC3339)
	}
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

func ValidateSessionToken(key []byte, tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrUnauthorized
	}
	return claims, nil
}
