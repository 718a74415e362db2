package utils

import (
	"errors"
	"fmt"
	"time"

	"transcript-app/infrastructure/logger"

	"github.com/golang-jwt/jwt"
)

// ErrInvalidToken is returned for tokens that are malformed, forged or expired.
var ErrInvalidToken = errors.New("invalid session token")

func GetCurrentTime() time.Time {
	return time.Now().UTC()
}

// SessionClaims is the payload of the session cookie: only a reference to the server-side session.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.StandardClaims
}

// GenerateSessionToken signs sessionID with HS256.
func GenerateSessionToken(sessionID string, expiresAt time.Time, secretKey string) (string, error) {
	claims := SessionClaims{
		SessionID: sessionID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  GetCurrentTime().Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while generate token")
		return "", err
	}
	return tokenString, nil
}

// ParseSessionToken verifies the signature and expiry and returns the session ID.
func ParseSessionToken(tokenString, secretKey string) (string, error) {
	var claims SessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil || !token.Valid || claims.SessionID == "" {
		return "", ErrInvalidToken
	}
	return claims.SessionID, nil
}
