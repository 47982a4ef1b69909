package utils

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type ContextKey string

// Session tokens are valid for 7 days.
const TokenValidity = 7 * 24 * time.Hour

var jwtSecret []byte

// InitTokenSecret reads JWT_SECRET once at startup. A missing secret is a
// configuration error and must stop the process, never surface per request.
func InitTokenSecret() error {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	jwtSecret = []byte(secret)
	return nil
}

// SetTokenSecret overrides the signing secret, for tests.
func SetTokenSecret(secret string) {
	jwtSecret = []byte(secret)
}

func SignToken(userID int) (string, error) {
	claims := jwt.MapClaims{
		"sub": strconv.Itoa(userID),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(TokenValidity).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// VerifyToken checks signature and expiry and returns the embedded user id.
// It never panics past this boundary: any malformed, expired or tampered
// token comes back as an error.
func VerifyToken(tokenString string) (int, error) {
	parsedToken, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, err
	}

	if !parsedToken.Valid {
		return 0, errors.New("invalid login token")
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid login token")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, errors.New("invalid login token")
	}

	userID, err := strconv.Atoi(sub)
	if err != nil || userID <= 0 {
		return 0, errors.New("invalid login token")
	}

	return userID, nil
}
