package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

const tokenHeader = `{"alg":"HS256","typ":"JWT"}`

// Claims are the signed token payload handed back on login.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Exp   int64  `json:"exp"`
}

// GenerateAuthToken issues an HS256-signed JWT for the given identity. The
// secret is base64-encoded key material from configuration.
func GenerateAuthToken(email, name, secret string, expiresIn time.Duration) (string, error) {
	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to decode token secret: %w", err)
	}

	claims := Claims{
		Email: email,
		Name:  name,
		Exp:   time.Now().UTC().Add(expiresIn).Unix(),
	}
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to encode token claims: %w", err)
	}

	signingInput := base64.RawURLEncoding.EncodeToString([]byte(tokenHeader)) +
		"." + base64.RawURLEncoding.EncodeToString(payload)
	return signingInput + "." + sign(signingInput, key), nil
}

// VerifyAuthToken checks the signature and expiry of a token produced by
// GenerateAuthToken and returns its claims.
func VerifyAuthToken(token, secret string) (*Claims, error) {
	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to decode token secret: %w", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, ErrInvalidToken
	}

	signingInput := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(sign(signingInput, key)), []byte(parts[2])) {
		return nil, ErrInvalidToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, ErrInvalidToken
	}
	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Exp <= time.Now().UTC().Unix() {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// GenerateRefreshToken returns size random bytes, base64-encoded.
func GenerateRefreshToken(size int) (string, error) {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

func sign(signingInput string, key []byte) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(signingInput))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
