package auth

import (
	"crypto/rsa"
	"errors"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// JWTVerifier verifies RS256 tokens and resolves the owner identity from the
// sub or user_id claim. The service never issues credentials itself.
type JWTVerifier struct {
	pub *rsa.PublicKey
}

func NewJWTVerifier(pubPath string) (*JWTVerifier, error) {
	b, err := os.ReadFile(pubPath)
	if err != nil {
		return nil, err
	}
	pub, err := jwt.ParseRSAPublicKeyFromPEM(b)
	if err != nil {
		return nil, err
	}
	return &JWTVerifier{pub: pub}, nil
}

func NewJWTVerifierFromKey(pub *rsa.PublicKey) *JWTVerifier {
	return &JWTVerifier{pub: pub}
}

func (j *JWTVerifier) VerifyToken(token string) (string, error) {
	t, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return j.pub, nil
	}, jwt.WithValidMethods([]string{"RS256"}))
	if err != nil {
		return "", err
	}
	if !t.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	if v, ok := claims["sub"].(string); ok && v != "" {
		return v, nil
	}
	if v, ok := claims["user_id"].(string); ok && v != "" {
		return v, nil
	}
	return "", errors.New("user id not found in token")
}
