package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWT issues and verifies backend access tokens signed with HS256.
type JWT struct {
	secret []byte
	expiry time.Duration
}

func NewJWT(secret string, expiryHours int) *JWT {
	return &JWT{
		secret: []byte(secret),
		expiry: time.Duration(expiryHours) * time.Hour,
	}
}

// Issue signs an access token carrying the user ID and role.
func (j *JWT) Issue(userID uuid.UUID, role string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(j.expiry)

	claims := accessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify parses and validates a backend access token.
func (j *JWT) Verify(tokenString string) (*Claims, error) {
	var claims accessClaims

	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(t *jwt.Token) (any, error) { return j.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("access token has no subject")
	}

	return &Claims{
		UserID: claims.Subject,
		Role:   claims.Role,
	}, nil
}
