package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token purposes. Access tokens authenticate API requests; the other two
// are emailed links and never accepted by the auth middleware.
const (
	PurposeAccess        = "access"
	PurposeVerifyEmail   = "verify-email"
	PurposeResetPassword = "reset-password"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrWrongPurpose = errors.New("token used for wrong purpose")
)

// AccessClaims is the signed payload of a bearer token. Role travels in the
// claims so no out-of-band identity headers are needed.
type AccessClaims struct {
	IsAdmin bool `json:"adm"`
	jwt.RegisteredClaims
}

// NewAccessToken issues a signed bearer token for the user.
func NewAccessToken(secret string, userID uuid.UUID, isAdmin bool, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseAccessToken verifies signature and expiry and returns the claims.
func ParseAccessToken(secret, raw string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

type emailClaims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// NewEmailToken issues a purpose-scoped, time-limited token bound to an
// email address, used in verification and password-reset links.
func NewEmailToken(secret, email, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := emailClaims{
		Email:   email,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseEmailToken returns the email bound to the token, rejecting tokens
// minted for a different purpose.
func ParseEmailToken(secret, raw, purpose string) (string, error) {
	claims := &emailClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Purpose != purpose {
		return "", ErrWrongPurpose
	}
	return claims.Email, nil
}
