package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)

// ResetTokenIssuer signs and verifies password-reset tokens.
// Tokens are HMAC-signed JWTs carrying the user ID and a unique token ID;
// the token ID lets the caller enforce single use.
type ResetTokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

type resetClaims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
}

// NewResetTokenIssuer creates an issuer with the given signing secret and lifetime
func NewResetTokenIssuer(secret string, ttl time.Duration) *ResetTokenIssuer {
	return &ResetTokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed reset token for the user and returns it with its token ID
func (i *ResetTokenIssuer) Issue(userID int64) (token string, tokenID string, err error) {
	tokenID = uuid.New().String()
	now := time.Now()

	claims := resetClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Issuer:    "scamsavvy",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		UserID: userID,
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", "", err
	}
	return token, tokenID, nil
}

// Verify parses a reset token and returns the user ID and token ID it carries
func (i *ResetTokenIssuer) Verify(token string) (userID int64, tokenID string, err error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	claims := &resetClaims{}

	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, "", ErrInvalidResetToken
	}
	if claims.Issuer != "scamsavvy" || claims.UserID == 0 || claims.ID == "" {
		return 0, "", ErrInvalidResetToken
	}

	return claims.UserID, claims.ID, nil
}
