package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"studentfees/cmd/student"
)

// ErrInvalidToken is returned when a token fails signature, expiry, or claim
// verification. All verification failures collapse into this one error so a
// client cannot distinguish "bad signature" from "expired" from "unknown".
var ErrInvalidToken = errors.New("invalid token")

// AccessClaims is the identity claim set embedded in access tokens.
type AccessClaims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	FullName string `json:"fullname"`
	FeesPaid bool   `json:"feesPaid"`
}

// RefreshClaims is the minimal claim set embedded in refresh tokens.
// Refresh tokens must not leak profile data; only the record id is present.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

// TokenManager issues and verifies the two token types with separate secrets.
type TokenManager struct {
	cfg Config
}

// NewTokenManager builds a TokenManager from validated config.
func NewTokenManager(cfg Config) (*TokenManager, error) {
	if len(cfg.AccessSecret) == 0 || len(cfg.RefreshSecret) == 0 {
		return nil, ErrConfig
	}
	if string(cfg.AccessSecret) == string(cfg.RefreshSecret) {
		return nil, ErrConfig
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, ErrConfig
	}
	return &TokenManager{cfg: cfg}, nil
}

// IssueAccess mints a short-lived access token for the given identity view.
func (m *TokenManager) IssueAccess(v student.View, now time.Time) (string, time.Time, error) {
	exp := now.Add(m.cfg.AccessTTL)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   v.ID,
			Issuer:    m.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email:    v.Email,
		FullName: v.FullName,
		FeesPaid: v.FeesPaid,
	})

	signed, err := tok.SignedString(m.cfg.AccessSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// IssueRefresh mints a longer-lived refresh token carrying only the record id.
func (m *TokenManager) IssueRefresh(id string, now time.Time) (string, time.Time, error) {
	exp := now.Add(m.cfg.RefreshTTL)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			Issuer:    m.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	signed, err := tok.SignedString(m.cfg.RefreshSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// VerifyAccess validates signature and expiry against the access secret and
// returns the embedded claims.
func (m *TokenManager) VerifyAccess(token string, now time.Time) (AccessClaims, error) {
	claims := AccessClaims{}
	if err := m.verify(token, &claims, m.cfg.AccessSecret, now); err != nil {
		return AccessClaims{}, err
	}
	if claims.Subject == "" {
		return AccessClaims{}, ErrInvalidToken
	}
	return claims, nil
}

// VerifyRefresh validates signature and expiry against the refresh secret.
func (m *TokenManager) VerifyRefresh(token string, now time.Time) (RefreshClaims, error) {
	claims := RefreshClaims{}
	if err := m.verify(token, &claims, m.cfg.RefreshSecret, now); err != nil {
		return RefreshClaims{}, err
	}
	if claims.Subject == "" {
		return RefreshClaims{}, ErrInvalidToken
	}
	return claims, nil
}

func (m *TokenManager) verify(token string, claims jwt.Claims, secret []byte, now time.Time) error {
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}
	return nil
}
