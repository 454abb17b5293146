package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrExpired          = errors.New("token has expired")
	ErrMalformed        = errors.New("token is malformed")
	ErrWrongKind        = errors.New("wrong token kind")
)

// Kind distinguishes short-lived access tokens from long-lived refresh tokens.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Claims is the signed payload embedded in every token.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Kind  Kind   `json:"type"`
}

// RequireKind fails with ErrWrongKind unless the claims carry the expected kind.
// Verify does not check kind; call sites that care must call this themselves.
func (c *Claims) RequireKind(expected Kind) error {
	if c.Kind != expected {
		return ErrWrongKind
	}
	return nil
}

// Codec signs and verifies access/refresh tokens. It is constructed once at
// startup and safe for concurrent use.
type Codec struct {
	secret     []byte
	method     jwt.SigningMethod
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewCodec creates a Codec for the given HMAC algorithm (HS256/HS384/HS512).
func NewCodec(secret, algorithm, issuer string, accessTTL, refreshTTL time.Duration) *Codec {
	return &Codec{
		secret:     []byte(secret),
		method:     jwt.GetSigningMethod(algorithm),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Issue creates a signed token of the given kind for the user.
func (c *Codec) Issue(userID, email string, kind Kind, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: email,
		Kind:  kind,
	}

	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// IssuePair mints a fresh access+refresh token pair using the configured TTLs
// and returns the access-token lifetime in seconds.
func (c *Codec) IssuePair(userID, email string) (access, refresh string, expiresIn int64, err error) {
	access, err = c.Issue(userID, email, KindAccess, c.accessTTL)
	if err != nil {
		return "", "", 0, err
	}
	refresh, err = c.Issue(userID, email, KindRefresh, c.refreshTTL)
	if err != nil {
		return "", "", 0, err
	}
	return access, refresh, int64(c.accessTTL.Seconds()), nil
}

// Verify parses and validates a token string, returning its claims. The kind
// is not checked here; use Claims.RequireKind where it matters.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return c.secret, nil
	}, jwt.WithIssuer(c.issuer))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrMalformed
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrMalformed
	}

	return claims, nil
}
