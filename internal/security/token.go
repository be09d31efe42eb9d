package security

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Claims are the JWT payload of an access token. Subject holds the user id
// in decimal form.
type Claims struct {
	CSRF string `json:"csrf,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the numeric subject.
func (c *Claims) UserID() (int64, error) {
	if c == nil || c.Subject == "" {
		return 0, errors.New("token has no subject")
	}
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("token subject: %w", err)
	}
	return id, nil
}

// IssuedToken is a signed access token together with the values the
// transport needs to set its cookies.
type IssuedToken struct {
	Token     string
	CSRF      string
	ExpiresAt time.Time
}

// TokenIssuer mints and verifies HS256 access tokens. Tokens are stateless;
// validity is decided by signature, issuer and expiry alone.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret, issuer string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("token secret is empty")
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &TokenIssuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// WithClock returns a copy of the issuer that reads time from now.
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	clone := *i
	clone.now = now
	return &clone
}

// Issue signs a token for userID that expires TTL from now.
func (i *TokenIssuer) Issue(userID int64) (IssuedToken, error) {
	csrf, err := randomToken(24)
	if err != nil {
		return IssuedToken{}, err
	}

	now := i.now()
	expiresAt := now.Add(i.ttl)
	claims := &Claims{
		CSRF: csrf,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    i.issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("sign token: %w", err)
	}
	return IssuedToken{Token: signed, CSRF: csrf, ExpiresAt: expiresAt}, nil
}

// Parse verifies the token and returns its claims. Any failure (bad
// signature, other algorithm, expired, foreign issuer, missing subject) is
// reported as an error; callers should not distinguish between them.
func (i *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	now := i.now()
	if claims.ExpiresAt == nil || !claims.VerifyExpiresAt(now, true) {
		return nil, errors.New("token is expired")
	}
	if i.issuer != "" && !claims.VerifyIssuer(i.issuer, true) {
		return nil, errors.New("token issuer mismatch")
	}
	if _, err := claims.UserID(); err != nil {
		return nil, err
	}
	return claims, nil
}

func randomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
