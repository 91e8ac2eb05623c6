// Package share signs constraint sets into portable tokens, so a set
// of growth conditions can be handed to someone else and imported on
// their instance. HS256 with a shared server secret.
package share

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apiconstraints "github.com/atacflux/atacflux/pkg/api/types/constraints"
)

// ErrInvalidToken covers malformed, tampered and expired tokens.
var ErrInvalidToken = errors.New("invalid share token")

const issuer = "atacflux"

type claims struct {
	Constraints map[string]apiconstraints.Detail `json:"constraints"`
	jwt.RegisteredClaims
}

// Signer issues and verifies share tokens.
type Signer struct {
	secret []byte
	ttl    time.Duration

	// test seam
	now func() time.Time
}

// New makes a Signer. secret must not be empty; deployments without a
// configured secret should not construct a Signer at all and answer
// 503 instead.
func New(secret string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, errors.New("share secret is empty")
	}
	return &Signer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Export signs the constraint set into a token valid for the Signer's ttl.
func (s *Signer) Export(cons map[string]apiconstraints.Detail) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Constraints: cons,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	return token.SignedString(s.secret)
}

// Import verifies token and returns the embedded constraint set.
func (s *Signer) Import(token string) (map[string]apiconstraints.Detail, error) {
	parsed, err := jwt.ParseWithClaims(
		token, &claims{},
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) ||
			errors.Is(err, jwt.ErrSignatureInvalid) ||
			errors.Is(err, jwt.ErrTokenExpired) ||
			errors.Is(err, jwt.ErrTokenInvalidIssuer) {
			return nil, errors.Join(ErrInvalidToken, err)
		}
		return nil, err
	}

	c, ok := parsed.Claims.(*claims)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected claims type: %T", ErrInvalidToken, parsed.Claims)
	}
	return c.Constraints, nil
}
