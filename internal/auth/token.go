package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/innoventory/innoventory/internal/shared"
)

// DefaultSecret is the fallback signing key used when AUTH_SECRET is unset.
// A known hardening gap kept for parity with existing deployments; startup
// logs a warning whenever it is in effect.
const DefaultSecret = "innoventory-dev-secret"

type tokenClaims struct {
	AccountID   int64    `json:"uid"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// Signer issues signed bearer tokens embedding identity and permissions.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

// NewSigner constructs a Signer. A zero ttl falls back to 24 hours.
func NewSigner(secret string, ttl time.Duration) Signer {
	if secret == "" {
		secret = DefaultSecret
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return Signer{secret: []byte(secret), ttl: ttl}
}

// TTL exposes the configured token lifetime.
func (s Signer) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for the given identity. The permission list is frozen
// into the token; later grant edits only take effect after expiry.
func (s Signer) Issue(accountID int64, email, role string, permissions []string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		AccountID:   accountID,
		Email:       email,
		Role:        role,
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verifier resolves a bearer string into claims. Implementations return nil
// on any verification failure so callers respond 401 uniformly.
type Verifier interface {
	Verify(ctx context.Context, bearer string) *shared.Claims
}

// JWTVerifier validates signature and expiry against the server secret.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier constructs a JWTVerifier.
func NewJWTVerifier(secret string) JWTVerifier {
	if secret == "" {
		secret = DefaultSecret
	}
	return JWTVerifier{secret: []byte(secret)}
}

// Verify parses and validates the token. Expired, tampered, or malformed
// tokens all yield nil rather than an error.
func (v JWTVerifier) Verify(ctx context.Context, bearer string) *shared.Claims {
	token, err := jwt.ParseWithClaims(bearer, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	claims, ok := token.Claims.(*tokenClaims)
	if !ok {
		return nil
	}
	return &shared.Claims{
		AccountID:   claims.AccountID,
		Email:       claims.Email,
		Role:        claims.Role,
		Permissions: claims.Permissions,
	}
}

// demoVerifier accepts the fixed sentinel and delegates everything else.
type demoVerifier struct {
	next Verifier
}

func (v demoVerifier) Verify(ctx context.Context, bearer string) *shared.Claims {
	if bearer == DemoToken {
		return DemoClaims()
	}
	if v.next == nil {
		return nil
	}
	return v.next.Verify(ctx, bearer)
}

// NewVerifier builds the verification chain. With demoMode enabled the
// sentinel token short-circuits signature verification entirely.
func NewVerifier(secret string, demoMode bool) Verifier {
	base := NewJWTVerifier(secret)
	if demoMode {
		return demoVerifier{next: base}
	}
	return base
}
