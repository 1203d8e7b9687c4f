package shared

import "context"

// Claims is the decoded payload of a verified bearer token. It is never
// re-read from storage during a request, so permission edits take effect
// only once the old token expires.
type Claims struct {
	AccountID   int64
	Email       string
	Role        string
	Permissions []string
	// Demo marks the synthetic identity injected by the sentinel token.
	// The identity has no Account row; writes keyed to it must be skipped.
	Demo bool
}

type claimsContextKey struct{}

// ContextWithClaims stores verified claims in the request context.
func ContextWithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, c)
}

// ClaimsFromContext extracts claims from the context, nil when absent.
func ClaimsFromContext(ctx context.Context) *Claims {
	c, _ := ctx.Value(claimsContextKey{}).(*Claims)
	return c
}
