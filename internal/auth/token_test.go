package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/innoventory/innoventory/internal/auth"
	"github.com/innoventory/innoventory/internal/shared"
)

func TestIssueAndVerify(t *testing.T) {
	signer := auth.NewSigner("test-secret", time.Hour)
	token, err := signer.Issue(42, "ops@innoventory.io", shared.RoleDelegate, []string{shared.PermManageCustomers})
	require.NoError(t, err)

	verifier := auth.NewJWTVerifier("test-secret")
	claims := verifier.Verify(context.Background(), token)
	require.NotNil(t, claims)
	require.Equal(t, int64(42), claims.AccountID)
	require.Equal(t, "ops@innoventory.io", claims.Email)
	require.Equal(t, shared.RoleDelegate, claims.Role)
	require.Equal(t, []string{shared.PermManageCustomers}, claims.Permissions)
	require.False(t, claims.Demo)
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	signer := auth.NewSigner("test-secret", time.Hour)
	token, err := signer.Issue(1, "ops@innoventory.io", shared.RoleAdmin, nil)
	require.NoError(t, err)

	// Corrupt one character of the signature segment.
	corrupted := token[:len(token)-2] + flip(token[len(token)-2:])

	verifier := auth.NewJWTVerifier("test-secret")
	require.Nil(t, verifier.Verify(context.Background(), corrupted))
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signer := auth.NewSigner("test-secret", time.Hour)
	token, err := signer.Issue(1, "ops@innoventory.io", shared.RoleAdmin, nil)
	require.NoError(t, err)

	verifier := auth.NewJWTVerifier("other-secret")
	require.Nil(t, verifier.Verify(context.Background(), token))
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	signer := auth.NewSigner("test-secret", time.Nanosecond)
	token, err := signer.Issue(1, "ops@innoventory.io", shared.RoleAdmin, nil)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	verifier := auth.NewJWTVerifier("test-secret")
	require.Nil(t, verifier.Verify(context.Background(), token))
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	verifier := auth.NewJWTVerifier("test-secret")
	require.Nil(t, verifier.Verify(context.Background(), "not-a-token"))
	require.Nil(t, verifier.Verify(context.Background(), ""))
}

func TestSentinelBypassesVerification(t *testing.T) {
	verifier := auth.NewVerifier("test-secret", true)

	claims := verifier.Verify(context.Background(), auth.DemoToken)
	require.NotNil(t, claims)
	require.True(t, claims.Demo)
	require.Equal(t, shared.RoleAdmin, claims.Role)
	require.ElementsMatch(t, shared.AllPermissions(), claims.Permissions)
}

func TestSentinelDisabledOutsideDemoMode(t *testing.T) {
	verifier := auth.NewVerifier("test-secret", false)
	require.Nil(t, verifier.Verify(context.Background(), auth.DemoToken))
}

func flip(s string) string {
	b := []byte(s)
	if b[0] == 'A' {
		b[0] = 'B'
	} else {
		b[0] = 'A'
	}
	return string(b)
}
