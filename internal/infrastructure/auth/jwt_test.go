package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", 30, 7)

	pair, err := svc.Generate(42, "tenant", true)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Greater(t, pair.ExpiresIn, int64(0))

	access, err := svc.Verify(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), access.UserID)
	assert.Equal(t, "tenant", access.Login)
	assert.True(t, access.IsAdmin)
	assert.Equal(t, TokenTypeAccess, access.TokenType)

	refresh, err := svc.Verify(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refresh.TokenType)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", 30, 7)
	verifier := NewJWTService("secret-b", 30, 7)

	pair, err := issuer.Generate(1, "tenant", false)
	require.NoError(t, err)

	_, err = verifier.Verify(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", -1, 7)

	pair, err := svc.Generate(1, "tenant", false)
	require.NoError(t, err)

	_, err = svc.Verify(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", 30, 7)

	_, err := svc.Verify("not.a.token")
	assert.Error(t, err)

	_, err = svc.Verify("")
	assert.Error(t, err)
}

func TestBcryptPasswordHasher(t *testing.T) {
	hasher := NewBcryptPasswordHasher(4) // min cost keeps the test fast

	hash, err := hasher.Hash("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.NoError(t, hasher.Verify("s3cret-password", hash))
	assert.Error(t, hasher.Verify("wrong-password", hash))
	assert.Error(t, hasher.Verify("s3cret-password", "not-a-hash"))
}

func TestBcryptPasswordHasher_CostFallback(t *testing.T) {
	// Out-of-range costs fall back to the bcrypt default rather than failing
	// at hash time.
	hasher := NewBcryptPasswordHasher(99)
	hash, err := hasher.Hash("pw")
	require.NoError(t, err)
	assert.NoError(t, hasher.Verify("pw", hash))
}
