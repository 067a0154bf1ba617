package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(accessTTL, refreshTTL time.Duration) *JWTServiceImpl {
	return NewJWTService("access-secret", "refresh-secret", "communitysvc-test", accessTTL, refreshTTL).(*JWTServiceImpl)
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 7*24*time.Hour)

	token, err := svc.GenerateAccessToken("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)

	wiggle := int64(5)
	wantExp := time.Now().Add(15 * time.Minute).Unix()
	assert.InDelta(t, wantExp, claims.ExpiresAt, float64(wiggle))
}

func TestJWTService_DistinctSecrets(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 7*24*time.Hour)

	accessToken, err := svc.GenerateAccessToken("user-123")
	require.NoError(t, err)
	refreshToken, err := svc.GenerateRefreshToken("user-123")
	require.NoError(t, err)

	// A token of one type must never validate as the other.
	_, err = svc.ValidateRefreshToken(accessToken)
	assert.Error(t, err)
	_, err = svc.ValidateAccessToken(refreshToken)
	assert.Error(t, err)

	// And each validates as its own type.
	_, err = svc.ValidateAccessToken(accessToken)
	assert.NoError(t, err)
	_, err = svc.ValidateRefreshToken(refreshToken)
	assert.NoError(t, err)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := newTestJWTService(-time.Minute, -time.Minute)

	token, err := svc.GenerateAccessToken("user-123")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTService_GarbageToken(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 7*24*time.Hour)

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := svc.ValidateAccessToken(tok)
		assert.Error(t, err, "token %q must not validate", tok)
	}
}

func TestJWTService_UniqueTokens(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 7*24*time.Hour)

	a, err := svc.GenerateRefreshToken("user-123")
	require.NoError(t, err)
	b, err := svc.GenerateRefreshToken("user-123")
	require.NoError(t, err)

	// Each mint carries a fresh jti, so even same-second tokens differ.
	assert.NotEqual(t, a, b)
}

func TestPasswordService_HashAndVerify(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, svc.Verify(hash, "s3cret-pass"))
	assert.False(t, svc.Verify(hash, "wrong-pass"))
	assert.False(t, svc.Verify("", "s3cret-pass"))
}
