package jwt

import (
	"testing"

	"github.com/go-vantage/vantage/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.MustInit(log.SetDefaults())
	m.Run()
}

func TestGenAndParseToken(t *testing.T) {
	secret := []byte("test-secret")

	aToken, rToken, err := GenToken("u1", "company", secret, 30, 60)
	require.NoError(t, err)
	assert.NotEmpty(t, aToken)
	assert.NotEmpty(t, rToken)

	claims, err := ParseToken(aToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserId)
	assert.Equal(t, "company", claims.Role)
	assert.Equal(t, issUser, claims.Issuer)
}

func TestParseTokenWrongSecret(t *testing.T) {
	aToken, _, err := GenToken("u1", "admin", []byte("secret-a"), 30, 60)
	require.NoError(t, err)

	_, err = ParseToken(aToken, "secret-b")
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	secret := "test-secret"

	_, rToken, err := GenToken("u1", "client", []byte(secret), 30, 60)
	require.NoError(t, err)

	pair, err := RefreshToken(secret, 30, 60, "u1", "client", rToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair["accessToken"])
	assert.NotEmpty(t, pair["refreshToken"])
}

func TestRefreshTokenInvalid(t *testing.T) {
	_, err := RefreshToken("test-secret", 30, 60, "u1", "client", "not-a-token")
	assert.Error(t, err)
}
