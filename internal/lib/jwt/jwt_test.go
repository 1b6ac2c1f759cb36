package jwt

import (
	"testing"
	"time"

	"github.com/14kear/polls-api/internal/entity"
	jwtGo "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func parseClaims(t *testing.T, tokenString string) jwtGo.MapClaims {
	t.Helper()

	token, err := jwtGo.Parse(tokenString, func(token *jwtGo.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)

	claims, ok := token.Claims.(jwtGo.MapClaims)
	require.True(t, ok)
	return claims
}

func TestNewTokenPair(t *testing.T) {
	user := entity.User{
		ID:       42,
		Username: "alice",
		IsStaff:  true,
	}

	issuedAt := time.Now()

	pair, err := NewTokenPair(user, testSecret, time.Minute, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	accessClaims := parseClaims(t, pair.AccessToken)
	assert.Equal(t, float64(user.ID), accessClaims["uid"])
	assert.Equal(t, user.Username, accessClaims["username"])
	assert.Equal(t, true, accessClaims["is_staff"])
	assert.Equal(t, "access", accessClaims["typ"])
	assert.InDelta(t, issuedAt.Add(time.Minute).Unix(), accessClaims["exp"].(float64), 1)

	refreshClaims := parseClaims(t, pair.RefreshToken)
	assert.Equal(t, float64(user.ID), refreshClaims["uid"])
	assert.Equal(t, user.Username, refreshClaims["username"])
	assert.Equal(t, "refresh", refreshClaims["typ"])
	assert.InDelta(t, issuedAt.Add(time.Hour).Unix(), refreshClaims["exp"].(float64), 1)
}

func TestNewTokenPair_WrongSecretRejected(t *testing.T) {
	pair, err := NewTokenPair(entity.User{ID: 1, Username: "bob"}, testSecret, time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = jwtGo.Parse(pair.AccessToken, func(token *jwtGo.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}
