package jwt

import (
	"time"

	"github.com/14kear/polls-api/internal/entity"
	"github.com/golang-jwt/jwt/v5"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func NewTokenPair(user entity.User, secret string, accessTTL, refreshTTL time.Duration) (*TokenPair, error) {
	accessToken, err := newAccessToken(user, secret, accessTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, err := newRefreshToken(user, secret, refreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func newAccessToken(user entity.User, secret string, ttl time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)

	claims["uid"] = user.ID
	claims["username"] = user.Username
	claims["is_staff"] = user.IsStaff
	claims["typ"] = "access"
	claims["exp"] = time.Now().Add(ttl).Unix()

	return token.SignedString([]byte(secret))
}

func newRefreshToken(user entity.User, secret string, ttl time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)

	claims["uid"] = user.ID
	claims["username"] = user.Username
	claims["typ"] = "refresh"
	claims["exp"] = time.Now().Add(ttl).Unix()

	return token.SignedString([]byte(secret))
}
