package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/14kear/polls-api/internal/entity"
	"github.com/14kear/polls-api/internal/lib/jwt"
	"github.com/14kear/polls-api/internal/storage"
	sl "github.com/14kear/sso-prettyslog/slogpretty/errors"
	jwtGo "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type Auth struct {
	log             *slog.Logger
	userSaver       UserSaver
	userProvider    UserProvider
	tokenStorage    TokenStorage
	tokenSecret     string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

type UserSaver interface {
	SaveUser(ctx context.Context, user entity.User) (int64, error)
}

type UserProvider interface {
	UserByUsername(ctx context.Context, username string) (entity.User, error)
	UserByID(ctx context.Context, id int64) (entity.User, error)
	GetUsers(ctx context.Context) ([]entity.User, error)
	UpdateUser(ctx context.Context, user entity.User) error
	DeleteUser(ctx context.Context, id int64) error
	IsStaff(ctx context.Context, userID int64) (bool, error)
}

type TokenStorage interface {
	SaveToken(ctx context.Context, userID int64, token string, expiresAt time.Time) (int64, error)
	IsRefreshTokenValid(ctx context.Context, userID int64, token string) (bool, error)
	RevokeRefreshToken(ctx context.Context, userID int64, token string) error
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrInvalidToken       = errors.New("invalid token")
	ErrPermissionDenied   = errors.New("permission denied")
)

// NewAuth returns a new instance of the Auth service.
func NewAuth(
	log *slog.Logger,
	userSaver UserSaver,
	userProvider UserProvider,
	tokenStorage TokenStorage,
	tokenSecret string,
	accessTokenTTL time.Duration,
	refreshTokenTTL time.Duration,
) *Auth {
	return &Auth{
		log:             log,
		userSaver:       userSaver,
		userProvider:    userProvider,
		tokenStorage:    tokenStorage,
		tokenSecret:     tokenSecret,
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

// Login checks the given credentials and returns a fresh token pair.
// Unknown usernames and wrong passwords produce the same error.
func (auth *Auth) Login(ctx context.Context, username, password string) (string, string, int64, error) {
	const op = "auth.Login"

	log := auth.log.With(slog.String("op", op), slog.String("username", username))

	log.Info("attempting to login user")

	user, err := auth.userProvider.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found", sl.Err(err))
			return "", "", 0, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		log.Warn("failed to get user", sl.Err(err))
		return "", "", 0, fmt.Errorf("%s: %w", op, err)
	}

	if !user.IsActive {
		return "", "", 0, fmt.Errorf("%s: %w", op, ErrInactiveUser)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))
		return "", "", 0, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	tokenPair, err := jwt.NewTokenPair(user, auth.tokenSecret, auth.accessTokenTTL, auth.refreshTokenTTL)
	if err != nil {
		log.Error("failed to generate token pair", sl.Err(err))
		return "", "", 0, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := auth.tokenStorage.SaveToken(ctx, user.ID, tokenPair.RefreshToken, time.Now().Add(auth.refreshTokenTTL)); err != nil {
		log.Error("failed to save refresh token", sl.Err(err))
		return "", "", 0, fmt.Errorf("%s: failed to store refresh token: %w", op, err)
	}

	log.Info("successfully logged in")

	return tokenPair.AccessToken, tokenPair.RefreshToken, user.ID, nil
}

// Register creates a new active, non-staff user and returns its ID.
func (auth *Auth) Register(ctx context.Context, user entity.User, password string) (int64, error) {
	const op = "auth.Register"

	log := auth.log.With(slog.String("op", op), slog.String("username", user.Username))

	log.Info("registering user")

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate hash password", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	user.PassHash = passHash
	user.IsActive = true
	user.IsStaff = false

	id, err := auth.userSaver.SaveUser(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Warn("user already exists", sl.Err(err))
			return 0, fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		log.Error("failed to save user", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered successfully")
	return id, nil
}

// ValidateToken checks an access token and returns the identity baked into it.
// Refresh tokens are validated against storage in RefreshTokens instead.
func (auth *Auth) ValidateToken(ctx context.Context, accessToken string) (int64, string, bool, error) {
	const op = "auth.ValidateToken"

	claims, err := auth.parseToken(accessToken, "access")
	if err != nil {
		return 0, "", false, fmt.Errorf("%s: %w", op, err)
	}

	uidFloat, ok := claims["uid"].(float64)
	if !ok {
		return 0, "", false, fmt.Errorf("%s: uid claim missing or invalid: %w", op, ErrInvalidToken)
	}

	username, ok := claims["username"].(string)
	if !ok {
		return 0, "", false, fmt.Errorf("%s: username claim missing or invalid: %w", op, ErrInvalidToken)
	}

	isStaff, _ := claims["is_staff"].(bool)

	return int64(uidFloat), username, isStaff, nil
}

// RefreshTokens rotates a refresh token: the old one is revoked and a new
// pair is issued.
func (auth *Auth) RefreshTokens(ctx context.Context, refreshToken string) (string, string, error) {
	const op = "auth.RefreshTokens"

	log := auth.log.With(slog.String("op", op))
	log.Info("refreshing token")

	claims, err := auth.parseToken(refreshToken, "refresh")
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	username, ok := claims["username"].(string)
	if !ok {
		log.Error("missing username in token claims", slog.Any("claims", claims))
		return "", "", fmt.Errorf("%s: username claim missing or invalid: %w", op, ErrInvalidToken)
	}

	user, err := auth.userProvider.UserByUsername(ctx, username)
	if err != nil {
		log.Error("user not found by username", slog.String("username", username), sl.Err(err))
		return "", "", fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	valid, err := auth.tokenStorage.IsRefreshTokenValid(ctx, user.ID, refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("%s: failed to validate refresh token: %w", op, err)
	}
	if !valid {
		return "", "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	if err := auth.tokenStorage.RevokeRefreshToken(ctx, user.ID, refreshToken); err != nil {
		log.Warn("failed to delete refresh token", sl.Err(err))
	}

	newTokens, err := jwt.NewTokenPair(user, auth.tokenSecret, auth.accessTokenTTL, auth.refreshTokenTTL)
	if err != nil {
		return "", "", fmt.Errorf("%s: failed to generate token pair: %w", op, err)
	}

	if _, err := auth.tokenStorage.SaveToken(ctx, user.ID, newTokens.RefreshToken, time.Now().Add(auth.refreshTokenTTL)); err != nil {
		log.Error("failed to save new refresh token", sl.Err(err))
		return "", "", fmt.Errorf("%s: failed to store new refresh token: %w", op, err)
	}

	log.Info("successfully refreshed tokens")

	return newTokens.AccessToken, newTokens.RefreshToken, nil
}

// Logout revokes the given refresh token.
func (auth *Auth) Logout(ctx context.Context, refreshToken string) error {
	const op = "auth.Logout"

	log := auth.log.With(slog.String("op", op))
	log.Info("logout")

	claims, err := auth.parseToken(refreshToken, "refresh")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	username, ok := claims["username"].(string)
	if !ok {
		return fmt.Errorf("%s: username claim missing or invalid: %w", op, ErrInvalidToken)
	}

	user, err := auth.userProvider.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found", sl.Err(err))
			return fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := auth.tokenStorage.RevokeRefreshToken(ctx, user.ID, refreshToken); err != nil {
		log.Warn("failed to delete refresh token", sl.Err(err))
	}

	log.Info("successfully logged out user")
	return nil
}

// GetUsers returns every user. Staff only.
func (auth *Auth) GetUsers(ctx context.Context, actorID int64) ([]entity.User, error) {
	const op = "auth.GetUsers"

	log := auth.log.With(slog.String("op", op))
	log.Info("load users")

	if err := auth.requireStaff(ctx, actorID, op); err != nil {
		return nil, err
	}

	users, err := auth.userProvider.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("loaded users")

	return users, nil
}

func (auth *Auth) GetUser(ctx context.Context, id int64) (entity.User, error) {
	const op = "auth.GetUser"

	user, err := auth.userProvider.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return entity.User{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return entity.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// UpdateUser overwrites a user row. Users may edit themselves; only staff
// may edit others or touch the is_active/is_staff flags. An empty password
// keeps the stored hash.
func (auth *Auth) UpdateUser(ctx context.Context, actorID int64, user entity.User, password string) error {
	const op = "auth.UpdateUser"

	log := auth.log.With(slog.String("op", op), slog.Int64("userID", user.ID))
	log.Info("updating user")

	current, err := auth.userProvider.UserByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	isStaff, err := auth.userProvider.IsStaff(ctx, actorID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if actorID != user.ID && !isStaff {
		return fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	if !isStaff {
		user.IsActive = current.IsActive
		user.IsStaff = current.IsStaff
	}

	if password != "" {
		passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		user.PassHash = passHash
	} else {
		user.PassHash = current.PassHash
	}

	if err := auth.userProvider.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			return fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user updated")

	return nil
}

// DeleteUser removes a user. Staff only.
func (auth *Auth) DeleteUser(ctx context.Context, actorID, id int64) error {
	const op = "auth.DeleteUser"

	log := auth.log.With(slog.String("op", op), slog.Int64("userID", id))
	log.Info("deleting user")

	if err := auth.requireStaff(ctx, actorID, op); err != nil {
		return err
	}

	if err := auth.userProvider.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user deleted")

	return nil
}

func (auth *Auth) requireStaff(ctx context.Context, actorID int64, op string) error {
	isStaff, err := auth.userProvider.IsStaff(ctx, actorID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if !isStaff {
		return fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}
	return nil
}

func (auth *Auth) parseToken(tokenString, wantTyp string) (jwtGo.MapClaims, error) {
	token, err := jwtGo.ParseWithClaims(tokenString, jwtGo.MapClaims{}, func(token *jwtGo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtGo.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(auth.tokenSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwtGo.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid claims", ErrInvalidToken)
	}

	if typ, ok := claims["typ"].(string); !ok || typ != wantTyp {
		return nil, fmt.Errorf("%w: expected %s token, got %v", ErrInvalidToken, wantTyp, claims["typ"])
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: exp claim missing or invalid", ErrInvalidToken)
	}
	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, fmt.Errorf("%w: token is expired", ErrInvalidToken)
	}

	return claims, nil
}
