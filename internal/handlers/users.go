package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/14kear/polls-api/internal/entity"
	"github.com/14kear/polls-api/internal/services/auth"
	"github.com/gin-gonic/gin"
)

const msgUsernameTaken = "A user with that username already exists."

type AuthHandler struct {
	authService *auth.Auth
}

func NewAuthHandler(authService *auth.Auth) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type userPayload struct {
	Username  *string `json:"username"`
	Password  *string `json:"password"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	IsActive  *bool   `json:"is_active"`
	IsStaff   *bool   `json:"is_staff"`
}

type credentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshPayload struct {
	RefreshToken string `json:"refresh_token"`
}

// optionalText validates a text field that may be omitted entirely.
func optionalText(fe fieldErrors, raw map[string]json.RawMessage, field string, value *string, typeErrs map[string]bool) string {
	if !present(raw, field) || isNull(raw, field) {
		return ""
	}
	if typeErrs[field] {
		fe.add(field, msgNotString)
		return ""
	}
	if value == nil {
		return ""
	}
	return *value
}

// Register creates an active, non-staff user from the request payload.
func (h *AuthHandler) Register(c *gin.Context) {
	var payload userPayload
	raw, typeErr, ok := decodeBody(c, &payload)
	if !ok {
		return
	}

	fe := fieldErrors{}
	username := checkText(fe, raw, "username", payload.Username, typeErr)
	password := checkText(fe, raw, "password", payload.Password, typeErr)
	email := optionalText(fe, raw, "email", payload.Email, typeErr)
	firstName := optionalText(fe, raw, "first_name", payload.FirstName, typeErr)
	lastName := optionalText(fe, raw, "last_name", payload.LastName, typeErr)
	if !fe.empty() {
		c.JSON(http.StatusBadRequest, fe)
		return
	}

	user := entity.User{
		Username:  username,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	}

	id, err := h.authService.Register(c.Request.Context(), user, password)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			c.JSON(http.StatusBadRequest, fieldErrors{"username": {msgUsernameTaken}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	created, err := h.authService.GetUser(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var payload credentialsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": detailBadPayload})
		return
	}

	accessToken, refreshToken, userID, err := h.authService.Login(c.Request.Context(), payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) || errors.Is(err, auth.ErrInactiveUser) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user_id":       userID,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var payload refreshPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": detailBadPayload})
		return
	}

	accessToken, refreshToken, err := h.authService.RefreshTokens(c.Request.Context(), payload.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var payload refreshPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": detailBadPayload})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), payload.RefreshToken); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "successfully logged out"})
}

// GetUsers lists every user. Staff only.
func (h *AuthHandler) GetUsers(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	users, err := h.authService.GetUsers(c.Request.Context(), userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if users == nil {
		users = []entity.User{}
	}
	c.JSON(http.StatusOK, users)
}

func (h *AuthHandler) GetUserByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if _, ok := userIDFromContext(c); !ok {
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) UpdateUser(c *gin.Context) {
	h.updateUser(c, false)
}

// PatchUser updates only the fields present in the request body.
func (h *AuthHandler) PatchUser(c *gin.Context) {
	h.updateUser(c, true)
}

func (h *AuthHandler) updateUser(c *gin.Context, partial bool) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	actorID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	current, err := h.authService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	var payload userPayload
	raw, typeErr, decoded := decodeBody(c, &payload)
	if !decoded {
		return
	}

	fe := fieldErrors{}
	user := current
	if !partial || present(raw, "username") {
		user.Username = checkText(fe, raw, "username", payload.Username, typeErr)
	}
	if present(raw, "email") {
		user.Email = optionalText(fe, raw, "email", payload.Email, typeErr)
	}
	if present(raw, "first_name") {
		user.FirstName = optionalText(fe, raw, "first_name", payload.FirstName, typeErr)
	}
	if present(raw, "last_name") {
		user.LastName = optionalText(fe, raw, "last_name", payload.LastName, typeErr)
	}
	if present(raw, "is_active") && payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}
	if present(raw, "is_staff") && payload.IsStaff != nil {
		user.IsStaff = *payload.IsStaff
	}

	password := ""
	if present(raw, "password") {
		password = checkText(fe, raw, "password", payload.Password, typeErr)
	}

	if !fe.empty() {
		c.JSON(http.StatusBadRequest, fe)
		return
	}

	if err := h.authService.UpdateUser(c.Request.Context(), actorID, user, password); err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			c.JSON(http.StatusBadRequest, fieldErrors{"username": {msgUsernameTaken}})
			return
		}
		respondAuthError(c, err)
		return
	}

	updated, err := h.authService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteUser removes a user. Staff only.
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	actorID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	if err := h.authService.DeleteUser(c.Request.Context(), actorID, id); err != nil {
		respondAuthError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": detailNotFound})
	case errors.Is(err, auth.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"detail": detailForbidden})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
