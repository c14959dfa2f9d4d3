package handler

import (
	"errors"
	"net/http"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenCookie is the cookie carrying the session token after login.
const TokenCookie = "token"

const (
	msgInvalidCredentials = "Invalid email or password"
	msgUserExists         = "User already exists"
	msgUserUpdated        = "User updated successfully"
)

type TokenIssuer interface {
	Issue(userID int64, email string) (string, error)
	TTL() time.Duration
}

type UserHandler struct {
	repo         repository.UserRepositoryInterface
	tokens       TokenIssuer
	log          *zap.Logger
	secureCookie bool
}

func NewUserHandler(repo repository.UserRepositoryInterface, tokens TokenIssuer, log *zap.Logger, secureCookie bool) *UserHandler {
	return &UserHandler{
		repo:         repo,
		tokens:       tokens,
		log:          log,
		secureCookie: secureCookie,
	}
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type DeleteUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateEmailRequest struct {
	Email    string `json:"email" validate:"required,email"`
	NewEmail string `json:"newEmail" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdatePasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// Register godoc
// @Summary      Register a user
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "New user"
// @Success      201 {object} model.User
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindAndValidate(c, h.log, &req, "Invalid user data") {
		return
	}
	req.Email = validation.NormalizeEmail(req.Email)

	existing, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		internalError(c, h.log, "find user by email", err)
		return
	}
	if existing != nil {
		abortWithError(c, http.StatusBadRequest, msgUserExists)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		internalError(c, h.log, "hash password", err)
		return
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
	}
	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			abortWithError(c, http.StatusBadRequest, msgUserExists)
			return
		}
		internalError(c, h.log, "create user", err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary      Log in
// @Description  Sets an HttpOnly "token" cookie holding the session JWT.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindAndValidate(c, h.log, &req, "Invalid login data") {
		return
	}

	user, ok := h.authenticate(c, req.Email, req.Password)
	if !ok {
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		internalError(c, h.log, "issue token", err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(TokenCookie, token, int(h.tokens.TTL().Seconds()), "/", "", h.secureCookie, true)

	c.JSON(http.StatusOK, MessageResponse{Message: "Login successful"})
}

// Delete godoc
// @Summary      Delete a user
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        request body DeleteUserRequest true "Credentials"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/users [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	var req DeleteUserRequest
	if !bindAndValidate(c, h.log, &req, "Invalid user data") {
		return
	}

	user, ok := h.authenticate(c, req.Email, req.Password)
	if !ok {
		return
	}

	if err := h.repo.DeleteByEmail(c.Request.Context(), user.Email); err != nil {
		internalError(c, h.log, "delete user", err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}

// UpdateEmail godoc
// @Summary      Change a user's email
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        request body UpdateEmailRequest true "Current credentials and new email"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/users/email [patch]
func (h *UserHandler) UpdateEmail(c *gin.Context) {
	var req UpdateEmailRequest
	if !bindAndValidate(c, h.log, &req, "Invalid user data") {
		return
	}

	user, ok := h.authenticate(c, req.Email, req.Password)
	if !ok {
		return
	}

	newEmail := validation.NormalizeEmail(req.NewEmail)
	if newEmail == user.Email {
		abortWithError(c, http.StatusBadRequest, "New email must be different from old email")
		return
	}

	if err := h.repo.UpdateEmail(c.Request.Context(), user.Email, newEmail); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			abortWithError(c, http.StatusBadRequest, msgUserExists)
			return
		}
		internalError(c, h.log, "update user email", err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: msgUserUpdated})
}

// UpdatePassword godoc
// @Summary      Change a user's password
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        request body UpdatePasswordRequest true "Current credentials and new password"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/users/password [patch]
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if !bindAndValidate(c, h.log, &req, "Invalid user data") {
		return
	}

	user, ok := h.authenticate(c, req.Email, req.Password)
	if !ok {
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		internalError(c, h.log, "hash password", err)
		return
	}

	// Read, verify and write are separate statements.
	if err := h.repo.UpdatePassword(c.Request.Context(), user.Email, hash); err != nil {
		internalError(c, h.log, "update user password", err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: msgUserUpdated})
}

// authenticate loads the user by email and checks the password. It writes the
// failure response itself.
func (h *UserHandler) authenticate(c *gin.Context, email, password string) (*model.User, bool) {
	user, err := h.repo.FindByEmail(c.Request.Context(), validation.NormalizeEmail(email))
	if err != nil {
		internalError(c, h.log, "find user by email", err)
		return nil, false
	}
	if user == nil || !auth.CheckPassword(password, user.Password) {
		abortWithError(c, http.StatusBadRequest, msgInvalidCredentials)
		return nil, false
	}
	return user, true
}
