package handlers

import (
	"context"
	"errors"
	"time"

	"klinik-sentosa-server/internal/middleware"
	"klinik-sentosa-server/internal/models"
	"klinik-sentosa-server/internal/repository"
	"klinik-sentosa-server/internal/session"
	"klinik-sentosa-server/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdentityStore is the part of the user repository the auth endpoints need.
type IdentityStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	CreateIdentity(ctx context.Context, user *models.User, fullName string) (*models.Profile, error)
}

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	Users    IdentityStore
	Sessions *session.Manager
	Logger   *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users IdentityStore, sessions *session.Manager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Sessions: sessions, Logger: logger}
}

// SignupRequest represents the request body for user registration.
type SignupRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response body for a successful sign-in.
type LoginResponse struct {
	AccessToken string               `json:"access_token"`
	ExpiresAt   time.Time            `json:"expires_at"`
	User        models.UserSanitized `json:"user"`
	Redirect    string               `json:"redirect"`
}

// Signup creates an identity with its profile and signs it in. The new
// identity has no role until an administrator assigns one.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user := models.User{Email: req.Email}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	if _, err := h.Users.CreateIdentity(c.Request.Context(), &user, req.FullName); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			utils.BadRequest(c, "User with this email already exists")
			return
		}
		utils.InternalServerError(c, "Failed to create user: "+err.Error())
		return
	}

	token, s, err := h.Sessions.Acquire(c.Request.Context(), &user)
	if err != nil {
		utils.InternalServerError(c, "Failed to start session: "+err.Error())
		return
	}

	h.Logger.Info("identity registered", zap.String("user_id", user.ID))
	utils.Created(c, "User registered successfully", LoginResponse{
		AccessToken: token,
		ExpiresAt:   s.ExpiresAt,
		User:        user.Sanitize(),
		Redirect:    "/dashboard",
	})
}

// Login handles user login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user, err := h.Users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.Unauthorized(c, "Invalid email or password")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	token, s, err := h.Sessions.Acquire(c.Request.Context(), user)
	if err != nil {
		utils.InternalServerError(c, "Failed to start session: "+err.Error())
		return
	}

	utils.Success(c, "Login successful", LoginResponse{
		AccessToken: token,
		ExpiresAt:   s.ExpiresAt,
		User:        user.Sanitize(),
		Redirect:    "/dashboard",
	})
}

// Logout ends the caller's session.
func (h *AuthHandler) Logout(c *gin.Context) {
	s, ok := middleware.SessionFromContext(c)
	if !ok {
		utils.Success(c, "Logout successful", nil)
		return
	}

	if err := h.Sessions.Invalidate(c.Request.Context(), s); err != nil {
		utils.InternalServerError(c, "Failed to end session: "+err.Error())
		return
	}
	utils.Success(c, "Logout successful", gin.H{"redirect": "/auth"})
}

// GetSession returns the caller's live session.
func (h *AuthHandler) GetSession(c *gin.Context) {
	s, ok := middleware.SessionFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	utils.Success(c, "Session fetched successfully", s)
}
