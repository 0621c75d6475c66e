package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"newsroom/internal/model"
	"newsroom/internal/repository"
)

type UserStore interface {
	FindByUsername(username string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	Insert(user *model.User) error
	Update(user *model.User) error
	CountUsers() (int, error)
}

type AuthHandler struct {
	users    UserStore
	sessions SessionStore
}

func NewAuthHandler(users UserStore, sessions SessionStore) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

type RegisterRequest struct {
	Username        string `form:"username" json:"username" binding:"required,min=2,max=20"`
	Email           string `form:"email" json:"email" binding:"required,email"`
	Password        string `form:"password" json:"password" binding:"required"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password" binding:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": bindingErrors(err)})
		return
	}

	existing, err := h.users.FindByEmail(req.Email)
	if err != nil {
		slog.Error("error checking email", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"errors": gin.H{"email": "This email is already registered."}})
		return
	}

	existing, err = h.users.FindByUsername(req.Username)
	if err != nil {
		slog.Error("error checking username", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"errors": gin.H{"username": "That username is already taken."}})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("error hashing password", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	if err := h.users.Insert(user); err != nil {
		// Another request may have claimed the name between check and insert.
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			c.JSON(http.StatusConflict, gin.H{"errors": gin.H{"email": "This email is already registered."}})
		case errors.Is(err, repository.ErrDuplicateUsername):
			c.JSON(http.StatusConflict, gin.H{"errors": gin.H{"username": "That username is already taken."}})
		default:
			slog.Error("error inserting user", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	// Registration logs the user straight in.
	sess, err := h.sessions.Create(c.Request.Context(), user.Username)
	if err != nil {
		slog.Error("error creating session", "error", err, "username", user.Username)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	setSessionCookie(c, sess.ID)
	c.Redirect(http.StatusFound, "/main-page")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": bindingErrors(err)})
		return
	}

	user, err := h.users.FindByEmail(req.Email)
	if err != nil {
		slog.Error("error fetching user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No account found with that email."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		slog.Warn("login failed", "email", req.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect password."})
		return
	}

	sess, err := h.sessions.Create(c.Request.Context(), user.Username)
	if err != nil {
		slog.Error("error creating session", "error", err, "username", user.Username)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	slog.Info("user logged in", "username", user.Username)

	setSessionCookie(c, sess.ID)
	c.Redirect(http.StatusFound, "/main-page")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sess := currentSession(c)

	if err := h.sessions.Delete(c.Request.Context(), sess.ID); err != nil {
		slog.Error("error deleting session", "error", err)
	}

	clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/login")
}

type UpdateProfileRequest struct {
	Username           string `form:"username" json:"username" binding:"omitempty,min=2,max=20"`
	Email              string `form:"email" json:"email" binding:"omitempty,email"`
	NewPassword        string `form:"new_password" json:"new_password" binding:"omitempty,min=6"`
	ConfirmNewPassword string `form:"confirm_new_password" json:"confirm_new_password" binding:"eqfield=NewPassword"`
	CurrentPassword    string `form:"current_password" json:"current_password" binding:"required"`
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	sess := currentSession(c)

	var req UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": bindingErrors(err)})
		return
	}

	user, err := h.users.FindByUsername(sess.Username)
	if err != nil {
		slog.Error("error fetching user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect password."})
		return
	}

	usernameChanged := req.Username != "" && req.Username != user.Username
	if usernameChanged {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.NewPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			slog.Error("error hashing password", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed"})
			return
		}
		user.PasswordHash = string(hash)
	}

	if err := h.users.Update(user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			c.JSON(http.StatusConflict, gin.H{"errors": gin.H{"email": "This email is already registered."}})
		case errors.Is(err, repository.ErrDuplicateUsername):
			c.JSON(http.StatusConflict, gin.H{"errors": gin.H{"username": "That username is already taken."}})
		default:
			slog.Error("error updating user", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	// The session carries the username, so a rename needs a fresh session.
	if usernameChanged {
		if err := h.sessions.Delete(c.Request.Context(), sess.ID); err != nil {
			slog.Error("error deleting session", "error", err)
		}
		fresh, err := h.sessions.Create(c.Request.Context(), user.Username)
		if err != nil {
			slog.Error("error creating session", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed"})
			return
		}
		setSessionCookie(c, fresh.ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Profile updated for %s.", user.Username),
		"user": UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

func (h *AuthHandler) Health(c *gin.Context) {
	_, err := h.users.CountUsers()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}
