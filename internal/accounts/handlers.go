package accounts

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/mohanreddy3010/Blogging-Platform/internal/apperr"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupHandler handles POST /api/signup
func SignupHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
			return
		}

		err := svc.CreateAccount(c.Request.Context(), req.Name, req.Email, req.Password, req.Role)
		switch {
		case err == nil:
			c.JSON(http.StatusCreated, gin.H{"message": "User signed up successfully"})
		case errors.Is(err, apperr.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		case errors.Is(err, apperr.ErrConflict):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
		default:
			slog.Error("Signup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
	}
}

// LoginHandler handles POST /api/login. On success the identity is stored in
// the server-side session so later requests do not have to carry it in
// ambient client state.
func LoginHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email or password"})
			return
		}

		name, err := svc.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, apperr.ErrAuth) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email or password"})
				return
			}
			slog.Error("Login failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		session := sessions.Default(c)
		session.Set("user_email", req.Email)
		session.Set("user_name", name)
		if err := session.Save(); err != nil {
			slog.Error("Session save failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Login successful", "name": name})
	}
}

// MeHandler handles GET /api/me using the session set at login
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		email := session.Get("user_email")
		if email == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not logged in"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"email": email,
			"name":  session.Get("user_name"),
		})
	}
}

// LogoutHandler handles POST /api/logout by clearing the session
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		session.Clear()
		if err := session.Save(); err != nil {
			slog.Error("Session clear failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// GetUserHandler handles GET /api/user/:email
func GetUserHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := svc.LookupByEmail(c.Request.Context(), c.Param("email"))
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
				return
			}
			slog.Error("User lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"name": user.Name, "email": user.Email})
	}
}
