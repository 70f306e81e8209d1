package subscriptions

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mohanreddy3010/Blogging-Platform/internal/apperr"
)

type subscribeRequest struct {
	Email         string   `json:"email"`
	Subscriptions []string `json:"subscriptions"`
}

// SubscribeHandler handles POST /api/subscribe
func SubscribeHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req subscribeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		if err := svc.Set(c.Request.Context(), req.Email, req.Subscriptions); err != nil {
			if errors.Is(err, apperr.ErrValidation) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
				return
			}
			slog.Error("Subscription update failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Subscription updated successfully"})
	}
}

// GetSubscriptionsHandler handles GET /api/user/subscriptions
func GetSubscriptionsHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email")

		categories, err := svc.Get(c.Request.Context(), email)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Subscriptions not found for the user"})
				return
			}
			slog.Error("Subscription fetch failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"subscriptions": categories})
	}
}
