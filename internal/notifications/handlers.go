package notifications

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mohanreddy3010/Blogging-Platform/internal/apperr"
)

// ListNotificationsHandler handles GET /api/notifications
func ListNotificationsHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email")

		items, err := svc.ListForRecipient(c.Request.Context(), email)
		if err != nil {
			slog.Error("Notification list failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"notifications": items})
	}
}

// DeleteNotificationHandler handles DELETE /api/notifications/:id
func DeleteNotificationHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := svc.DeleteByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Notification not found"})
				return
			}
			slog.Error("Notification delete failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Notification deleted successfully"})
	}
}
