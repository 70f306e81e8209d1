package posts

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mohanreddy3010/Blogging-Platform/internal/apperr"
	"github.com/mohanreddy3010/Blogging-Platform/internal/models"
)

type createPostRequest struct {
	Email    string `json:"email"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// CreatePostHandler handles POST /api/create-post
func CreatePostHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createPostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		_, err := svc.Create(c.Request.Context(), req.Email, req.Title, req.Content, req.Category)
		if err != nil {
			if errors.Is(err, apperr.ErrValidation) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "User not found"})
				return
			}
			slog.Error("Post creation failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Post created successfully"})
	}
}

// ListPostsHandler handles GET /api/posts/:category
func ListPostsHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svc.ListByCategory(c.Request.Context(), c.Param("category"))
		if err != nil {
			slog.Error("Post list failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"posts": list})
	}
}

// ListCategoriesHandler handles GET /api/categories
func ListCategoriesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"categories": models.Categories})
	}
}
