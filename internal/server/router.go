// Package server wires the HTTP facade: it maps each service operation to one
// route and nothing more. Parameter extraction and status mapping live in the
// per-package handlers.
package server

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/mohanreddy3010/Blogging-Platform/internal/accounts"
	"github.com/mohanreddy3010/Blogging-Platform/internal/health"
	"github.com/mohanreddy3010/Blogging-Platform/internal/notifications"
	"github.com/mohanreddy3010/Blogging-Platform/internal/posts"
	"github.com/mohanreddy3010/Blogging-Platform/internal/recommend"
	"github.com/mohanreddy3010/Blogging-Platform/internal/subscriptions"
)

// Deps holds everything the router needs. Recommend fields may be nil, in
// which case the recommendations route is not registered.
type Deps struct {
	Accounts      *accounts.Service
	Subscriptions *subscriptions.Service
	Posts         *posts.Service
	Notifications *notifications.Service

	Weather     *recommend.WeatherClient
	Recommender *recommend.Recommender

	SessionSecret string
	Production    bool
}

// New builds the gin engine with all routes registered
func New(deps Deps) *gin.Engine {
	router := gin.Default()

	store := cookie.NewStore([]byte(deps.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   deps.Production,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("blog_session", store))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to the backend server")
	})
	router.GET("/health", gin.WrapF(health.Handler))

	api := router.Group("/api")
	{
		api.POST("/signup", accounts.SignupHandler(deps.Accounts))
		api.POST("/login", accounts.LoginHandler(deps.Accounts))
		api.POST("/logout", accounts.LogoutHandler())
		api.GET("/me", accounts.MeHandler())
		// Static segment wins over :email for this path.
		api.GET("/user/subscriptions", subscriptions.GetSubscriptionsHandler(deps.Subscriptions))
		api.GET("/user/:email", accounts.GetUserHandler(deps.Accounts))

		api.POST("/create-post", posts.CreatePostHandler(deps.Posts))
		api.GET("/posts/:category", posts.ListPostsHandler(deps.Posts))
		api.GET("/categories", posts.ListCategoriesHandler())

		api.POST("/subscribe", subscriptions.SubscribeHandler(deps.Subscriptions))

		api.GET("/notifications", notifications.ListNotificationsHandler(deps.Notifications))
		api.DELETE("/notifications/:id", notifications.DeleteNotificationHandler(deps.Notifications))

		if deps.Weather != nil && deps.Recommender != nil {
			api.GET("/recommendations", recommend.Handler(deps.Weather, deps.Recommender))
		}
	}

	return router
}
