package routes

import (
	"os"
	"strings"
	"time"

	"pulse/handlers"
	"pulse/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func allowedOrigins() []string {
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		return strings.Split(env, ",")
	}
	return []string{"http://localhost:3000", "http://localhost:5173", "http://127.0.0.1:5173"}
}

func SetupRouter() *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Public routes (no auth required); signup/login are rate limited.
	auth := router.Group("/api/auth")
	auth.Use(middleware.RateLimitMiddleware(20, time.Minute))
	auth.POST("/signup", handlers.Signup)
	auth.POST("/login", handlers.Login)

	// Protected routes group
	protected := router.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware())

	protected.GET("/auth/me", handlers.GetMe)
	protected.POST("/auth/logout", handlers.Logout)

	// Posts and feeds
	protected.GET("/posts/all", handlers.GetAllPosts)
	protected.GET("/posts/following", handlers.GetFollowingPosts)
	protected.GET("/posts/likes/:id", handlers.GetLikedPosts)
	protected.GET("/posts/user/:username", handlers.GetUserPosts)
	protected.GET("/posts/bookmarks", handlers.GetBookmarkedPosts)
	protected.GET("/posts/trending", handlers.GetTrendingTopics)
	protected.POST("/posts/create", handlers.CreatePost)
	protected.POST("/posts/like/:id", handlers.LikeUnlikePost)
	protected.POST("/posts/comment/:id", handlers.CommentOnPost)
	protected.POST("/posts/:id/bookmark", handlers.ToggleBookmark)
	protected.DELETE("/posts/:id", handlers.DeletePost)

	// Users
	protected.GET("/users/profile/:username", handlers.GetUserProfile)
	protected.GET("/users/suggested", handlers.GetSuggestedUsers)
	protected.GET("/users/search", handlers.SearchUsers)
	protected.POST("/users/follow/:id", handlers.FollowUnfollowUser)
	protected.POST("/users/update", handlers.UpdateUser)

	// Notifications
	protected.GET("/notifications", handlers.GetNotifications)
	protected.DELETE("/notifications", handlers.DeleteNotifications)

	// Stats
	protected.GET("/stats/counts", handlers.GetStats)

	// Catch-all for undefined API routes
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(404, gin.H{
				"error": "Endpoint not found",
				"path":  c.Request.URL.Path,
			})
			return
		}
		c.Next()
	})

	return router
}
