// Package mockapi is an in-memory double of the Jobluu backend REST API,
// used by cmd/mockserver for local development and by the round-trip tests.
// It implements the documented endpoint contracts, including the backend's
// field spellings.
package mockapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server is the mock backend
type Server struct {
	state  *state
	secret string
	logger *zap.Logger
}

// NewServer creates a mock backend signing tokens with the given secret
func NewServer(secret string, logger *zap.Logger) *Server {
	return &Server{
		state:  newState(),
		secret: secret,
		logger: logger,
	}
}

// Router builds the gin engine with all documented routes
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Use middlewares
	router.Use(gin.Recovery())
	router.Use(requestLogger(s.logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// ==================== AUTH ROUTES ====================
	auth := router.Group("/auth")
	auth.Use(rateLimit(5, 10))
	{
		auth.POST("/login", s.handleLogin)
		auth.POST("/google", s.handleGoogleLogin)
		auth.POST("/validate", s.handleValidate)
		auth.POST("/refresh", s.handleRefresh)

		authProtected := auth.Group("")
		authProtected.Use(s.authMiddleware())
		authProtected.POST("/logout", s.handleLogout)
	}

	// ==================== USER ROUTES ====================
	users := router.Group("/users")
	users.Use(rateLimit(5, 10))
	{
		users.POST("/register", s.handleRegister)
		users.POST("/sendOTP/:email", s.handleSendOTP)
		users.GET("/verifyOtp/:email/:otp", s.handleVerifyOTP)
		users.POST("/changePass", s.handleChangePassword)
	}

	// ==================== JOB ROUTES ====================
	jobs := router.Group("/jobs")
	jobs.Use(s.authMiddleware())
	{
		jobs.GET("/getAll", s.handleGetAllJobs)
		jobs.GET("/:id", s.handleGetJob)
		jobs.POST("/post", s.handlePostJob)
		jobs.PUT("/update/:id", s.handleUpdateJob)
		jobs.DELETE("/delete/:id", s.handleDeleteJob)
	}

	// ==================== PROFILE ROUTES ====================
	profiles := router.Group("/api/profiles")
	profiles.Use(s.authMiddleware())
	{
		profiles.GET("/get/:id", s.handleGetProfile)
		profiles.PUT("/update/:id", s.handleUpdateProfile)
		profiles.POST("/create", s.handleCreateProfile)
		profiles.POST("/upload-avatar/:id", s.handleUploadAvatar)
	}

	// ==================== NOTIFICATION ROUTES ====================
	notifications := router.Group("/notification")
	notifications.Use(s.authMiddleware())
	{
		notifications.GET("/all/:userId", s.handleAllNotifications)
		notifications.GET("/unread/:userId", s.handleUnreadNotifications)
		notifications.GET("/count/:userId", s.handleNotificationCount)
		notifications.GET("/type/:userId/:action", s.handleNotificationsByAction)
		notifications.POST("/send", s.handleSendNotification)
		notifications.PUT("/mark-read/:id", s.handleMarkRead)
		notifications.PUT("/mark-all-read/:userId", s.handleMarkAllRead)
		notifications.DELETE("/delete/:id", s.handleDeleteNotification)
		notifications.DELETE("/delete-all/:userId", s.handleDeleteAllNotifications)
	}

	return router
}

// fail writes the backend's structured error shape
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"errorMessage": message})
}
