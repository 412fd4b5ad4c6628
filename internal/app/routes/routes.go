package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/clubhub/internal/app/controllers"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/middleware"
)

// Controllers groups every handler the router mounts
type Controllers struct {
	Auth       *controllers.AuthController
	Club       *controllers.ClubController
	Membership *controllers.MembershipController
	Admin      *controllers.AdminController
	Health     *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/health", c.Health.Health)

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", c.Auth.Signup)
		auth.POST("/signin", c.Auth.Signin)
		auth.GET("/me", authMiddleware.JWTAuth(), c.Auth.Me)
	}

	// Anonymous browsing is allowed; a token only adds the viewer's status
	clubs := v1.Group("/clubs")
	{
		clubs.GET("", authMiddleware.OptionalAuth(), c.Club.Explore)
		clubs.GET("/:id", authMiddleware.OptionalAuth(), c.Club.Details)
	}

	// --- Student routes ---
	student := v1.Group("")
	student.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleStudent))
	{
		student.POST("/clubs/:id/join", c.Club.Join)
		student.DELETE("/clubs/:id/leave", c.Club.Leave)
		student.GET("/memberships", c.Membership.List)
		student.GET("/student/dashboard", c.Admin.StudentDashboard)
	}

	// --- Admin routes ---
	admin := v1.Group("/admin")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/dashboard", c.Admin.AdminDashboard)
		admin.GET("/members", c.Membership.List)

		admin.POST("/clubs", c.Admin.CreateClub)
		admin.PATCH("/clubs/:id", c.Admin.UpdateClub)
		admin.DELETE("/clubs/:id", c.Admin.DeleteClub)
		admin.PATCH("/clubs/:id/members/:membershipId", c.Membership.Decide)
		admin.POST("/clubs/:id/events", c.Admin.CreateEvent)
		admin.POST("/clubs/:id/announcements", c.Admin.CreateAnnouncement)
	}
}
