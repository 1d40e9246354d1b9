package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/masilo/registra/internal/app/controllers"
	"github.com/masilo/registra/internal/app/models"
	"github.com/masilo/registra/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	// --- Public auth routes ---
	api.POST("/login", authController.Login)
	api.POST("/register_admin", authController.RegisterAdmin)
	api.POST("/logout", authController.Logout)

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		students := authenticated.Group("/students")
		{
			// Admin-only record management
			studentsAdminProtected := students.Group("")
			studentsAdminProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				studentsAdminProtected.GET("", studentController.Search)
				studentsAdminProtected.POST("", studentController.Create)
				studentsAdminProtected.PUT("/:studentNo", studentController.Update)
				studentsAdminProtected.DELETE("/:studentNo", studentController.Delete)
			}

			// Admins see any record, students only their own
			studentsSelfProtected := students.Group("")
			studentsSelfProtected.Use(authMiddleware.SelfOrAdmin("studentNo"))
			{
				studentsSelfProtected.GET("/:studentNo", studentController.Get)
				studentsSelfProtected.GET("/:studentNo/report", studentController.Report)
			}
		}
	}

	// Health check endpoint (public)
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
