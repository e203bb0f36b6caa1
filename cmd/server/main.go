package main

import (
	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/giveaway-backend/internal/auth"
	"github.com/ArowuTest/giveaway-backend/internal/config"
	"github.com/ArowuTest/giveaway-backend/internal/handlers"
	"github.com/ArowuTest/giveaway-backend/internal/models"
)

func main() {
	// Load config & init
	appCfg := config.Load()
	db := config.InitDB(appCfg)
	models.Migrate(db)
	auth.Init(appCfg.JWTSecret)

	// Setup router
	r := gin.Default()
	r.Use(config.CORSMiddleware())

	api := r.Group("/api/v1")
	{
		// Public surface
		api.GET("/campaigns", handlers.ListPublicCampaigns)
		api.GET("/campaigns/:id", handlers.GetCampaign)
		api.GET("/campaigns/:id/stats", handlers.CampaignStats)
		api.GET("/campaigns/:id/winner", handlers.GetWinner)
		api.POST("/submit", handlers.SubmitEntry)

		// Auth
		api.POST("/admin/login", handlers.Login)

		// Admin users (SUPERADMIN only)
		users := api.Group("/admin/users", handlers.RequireAuth(models.RoleSuperAdmin))
		{
			users.POST("", handlers.CreateUser)
			users.GET("", handlers.ListUsers)
			users.GET("/:id", handlers.GetUser)
			users.PUT("/:id", handlers.UpdateUser)
			users.DELETE("/:id", handlers.DeleteUser)
		}

		// Admin campaign management
		admin := api.Group("/admin", handlers.RequireAuth(models.RoleSuperAdmin, models.RoleAdmin))
		{
			admin.GET("/campaigns", handlers.ListAllCampaigns)
			admin.POST("/campaigns", handlers.CreateCampaign)
			admin.PUT("/campaigns/:id", handlers.UpdateCampaign)
			admin.DELETE("/campaigns/:id", handlers.DeactivateCampaign)
			admin.GET("/campaigns/:id/submissions", handlers.ListSubmissions)
			admin.POST("/submissions/:id/verify", handlers.VerifySubmission)
			admin.POST("/winner/select", handlers.SelectWinner)
		}
	}

	// Start the HTTP server (port from env or default)
	r.Run(":" + appCfg.Port)
}
