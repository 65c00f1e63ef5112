package api

import (
	"net/http"

	"vitacare/health-app/internal/domain"
	"vitacare/health-app/internal/service"
	"vitacare/health-app/internal/storage"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every handler into the router. All content routes
// require a valid JWT; documents and content belong to the token's user.
// Patient review routes additionally require the clinician role.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	integrationService service.IntegrationService,
	retrievalService service.RetrievalService,
	scoreService service.ScoreService,
	fileStorage storage.FileStorage,
) {
	authHandler := NewAuthHandler(authService)
	planHandler := NewPlanHandler(integrationService, retrievalService)
	dashboardHandler := NewDashboardHandler(retrievalService)
	contentHandler := NewContentHandler(integrationService, retrievalService)
	scoreHandler := NewScoreHandler(scoreService)
	documentHandler := NewDocumentHandler(fileStorage)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	authGroup := apiV1.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		planGroup := protected.Group("/plans")
		{
			planGroup.POST("/generate", planHandler.SaveGeneratedPlan)
			planGroup.GET("", planHandler.GetSavedPlanData)
			planGroup.GET("/active", planHandler.GetExistingPlan)
			planGroup.POST("/:id/activate", planHandler.ActivatePlan)
			planGroup.PUT("/:id/status", planHandler.UpdateStatus)
			planGroup.PUT("/progress", planHandler.UpdateProgress)
		}

		dashboardGroup := protected.Group("/dashboard")
		{
			dashboardGroup.GET("/status", dashboardHandler.GetDataStatus)
			dashboardGroup.GET("/today", dashboardHandler.GetToday)
			dashboardGroup.GET("/progress", dashboardHandler.GetProgress)
			dashboardGroup.GET("/content", dashboardHandler.GetContentByDateRange)
		}

		protected.PUT("/activities/:id/completion", contentHandler.UpdateActivityCompletion)
		protected.PUT("/insights/:id/read", contentHandler.MarkInsightRead)
		protected.PUT("/recommendations/:id/accept", contentHandler.AcceptRecommendation)
		protected.POST("/sessions", contentHandler.SaveSession)

		scoreGroup := protected.Group("/health-scores")
		{
			scoreGroup.POST("", scoreHandler.SaveScore)
			scoreGroup.GET("/latest", scoreHandler.GetLatestScore)
		}

		documentGroup := protected.Group("/documents")
		{
			documentGroup.POST("/upload-url", documentHandler.CreateUploadURL)
			documentGroup.GET("/download-url", documentHandler.CreateDownloadURL)
		}

		patientGroup := protected.Group("/patients")
		patientGroup.Use(RoleMiddleware(domain.RoleClinician))
		{
			patientGroup.GET("/:id/plan", planHandler.GetPatientPlan)
			patientGroup.GET("/:id/progress", dashboardHandler.GetPatientProgress)
		}
	}
}
