package main

import (
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ymgta/jobdraft-api/internal/ai"
	"github.com/ymgta/jobdraft-api/internal/config"
	"github.com/ymgta/jobdraft-api/internal/database"
	"github.com/ymgta/jobdraft-api/internal/handlers"
	"github.com/ymgta/jobdraft-api/internal/services"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.SeedReferenceData(db); err != nil {
		logger.Error("reference data seeding failed", "error", err)
		os.Exit(1)
	}

	factory := ai.NewFactory(db, logger, cfg.AIRequestTimeout, cfg.AIMaxRetries, cfg.AIRetryBaseDelay)

	providerService := services.NewProviderService(db, logger)
	templateService := services.NewTemplateService(db, logger)
	hearingService := services.NewHearingService(db, logger)
	jobDescService := services.NewJobDescriptionService(db, factory, logger)

	providerHandler := handlers.NewProviderHandler(providerService)
	templateHandler := handlers.NewTemplateHandler(templateService)
	hearingHandler := handlers.NewHearingHandler(hearingService)
	jobDescHandler := handlers.NewJobDescriptionHandler(jobDescService)

	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSAllowOrigins) == 1 && cfg.CORSAllowOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowOrigins
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		api.GET("/industries", hearingHandler.Industries)
		api.GET("/hearing-items/:industryId", hearingHandler.Items)

		api.POST("/hearing-sessions", hearingHandler.CreateSession)
		api.GET("/hearing-sessions", hearingHandler.ListSessions)
		api.GET("/hearing-sessions/:id", hearingHandler.GetSession)

		api.GET("/ai-providers", providerHandler.List)
		api.POST("/ai-providers", providerHandler.Create)
		api.GET("/ai-providers/:id", providerHandler.Get)
		api.PUT("/ai-providers/:id", providerHandler.Update)
		api.DELETE("/ai-providers/:id", providerHandler.Delete)

		api.GET("/job-templates", templateHandler.List)
		api.POST("/job-templates", templateHandler.Create)
		api.GET("/job-templates/default", templateHandler.Default)
		api.GET("/job-templates/:id", templateHandler.Get)
		api.PUT("/job-templates/:id", templateHandler.Update)
		api.DELETE("/job-templates/:id", templateHandler.Delete)
		api.POST("/job-templates/:id/clone", templateHandler.Clone)
		api.GET("/job-templates/:id/sections", templateHandler.ListSections)
		api.POST("/job-templates/:id/sections", templateHandler.AddSection)
		api.PUT("/job-templates/:id/sections", templateHandler.ReorderSections)
		api.GET("/job-templates/sections/:id", templateHandler.GetSection)
		api.PUT("/job-templates/sections/:id", templateHandler.UpdateSection)
		api.DELETE("/job-templates/sections/:id", templateHandler.DeleteSection)

		api.GET("/job-descriptions", jobDescHandler.List)
		api.POST("/job-descriptions", jobDescHandler.Create)
		api.GET("/job-descriptions/:id", jobDescHandler.Get)
		api.PUT("/job-descriptions/:id", jobDescHandler.UpdateStatus)
		api.DELETE("/job-descriptions/:id", jobDescHandler.Delete)
		api.POST("/job-descriptions/:id/regenerate", jobDescHandler.Regenerate)
		api.GET("/job-descriptions/:id/sections/:sectionId", jobDescHandler.GetSection)
		api.PUT("/job-descriptions/:id/sections/:sectionId", jobDescHandler.UpdateSection)
		api.POST("/job-descriptions/:id/sections/:sectionId/regenerate", jobDescHandler.RegenerateSection)
	}

	logger.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
