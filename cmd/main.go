package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/is-richmond/course-v1/config"
	"github.com/is-richmond/course-v1/database"
	adminctrl "github.com/is-richmond/course-v1/internal/controller/admin"
	userctrl "github.com/is-richmond/course-v1/internal/controller/user"
	"github.com/is-richmond/course-v1/internal/logger"
	"github.com/is-richmond/course-v1/internal/model"
	"github.com/is-richmond/course-v1/internal/repository"
	"github.com/is-richmond/course-v1/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Combined Test API
// @version 1.0
// @description Generates combined tests from existing question banks, grades submissions and reports per-topic statistics.
// @contact.name API Support
// @contact.email support@example.com
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewTestRepository,
			repository.NewCombinedTestRepository,
			repository.NewCombinedTestAttemptRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewAdminTestService,
			service.NewUserTestService,
			service.NewMathRandom,
			service.NewSampler,
			service.NewCombinedTestService,
			// SubmissionService needs *gorm.DB for its grading transaction.
			service.NewSubmissionService,
			service.NewStatisticsService,
		),

		// API Controllers Layer
		fx.Provide(
			adminctrl.NewAdminTestController,
			userctrl.NewSourceTestController,
			userctrl.NewCombinedTestController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.DebugMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminTestCtrl *adminctrl.AdminTestController,
	sourceTestCtrl *userctrl.SourceTestController,
	combinedTestCtrl *userctrl.CombinedTestController,
) {
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		testsAdminGroup := adminAPIGroup.Group("/tests")
		testsAdminGroup.POST("", adminTestCtrl.CreateTest)
	}

	userAPIGroup := router.Group("/api/v1")
	{
		// Source test catalog
		userAPIGroup.GET("/tests", sourceTestCtrl.GetAllTests)
		userAPIGroup.GET("/tests/:test_id", sourceTestCtrl.GetTestDetails)

		// Combined tests
		combinedGroup := userAPIGroup.Group("/combined-tests")
		combinedGroup.POST("/generate", combinedTestCtrl.Generate)
		combinedGroup.GET("/my-tests", combinedTestCtrl.GetMyTests)
		combinedGroup.GET("/:test_id", combinedTestCtrl.GetCombinedTest)
		combinedGroup.DELETE("/:test_id", combinedTestCtrl.DeleteCombinedTest)
		combinedGroup.POST("/:test_id/submit", combinedTestCtrl.Submit)
		combinedGroup.GET("/attempts/history", combinedTestCtrl.GetAttemptHistory)
		combinedGroup.GET("/attempts/:attempt_id", combinedTestCtrl.GetAttemptDetails)
		combinedGroup.GET("/statistics/attempt/:attempt_id", combinedTestCtrl.GetAttemptStatistics)
		combinedGroup.GET("/statistics/overall", combinedTestCtrl.GetOverallStatistics)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Combined Test API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Test{},
		&model.Question{},
		&model.QuestionOption{},
		&model.CombinedTest{},
		&model.CombinedTestSource{},
		&model.CombinedTestQuestion{},
		&model.CombinedTestAttempt{},
		&model.CombinedTestAnswer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
