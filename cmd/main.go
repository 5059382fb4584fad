package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/htloc2506/codingdesk/config"
	"github.com/htloc2506/codingdesk/database"
	_ "github.com/htloc2506/codingdesk/docs" // Swagger docs - auto-generated
	adminctrl "github.com/htloc2506/codingdesk/internal/controller/admin"
	codingctrl "github.com/htloc2506/codingdesk/internal/controller/coding"
	"github.com/htloc2506/codingdesk/internal/logger"
	"github.com/htloc2506/codingdesk/internal/model"
	"github.com/htloc2506/codingdesk/internal/repository"
	"github.com/htloc2506/codingdesk/internal/service"
	"github.com/htloc2506/codingdesk/internal/session"
)

// @title Document Coding API
// @version 1.0
// @description API for collaborative document coding: scheme management, coding sessions, validation and flags.
// @contact.name API Support
// @contact.email support@example.com
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories
		fx.Provide(
			repository.NewProjectRepository,
			repository.NewSchemeRepository,
			repository.NewCodedQuestionRepository,
			repository.NewFlagRepository,
			repository.NewUserRepository,
		),

		// Services and the engine backend
		fx.Provide(
			service.NewProjectService,
			service.NewSchemeService,
			service.NewAnswerService,
			service.NewFlagService,
			service.NewEngineBackend,
			session.NewHub,
		),

		// Controllers
		fx.Provide(
			adminctrl.NewAdminProjectController,
			codingctrl.NewCodingSessionController,
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
	adminProjectCtrl *adminctrl.AdminProjectController,
	codingCtrl *codingctrl.CodingSessionController,
) {
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		projects := adminAPIGroup.Group("/projects")
		projects.POST("", adminProjectCtrl.CreateProject)
		projects.GET("/:id", adminProjectCtrl.GetProject)
		projects.POST("/:id/scheme", adminProjectCtrl.CreateScheme)
	}

	apiGroup := router.Group("/api/v1")
	{
		sessions := apiGroup.Group("/sessions")
		sessions.POST("", codingCtrl.StartSession)
		sessions.GET("/:id", codingCtrl.GetView)
		sessions.DELETE("/:id", codingCtrl.CloseSession)

		sessions.POST("/:id/navigate", codingCtrl.Navigate)
		sessions.POST("/:id/category", codingCtrl.SelectCategory)

		sessions.POST("/:id/answers/toggle", codingCtrl.ToggleChoice)
		sessions.PUT("/:id/answers/comment", codingCtrl.SetComment)
		sessions.PUT("/:id/answers/pincite", codingCtrl.SetPincite)
		sessions.PUT("/:id/answers/text", codingCtrl.SetTextAnswer)
		sessions.POST("/:id/answers/annotations", codingCtrl.AddAnnotation)
		sessions.POST("/:id/answers/annotations/remove", codingCtrl.RemoveAnnotation)
		sessions.DELETE("/:id/answers", codingCtrl.ClearAnswer)
		sessions.POST("/:id/answers/apply-all", codingCtrl.ApplyToAllCategories)
		sessions.PUT("/:id/answers/flag", codingCtrl.SetRecordFlag)

		sessions.POST("/:id/save", codingCtrl.Save)
		sessions.POST("/:id/save/retry", codingCtrl.Retry)
		sessions.POST("/:id/validate", codingCtrl.BulkValidate)

		sessions.POST("/:id/flags/red", codingCtrl.SaveRedFlag)
		sessions.DELETE("/:id/flags/red/:flag_id", codingCtrl.ClearRedFlag)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Document coding API server starting on port %s", cfg.Server.Port)
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
		&model.User{},
		&model.Project{},
		&model.Jurisdiction{},
		&model.SchemeQuestion{},
		&model.AnswerChoice{},
		&model.Flag{},
		&model.CodedQuestion{},
		&model.CodedAnswer{},
		&model.Annotation{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
