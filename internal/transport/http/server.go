package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"earnings-analyzer/internal/analysis"
	appsvc "earnings-analyzer/internal/app"
	"earnings-analyzer/internal/bootstrap"
	"earnings-analyzer/internal/repository"
	"earnings-analyzer/internal/transport/http/handler"
	"earnings-analyzer/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.MaxMultipartMemory = int64(app.Config.App.MaxUploadMB) << 20

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	analystRepo := repository.NewAnalystRepository(app.MySQL)
	transcriptRepo := repository.NewTranscriptRepository(app.MySQL)
	chunkRepo := repository.NewTranscriptChunkRepository(app.MySQL)
	qaRepo := repository.NewQARecordRepository(app.MySQL)

	authService := appsvc.NewAuthService(
		analystRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	transcriptService := appsvc.NewTranscriptService(
		transcriptRepo,
		chunkRepo,
		app.Processor,
		app.Workspace,
		app.InsightCache,
		app.Config.App.DemoPDFPath,
	)
	insightService := appsvc.NewInsightService(
		transcriptService,
		analysis.NewTopicExtractor(app.Models.Completer, nil),
		analysis.NewSummarizer(app.Models.Completer),
		app.InsightCache,
	)
	qaService := appsvc.NewQAService(
		transcriptService,
		qaRepo,
		app.QAPublisher,
		app.Models.Completer,
		app.Models.AnswerOptions,
		app.Models.TopK,
	)

	authHandler := handler.NewAuthHandler(authService)
	transcriptHandler := handler.NewTranscriptHandler(transcriptService, app.Config.App.MaxUploadMB)
	insightHandler := handler.NewInsightHandler(insightService)
	qaHandler := handler.NewQAHandler(qaService)

	v1 := router.Group("/api/v1")
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", middleware.AuthJWT(app.Config.Auth.JWTSecret), authHandler.Me)

	v1.GET("/questions/samples", middleware.AuthJWT(app.Config.Auth.JWTSecret), handler.SampleQuestions)

	transcriptGroup := v1.Group("/transcripts")
	transcriptGroup.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	transcriptGroup.POST("", transcriptHandler.Upload)
	transcriptGroup.POST("/demo", transcriptHandler.LoadDemo)
	transcriptGroup.GET("", transcriptHandler.List)
	transcriptGroup.GET("/:id", transcriptHandler.Get)
	transcriptGroup.DELETE("/:id", transcriptHandler.Delete)
	transcriptGroup.GET("/:id/opening", transcriptHandler.Opening)
	transcriptGroup.GET("/:id/qa", transcriptHandler.QA)
	transcriptGroup.GET("/:id/index", transcriptHandler.Index)
	transcriptGroup.POST("/:id/topics", insightHandler.Topics)
	transcriptGroup.POST("/:id/summaries", insightHandler.Summaries)
	transcriptGroup.POST("/:id/ask", qaHandler.Ask)
	transcriptGroup.GET("/:id/history", qaHandler.History)

	return router
}
