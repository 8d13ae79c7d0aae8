package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/manypost/manypost/configs"
	"github.com/manypost/manypost/internal/api/handlers"
	"github.com/manypost/manypost/internal/api/middleware"
	job "github.com/manypost/manypost/internal/jobs"
	"github.com/manypost/manypost/internal/queue"
	"github.com/manypost/manypost/internal/repository"
	"github.com/manypost/manypost/internal/service"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	integrationRepo := repository.NewIntegrationRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	scheduledPostRepo := repository.NewScheduledPostRepository(db)
	postHistoryRepo := repository.NewPostHistoryRepository(db)
	videoStatRepo := repository.NewVideoStatRepository(db)
	draftRepo := repository.NewDraftRepository(db)
	apiKeyRepo := repository.NewApiKeyRepository(db)

	authService := service.NewAuthService(*cfg, userRepo)
	tokenService := service.NewTokenService(*cfg, integrationRepo)
	integrationService := service.NewIntegrationService(*cfg, integrationRepo)
	r2Service := service.NewR2Service(*cfg)
	videoService := service.NewVideoService(videoRepo, r2Service)
	postService := service.NewPostService(scheduledPostRepo, integrationRepo, videoRepo)
	draftService := service.NewDraftService(draftRepo, postService)
	publisherService := service.NewPublisherService(scheduledPostRepo, postHistoryRepo, tokenService, service.NewYoutubeUploader())
	scannerService := service.NewScannerService(scheduledPostRepo, publisherService)
	statsService := service.NewStatsService(postHistoryRepo, integrationRepo, videoStatRepo, tokenService)
	historyService := service.NewHistoryService(postHistoryRepo, videoStatRepo)
	apiKeyService := service.NewApiKeyService(apiKeyRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, apiKeyService)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Get("/login", auth.Login)
	app.Get("/login/callback", auth.LoginCallbackHandler)

	integration := handlers.NewIntegrationHandler(*cfg, integrationService)
	app.Get("/auth/youtube", integration.AddIntegration)
	app.Get("/auth/youtube/callback", integration.CallbackHandler)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	api.Get("/integrations/connect", integration.Connect)
	api.Get("/integrations", integration.ListIntegrations)
	api.Post("/integrations/remove", integration.Disconnect)

	video := handlers.NewVideoHandler(videoService)
	api.Post("/videos/upload-url", video.CreateUploadURL)
	api.Post("/videos/register", video.RegisterVideo)
	api.Get("/videos", video.ListVideos)
	api.Post("/videos/remove", video.RemoveVideo)

	post := handlers.NewPostHandler(postService, client)
	api.Post("/posts/create", post.SchedulePost)
	api.Get("/posts", post.ListPosts)
	api.Post("/posts/cancel", post.CancelPost)

	draft := handlers.NewDraftHandler(draftService, client)
	api.Post("/drafts/create", draft.CreateDraft)
	api.Get("/drafts", draft.ListDrafts)
	api.Post("/drafts/update", draft.UpdateDraft)
	api.Post("/drafts/remove", draft.RemoveDraft)
	api.Post("/drafts/promote", draft.PromoteDraft)

	apiKeys := handlers.NewApiKeyHandler(apiKeyService)
	api.Post("/api_key/new", apiKeys.CreateApiKey)
	api.Get("/api_key/list", apiKeys.ListKeys)
	api.Post("/api_key/remove", apiKeys.RemoveAPIKey)

	publisher := handlers.NewPublisherHandler(publisherService, scannerService, statsService)
	api.Post("/publisher/publish", publisher.Publish)
	api.Post("/publisher/scan", publisher.Scan)
	api.Post("/publisher/sync-stats", publisher.SyncStats)

	history := handlers.NewHistoryHandler(historyService)
	api.Get("/history", history.ListHistory)
	api.Get("/history/stats", history.ListStats)

	// cron jobs
	refreshTokenJob := job.NewTokenRefreshJob(integrationRepo, tokenService)
	scanJob := job.NewScanJob(scannerService)
	statsSyncJob := job.NewStatsSyncJob(statsService)

	//queue
	queueW := queue.NewQueue(publisherService)

	c := cron.New()
	c.AddFunc("@every 00h10m00s", refreshTokenJob.RefreshTokens)
	c.AddFunc("@every 00h01m00s", scanJob.ScanDuePosts)
	c.AddFunc("@every 06h00m00s", statsSyncJob.SyncStats)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeSchedulePost, queueW.HandleSchedulePostTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
