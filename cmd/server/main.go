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
	"github.com/robfig/cron"

	config "socialdesk/configs"
	"socialdesk/internal/api/handlers"
	"socialdesk/internal/api/middleware"
	job "socialdesk/internal/jobs"
	"socialdesk/internal/models"
	"socialdesk/internal/queue"
	"socialdesk/internal/repository"
	"socialdesk/internal/service"
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
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	clientAccessRepo := repository.NewClientAccessRepository(db)
	postRepo := repository.NewPostRepository(db)
	socialAccountRepo := repository.NewSocialAccountRepository(db)
	postingHistoryRepo := repository.NewPostingHistoryRepository(db)
	mediaAssetRepo := repository.NewMediaAssetRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	accessService := service.NewAccessService(clientAccessRepo)
	auditService := service.NewAuditService(auditLogRepo, cfg.AuditQueueSize)
	defer auditService.Close()

	authService := service.NewAuthService(*cfg, userRepo)
	r2Service, err := service.NewR2Service(*cfg)
	if err != nil {
		log.Fatalf("Failed to set up R2 client: %v", err)
	}
	seoService := service.NewSEOService()

	deliverers := map[string]service.Deliverer{
		models.PlatformFacebook:  service.NewFacebookService(*cfg),
		models.PlatformInstagram: service.NewInstagramService(*cfg),
		models.PlatformLinkedin:  service.NewLinkedinService(*cfg),
	}
	publisherService := service.NewPublisherService(*cfg, socialAccountRepo, postRepo, postingHistoryRepo, clientRepo, seoService, deliverers)

	postService := service.NewPostService(accessService, postRepo, clientRepo, postingHistoryRepo)
	clientService := service.NewClientService(accessService, clientRepo, socialAccountRepo, postRepo)
	accountService := service.NewAccountService(*cfg, accessService, socialAccountRepo, clientRepo)
	adminService := service.NewAdminService(accessService, userRepo, clientRepo, clientAccessRepo)
	mediaService := service.NewMediaService(*cfg, accessService, r2Service, mediaAssetRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)
	auditMiddleware := middleware.NewAuditMiddleware(auditService)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Post("/auth/login", auth.Login)
	app.Post("/auth/logout", auth.Logout)

	api := app.Group("/api")
	api.Use(authMiddleware.RequireAuth())
	api.Use(auditMiddleware.RecordMutations())

	api.Get("/me", auth.Profile)

	post := handlers.NewPostHandler(postService, publisherService, client)
	api.Post("/posts", post.CreatePost)
	api.Get("/posts", post.ListPosts)
	api.Get("/posts/:id", post.GetPost)
	api.Put("/posts/:id", post.UpdatePost)
	api.Delete("/posts/:id", post.DeletePost)
	api.Post("/posts/:id/approve", post.ApprovePost)
	api.Post("/posts/:id/reject", post.RejectPost)
	api.Post("/posts/:id/publish", post.PublishPost)

	clientH := handlers.NewClientHandler(clientService)
	api.Post("/clients", clientH.CreateClient)
	api.Get("/clients", clientH.ListClients)
	api.Get("/clients/:id", clientH.GetClient)
	api.Put("/clients/:id", clientH.UpdateClient)
	api.Delete("/clients/:id", clientH.DeleteClient)

	account := handlers.NewAccountHandler(accountService)
	api.Post("/accounts", account.ConnectAccount)
	api.Get("/accounts", account.ListAccounts)
	api.Delete("/accounts/:id", account.DisconnectAccount)

	admin := handlers.NewAdminHandler(adminService)
	api.Post("/admin/employees", admin.CreateEmployee)
	api.Get("/admin/employees", admin.ListEmployees)
	api.Get("/admin/employees/:id/access", admin.ListEmployeeAccess)
	api.Post("/admin/assign", admin.AssignAccess)

	audit := handlers.NewAuditHandler(auditService, accessService)
	api.Get("/audit", audit.ListLogs)

	media := handlers.NewMediaHandler(mediaService)
	api.Post("/media", media.UploadMedia)
	api.Get("/media", media.ListMedia)

	// cron sweep for scheduled posts the queue missed
	schedulerJob := job.NewSchedulerJob(postRepo, publisherService)

	worker := queue.NewWorker(postRepo, publisherService)

	c := cron.New()
	c.AddFunc("@every 00h05m00s", schedulerJob.PublishDue)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublishPost, worker.HandlePublishPostTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(cfg.ListenAddr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on %s", cfg.ListenAddr)

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
