package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/config"
	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/handlers"
	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/repositories"
	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/services"
)

func main() {
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	spaceRepo := repositories.NewSpaceRepository(db)
	proposalRepo := repositories.NewProposalRepository(db)
	attachmentRepo := repositories.NewAttachmentRepository(db)
	log.Println("✅ Repositories initialized successfully")

	storageService := services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.MaxFileSize)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	log.Println("✅ Services initialized successfully")

	backend, err := services.NewChatBackend(cfg.LLM)
	if err != nil {
		log.Fatalf("❌ Failed to initialize LLM backend: %v", err)
	}
	log.Printf("✅ LLM backend initialized (%s)\n", cfg.LLM.Provider)

	cache := services.NewNoopCache()
	if cfg.Cache.Enabled {
		cache = services.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.Capacity)
	}
	invoker := services.NewLLMInvoker(backend, cache, cfg.LLM.RetryBase)

	var retriever services.ContextRetriever
	if cfg.Qdrant.Enabled {
		retriever = initRetriever(cfg, backend)
	}

	opts := services.InvokeOptionsFromConfig(cfg.LLM)
	analyzer := services.NewProposalAnalyzer(invoker, retriever, opts)
	comparator := services.NewProposalComparator(invoker, opts)

	proposalService := services.NewProposalService(
		spaceRepo,
		proposalRepo,
		attachmentRepo,
		pdfParser,
		analyzer,
		comparator,
	)
	log.Println("✅ Proposal service initialized")

	worker := services.NewWorker(
		proposalRepo,
		proposalService,
		cfg.Worker.Concurrency,
		cfg.Worker.PollInterval,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)

	spaceHandler := handlers.NewSpaceHandler(spaceRepo)
	proposalHandler := handlers.NewProposalHandler(
		spaceRepo,
		proposalRepo,
		attachmentRepo,
		storageService,
		worker,
	)
	resultHandler := handlers.NewResultHandler(proposalRepo)
	compareHandler := handlers.NewCompareHandler(proposalService)
	cacheHandler := handlers.NewCacheHandler(invoker.Cache())
	log.Println("✅ Handlers initialized")

	app := fiber.New(fiber.Config{
		AppName:      "RFP Proposal Analysis API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 5,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/spaces", spaceHandler.HandleCreate)
	api.Get("/spaces/:id", spaceHandler.HandleGet)
	api.Post("/spaces/:id/proposals", proposalHandler.HandleSubmit)
	api.Post("/spaces/:id/compare", compareHandler.HandleCompare)
	api.Get("/proposals/:id", resultHandler.HandleGetResult)
	api.Get("/cache", cacheHandler.HandleStats)
	api.Delete("/cache", cacheHandler.HandleClear)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "RFP Proposal Analysis API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/spaces",
				"GET /api/v1/spaces/:id",
				"POST /api/v1/spaces/:id/proposals",
				"POST /api/v1/spaces/:id/compare",
				"GET /api/v1/proposals/:id",
				"GET /api/v1/cache",
				"DELETE /api/v1/cache",
			},
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		cancel()
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initRetriever connects the reference context store. Retrieval needs Gemini
// embeddings, so it is skipped for other providers.
func initRetriever(cfg *config.Config, backend services.ChatBackend) services.ContextRetriever {
	embedder, ok := backend.(services.Embedder)
	if !ok {
		log.Printf("⚠️  Reference context needs Gemini embeddings, disabled for provider %s\n", cfg.LLM.Provider)
		return nil
	}

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Printf("⚠️  Qdrant unavailable, continuing without reference context: %v\n", err)
		return nil
	}

	if err := qdrantService.InitCollection(context.Background()); err != nil {
		log.Printf("⚠️  Qdrant collection unavailable, continuing without reference context: %v\n", err)
		return nil
	}
	log.Println("✅ Qdrant initialized successfully")

	return services.NewVectorRetriever(embedder, qdrantService)
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
