package bootstrap

import (
	"log"

	"paper-analysis-be/internal/config"
	"paper-analysis-be/internal/controller"
	"paper-analysis-be/internal/pkg/logger"
	"paper-analysis-be/internal/repository/unitofwork"
	"paper-analysis-be/internal/service"
	"paper-analysis-be/pkg/doi"
	"paper-analysis-be/pkg/embedding"
	pktNats "paper-analysis-be/pkg/nats"
	"paper-analysis-be/pkg/scan"
	"paper-analysis-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController
	JobController      controller.IJobController
	SearchController   controller.ISearchController

	// Background Services (Exposed for main.go to run)
	ConsumerService   service.IConsumerService
	EventAuditService service.IEventAuditService
	EventSubscriber   *pktNats.Subscriber

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Embedding provider
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "gemini" {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiApiKey, cfg.Ai.EmbeddingDimension)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	} else {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
			cfg.Ai.EmbeddingDimension,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	}

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis-backed reprocess lock, in-process fallback when unavailable
	var lockStore store.LockStore
	redisLock, err := store.NewRedisLockStore(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to Redis, using local locks: %v", err)
		lockStore = store.NewLocalLockStore()
	} else {
		lockStore = redisLock
	}

	// OCR sidecar is optional; the pipeline degrades to direct extraction
	var ocrEngine service.OcrEngine
	if cfg.Ocr.SidecarURL != "" {
		sidecar := scan.NewSidecarClient(cfg.Ocr.SidecarURL)
		ocrEngine = scan.NewProcessor(sidecar, sidecar, cfg.Ocr.DPI, cfg.Ocr.Lang)
		log.Printf("[INFO] OCR sidecar configured at %s", cfg.Ocr.SidecarURL)
	}

	doiValidator := doi.NewValidator(0)

	publisherService := service.NewPublisherService(cfg.Pipeline.TopicName, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		service.ConsumerConfig{
			TopicName:        cfg.Pipeline.TopicName,
			FigureDir:        cfg.Storage.FigureDir,
			ChunkSize:        cfg.Pipeline.ChunkSize,
			ChunkOverlap:     cfg.Pipeline.ChunkOverlap,
			MaxRetries:       cfg.Pipeline.MaxRetries,
			RetryBackoffBase: cfg.Pipeline.RetryBackoffBase,
			HardTimeout:      cfg.Pipeline.HardTimeout,
			SoftTimeout:      cfg.Pipeline.SoftTimeout,
			ValidateDoi:      cfg.Pipeline.ValidateDoi,
		},
		uowFactory,
		service.NewPdfParserFactory(cfg.Pipeline.AffiliationDenylist),
		ocrEngine,
		doiValidator,
		embeddingProvider,
		lockStore,
		natsPub,
		sysLogger,
	)

	documentService := service.NewDocumentService(
		uowFactory,
		publisherService,
		cfg.Storage.UploadDir,
		cfg.Storage.MaxFileSize,
		sysLogger,
	)
	jobService := service.NewJobService(uowFactory)
	searchService := service.NewSearchService(uowFactory, embeddingProvider, sysLogger)

	return &Container{
		DocumentController: controller.NewDocumentController(documentService),
		JobController:      controller.NewJobController(jobService),
		SearchController:   controller.NewSearchController(searchService),

		ConsumerService:   consumerService,
		EventAuditService: service.NewEventAuditService(sysLogger),
		EventSubscriber:   natsSub,
		Logger:            sysLogger,
	}
}
