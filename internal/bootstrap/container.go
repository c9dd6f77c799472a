package bootstrap

import (
	"context"
	"log"
	"time"

	"kurazhelp-be/internal/config"
	"kurazhelp-be/internal/constant"
	"kurazhelp-be/internal/controller"
	"kurazhelp-be/internal/handler"
	"kurazhelp-be/internal/pkg/logger"
	"kurazhelp-be/internal/pkg/mailer"
	"kurazhelp-be/internal/repository/memory"
	"kurazhelp-be/internal/repository/unitofwork"
	"kurazhelp-be/internal/service"
	docsync "kurazhelp-be/internal/sync"
	"kurazhelp-be/internal/websocket"
	"kurazhelp-be/pkg/llm/factory"
	pktNats "kurazhelp-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	OAuthController      controller.IOAuthController
	DocumentController   controller.IDocumentController
	AssistantController  controller.IAssistantController
	PreferenceController controller.IPreferenceController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Document Sync
	SyncHandler    *handler.SyncHandler
	WebSocketHub   *websocket.Hub
	SyncController *docsync.Controller
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.App.ClientURL,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Provider
	llmProvider, err := factory.NewProvider(factory.Config{
		Provider:  cfg.Ai.LLMProvider,
		Model:     cfg.Ai.LLMModel,
		GroqKey:   cfg.Ai.GroqAPIKey,
		OllamaURL: cfg.Ai.OllamaBaseURL,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// In-memory transcript storage, dropped on logout
	transcriptRepo := memory.NewTranscriptRepository()

	// 3.5 Infrastructure
	// NATS (audit events are best-effort, server still boots without it)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// Document Sync Controller + WebSocket Hub
	syncLogger := logger.NewIsolatedLogger("logs/sync.log")
	syncController := docsync.NewController(uowFactory, syncLogger, rdb)
	go syncController.Run(context.Background())

	wsHub := websocket.NewHub(syncController, syncLogger)
	go wsHub.Run()

	publisherService := service.NewPublisherService(constant.TopicDocumentChanged, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		constant.TopicDocumentChanged,
		syncController,
	)

	// 4. Services
	accessTokenTTL := time.Duration(cfg.Auth.AccessTokenTTLMin) * time.Minute
	refreshTokenTTL := time.Duration(cfg.Auth.RefreshTokenTTLDay) * 24 * time.Hour

	assistantService := service.NewAssistantService(uowFactory, transcriptRepo, llmProvider, sysLogger)
	authService := service.NewAuthService(
		uowFactory,
		emailService,
		natsPub,
		assistantService, // transcripts die with the session
		accessTokenTTL,
		refreshTokenTTL,
	)
	oauthService := service.NewOAuthService(uowFactory, accessTokenTTL)

	documentService := service.NewDocumentService(uowFactory, publisherService, natsPub, sysLogger)
	preferenceService := service.NewPreferenceService(uowFactory)

	// Audit worker (durable consumer over the event stream)
	if natsSub != nil {
		auditService := service.NewAuditService(uowFactory, natsSub, sysLogger)
		if err := auditService.Start(); err != nil {
			log.Printf("[WARN] Failed to start audit worker: %v", err)
		}
	}

	syncHandler := handler.NewSyncHandler(wsHub, syncLogger)

	// 5. Controllers
	return &Container{
		AuthController:       controller.NewAuthController(authService),
		OAuthController:      controller.NewOAuthController(oauthService),
		DocumentController:   controller.NewDocumentController(documentService),
		AssistantController:  controller.NewAssistantController(assistantService),
		PreferenceController: controller.NewPreferenceController(preferenceService),

		ConsumerService: consumerService,

		SyncHandler:    syncHandler,
		WebSocketHub:   wsHub,
		SyncController: syncController,
	}
}
