package bootstrap

import (
	"context"
	"log"

	"ai-chatlog-be/internal/config"
	"ai-chatlog-be/internal/controller"
	"ai-chatlog-be/internal/pkg/logger"
	"ai-chatlog-be/internal/repository/memory"
	"ai-chatlog-be/internal/repository/unitofwork"
	"ai-chatlog-be/internal/service"
	"ai-chatlog-be/internal/websocket"
	"ai-chatlog-be/pkg/embedding"
	"ai-chatlog-be/pkg/llm/factory"

	pktNats "ai-chatlog-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ConversationController controller.IConversationController
	SearchController       controller.ISearchController
	QueryController        controller.IQueryController

	// Background Services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	ChatService  service.IChatService
	WebSocketHub *websocket.Hub
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

	// 3. AI Providers
	embeddingProvider := embedding.NewOllamaProvider(
		cfg.Ai.EmbeddingBaseURL,
		cfg.Ai.EmbeddingModel,
	)
	log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)

	vectorizer := embedding.NewVectorizer(embeddingProvider, sysLogger)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaLLMModel,
		cfg.Ai.LMStudioURL,
		cfg.Ai.LMStudioModel,
		sysLogger,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}

	// In-memory cache for conversation-level embeddings
	embeddingCache := memory.NewEmbeddingCache()

	// 4. Infrastructure
	// NATS
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

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Topics.AnalyzeConversation, pubSub)

	conversationService := service.NewConversationService(uowFactory, publisherService, sysLogger)
	chatService := service.NewChatService(uowFactory, llmProvider, vectorizer, sysLogger)
	searchService := service.NewSearchService(uowFactory, vectorizer, embeddingCache, sysLogger)
	queryService := service.NewQueryService(searchService, llmProvider, sysLogger)
	analysisService := service.NewAnalysisService(uowFactory, llmProvider, embeddingCache, natsPub, sysLogger)

	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Topics.AnalyzeConversation,
		analysisService,
		sysLogger,
	)

	// Notifier bridges analysis completion events to connected clients
	if natsSub != nil {
		notifierService := service.NewNotifierService(natsSub, wsHub, sysLogger)
		if err := notifierService.Start(); err != nil {
			log.Printf("[WARN] Failed to start notifier service: %v", err)
		}
	}

	// 6. Controllers
	return &Container{
		ConversationController: controller.NewConversationController(conversationService, analysisService, searchService),
		SearchController:       controller.NewSearchController(searchService),
		QueryController:        controller.NewQueryController(queryService),

		ConsumerService: consumerService,

		ChatService:  chatService,
		WebSocketHub: wsHub,
	}
}
