package bootstrap

import (
	"log"

	"ai-medassist-be/internal/config"
	"ai-medassist-be/internal/controller"
	"ai-medassist-be/internal/pkg/logger"
	"ai-medassist-be/internal/repository/memory"
	"ai-medassist-be/internal/repository/unitofwork"
	"ai-medassist-be/internal/service"
	"ai-medassist-be/pkg/llm/factory"
	pktNats "ai-medassist-be/pkg/nats"
	"ai-medassist-be/pkg/rag/grounding"
	"ai-medassist-be/pkg/retrieval"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	HealthController    controller.IHealthController
	DocumentController  controller.IDocumentController
	AssistantController controller.IAssistantController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Core Facades
	SysLogger logger.ILogger
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

	// NATS is an optional external surface; the in-process audit bus keeps
	// working when it is down.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 3. Model Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Grounding Pipeline
	engine := retrieval.NewEngine(retrieval.NewSubstringScorer())
	enforcer := grounding.NewEnforcer(llmProvider, cfg.Ai.VisionModel, log.Default())
	conversationRepo := memory.NewConversationRepository()

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.AuditTopicName, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.AuditTopicName,
		uowFactory,
		sysLogger,
	)

	documentService := service.NewDocumentService(
		uowFactory,
		publisherService,
		engine,
		natsPub,
	)
	assistantService := service.NewAssistantService(
		uowFactory,
		publisherService,
		conversationRepo,
		engine,
		enforcer,
		natsPub,
	)

	// 6. Controllers
	return &Container{
		HealthController:    controller.NewHealthController(db),
		DocumentController:  controller.NewDocumentController(documentService),
		AssistantController: controller.NewAssistantController(assistantService),
		ConsumerService:     consumerService,
		SysLogger:           sysLogger,
	}
}
