package bootstrap

import (
	"context"
	"log"

	"paint-estimate-be/internal/config"
	"paint-estimate-be/internal/controller"
	"paint-estimate-be/internal/handler"
	"paint-estimate-be/internal/pkg/logger"
	"paint-estimate-be/internal/pkg/mailer"
	"paint-estimate-be/internal/repository/implementation"
	"paint-estimate-be/internal/repository/memory"
	"paint-estimate-be/internal/repository/unitofwork"
	"paint-estimate-be/internal/service"
	"paint-estimate-be/internal/websocket"
	"paint-estimate-be/pkg/ai/remote"
	"paint-estimate-be/pkg/estimate/lineitem"
	"paint-estimate-be/pkg/estimate/normalize"
	"paint-estimate-be/pkg/workflow"

	pktNats "paint-estimate-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	WorkflowController controller.IWorkflowController
	EstimateController controller.IEstimateController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
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
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
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
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Estimate Pipeline
	aiProvider := remote.NewProvider(cfg.Ai.BaseURL, cfg.Ai.APIKey)
	normalizer := normalize.NewNormalizer(cfg.Estimate.ConfidenceThreshold, sysLogger)
	generator := lineitem.NewGenerator(sysLogger)
	machine := workflow.NewMachine(normalizer, generator, sysLogger)

	stateCache := memory.NewWorkflowCache()
	stateRepo := implementation.NewWorkflowStateRepository(rdb, stateCache, sysLogger)

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Estimate.CompletionTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Estimate.CompletionTopic,
		uowFactory,
		emailService,
		wsHub,
	)

	workflowService := service.NewWorkflowService(
		machine,
		stateRepo,
		uowFactory,
		aiProvider,
		aiProvider,
		publisherService,
		natsPub,
		cfg.Estimate,
		sysLogger,
	)
	estimateService := service.NewEstimateService(uowFactory, sysLogger)

	notifHandler := handler.NewNotificationHandler(wsHub, wsLogger)

	// 5. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
		WorkflowController:  controller.NewWorkflowController(workflowService),
		EstimateController:  controller.NewEstimateController(estimateService),

		ConsumerService: consumerService,
	}
}
