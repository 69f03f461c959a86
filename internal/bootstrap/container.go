package bootstrap

import (
	"context"
	"log"
	"strings"

	"collabnote-be/internal/config"
	"collabnote-be/internal/controller"
	"collabnote-be/internal/handler"
	"collabnote-be/internal/pkg/logger"
	"collabnote-be/internal/pkg/mailer"
	"collabnote-be/internal/repository/memory"
	"collabnote-be/internal/repository/unitofwork"
	"collabnote-be/internal/scheduler"
	"collabnote-be/internal/service"
	"collabnote-be/internal/websocket"
	"collabnote-be/pkg/events"
	"collabnote-be/pkg/llm"
	"collabnote-be/pkg/llm/factory"
	pktNats "collabnote-be/pkg/nats"
	"collabnote-be/pkg/storage"
	"collabnote-be/pkg/webpush"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// RoomChangedTopic carries room change hints from the lifecycle service to
// the change feed.
const RoomChangedTopic = "room.changed"

type closablePublisher interface {
	events.Publisher
	Close()
}

type closableSubscriber interface {
	events.Subscriber
	Close()
}

var (
	dialEventPublisher = func(url string) (closablePublisher, error) {
		p, err := pktNats.NewPublisher(url)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	dialEventSubscriber = func(url string) (closableSubscriber, error) {
		s, err := pktNats.NewSubscriber(url)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
)

// connectEventBus opens both NATS sides or neither. A nil publisher means the
// caller should fall back to the in-process bus.
func connectEventBus(url string) (events.Publisher, events.Subscriber, func()) {
	if url == "" {
		return nil, nil, nil
	}
	pub, err := dialEventPublisher(url)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		return nil, nil, nil
	}
	sub, err := dialEventSubscriber(url)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		pub.Close()
		return nil, nil, nil
	}
	return pub, sub, func() {
		sub.Close()
		pub.Close()
	}
}

type Container struct {
	// Controllers
	SweepController    controller.ISweepController
	RoomController     controller.IRoomController
	ReminderController controller.IReminderController
	HomeController     controller.IHomeController
	AIController       controller.IAIController
	CollabController   controller.ICollabController

	// Background Services (Exposed for main.go to run)
	ChangeFeedService   service.IChangeFeedService
	NotificationService service.INotificationService
	SweepService        service.ISweepService
	Scheduler           *scheduler.Scheduler

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	closers []func()
}

// NewContainer wires every service. db may be nil when the memory driver is
// configured.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())

	var uowFactory unitofwork.RepositoryFactory
	if cfg.Database.Driver == "memory" || db == nil {
		log.Printf("[WARN] Using in-memory store, data is lost on restart")
		uowFactory = memory.NewRepositoryFactory(memory.NewStore())
	} else {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	}

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		sysLogger,
	)

	c := &Container{}

	// 2. In-process change feed
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Domain event bus
	var (
		eventPublisher  events.Publisher
		eventSubscriber events.Subscriber
	)
	if pub, sub, closeBus := connectEventBus(cfg.App.NatsURL); pub != nil {
		eventPublisher, eventSubscriber = pub, sub
		c.closers = append(c.closers, closeBus)
	}
	if eventPublisher == nil {
		log.Printf("[INFO] Using in-process event bus")
		bus := events.NewLocalBus()
		eventPublisher, eventSubscriber = bus, bus
		c.closers = append(c.closers, func() { _ = bus.Close() })
	}

	// 4. Redis relay for the hub
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	wsLogger := logger.NewIsolatedLogger(cfg.App.EventLogFilePath)
	c.WebSocketHub = websocket.NewHub(rdb, wsLogger)

	// 5. Object storage for covers
	objectStorage, err := newObjectStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// 6. LLM
	var llmProvider llm.LLMProvider
	llmProvider, err = factory.NewLLMProvider(factory.Config{
		Provider:      cfg.Ai.LLMProvider,
		GeminiAPIKey:  cfg.Ai.GeminiAPIKey,
		GeminiModel:   cfg.Ai.GeminiModel,
		GeminiBaseURL: cfg.Ai.GeminiBaseURL,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
		OllamaModel:   cfg.Ai.OllamaModel,
		Timeout:       cfg.Ai.Timeout,
	})
	if err != nil {
		log.Printf("[WARN] AI endpoints disabled: %v", err)
		llmProvider = nil
	} else {
		log.Printf("[INFO] Using LLM Provider: %s", cfg.Ai.LLMProvider)
	}

	pushClient := webpush.NewClient(webpush.Config{
		VAPIDPublicKey:  cfg.Push.VapidPublicKey,
		VAPIDPrivateKey: cfg.Push.VapidPrivateKey,
		Subject:         cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
		Timeout:         cfg.Push.Timeout,
	})

	// 7. Services
	publisherService := service.NewPublisherService(pubSub, RoomChangedTopic)
	c.ChangeFeedService = service.NewChangeFeedService(pubSub, RoomChangedTopic, c.WebSocketHub, wsLogger)

	roomService := service.NewRoomService(
		uowFactory,
		publisherService,
		eventPublisher,
		emailService,
		objectStorage,
		sysLogger,
		service.RoomServiceConfig{
			MaxDepth:       cfg.Lifecycle.MaxDepth,
			ClientURL:      cfg.App.ClientURL,
			CollabSecret:   cfg.Auth.CollabSecret,
			CollabTokenTTL: cfg.Auth.CollabTokenTTL,
		},
	)
	workspaceService := service.NewWorkspaceService(uowFactory, sysLogger)
	reminderService := service.NewReminderService(uowFactory, sysLogger)
	c.SweepService = service.NewSweepService(uowFactory, pushClient, eventPublisher, sysLogger, cfg.App.ClientURL)
	aiService := service.NewAIService(llmProvider, cfg.Ai.CacheTTL, sysLogger)

	c.NotificationService = service.NewNotificationService(uowFactory, eventSubscriber, c.WebSocketHub, wsLogger) // Hub implements NotificationDelivery

	c.Scheduler, err = scheduler.New(cfg.Reminder.SweepSchedule, c.SweepService, 0, sysLogger)
	if err != nil {
		return nil, err
	}

	// 8. Controllers
	c.NotificationHandler = handler.NewNotificationHandler(c.NotificationService, c.WebSocketHub, cfg.Auth.JwtSecret, wsLogger)
	c.SweepController = controller.NewSweepController(c.SweepService, cfg.Auth.CronSecret)
	c.RoomController = controller.NewRoomController(roomService, workspaceService)
	c.ReminderController = controller.NewReminderController(reminderService, cfg.App.DefaultTimezone)
	c.HomeController = controller.NewHomeController(workspaceService, cfg.App.DefaultTimezone)
	c.AIController = controller.NewAIController(aiService)
	c.CollabController = controller.NewCollabController(roomService)

	return c, nil
}

func newObjectStorage(ctx context.Context, cfg *config.Config) (storage.ObjectStorage, error) {
	if strings.EqualFold(cfg.Storage.Driver, "s3") {
		return storage.NewS3Storage(ctx, storage.S3Config{
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			PublicURL: cfg.Storage.PublicURL,
		})
	}
	return storage.NewFileSystem(cfg.Storage.LocalDir, strings.TrimRight(cfg.App.BaseURL, "/")+"/uploads")
}

// Close releases broker and redis connections in reverse order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
