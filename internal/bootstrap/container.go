package bootstrap

import (
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"miku-chat-be/internal/config"
	"miku-chat-be/internal/controller"
	"miku-chat-be/internal/pkg/logger"
	"miku-chat-be/internal/repository/filestore"
	"miku-chat-be/internal/repository/userfile"
	"miku-chat-be/internal/service"
	"miku-chat-be/pkg/bilibili"
	"miku-chat-be/pkg/booru"
	"miku-chat-be/pkg/feed"
	"miku-chat-be/pkg/llm/factory"
	"miku-chat-be/pkg/namer"
)

const chatEventsTopic = "CHAT_EVENTS"

type Container struct {
	// Controllers
	AuthController  controller.IAuthController
	ChatController  controller.IChatController
	NewsController  controller.INewsController
	ImageController controller.IImageController
	VideoController controller.IVideoController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.QwenBaseURL,
		cfg.Ai.QwenAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	// 4. Session Store
	sessionNamer := namer.NewLLMNamer(llmProvider)
	sessionStore, err := filestore.NewSessionStore(cfg.Store.Dir, sessionNamer, cfg.Ai.NamerTimeout, sysLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize session store: %v", err)
	}

	// 5. Services
	publisherService := service.NewPublisherService(chatEventsTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, chatEventsTopic, sysLogger)

	userReader := userfile.NewReader(cfg.App.UsersFilePath)
	authService := service.NewAuthService(userReader, cfg.App.JWTSecret)
	chatService := service.NewChatService(sessionStore, llmProvider, publisherService, sysLogger)
	newsService := service.NewNewsService(feed.NewClient(), cfg.News.CacheTTL)
	imageService := service.NewImageService(booru.NewClient())
	videoService := service.NewVideoService(bilibili.NewClient())

	return &Container{
		AuthController:  controller.NewAuthController(authService),
		ChatController:  controller.NewChatController(chatService),
		NewsController:  controller.NewNewsController(newsService),
		ImageController: controller.NewImageController(imageService),
		VideoController: controller.NewVideoController(videoService),
		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
