package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v9"

	"github.com/chetanya04/Copilot-Clone/pkg/api/handler"
	"github.com/chetanya04/Copilot-Clone/pkg/api/middleware"
	"github.com/chetanya04/Copilot-Clone/pkg/auth"
	"github.com/chetanya04/Copilot-Clone/pkg/database"
	"github.com/chetanya04/Copilot-Clone/pkg/gemini"
	"github.com/chetanya04/Copilot-Clone/pkg/logger"
	"github.com/chetanya04/Copilot-Clone/pkg/openai"
	"github.com/chetanya04/Copilot-Clone/pkg/pollinations"
	"github.com/chetanya04/Copilot-Clone/pkg/repository"
	"github.com/chetanya04/Copilot-Clone/pkg/service"
	"github.com/chetanya04/Copilot-Clone/pkg/services"
)

type Config struct {
	DatabaseURL     string        `env:"DATABASE_URL,required"`
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	AuthTokens      []string      `env:"AUTH_TOKENS,required" envSeparator:" "`
	GeminiAPIKey    string        `env:"GEMINI_API_KEY"`
	OpenAIToken     string        `env:"OPENAI_API_KEY"`
	TextProvider    string        `env:"TEXT_PROVIDER" envDefault:"gemini"`
	ImageProvider   string        `env:"IMAGE_PROVIDER" envDefault:"pollinations"`
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"30s"`
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	if err := runMain(); err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func runMain() error {
	serviceGroup, err := setupServices()
	if err != nil {
		return err
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case s := <-sigCh:
			slog.Info("shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return serviceGroup.Run(ctx)
}

func setupServices() (service.Group, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("creating db: %w", err)
	}

	conversationRepository := repository.NewConversationRepository(db)
	messageRepository := repository.NewMessageRepository(db)

	textGenerator, err := setupTextGenerator(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating text provider: %w", err)
	}

	imageGenerator, err := setupImageGenerator(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating image provider: %w", err)
	}

	chatService := services.NewChatService(
		conversationRepository,
		messageRepository,
		textGenerator,
		imageGenerator,
	)

	authenticator := auth.NewAuthenticator(cfg.AuthTokens)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chats", handler.NewCreateChat(chatService).Handle)
	mux.HandleFunc("GET /api/chats", handler.NewListChats(chatService).Handle)
	mux.HandleFunc("DELETE /api/chats/{id}", handler.NewDeleteChat(chatService).Handle)
	mux.HandleFunc("GET /api/chats/{id}/messages", handler.NewGetMessages(chatService).Handle)
	mux.HandleFunc("POST /api/chats/{id}/messages", handler.NewSendMessage(chatService).Handle)

	var apiHandler http.Handler = mux
	apiHandler = middleware.Auth(authenticator)(apiHandler)
	apiHandler = middleware.RequestID(apiHandler)

	return service.Group{
		service.NewHTTPServer(cfg.HTTPAddr, apiHandler),
	}, nil
}

func setupTextGenerator(cfg Config) (services.TextGenerator, error) {
	switch cfg.TextProvider {
	case "gemini":
		return gemini.NewClient(cfg.GeminiAPIKey, cfg.ProviderTimeout)
	case "openai":
		return openai.NewClient(cfg.OpenAIToken)
	default:
		return nil, fmt.Errorf("unknown text provider: %s", cfg.TextProvider)
	}
}

func setupImageGenerator(cfg Config) (services.ImageGenerator, error) {
	switch cfg.ImageProvider {
	case "pollinations":
		return pollinations.NewClient(cfg.ProviderTimeout), nil
	case "openai":
		return openai.NewClient(cfg.OpenAIToken)
	default:
		return nil, fmt.Errorf("unknown image provider: %s", cfg.ImageProvider)
	}
}
