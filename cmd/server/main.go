package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	accounthttp "github.com/chanboard-dev/chanboard/backend/internal/account/http"
	accountrepo "github.com/chanboard-dev/chanboard/backend/internal/account/repository"
	accountservice "github.com/chanboard-dev/chanboard/backend/internal/account/service"
	boardhttp "github.com/chanboard-dev/chanboard/backend/internal/board/http"
	boardservice "github.com/chanboard-dev/chanboard/backend/internal/board/service"
	"github.com/chanboard-dev/chanboard/backend/internal/common/clock"
	"github.com/chanboard-dev/chanboard/backend/internal/common/config"
	"github.com/chanboard-dev/chanboard/backend/internal/common/constants"
	commoncrypto "github.com/chanboard-dev/chanboard/backend/internal/common/crypto"
	commonhttp "github.com/chanboard-dev/chanboard/backend/internal/common/http"
	"github.com/chanboard-dev/chanboard/backend/internal/common/logger"
	srv "github.com/chanboard-dev/chanboard/backend/internal/common/server"
	"github.com/chanboard-dev/chanboard/backend/internal/discord"
	relayhttp "github.com/chanboard-dev/chanboard/backend/internal/relay/http"
	relayservice "github.com/chanboard-dev/chanboard/backend/internal/relay/service"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(os.Getenv("LOG_DIR"), "chanboard", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg := config.Load()
	if cfg.DiscordToken == "" {
		log.Warn("DISCORD_TOKEN is not set; account and chat-log endpoints will answer 500")
	}
	if cfg.DiscordWebhookURL == "" {
		log.Warn("DISCORD_WEBHOOK_URL is not set; the webhook endpoint will answer 500")
	}

	store := discord.NewClient(discord.ClientConfig{
		Token:   cfg.DiscordToken,
		Timeout: cfg.DiscordHTTPTimeout,
	}, log)
	sink := discord.NewWebhookClient(discord.WebhookConfig{
		URL:     cfg.DiscordWebhookURL,
		Timeout: cfg.DiscordHTTPTimeout,
	}, log)

	realClock := clock.NewRealClock()

	accountRepo := accountrepo.NewChannelRepository(store, cfg.AccountChannelID, log)
	authService := accountservice.NewAuthService(
		accountRepo,
		commoncrypto.NewRandomTokenGenerator(),
		realClock,
		log,
	)

	boardService := boardservice.NewService(store, cfg.ChatChannelID, cfg.MessagesPerPage, log)

	limiter := relayservice.NewCooldownLimiter(realClock, cfg.RelayCooldown)
	relayService := relayservice.NewService(
		authService,
		sink,
		limiter,
		realClock,
		cfg.MaxMessageLength,
		log,
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())
	accounthttp.NewHandler(authService, cfg.RequestTimeout, log).Register(mux)
	boardhttp.NewHandler(boardService, cfg.RequestTimeout, log).Register(mux)
	relayhttp.NewHandler(relayService, cfg.RequestTimeout, log).Register(mux)

	rateLimiter := commonhttp.NewRateLimiter(
		constants.RateLimitRequestsPerSecond,
		constants.RateLimitBurst,
	)
	handler := rateLimiter.Middleware()(commonhttp.BuildBaseHandler(log, mux))

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), handler)

	srv.StartWithGracefulShutdown(server, log, "chanboard", func(ctx context.Context) error {
		rateLimiter.Stop()
		return nil
	})
}
