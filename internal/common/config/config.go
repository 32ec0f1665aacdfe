package config

import (
	"os"
	"strconv"
	"time"

	"github.com/chanboard-dev/chanboard/backend/internal/common/constants"
)

// Config carries everything the service reads from the environment. The two
// secrets (bot token and webhook URL) are optional at startup: endpoints that
// need them answer 500 until they are set, the process itself always boots.
type Config struct {
	HTTPPort string

	DiscordToken      string
	DiscordWebhookURL string
	AccountChannelID  string
	ChatChannelID     string

	RelayCooldown      time.Duration
	RequestTimeout     time.Duration
	DiscordHTTPTimeout time.Duration

	MessagesPerPage  int
	MaxMessageLength int
}

func Load() Config {
	return Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),

		DiscordToken:      os.Getenv("DISCORD_TOKEN"),
		DiscordWebhookURL: os.Getenv("DISCORD_WEBHOOK_URL"),
		AccountChannelID:  getEnv("DISCORD_ACCOUNT_CHANNEL_ID", "1282634666939121664"),
		ChatChannelID:     getEnv("DISCORD_CHAT_CHANNEL_ID", "1282357550242857020"),

		RelayCooldown:      getDurationEnv("RELAY_COOLDOWN", constants.RelayCooldown),
		RequestTimeout:     getDurationEnv("REQUEST_TIMEOUT", 5*time.Second),
		DiscordHTTPTimeout: getDurationEnv("DISCORD_HTTP_TIMEOUT", 10*time.Second),

		MessagesPerPage:  getIntEnv("MESSAGES_PER_PAGE", constants.MessagesPerPage),
		MaxMessageLength: getIntEnv("MAX_MESSAGE_LENGTH", constants.MaxMessageLength),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}
