package service

import (
	"context"

	"github.com/chanboard-dev/chanboard/backend/internal/board/domain"
	"github.com/chanboard-dev/chanboard/backend/internal/common/logger"
	"github.com/chanboard-dev/chanboard/backend/internal/discord"
	"github.com/chanboard-dev/chanboard/backend/internal/observability/metrics"
)

type Store interface {
	ListMessages(ctx context.Context, channelID string, limit int) ([]discord.Message, error)
}

type Page struct {
	Messages []domain.Message `json:"messages"`
	HasMore  bool             `json:"hasMore"`
}

// Service is the read-only chat-log view over the message channel. Every
// page fetches page*perPage raw messages and slices client-side, so fetch
// cost grows linearly with the page number.
type Service struct {
	store     Store
	channelID string
	perPage   int
	log       *logger.Logger
}

func NewService(store Store, channelID string, perPage int, log *logger.Logger) *Service {
	return &Service{
		store:     store,
		channelID: channelID,
		perPage:   perPage,
		log:       log,
	}
}

func (s *Service) Page(ctx context.Context, page int) (Page, error) {
	if page < 1 {
		page = 1
	}

	raw, err := s.store.ListMessages(ctx, s.channelID, page*s.perPage)
	if err != nil {
		return Page{}, err
	}

	start := (page - 1) * s.perPage
	end := page * s.perPage
	if start > len(raw) {
		start = len(raw)
	}
	if end > len(raw) {
		end = len(raw)
	}

	// Newest first within the slice; the API's native order is preserved.
	parsed := make([]domain.Message, 0, end-start)
	for _, msg := range raw[start:end] {
		m, err := parseMessage(msg)
		if err != nil {
			metrics.MalformedRecordsTotal.WithLabelValues("chat").Inc()
			s.log.WithFields(ctx, logger.Fields{
				"message_id": msg.ID,
				"action":     "chat_entry_skipped",
			}).Debug("skipping malformed chat-log entry")
			continue
		}
		parsed = append(parsed, m)
	}

	return Page{
		Messages: parsed,
		HasMore:  len(raw) > page*s.perPage,
	}, nil
}
