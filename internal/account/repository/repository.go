package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/chanboard-dev/chanboard/backend/internal/account/domain"
	"github.com/chanboard-dev/chanboard/backend/internal/common/constants"
	"github.com/chanboard-dev/chanboard/backend/internal/common/logger"
	"github.com/chanboard-dev/chanboard/backend/internal/discord"
	"github.com/chanboard-dev/chanboard/backend/internal/observability/metrics"
)

var ErrAccountNotFound = errors.New("account not found")

// Store is the slice of the channel client the directory needs.
type Store interface {
	ListMessages(ctx context.Context, channelID string, limit int) ([]discord.Message, error)
	PostMessage(ctx context.Context, channelID, content string) error
}

type Repository interface {
	Create(ctx context.Context, account domain.Account) error
	FindByUsername(ctx context.Context, username string) (domain.Account, error)
	FindByToken(ctx context.Context, token string) (domain.Account, error)
}

// ChannelRepository is the account directory over the backing channel. It is
// rebuilt from a full channel scan on every lookup, so freshness is "as of
// this call" and lookup cost is linear in the channel size. Two concurrent
// Creates for the same username can both succeed; the first record in the
// channel's native order wins all later lookups.
type ChannelRepository struct {
	store     Store
	channelID string
	log       *logger.Logger
}

func NewChannelRepository(store Store, channelID string, log *logger.Logger) *ChannelRepository {
	return &ChannelRepository{
		store:     store,
		channelID: channelID,
		log:       log,
	}
}

func (r *ChannelRepository) Create(ctx context.Context, account domain.Account) error {
	payload, err := json.Marshal(account)
	if err != nil {
		return err
	}
	return r.store.PostMessage(ctx, r.channelID, string(payload))
}

func (r *ChannelRepository) FindByUsername(ctx context.Context, username string) (domain.Account, error) {
	accounts, err := r.listAccounts(ctx)
	if err != nil {
		return domain.Account{}, err
	}

	for _, account := range accounts {
		if account.Username == username {
			return account, nil
		}
	}
	return domain.Account{}, ErrAccountNotFound
}

func (r *ChannelRepository) FindByToken(ctx context.Context, token string) (domain.Account, error) {
	accounts, err := r.listAccounts(ctx)
	if err != nil {
		return domain.Account{}, err
	}

	for _, account := range accounts {
		if account.Token != "" && account.Token == token {
			return account, nil
		}
	}
	return domain.Account{}, ErrAccountNotFound
}

// listAccounts parses every channel entry as an account record. Malformed
// entries are logged and skipped; directory building is best effort.
func (r *ChannelRepository) listAccounts(ctx context.Context) ([]domain.Account, error) {
	messages, err := r.store.ListMessages(ctx, r.channelID, constants.DiscordMaxFetchLimit)
	if err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(messages))
	for _, msg := range messages {
		var account domain.Account
		if err := json.Unmarshal([]byte(msg.Content), &account); err != nil || account.Username == "" {
			metrics.MalformedRecordsTotal.WithLabelValues("account").Inc()
			r.log.WithFields(ctx, logger.Fields{
				"message_id": msg.ID,
				"action":     "account_record_skipped",
			}).Debug("skipping malformed account record")
			continue
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}
