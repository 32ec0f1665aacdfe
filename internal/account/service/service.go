package service

import (
	"context"
	"errors"

	"github.com/chanboard-dev/chanboard/backend/internal/account/domain"
	"github.com/chanboard-dev/chanboard/backend/internal/account/repository"
	"github.com/chanboard-dev/chanboard/backend/internal/common/clock"
	commoncrypto "github.com/chanboard-dev/chanboard/backend/internal/common/crypto"
	commonerrors "github.com/chanboard-dev/chanboard/backend/internal/common/errors"
	"github.com/chanboard-dev/chanboard/backend/internal/common/logger"
	"github.com/chanboard-dev/chanboard/backend/internal/observability/metrics"
)

type Status string

const (
	StatusLoggedIn   Status = "logged_in"
	StatusRegistered Status = "registered"
)

type Result struct {
	Status   Status
	Username string
	Token    string
}

// AuthService implements the combined login-or-register flow over the
// account directory. A username that exists is a login attempt; one that
// does not is a registration. Callers cannot signal which one they meant.
type AuthService struct {
	repo   repository.Repository
	tokens commoncrypto.TokenGenerator
	clock  clock.Clock
	log    *logger.Logger
}

func NewAuthService(
	repo repository.Repository,
	tokens commoncrypto.TokenGenerator,
	clk clock.Clock,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
		clock:  clk,
		log:    log,
	}
}

func (s *AuthService) LoginOrRegister(ctx context.Context, username, password string) (Result, error) {
	if username == "" || password == "" {
		return Result{}, ErrMissingCredentials
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": username,
		"action":   "login_or_register_attempt",
	}).Info("login or register attempt")

	account, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		if account.Password != password {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			s.log.WithFields(ctx, logger.Fields{
				"username": username,
				"action":   "login_invalid_password",
			}).Warn("login failed: invalid password")
			return Result{}, ErrInvalidCredentials
		}

		metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "login_success",
		}).Info("login success")

		return Result{
			Status:   StatusLoggedIn,
			Username: account.Username,
			Token:    account.Token,
		}, nil
	}

	if !errors.Is(err, repository.ErrAccountNotFound) {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "login_or_register_lookup_failed",
		}).Errorf("directory lookup failed: %v", err)
		return Result{}, err
	}

	token, err := s.tokens.NewToken()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "register_token_issue_failed",
		}).Errorf("register failed: token issue error: %v", err)
		return Result{}, commonerrors.ErrInternalError.WithCause(err)
	}

	newAccount := domain.Account{
		Username:  username,
		Password:  password,
		Token:     token,
		CreatedAt: s.clock.Now().UTC(),
	}

	if err := s.repo.Create(ctx, newAccount); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "register_create_failed",
		}).Errorf("register failed: %v", err)
		return Result{}, err
	}

	metrics.AccountsRegistered.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"username": username,
		"action":   "register_success",
	}).Info("register success")

	return Result{
		Status:   StatusRegistered,
		Username: username,
		Token:    token,
	}, nil
}

// VerifyToken resolves an opaque token back to its username. Tokens have no
// expiry and no revocation path.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
		return "", ErrInvalidToken
	}

	account, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
			s.log.WithFields(ctx, logger.Fields{
				"action": "token_verification_failed",
			}).Warn("token verification failed: no matching account")
			return "", ErrInvalidToken
		}
		return "", err
	}

	metrics.TokenVerificationsTotal.WithLabelValues("success").Inc()
	return account.Username, nil
}
