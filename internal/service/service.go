package service

import (
	"context"
	"time"

	"github.com/alexivanou/geotrip-api/internal/apperr"
	"github.com/alexivanou/geotrip-api/internal/auth"
	"github.com/alexivanou/geotrip-api/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 5 * time.Second
	popularSize    = 20
)

// Service validates requests and coordinates the stores. Every mutating
// operation runs as one transaction; reads go straight to the pool.
type Service struct {
	repos   *repository.Container
	hasher  *auth.Hasher
	tokens  *auth.Issuer
	logger  *zap.Logger
	timeout time.Duration
}

// NewService creates a new service instance
func NewService(
	repos *repository.Container,
	hasher *auth.Hasher,
	tokens *auth.Issuer,
	logger *zap.Logger,
	timeout time.Duration,
) *Service {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Service{
		repos:   repos,
		hasher:  hasher,
		tokens:  tokens,
		logger:  logger,
		timeout: timeout,
	}
}

// inTx runs fn inside a single bounded transaction named op.
func (s *Service) inTx(ctx context.Context, op string, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.repos.Tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		return fn(ctx, tx)
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.Internal {
			s.logger.Error("Transaction failed", zap.String("op", op), zap.Error(err))
		}
		return err
	}
	s.logger.Debug("Transaction committed", zap.String("op", op))
	return nil
}

// read bounds a read-only query the same way inTx bounds writes.
func (s *Service) read(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// db is the non-transactional querier used by read paths.
func (s *Service) db() repository.Querier {
	return s.repos.DB
}

func newID() string {
	return uuid.NewString()
}
