package retry

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/Bessima/proxyshop-bot/internal/middlewares/logger"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type Config struct {
	Delays []time.Duration
	// ShouldRetry решает, имеет ли смысл повтор; nil — повторяем любую ошибку
	ShouldRetry func(error) bool
}

// DefaultConfig — схема повторов для базы данных: только ошибки соединения
var DefaultConfig = Config{
	Delays:      []time.Duration{time.Second, 3 * time.Second, 5 * time.Second},
	ShouldRetry: IsConnectionError,
}

// TransportRetryConfig — для обращений к внешнему чату
var TransportRetryConfig = Config{
	Delays: []time.Duration{time.Second, 2 * time.Second},
}

// IsConnectionError отличает сбой соединения от прикладной ошибки
func IsConnectionError(err error) bool {
	if pgconn.SafeToRetry(err) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgerrcode.IsConnectionException(pgErr.Code)
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func (cfg Config) shouldRetry(err error) bool {
	if cfg.ShouldRetry == nil {
		return true
	}
	return cfg.ShouldRetry(err)
}

func pickConfig(configs []Config) Config {
	if len(configs) > 0 {
		return configs[0]
	}
	return DefaultConfig
}

// DoRetry выполняет fn, повторяя при ошибке по расписанию из конфига
func DoRetry(ctx context.Context, fn func() error, configs ...Config) error {
	cfg := pickConfig(configs)

	err := fn()
	if err == nil || !cfg.shouldRetry(err) {
		return err
	}

	for attempt, delay := range cfg.Delays {
		logger.Log.Warn("operation failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		err = fn()
		if err == nil || !cfg.shouldRetry(err) {
			return err
		}
	}
	return err
}

// DoRetryWithResult — вариант DoRetry для функций с результатом
func DoRetryWithResult[T any](ctx context.Context, fn func() (T, error), configs ...Config) (T, error) {
	cfg := pickConfig(configs)

	result, err := fn()
	if err == nil {
		return result, nil
	}
	if !cfg.shouldRetry(err) {
		var zero T
		return zero, err
	}

	for attempt, delay := range cfg.Delays {
		logger.Log.Warn("operation failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-time.After(delay):
		}

		result, err = fn()
		if err == nil {
			return result, nil
		}
		if !cfg.shouldRetry(err) {
			var zero T
			return zero, err
		}
	}
	var zero T
	return zero, err
}
