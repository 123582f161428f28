package pgrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const (
	defaultMaxAttempts   = 30
	defaultRetryInterval = 3 * time.Second
)

type ConnectOptions struct {
	MigrationsDir string
	DSN           string
	MaxAttempts   uint
	RetryInterval time.Duration
}

// Connect подключается к postgres, повторяя попытки пока база не станет доступна, и применяет миграции.
// Отмена ctx прерывает ожидание.
func Connect(ctx context.Context, opts ConnectOptions, l *logrus.Logger) (*pgxpool.Pool, error) {
	maxAttempts := opts.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = defaultMaxAttempts
	}
	retryInterval := opts.RetryInterval
	if retryInterval <= 0 {
		retryInterval = defaultRetryInterval
	}

	var (
		pool    *pgxpool.Pool
		lastErr error
	)
	for attempt := uint(1); attempt <= maxAttempts; attempt++ {
		pool, lastErr = newPostgresConnection(ctx, opts.DSN)
		if lastErr == nil {
			break
		}
		l.WithError(lastErr).
			WithField("CurrentAttempt", fmt.Sprintf("#%d / %d", attempt, maxAttempts)).
			Warnf("init postgres connection error, retrying in %.f seconds", retryInterval.Seconds())
		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("init postgres connection: %w", ctx.Err())
		case <-time.After(retryInterval):
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("init postgres connection after %d attempts: %w", maxAttempts, lastErr)
	}

	if err := postgresMigrate(opts.MigrationsDir, opts.DSN); err != nil {
		pool.Close()
		return nil, err
	}
	l.Info("postgres connected, migrations applied")
	return pool, nil
}

func newPostgresConnection(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, confErr := pgxpool.ParseConfig(dsn)
	if confErr != nil {
		return nil, fmt.Errorf("parse postgres config: %s", confErr.Error())
	}
	pool, poolErr := pgxpool.NewWithConfig(ctx, poolConfig)
	if poolErr != nil {
		return nil, fmt.Errorf("failed to create pool: %s", poolErr.Error())
	}

	// Проверяем, что соединение работает (Ping)
	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %s", pingErr.Error())
	}

	return pool, nil
}

func postgresMigrate(dir string, dsn string) error {
	m, mErr := migrate.New("file://"+dir, dsn)
	if mErr != nil {
		return fmt.Errorf("failed to create migrate instance: %w", mErr)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
