package uow

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type RepositoryName string
type Repository any
type RepositoryFactory func(DBTX) Repository

// TxOption меняет параметры транзакции, открываемой в UnitOfWork.Do.
type TxOption func(*pgx.TxOptions)

// WithIsoLevel задает уровень изоляции транзакции.
func WithIsoLevel(level pgx.TxIsoLevel) TxOption {
	return func(o *pgx.TxOptions) {
		o.IsoLevel = level
	}
}

// ReadOnly открывает транзакцию только на чтение.
func ReadOnly() TxOption {
	return func(o *pgx.TxOptions) {
		o.AccessMode = pgx.ReadOnly
	}
}

type UnitOfWork struct {
	conn         Beginner
	repositories map[RepositoryName]RepositoryFactory
}

func NewUnitOfWork(conn Beginner) *UnitOfWork {
	return &UnitOfWork{
		conn:         conn,
		repositories: make(map[RepositoryName]RepositoryFactory),
	}
}

// Register регистрирует фабрику репозитория. Повторная регистрация имени возвращает
// ErrRepositoryAlreadyRegistered.
func (u *UnitOfWork) Register(name RepositoryName, factory RepositoryFactory) error {
	if factory == nil {
		return fmt.Errorf("%w: nil factory for `%s`", ErrInvalidRepositoryType, name)
	}
	if _, ok := u.repositories[name]; ok {
		return fmt.Errorf("%w: `%s`", ErrRepositoryAlreadyRegistered, name)
	}
	u.repositories[name] = factory
	return nil
}

// Do выполняет fn внутри транзакции. Ошибка fn или паника откатывают транзакцию.
func (u *UnitOfWork) Do(ctx context.Context, fn func(context.Context, TX) error, opts ...TxOption) (err error) {
	var txOptions pgx.TxOptions
	for _, opt := range opts {
		opt(&txOptions)
	}

	tx, txErr := u.conn.BeginTx(ctx, txOptions)
	if txErr != nil {
		return fmt.Errorf("[uow] begin transaction: %w", txErr)
	}
	defer func() {
		// контекст запроса может быть уже отменен, откат все равно нужен.
		rollbackErr := tx.Rollback(context.WithoutCancel(ctx))
		if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			err = errors.Join(err, rollbackErr)
		}
	}()

	if fnErr := fn(ctx, NewTransaction(tx, u.repositories)); fnErr != nil {
		return fnErr
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return fmt.Errorf("[uow] commit: %w", commitErr)
	}
	return nil
}

// GetRepository возвращает репозиторий, работающий вне транзакции, или ErrRepositoryNotRegistered.
func (u *UnitOfWork) GetRepository(name RepositoryName) (Repository, error) {
	if repoFactory, ok := u.repositories[name]; ok {
		return repoFactory(u.conn), nil
	}
	return nil, fmt.Errorf("%w: `%s`", ErrRepositoryNotRegistered, name)
}

// GetRepositoryAs возвращает репозиторий по имени name, приведенный к типу T. Возвращает ошибки
// ErrRepositoryNotRegistered и ErrInvalidRepositoryType.
func GetRepositoryAs[T any](u UOW, name RepositoryName) (T, error) {
	var res T
	repo, err := u.GetRepository(name)
	if err != nil {
		return res, err //nolint:wrapcheck
	}
	r, ok := repo.(T)
	if !ok {
		return res, fmt.Errorf("%w: `%s` is %T", ErrInvalidRepositoryType, name, repo)
	}
	return r, nil
}
