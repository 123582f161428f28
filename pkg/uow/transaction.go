package uow

import (
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Transaction отдает репозитории, привязанные к одной pgx транзакции. Репозиторий создается
// один раз на транзакцию.
type Transaction struct {
	repositories map[RepositoryName]RepositoryFactory
	created      map[RepositoryName]Repository
	tx           pgx.Tx
}

func NewTransaction(tx pgx.Tx, repositories map[RepositoryName]RepositoryFactory) *Transaction {
	return &Transaction{
		repositories: repositories,
		created:      make(map[RepositoryName]Repository),
		tx:           tx,
	}
}

// Get возвращает репозиторий или ошибку ErrRepositoryNotRegistered.
func (t *Transaction) Get(name RepositoryName) (Repository, error) {
	if repo, ok := t.created[name]; ok {
		return repo, nil
	}
	factory, ok := t.repositories[name]
	if !ok {
		return nil, fmt.Errorf("%w: `%s`", ErrRepositoryNotRegistered, name)
	}
	repo := factory(t.tx)
	t.created[name] = repo
	return repo, nil
}

// GetAs возвращает репозиторий транзакции с именем name, приведенный к типу T.
func GetAs[T any](t TX, name RepositoryName) (T, error) {
	var res T
	repo, err := t.Get(name)
	if err != nil {
		return res, err //nolint:wrapcheck
	}
	res, ok := repo.(T)
	if !ok {
		return res, fmt.Errorf("%w: `%s` is %T", ErrInvalidRepositoryType, name, repo)
	}
	return res, nil
}
