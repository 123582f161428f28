package sqlc

import (
	"context"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/fsdevblog/paydesk/internal/repository/repoargs"
	"github.com/fsdevblog/paydesk/internal/repository/sqlc/sqlcgen"
)

type BalanceRepository struct {
	q *sqlcgen.Queries
}

func NewBalanceRepository(conn sqlcgen.DBTX) *BalanceRepository {
	return &BalanceRepository{q: sqlcgen.New(conn)}
}

// CreateIfNotExists создает баланс юзера, если его еще нет. Существующий баланс не меняется.
func (b *BalanceRepository) CreateIfNotExists(ctx context.Context, args repoargs.BalanceSet) error {
	err := b.q.Balances_CreateIfNotExists(ctx, sqlcgen.Balances_CreateIfNotExistsParams{
		UserID:   args.UserID,
		Balance:  args.Balance,
		Currency: args.Currency,
	})
	if err != nil {
		return convertErr(err, "seeding balance for user %d", args.UserID)
	}
	return nil
}

func (b *BalanceRepository) FindByUserID(ctx context.Context, userID int64) (*domain.Balance, error) {
	dbBalance, err := b.q.Balances_FindByUserID(ctx, userID)
	if err != nil {
		return nil, convertErr(err, "finding balance for user %d", userID)
	}
	return convertBalanceModel(dbBalance), nil
}

// Upsert выставляет баланс юзера одним запросом. Если юзера нет, вернется domain.ErrRecordNotFound
// (нарушение внешнего ключа).
func (b *BalanceRepository) Upsert(ctx context.Context, args repoargs.BalanceSet) (*domain.Balance, error) {
	dbBalance, err := b.q.Balances_Upsert(ctx, sqlcgen.Balances_UpsertParams{
		UserID:   args.UserID,
		Balance:  args.Balance,
		Currency: args.Currency,
	})
	if err != nil {
		return nil, convertErr(err, "upserting balance for user %d", args.UserID)
	}
	return convertBalanceModel(dbBalance), nil
}

// ListWithUsers возвращает все балансы вместе с данными юзеров, отсортированные по убыванию баланса.
func (b *BalanceRepository) ListWithUsers(ctx context.Context) ([]domain.BalanceWithUser, error) {
	rows, err := b.q.Balances_ListWithUsers(ctx)
	if err != nil {
		return nil, convertErr(err, "listing balances")
	}
	var balances = make([]domain.BalanceWithUser, len(rows))
	for i, row := range rows {
		balances[i] = domain.BalanceWithUser{
			Balance: domain.Balance{
				ID:        row.ID,
				CreatedAt: row.CreatedAt.Time,
				UpdatedAt: row.UpdatedAt.Time,
				UserID:    row.UserID,
				Balance:   row.Balance,
				Currency:  row.Currency,
			},
			User: domain.UserIdentity{
				ID:       row.UserID,
				Username: row.Username,
				Email:    row.Email.String,
				Name:     row.Name.String,
				Surname:  row.Surname.String,
			},
		}
	}
	return balances, nil
}

func convertBalanceModel(dbModel sqlcgen.Balance) *domain.Balance {
	return &domain.Balance{
		ID:        dbModel.ID,
		CreatedAt: dbModel.CreatedAt.Time,
		UpdatedAt: dbModel.UpdatedAt.Time,
		UserID:    dbModel.UserID,
		Balance:   dbModel.Balance,
		Currency:  dbModel.Currency,
	}
}
