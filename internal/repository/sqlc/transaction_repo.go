package sqlc

import (
	"context"
	"time"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/fsdevblog/paydesk/internal/repository/repoargs"
	"github.com/fsdevblog/paydesk/internal/repository/sqlc/sqlcgen"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	q *sqlcgen.Queries
}

func NewTransactionRepository(conn sqlcgen.DBTX) *TransactionRepository {
	return &TransactionRepository{q: sqlcgen.New(conn)}
}

// Create сохраняет транзакцию в статусе pending. Повтор референса возвращает domain.ErrDuplicateKey.
func (t *TransactionRepository) Create(
	ctx context.Context,
	args repoargs.CreateTransaction,
) (*domain.Transaction, error) {
	dbTrans, err := t.q.Transactions_Create(ctx, sqlcgen.Transactions_CreateParams{
		UserID:               args.UserID,
		Amount:               args.Amount,
		PaymentMethod:        sqlcgen.PaymentMethodType(args.PaymentMethod),
		PaymentCredentials:   args.Credentials,
		ReceiptUrl:           nullText(args.ReceiptURL),
		TransactionReference: args.Reference,
		Notes:                nullText(args.Notes),
	})
	if err != nil {
		return nil, convertErr(err, "creating transaction `%s`", args.Reference)
	}
	return convertTransactionModel(dbTrans), nil
}

// FindByID возвращает транзакцию вместе с данными юзера.
func (t *TransactionRepository) FindByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	row, err := t.q.Transactions_FindByID(ctx, id)
	if err != nil {
		return nil, convertErr(err, "finding transaction by id %d", id)
	}
	return convertTransactionRow(sqlcgen.Transactions_ListRow(row)), nil
}

// List возвращает страницу транзакций, новые первыми, и общее количество записей под фильтром.
func (t *TransactionRepository) List(
	ctx context.Context,
	filter repoargs.TransactionFilter,
) ([]domain.Transaction, int64, error) {
	limit, limitErr := safeConvertUintToInt32(filter.Limit)
	if limitErr != nil {
		return nil, 0, convertErr(limitErr, "converting limit to int32")
	}
	offset, offsetErr := safeConvertUintToInt32(filter.Offset)
	if offsetErr != nil {
		return nil, 0, convertErr(offsetErr, "converting offset to int32")
	}

	userID := pgtype.Int8{Int64: filter.UserID, Valid: filter.UserID != 0}
	status := sqlcgen.NullTransactionStatusType{
		TransactionStatusType: sqlcgen.TransactionStatusType(filter.Status),
		Valid:                 filter.Status != "",
	}
	method := sqlcgen.NullPaymentMethodType{
		PaymentMethodType: sqlcgen.PaymentMethodType(filter.PaymentMethod),
		Valid:             filter.PaymentMethod != "",
	}

	total, countErr := t.q.Transactions_Count(ctx, sqlcgen.Transactions_CountParams{
		UserID:        userID,
		Status:        status,
		PaymentMethod: method,
	})
	if countErr != nil {
		return nil, 0, convertErr(countErr, "counting transactions")
	}

	rows, err := t.q.Transactions_List(ctx, sqlcgen.Transactions_ListParams{
		UserID:        userID,
		Status:        status,
		PaymentMethod: method,
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		return nil, 0, convertErr(err, "listing transactions")
	}

	var transactions = make([]domain.Transaction, len(rows))
	for i, row := range rows {
		transactions[i] = *convertTransactionRow(row)
	}
	return transactions, total, nil
}

// UpdateStatusFromPending меняет статус только у транзакции в статусе pending. Если такой нет
// (не существует или статус уже другой), возвращает domain.ErrRecordNotFound.
func (t *TransactionRepository) UpdateStatusFromPending(
	ctx context.Context,
	args repoargs.UpdateTransactionStatus,
) (*domain.Transaction, error) {
	var notes pgtype.Text
	if args.Notes != nil && *args.Notes != "" {
		notes = pgtype.Text{String: *args.Notes, Valid: true}
	}
	dbTrans, err := t.q.Transactions_UpdateStatusFromPending(ctx, sqlcgen.Transactions_UpdateStatusFromPendingParams{
		Status: sqlcgen.TransactionStatusType(args.Status),
		Notes:  notes,
		ID:     args.ID,
	})
	if err != nil {
		return nil, convertErr(err, "updating status of transaction %d", args.ID)
	}
	return convertTransactionModel(dbTrans), nil
}

// Delete удаляет транзакцию. Если удалять нечего, возвращает domain.ErrRecordNotFound.
func (t *TransactionRepository) Delete(ctx context.Context, id int64) error {
	affected, err := t.q.Transactions_Delete(ctx, id)
	if err != nil {
		return convertErr(err, "deleting transaction %d", id)
	}
	if affected == 0 {
		return convertErr(pgx.ErrNoRows, "deleting transaction %d", id)
	}
	return nil
}

// Stats считает агрегаты по транзакциям, созданным начиная с since.
func (t *TransactionRepository) Stats(ctx context.Context, since time.Time) (*domain.TransactionStats, error) {
	from := pgtype.Timestamptz{Time: since, Valid: true}

	byStatus, err := t.q.Transactions_StatsByStatus(ctx, from)
	if err != nil {
		return nil, convertErr(err, "stats by status")
	}
	byMethod, err := t.q.Transactions_StatsByMethod(ctx, from)
	if err != nil {
		return nil, convertErr(err, "stats by payment method")
	}

	stats := &domain.TransactionStats{
		CompletedAmount: decimal.Zero,
		ByMethod:        make([]domain.MethodStats, len(byMethod)),
	}
	for _, row := range byStatus {
		stats.Total += row.Count
		switch domain.TransactionStatus(row.Status) {
		case domain.TransactionStatusPending:
			stats.Pending = row.Count
		case domain.TransactionStatusCompleted:
			stats.Completed = row.Count
			stats.CompletedAmount = row.TotalAmount
		case domain.TransactionStatusFailed:
			stats.Failed = row.Count
		}
	}
	for i, row := range byMethod {
		stats.ByMethod[i] = domain.MethodStats{
			PaymentMethod: domain.PaymentMethod(row.PaymentMethod),
			Count:         row.Count,
			TotalAmount:   row.TotalAmount,
		}
	}
	return stats, nil
}

func convertTransactionModel(dbModel sqlcgen.Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:                 dbModel.ID,
		CreatedAt:          dbModel.CreatedAt.Time,
		UpdatedAt:          dbModel.UpdatedAt.Time,
		UserID:             dbModel.UserID,
		Amount:             dbModel.Amount,
		PaymentMethod:      domain.PaymentMethod(dbModel.PaymentMethod),
		Status:             domain.TransactionStatus(dbModel.Status),
		PaymentCredentials: dbModel.PaymentCredentials,
		ReceiptURL:         dbModel.ReceiptUrl.String,
		Reference:          dbModel.TransactionReference,
		Notes:              dbModel.Notes.String,
	}
}

func convertTransactionRow(row sqlcgen.Transactions_ListRow) *domain.Transaction {
	trans := convertTransactionModel(sqlcgen.Transaction{
		ID:                   row.ID,
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            row.UpdatedAt,
		UserID:               row.UserID,
		Amount:               row.Amount,
		PaymentMethod:        row.PaymentMethod,
		Status:               row.Status,
		PaymentCredentials:   row.PaymentCredentials,
		ReceiptUrl:           row.ReceiptUrl,
		TransactionReference: row.TransactionReference,
		Notes:                row.Notes,
	})
	trans.User = &domain.UserIdentity{
		ID:       row.UserID,
		Username: row.Username,
		Email:    row.Email.String,
		Name:     row.Name.String,
		Surname:  row.Surname.String,
	}
	return trans
}
