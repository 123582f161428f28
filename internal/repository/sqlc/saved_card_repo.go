package sqlc

import (
	"context"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/fsdevblog/paydesk/internal/repository/sqlc/sqlcgen"
	"github.com/fsdevblog/paydesk/pkg/cardcheck"
	"github.com/jackc/pgx/v5"
)

type SavedCardRepository struct {
	q *sqlcgen.Queries
}

func NewSavedCardRepository(conn sqlcgen.DBTX) *SavedCardRepository {
	return &SavedCardRepository{q: sqlcgen.New(conn)}
}

// Save сохраняет карту юзера. Повторное сохранение той же карты (маска и срок) обновляет держателя.
func (s *SavedCardRepository) Save(ctx context.Context, userID int64, card domain.StoredCard) (*domain.SavedCard, error) {
	dbCard, err := s.q.SavedCards_Upsert(ctx, sqlcgen.SavedCards_UpsertParams{
		UserID:       userID,
		CardHolder:   card.CardHolder,
		MaskedNumber: card.MaskedNumber,
		Brand:        string(card.Brand),
		Expiry:       card.Expiry,
	})
	if err != nil {
		return nil, convertErr(err, "saving card for user %d", userID)
	}
	return convertSavedCardModel(dbCard), nil
}

// ListByUser возвращает карты юзера, последние использованные первыми.
func (s *SavedCardRepository) ListByUser(ctx context.Context, userID int64) ([]domain.SavedCard, error) {
	rows, err := s.q.SavedCards_ListByUser(ctx, userID)
	if err != nil {
		return nil, convertErr(err, "listing cards of user %d", userID)
	}
	cards := make([]domain.SavedCard, len(rows))
	for i, row := range rows {
		cards[i] = *convertSavedCardModel(row)
	}
	return cards, nil
}

// Delete удаляет карту юзера. Чужая или несуществующая карта возвращает domain.ErrRecordNotFound.
func (s *SavedCardRepository) Delete(ctx context.Context, userID, id int64) error {
	affected, err := s.q.SavedCards_Delete(ctx, sqlcgen.SavedCards_DeleteParams{ID: id, UserID: userID})
	if err != nil {
		return convertErr(err, "deleting card %d", id)
	}
	if affected == 0 {
		return convertErr(pgx.ErrNoRows, "deleting card %d", id)
	}
	return nil
}

func convertSavedCardModel(dbModel sqlcgen.SavedCard) *domain.SavedCard {
	return &domain.SavedCard{
		ID:        dbModel.ID,
		CreatedAt: dbModel.CreatedAt.Time,
		UpdatedAt: dbModel.UpdatedAt.Time,
		UserID:    dbModel.UserID,
		Card: domain.StoredCard{
			CardHolder:   dbModel.CardHolder,
			MaskedNumber: dbModel.MaskedNumber,
			Brand:        cardcheck.Brand(dbModel.Brand),
			Expiry:       dbModel.Expiry,
		},
	}
}
