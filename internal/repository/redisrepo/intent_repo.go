// Package redisrepo хранит намерения пополнения в redis.
package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/paydesk/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const intentKeyPrefix = "intent:"

type intentRecord struct {
	ID        string          `json:"id"`
	UserID    int64           `json:"userId"`
	Method    string          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

type IntentRepository struct {
	client redis.Cmdable
}

func NewIntentRepository(client redis.Cmdable) *IntentRepository {
	return &IntentRepository{client: client}
}

// Save сохраняет намерение. Ключ живет до intent.ExpiresAt.
func (r *IntentRepository) Save(ctx context.Context, intent domain.DepositIntent) error {
	return r.set(ctx, intent, intent.ExpiresAt.Sub(intent.CreatedAt))
}

// Restore возвращает изъятое через Take намерение с оставшимся относительно now сроком жизни.
func (r *IntentRepository) Restore(ctx context.Context, intent domain.DepositIntent, now time.Time) error {
	return r.set(ctx, intent, intent.ExpiresAt.Sub(now))
}

func (r *IntentRepository) set(ctx context.Context, intent domain.DepositIntent, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("[redisrepo] intent %s: non-positive ttl %s", intent.ID, ttl)
	}

	payload, err := json.Marshal(intentRecord{
		ID:        intent.ID,
		UserID:    intent.UserID,
		Method:    string(intent.Method),
		Amount:    intent.Amount,
		CreatedAt: intent.CreatedAt,
		ExpiresAt: intent.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("[redisrepo] marshal intent %s: %w", intent.ID, err)
	}

	if setErr := r.client.Set(ctx, intentKey(intent.ID), payload, ttl).Err(); setErr != nil {
		return fmt.Errorf("[redisrepo] save intent %s: %w", intent.ID, setErr)
	}
	return nil
}

// Find возвращает намерение или domain.ErrRecordNotFound, если ключ истек или не существовал.
func (r *IntentRepository) Find(ctx context.Context, id string) (*domain.DepositIntent, error) {
	payload, err := r.client.Get(ctx, intentKey(id)).Bytes()
	if err != nil {
		return nil, convertErr(err, "get", id)
	}
	return decodeIntent(id, payload)
}

// Take атомарно (GETDEL) забирает намерение из хранилища. Из нескольких одновременных вызовов
// намерение получит только один, остальные получат domain.ErrRecordNotFound.
func (r *IntentRepository) Take(ctx context.Context, id string) (*domain.DepositIntent, error) {
	payload, err := r.client.GetDel(ctx, intentKey(id)).Bytes()
	if err != nil {
		return nil, convertErr(err, "take", id)
	}
	return decodeIntent(id, payload)
}

func convertErr(err error, op, id string) error {
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("[redisrepo] intent %s: %w", id, domain.ErrRecordNotFound)
	}
	return fmt.Errorf("[redisrepo] %s intent %s: %w", op, id, err)
}

func decodeIntent(id string, payload []byte) (*domain.DepositIntent, error) {
	var rec intentRecord
	if jsonErr := json.Unmarshal(payload, &rec); jsonErr != nil {
		return nil, fmt.Errorf("[redisrepo] decode intent %s: %w", id, jsonErr)
	}
	return &domain.DepositIntent{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Method:    domain.PaymentMethod(rec.Method),
		Amount:    rec.Amount,
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

func intentKey(id string) string {
	return intentKeyPrefix + id
}
