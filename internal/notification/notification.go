// Package notification рассылает события о транзакциях и балансах.
package notification

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type EventType string

const (
	EventTransactionCreated       EventType = "transaction.created"
	EventTransactionStatusChanged EventType = "transaction.status_changed"
	EventBalanceUpdated           EventType = "balance.updated"
)

// Event событие для оператора. Заполнены только поля, относящиеся к типу события.
type Event struct {
	Type          EventType        `json:"type"`
	OccurredAt    time.Time        `json:"occurredAt"`
	UserID        int64            `json:"userId"`
	Username      string           `json:"username,omitempty"`
	TransactionID int64            `json:"transactionId,omitempty"`
	Reference     string           `json:"reference,omitempty"`
	PaymentMethod string           `json:"paymentMethod,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	OldStatus     string           `json:"oldStatus,omitempty"`
	NewStatus     string           `json:"newStatus,omitempty"`
	OldBalance    *decimal.Decimal `json:"oldBalance,omitempty"`
	NewBalance    *decimal.Decimal `json:"newBalance,omitempty"`
	Currency      string           `json:"currency,omitempty"`
}

type Sink interface {
	Notify(ctx context.Context, event Event) error
}

// LoggerSink пишет события в лог.
type LoggerSink struct {
	l *logrus.Entry
}

func NewLoggerSink(l *logrus.Logger) *LoggerSink {
	return &LoggerSink{l: l.WithField("component", "notification")}
}

func (s *LoggerSink) Notify(_ context.Context, event Event) error {
	fields := logrus.Fields{
		"event":  event.Type,
		"userID": event.UserID,
	}
	if event.TransactionID != 0 {
		fields["transactionID"] = event.TransactionID
		fields["reference"] = event.Reference
	}
	if event.NewStatus != "" {
		fields["status"] = event.OldStatus + " -> " + event.NewStatus
	}
	if event.NewBalance != nil {
		fields["balance"] = event.NewBalance.StringFixed(2) //nolint:mnd
	}
	s.l.WithFields(fields).Info("notification")
	return nil
}

// Multi отправляет событие во все sinks. Ошибки объединяются, отказ одного не мешает остальным.
type Multi []Sink

func (m Multi) Notify(ctx context.Context, event Event) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
