package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusEvent() Event {
	amount := decimal.RequireFromString("25.00")
	return Event{
		Type:          EventTransactionStatusChanged,
		OccurredAt:    time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC),
		UserID:        42,
		TransactionID: 7,
		Reference:     "TXN-1-AAAAAAAAA",
		Amount:        &amount,
		OldStatus:     "pending",
		NewStatus:     "completed",
	}
}

func TestKafkaSink_Notify(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "paydesk.events" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, _ := msg.Key.Encode()
		if string(key) != "42" {
			return errors.New("unexpected key " + string(key))
		}
		value, _ := msg.Value.Encode()
		var got Event
		if err := json.Unmarshal(value, &got); err != nil {
			return err
		}
		if got.Type != EventTransactionStatusChanged || got.NewStatus != "completed" {
			return errors.New("unexpected payload " + string(value))
		}
		return nil
	})

	sink := NewKafkaSink(producer, "paydesk.events")
	require.NoError(t, sink.Notify(t.Context(), statusEvent()))
	require.NoError(t, sink.Close())
}

func TestKafkaSink_NotifyError(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	sink := NewKafkaSink(producer, "paydesk.events")
	err := sink.Notify(t.Context(), statusEvent())
	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, sink.Close())
}

func TestKafkaSink_CanceledContext(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	sink := NewKafkaSink(producer, "paydesk.events")

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	require.ErrorIs(t, sink.Notify(ctx, statusEvent()), context.Canceled)
	require.NoError(t, sink.Close())
}

func TestLoggerSink(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.JSONFormatter{})

	require.NoError(t, NewLoggerSink(l).Notify(t.Context(), statusEvent()))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "transaction.status_changed", line["event"])
	assert.Equal(t, "pending -> completed", line["status"])
	assert.InDelta(t, 7, line["transactionID"], 0)
}

type sinkFunc func(ctx context.Context, event Event) error

func (f sinkFunc) Notify(ctx context.Context, event Event) error { return f(ctx, event) }

func TestMulti(t *testing.T) {
	boom := errors.New("boom")
	var delivered int
	ok := sinkFunc(func(context.Context, Event) error {
		delivered++
		return nil
	})
	failing := sinkFunc(func(context.Context, Event) error { return boom })

	err := Multi{failing, ok, ok}.Notify(t.Context(), statusEvent())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 2, delivered)

	require.NoError(t, Multi{}.Notify(t.Context(), statusEvent()))
}
