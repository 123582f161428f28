package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/IBM/sarama"
)

const kafkaProducerRetries = 3

// NewKafkaConfig конфигурация синхронного продюсера: ждем подтверждения всех реплик.
func NewKafkaConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = kafkaProducerRetries
	cfg.Producer.Return.Successes = true
	return cfg
}

func NewKafkaProducer(brokers []string) (sarama.SyncProducer, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewKafkaConfig())
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return producer, nil
}

// KafkaSink публикует события в топик. Ключ сообщения id пользователя, события одного
// пользователя попадают в одну партицию.
type KafkaSink struct {
	producer sarama.SyncProducer
	topic    string
}

func NewKafkaSink(producer sarama.SyncProducer, topic string) *KafkaSink {
	return &KafkaSink{producer: producer, topic: topic}
}

func (s *KafkaSink) Notify(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(event.UserID, 10)),
		Value: sarama.ByteEncoder(value),
	}
	if _, _, sendErr := s.producer.SendMessage(msg); sendErr != nil {
		return fmt.Errorf("send event `%s` to kafka: %w", event.Type, sendErr)
	}
	return nil
}

func (s *KafkaSink) Close() error {
	if err := s.producer.Close(); err != nil {
		return fmt.Errorf("close kafka producer: %w", err)
	}
	return nil
}
