package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/vitorsdevstuff/file-energy/internal/domain"
	"github.com/vitorsdevstuff/file-energy/pkg/logger"
)

// Топики событий жизненного цикла подписки
const (
	TopicSubscriptionActivated = "subscription_activated"
	TopicSubscriptionCancelled = "subscription_cancelled"
)

// Producer определяет интерфейс для публикации сообщений в Kafka.
type Producer interface {
	// PublishSubscriptionEvent отправляет событие, связанное с подпиской.
	// Ключ сообщения (Key) используется Kafka для партиционирования:
	// события одной подписки попадают в одну партицию и сохраняют порядок.
	PublishSubscriptionEvent(ctx context.Context, topic string, subscription domain.Subscription) error
	// Close закрывает соединение продюсера Kafka.
	Close() error
}

// kafkaProducer реализует интерфейс Producer, используя segmentio/kafka-go.
type kafkaProducer struct {
	writer *kafka.Writer
	log    *logger.Logger
}

// NewKafkaProducer создает и настраивает новый продюсер Kafka.
func NewKafkaProducer(brokers []string, log *logger.Logger) (Producer, error) {
	if len(brokers) == 0 {
		log.Errorw("Kafka brokers list is empty in config, cannot create producer")
		return nil, errors.New("kafka brokers are not configured")
	}

	// RequiredAcks: kafka.RequireOne - ждать подтверждения только от лидера партиции
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}

	log.Infow("Kafka producer initialized", "brokers", brokers)

	return &kafkaProducer{
		writer: writer,
		log:    log,
	}, nil
}

// PublishSubscriptionEvent преобразует данные подписки в JSON и отправляет в указанный топик Kafka.
func (k *kafkaProducer) PublishSubscriptionEvent(ctx context.Context, topic string, subscription domain.Subscription) error {
	messageKey := []byte(subscription.ID.String())

	messageValue, err := json.Marshal(subscription)
	if err != nil {
		k.log.Errorw("Failed to marshal subscription data to JSON for Kafka", "error", err, "subscriptionID", subscription.ID, "topic", topic)
		return fmt.Errorf("kafka: failed to marshal message data: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   messageKey,
		Value: messageValue,
		Time:  time.Now(),
	}

	// Контекст с таймаутом, чтобы запись не зависала
	writeCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	err = k.writer.WriteMessages(writeCtx, message)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			k.log.Errorw("Kafka write timeout exceeded", "error", err, "topic", topic, "subscriptionID", subscription.ID)
			return fmt.Errorf("kafka: write timeout: %w", err)
		}
		k.log.Errorw("Failed to write message to Kafka", "error", err, "topic", topic, "subscriptionID", subscription.ID)
		return fmt.Errorf("kafka: failed to write message: %w", err)
	}

	k.log.Infow("Successfully published message to Kafka", "topic", topic, "subscriptionID", subscription.ID, "key", string(messageKey))
	return nil
}

// Close закрывает соединение Kafka Writer.
func (k *kafkaProducer) Close() error {
	k.log.Infow("Closing Kafka producer writer...")
	err := k.writer.Close()
	if err != nil {
		k.log.Errorw("Failed to close Kafka writer", "error", err)
		return fmt.Errorf("kafka: failed to close writer: %w", err)
	}
	k.log.Infow("Kafka producer writer closed successfully")
	return nil
}

// NoOpProducer заглушка продюсера: события не публикуются.
// Используется, когда Kafka недоступна или не сконфигурирована.
type NoOpProducer struct{}

func (NoOpProducer) PublishSubscriptionEvent(ctx context.Context, topic string, subscription domain.Subscription) error {
	return nil
}

func (NoOpProducer) Close() error { return nil }
