package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/dawnthivakar/e-com-product-catalog/internal/app/worker/entity"
	"github.com/dawnthivakar/e-com-product-catalog/internal/app/worker/service"
	"github.com/dawnthivakar/e-com-product-catalog/pkg/metrics"
)

const serviceName = "review-events-worker"

// KafkaConsumer обрабатывает события из топика review-added-events
type KafkaConsumer struct {
	reader    *kafka.Reader
	ratingSvc service.RatingServiceInterface
	topic     string
	groupID   string
	stopChan  chan struct{}
	doneChan  chan struct{}
}

// NewKafkaConsumer создает новый Kafka consumer
func NewKafkaConsumer(
	brokers []string,
	topic string,
	groupID string,
	minBytes int,
	maxBytes int,
	ratingSvc service.RatingServiceInterface,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: minBytes,
		MaxBytes: maxBytes,
		// Читаем с самого раннего offset: события добавления отзывов
		// нельзя пропускать, дубликаты исправляет сверка
		StartOffset:    kafka.FirstOffset,
		CommitInterval: 0, // коммитим явно после обработки
		ReadBackoffMin: 100 * time.Millisecond,
		ReadBackoffMax: 1 * time.Second,
	})

	return &KafkaConsumer{
		reader:    reader,
		ratingSvc: ratingSvc,
		topic:     topic,
		groupID:   groupID,
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
	}
}

// Start запускает consumer в отдельной горутине
func (c *KafkaConsumer) Start(ctx context.Context) {
	log.Println("Starting Kafka consumer...")
	go c.consume(ctx)
}

// Stop останавливает consumer
func (c *KafkaConsumer) Stop() {
	log.Println("Stopping Kafka consumer...")
	close(c.stopChan)
	<-c.doneChan
	c.reader.Close()
	log.Println("Kafka consumer stopped")
}

// consume читает и обрабатывает сообщения из Kafka
func (c *KafkaConsumer) consume(ctx context.Context) {
	defer close(c.doneChan)

	for {
		select {
		case <-c.stopChan:
			return
		default:
			readCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			message, err := c.reader.FetchMessage(readCtx)
			cancel()

			if err != nil {
				if ctx.Err() != nil {
					return
				}

				log.Printf("Error fetching message: %v", err)
				time.Sleep(time.Second)
				continue
			}

			if err := c.processMessage(ctx, message); err != nil {
				log.Printf("Error processing message: %v", err)
				metrics.RecordKafkaError(serviceName, c.topic, "process")
				// Offset не коммитим - сообщение будет обработано повторно
			} else {
				metrics.RecordKafkaMessageConsumed(serviceName, c.topic, c.groupID)
				if err := c.reader.CommitMessages(ctx, message); err != nil {
					log.Printf("Error committing message: %v", err)
					metrics.RecordKafkaError(serviceName, c.topic, "commit")
				}
			}
		}
	}
}

// processMessage обрабатывает одно сообщение из Kafka
func (c *KafkaConsumer) processMessage(ctx context.Context, message kafka.Message) error {
	var event entity.ReviewAddedEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal review event: %w", err)
	}

	log.Printf("Received review-added event %s for product %d (offset: %d, partition: %d)",
		event.ReviewID, event.ProductID, message.Offset, message.Partition)

	if err := c.ratingSvc.ApplyReviewEvent(ctx, &event); err != nil {
		return fmt.Errorf("failed to apply review event: %w", err)
	}

	return nil
}

// GetStats возвращает статистику consumer
func (c *KafkaConsumer) GetStats() kafka.ReaderStats {
	return c.reader.Stats()
}
