package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/domain"
)

// Publisher emits order lifecycle events. The order ledger is the source of
// truth; publishing happens after commit and a failure is logged, never
// propagated into the transaction outcome.
type Publisher interface {
	PublishOrderEvent(ctx context.Context, eventType string, order *domain.Order) error
}

type kafkaPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}
	return &kafkaPublisher{writer: writer, logger: logger}
}

func (p *kafkaPublisher) PublishOrderEvent(ctx context.Context, eventType string, order *domain.Order) error {
	event := OrderEvent{
		BaseEvent: BaseEvent{
			EventID:   uuid.New().String(),
			EventType: eventType,
			Timestamp: time.Now().UTC(),
		},
		OrderID:    order.ID,
		BuyerID:    order.BuyerID,
		Status:     order.Status,
		TotalCents: order.TotalCents,
	}
	for _, line := range order.Lines {
		event.Lines = append(event.Lines, OrderEventLine{
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
		})
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(order.ID),
		Value: payload,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write message to kafka: %w", err)
	}

	p.logger.Debug("order event published",
		zap.String("event_type", eventType),
		zap.String("order_id", order.ID))
	return nil
}

// Close flushes and closes the underlying writer.
func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops all events. Used when Kafka is not configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderEvent(context.Context, string, *domain.Order) error {
	return nil
}
