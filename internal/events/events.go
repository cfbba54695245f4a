// Package events публикует события жизненного цикла бронирований.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/office-booking-api/internal/domain"
	"github.com/segmentio/kafka-go"
)

// Типы событий
const (
	BookingCreated = "booking.created"
	BookingUpdated = "booking.updated"
	BookingDeleted = "booking.deleted"
)

// BookingEvent - событие об изменении бронирования
type BookingEvent struct {
	Type       string        `json:"type"`
	BookingID  int64         `json:"booking_id"`
	ResourceID int64         `json:"resource_id,omitempty"`
	EmployeeID int64         `json:"employee_id,omitempty"`
	Date       *domain.Date  `json:"date,omitempty"`
	StartTime  *domain.Clock `json:"start_time,omitempty"`
	EndTime    *domain.Clock `json:"end_time,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// NewBookingEvent строит событие по бронированию
func NewBookingEvent(eventType string, b *domain.Booking, at time.Time) BookingEvent {
	date, start, end := b.Date, b.StartTime, b.EndTime
	return BookingEvent{
		Type:       eventType,
		BookingID:  b.ID,
		ResourceID: b.ResourceID,
		EmployeeID: b.EmployeeID,
		Date:       &date,
		StartTime:  &start,
		EndTime:    &end,
		OccurredAt: at.UTC(),
	}
}

// Publisher публикует события бронирований
type Publisher interface {
	Publish(ctx context.Context, event BookingEvent) error
	Close() error
}

// NopPublisher отбрасывает события. Используется, когда брокер не настроен.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, BookingEvent) error { return nil }

func (NopPublisher) Close() error { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher публикует события в топик Kafka.
// Ключ сообщения - id ресурса, поэтому события одного ресурса попадают в одну партицию.
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher создаёт издателя для списка брокеров и топика
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		BatchTimeout: 10 * time.Millisecond,
	}

	return &KafkaPublisher{writer: writer}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, event BookingEvent) error {
	msg, err := encodeMessage(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func encodeMessage(event BookingEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to encode event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatInt(event.ResourceID, 10)),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}, nil
}
