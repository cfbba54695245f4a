package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/office-booking-api/internal/domain"
	"github.com/segmentio/kafka-go"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:         7,
		ResourceID: 3,
		EmployeeID: 5,
		Date:       domain.NewDate(2024, 6, 10),
		StartTime:  domain.NewClock(10, 0),
		EndTime:    domain.NewClock(11, 0),
	}
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &recordingWriter{}
	p := &KafkaPublisher{writer: w}

	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := p.Publish(context.Background(), NewBookingEvent(BookingCreated, testBooking(), at)); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if len(w.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.messages))
	}
	msg := w.messages[0]
	if string(msg.Key) != "3" {
		t.Errorf("expected key '3', got '%s'", msg.Key)
	}
	if len(msg.Headers) != 1 || string(msg.Headers[0].Value) != BookingCreated {
		t.Errorf("expected event_type header, got %+v", msg.Headers)
	}

	var decoded map[string]any
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("invalid payload: %v", err)
	}
	if decoded["date"] != "2024-06-10" || decoded["start_time"] != "10:00:00" {
		t.Errorf("unexpected payload %s", msg.Value)
	}
	if decoded["booking_id"] != float64(7) {
		t.Errorf("expected booking_id 7, got %v", decoded["booking_id"])
	}

	if err := p.Close(); err != nil || !w.closed {
		t.Errorf("expected writer to be closed, err=%v", err)
	}
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	errBroker := errors.New("broker unavailable")
	p := &KafkaPublisher{writer: &recordingWriter{err: errBroker}}

	err := p.Publish(context.Background(), NewBookingEvent(BookingDeleted, testBooking(), time.Now()))
	if !errors.Is(err, errBroker) {
		t.Errorf("expected wrapped broker error, got %v", err)
	}
}

func TestNewKafkaPublisher_Validation(t *testing.T) {
	if _, err := NewKafkaPublisher(nil, "bookings"); err == nil {
		t.Error("expected error without brokers")
	}
	if _, err := NewKafkaPublisher([]string{"localhost:9092"}, ""); err == nil {
		t.Error("expected error without topic")
	}
	p, err := NewKafkaPublisher([]string{"localhost:9092"}, "bookings")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.Close()
}
