package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const EventTicketBooked = "ticket_booked"

// BookingEvent is the message published after every committed booking.
type BookingEvent struct {
	Type         string    `json:"type"`
	OrderID      string    `json:"order_id"`
	BookingID    string    `json:"booking_id"`
	FlightRef    string    `json:"flight_ref"`
	FlightNumber string    `json:"flight_number"`
	JourneyDate  string    `json:"journey_date"`
	SeatClass    string    `json:"seat_class"`
	Seats        []string  `json:"seats"`
	TotalPrice   int64     `json:"total_price"`
	Email        string    `json:"email"`
	BookedAt     time.Time `json:"booked_at"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("write message to %s: %w", topic, err)
	}

	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
