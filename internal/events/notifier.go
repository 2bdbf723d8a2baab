package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Notifier consumes booking events and sends the confirmation mail. Delivery
// is a log line for now; the traveler-facing mailer sits behind this seam.
type Notifier struct {
	consumer *Consumer
	log      *zap.Logger
}

func NewNotifier(consumer *Consumer, log *zap.Logger) *Notifier {
	return &Notifier{
		consumer: consumer,
		log:      log.With(zap.String("worker", "notifier")),
	}
}

// Run blocks until ctx is canceled or the consumer fails.
func (n *Notifier) Run(ctx context.Context) error {
	return n.consumer.Consume(ctx, func(ctx context.Context, msg kafka.Message) error {
		var event BookingEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			n.log.Warn("Skipping undecodable booking event", zap.Error(err))
			return nil
		}

		n.log.Info("Sending booking confirmation email",
			zap.String("email", event.Email),
			zap.String("order_id", event.OrderID),
			zap.String("flight_number", event.FlightNumber),
			zap.Strings("seats", event.Seats),
			zap.Int64("total_price", event.TotalPrice),
		)
		return nil
	})
}
