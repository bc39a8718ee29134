package notifier

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gdg-garage/safari-trip-api/internal/models"
	"github.com/nats-io/nats.go"
)

// Publisher is the part of *nats.Conn the NATS notifier needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATSNotifier publishes catalog events as JSON on
// <prefix>.trips.offered and <prefix>.bookings.created.
type NATSNotifier struct {
	pub    Publisher
	prefix string
}

// ConnectNATS dials url and keeps reconnecting in the background.
func ConnectNATS(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return conn, nil
}

func NewNATSNotifier(pub Publisher, prefix string) *NATSNotifier {
	return &NATSNotifier{pub: pub, prefix: prefix}
}

type OfferEvent struct {
	Trip models.Trip `json:"trip"`
}

type BookingEvent struct {
	TripID         string         `json:"trip_id"`
	OfferedBy      string         `json:"offered_by"`
	RemainingSeats int            `json:"remaining_seats"`
	Booking        models.Booking `json:"booking"`
}

func (n *NATSNotifier) NotifyOffer(trip models.Trip) error {
	return n.publish("trips.offered", OfferEvent{Trip: trip})
}

func (n *NATSNotifier) NotifyBooking(trip models.Trip, booking models.Booking) error {
	return n.publish("bookings.created", BookingEvent{
		TripID:         trip.ID,
		OfferedBy:      trip.OfferedBy,
		RemainingSeats: trip.AvailableSeats,
		Booking:        booking,
	})
}

func (n *NATSNotifier) publish(subject string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if n.prefix != "" {
		subject = n.prefix + "." + subject
	}
	if err := n.pub.Publish(subject, data); err != nil {
		return fmt.Errorf("nats publish %s: %w", subject, err)
	}
	return nil
}
