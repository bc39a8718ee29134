package notifier

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/safari-trip-api/internal/models"
)

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

// NewDiscordSession opens a bot session for token.
func NewDiscordSession(token string) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return session, nil
}

func NewDiscordNotifier(session *discordgo.Session, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

func (n *DiscordNotifier) NotifyOffer(trip models.Trip) error {
	return n.send(offerMessage(trip))
}

func (n *DiscordNotifier) NotifyBooking(trip models.Trip, booking models.Booking) error {
	return n.send(bookingMessage(trip, booking))
}

func (n *DiscordNotifier) send(message string) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}
	if _, err := n.session.ChannelMessageSend(n.channelID, message); err != nil {
		return fmt.Errorf("failed to send discord message: %w", err)
	}
	return nil
}

func offerMessage(trip models.Trip) string {
	return fmt.Sprintf("🦁 **New Safari Offer**\n**Offered by:** %s\n**Start:** %s (%d days)\n**Itinerary:** %s\n**Vehicle:** %s, %s\n**Seats:** %d\n**Price per person:** %.2f",
		trip.OfferedBy,
		trip.StartDate,
		trip.Days,
		itinerary(trip),
		trip.CarType,
		trip.CarState,
		trip.AvailableSeats,
		trip.PricePerPerson,
	)
}

func bookingMessage(trip models.Trip, booking models.Booking) string {
	return fmt.Sprintf("🎉 **Safari Booking**\n**User:** %s\n**Trip:** %s by %s, %s\n**Seats:** %d (%d left)\n**Total:** %.2f",
		booking.BookingUser,
		itinerary(trip),
		trip.OfferedBy,
		trip.StartDate,
		booking.SeatsToBook,
		trip.AvailableSeats,
		booking.TotalCost,
	)
}

func itinerary(trip models.Trip) string {
	names := make([]string, len(trip.Itinerary))
	for i, d := range trip.Itinerary {
		names[i] = string(d)
	}
	return strings.Join(names, " → ")
}
