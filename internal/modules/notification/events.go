package notification

import (
	"context"
	"log/slog"
	"time"

	"alxtravel/internal/domain"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
	EventReviewCreated    = "review.created"
)

type Event struct {
	Type string    `json:"type"`
	At   time.Time `json:"at"`
	Data any       `json:"data"`
}

type BookingEvent struct {
	BookingID int64  `json:"booking_id"`
	ListingID int64  `json:"listing_id"`
	Listing   string `json:"listing"`
	Guest     string `json:"guest"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Nights    int    `json:"nights"`
	Guests    int    `json:"guests"`
}

type ReviewEvent struct {
	ReviewID  int64  `json:"review_id"`
	ListingID int64  `json:"listing_id"`
	Author    string `json:"author"`
	Rating    int    `json:"rating"`
}

// Notifier turns domain changes into events for the listing owner.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) NotifyBookingCreated(ctx context.Context, b *domain.Booking) {
	n.notifyBooking(ctx, EventBookingCreated, b)
}

func (n *Notifier) NotifyBookingCancelled(ctx context.Context, b *domain.Booking) {
	n.notifyBooking(ctx, EventBookingCancelled, b)
}

func (n *Notifier) NotifyReviewCreated(ctx context.Context, ownerID int64, r *domain.Review) {
	ev := ReviewEvent{ReviewID: r.ID, ListingID: r.ListingID, Rating: r.Rating}
	if r.User != nil {
		ev.Author = r.User.String()
	}
	n.send(ctx, ownerID, EventReviewCreated, ev)
}

func (n *Notifier) notifyBooking(ctx context.Context, eventType string, b *domain.Booking) {
	if b.Listing == nil {
		return
	}

	ev := BookingEvent{
		BookingID: b.ID,
		ListingID: b.ListingID,
		Listing:   b.Listing.Title,
		StartDate: b.StartDate.Format(domain.DateLayout),
		EndDate:   b.EndDate.Format(domain.DateLayout),
		Nights:    b.Nights(),
		Guests:    b.Guests,
	}
	if b.User != nil {
		ev.Guest = b.User.String()
	}
	n.send(ctx, b.Listing.OwnerID, eventType, ev)
}

func (n *Notifier) send(ctx context.Context, userID int64, eventType string, data any) {
	if !n.hub.IsOnline(userID) {
		slog.DebugContext(ctx, "notification skipped, user offline", "type", eventType, "user_id", userID)
		return
	}
	delivered := n.hub.SendToUser(userID, Event{Type: eventType, At: time.Now().UTC(), Data: data})
	slog.DebugContext(ctx, "notification dispatched", "type", eventType, "user_id", userID, "delivered", delivered)
}
