package model

import (
	"time"

	"mentorbook/internal/scheduling"
	"mentorbook/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                = "id"
	FieldRequesterID       = "requester_id"
	FieldTargetID          = "target_id"
	FieldTargetDisplayName = "target_display_name"
	FieldTargetImage       = "target_image"
	FieldBookingDate       = "booking_date"
	FieldStartTime         = "start_time"
	FieldEndTime           = "end_time"
	FieldDuration          = "duration"
	FieldTopic             = "topic"
	FieldType              = "type"
	FieldStatus            = "status"
	FieldPrice             = "price"
)

const (
	EventCreated       = "booking.created"
	EventStatusChanged = "booking.status_changed"
)

// Booking is the stored form of scheduling.Booking. Dates and times are kept as the naive
// "YYYY-MM-DD" and "HH:MM" strings the engine works with.
type Booking struct {
	ID                string `db:"id"`
	RequesterID       string `db:"requester_id"`
	TargetID          string `db:"target_id"`
	TargetDisplayName string `db:"target_display_name"`
	TargetImage       string `db:"target_image"`
	BookingDate       string `db:"booking_date"`
	StartTime         string `db:"start_time"`
	EndTime           string `db:"end_time"`
	Duration          int    `db:"duration"`
	Topic             string `db:"topic"`
	Type              string `db:"type"`
	Status            string `db:"status"`
	Price             int    `db:"price"`
	model.Metadata
}

func (b Booking) ToEngine() scheduling.Booking {
	return scheduling.Booking{
		ID:                b.ID,
		RequesterID:       b.RequesterID,
		TargetID:          b.TargetID,
		TargetDisplayName: b.TargetDisplayName,
		TargetImage:       b.TargetImage,
		Date:              scheduling.Date(b.BookingDate),
		Time:              b.StartTime,
		EndTime:           b.EndTime,
		Duration:          scheduling.Duration(b.Duration),
		Topic:             b.Topic,
		Type:              scheduling.BookingType(b.Type),
		Status:            scheduling.Status(b.Status),
		Price:             b.Price,
		CreatedAt:         b.CreatedAt,
	}
}

// FromEngine builds the row for a freshly created booking.
func FromEngine(b scheduling.Booking, user string) Booking {
	return Booking{
		ID:                b.ID,
		RequesterID:       b.RequesterID,
		TargetID:          b.TargetID,
		TargetDisplayName: b.TargetDisplayName,
		TargetImage:       b.TargetImage,
		BookingDate:       b.Date.String(),
		StartTime:         b.Time,
		EndTime:           b.EndTime,
		Duration:          int(b.Duration),
		Topic:             b.Topic,
		Type:              string(b.Type),
		Status:            string(b.Status),
		Price:             b.Price,
		Metadata: model.Metadata{
			CreatedAt:  b.CreatedAt,
			ModifiedAt: b.CreatedAt,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

func ToEngineBookings(bookings []Booking) []scheduling.Booking {
	res := make([]scheduling.Booking, len(bookings))
	for i, b := range bookings {
		res[i] = b.ToEngine()
	}

	return res
}

// Event is published on the booking topic after a booking is created or changes status.
type Event struct {
	Type           string    `json:"type"`
	BookingID      string    `json:"booking_id"`
	RequesterID    string    `json:"requester_id"`
	TargetID       string    `json:"target_id"`
	BookingType    string    `json:"booking_type"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Price          int       `json:"price"`
	ActorID        string    `json:"actor_id"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func NewEvent(eventType string, b scheduling.Booking, previous scheduling.Status, actorID string, at time.Time) Event {
	return Event{
		Type:           eventType,
		BookingID:      b.ID,
		RequesterID:    b.RequesterID,
		TargetID:       b.TargetID,
		BookingType:    string(b.Type),
		Date:           b.Date.String(),
		Time:           b.Time,
		Status:         string(b.Status),
		PreviousStatus: string(previous),
		Price:          b.Price,
		ActorID:        actorID,
		OccurredAt:     at,
	}
}
