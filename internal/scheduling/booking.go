package scheduling

import "time"

type BookingType string

const (
	TypePeerToPeer BookingType = "peerToPeer"
	TypeAIPersona  BookingType = "aiPersona"
)

func (t BookingType) Valid() bool {
	return t == TypePeerToPeer || t == TypeAIPersona
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusRejected  Status = "rejected"
)

// Reserves reports whether a booking in this status still holds its slot.
func (s Status) Reserves() bool {
	return s != StatusCancelled && s != StatusRejected
}

func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusRejected
}

type Booking struct {
	ID                string      `json:"id"`
	RequesterID       string      `json:"requester_id"`
	TargetID          string      `json:"target_id"`
	TargetDisplayName string      `json:"target_display_name"`
	TargetImage       string      `json:"target_image"`
	Date              Date        `json:"date"`
	Time              string      `json:"time"`
	EndTime           string      `json:"end_time"`
	Duration          Duration    `json:"duration"`
	Topic             string      `json:"topic"`
	Type              BookingType `json:"type"`
	Status            Status      `json:"status"`
	Price             int         `json:"price"`
	CreatedAt         time.Time   `json:"created_at"`
}

// IsParty reports whether actorID is the requester or the target of b.
func (b Booking) IsParty(actorID string) bool {
	return actorID != "" && (actorID == b.RequesterID || actorID == b.TargetID)
}
