package scheduling

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultPeerRate is the flat price of a peer to peer session in platform credits.
const DefaultPeerRate = 10

type Action string

const (
	ActionCancel Action = "cancel"
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
)

func (a Action) Valid() bool {
	return a == ActionCancel || a == ActionAccept || a == ActionReject
}

var transitions = map[Status]map[Action]Status{
	StatusPending: {
		ActionAccept: StatusScheduled,
		ActionReject: StatusRejected,
		ActionCancel: StatusCancelled,
	},
	StatusScheduled: {
		ActionCancel: StatusCancelled,
	},
}

// CreateRequest is a booking request already enriched with the target's display data.
type CreateRequest struct {
	RequesterID       string
	TargetID          string
	TargetDisplayName string
	TargetImage       string
	Date              Date
	Time              string
	Duration          Duration
	Topic             string
	Type              BookingType
}

// Engine validates booking requests and builds new bookings.
type Engine struct {
	PeerRate int
	NewID    func() string
	Now      func() time.Time
}

func NewEngine(peerRate int) *Engine {
	if peerRate < 0 {
		peerRate = 0
	}

	return &Engine{
		PeerRate: peerRate,
		NewID:    uuid.NewString,
		Now:      time.Now,
	}
}

// Create validates req against the slots of policy annotated with existing, and returns the
// booking to persist. existing must hold every booking of the target on req.Date.
func (e *Engine) Create(req CreateRequest, policy Policy, existing []Booking) (Booking, error) {
	if err := validateRequest(req); err != nil {
		return Booking{}, err
	}

	slot, ok := findFreeSlot(Annotate(Generate(policy, req.Date, req.Duration), existing, req.Date), req.Time)
	if !ok {
		return Booking{}, fmt.Errorf("%w: %s %s (%d min)", ErrSlotUnavailable, req.Date, req.Time, req.Duration)
	}

	booking := Booking{
		ID:                e.NewID(),
		RequesterID:       req.RequesterID,
		TargetID:          req.TargetID,
		TargetDisplayName: req.TargetDisplayName,
		TargetImage:       req.TargetImage,
		Date:              req.Date,
		Time:              slot.Start,
		EndTime:           slot.End,
		Duration:          req.Duration,
		Topic:             strings.TrimSpace(req.Topic),
		Type:              req.Type,
		Status:            StatusPending,
		Price:             e.PeerRate,
		CreatedAt:         e.Now(),
	}

	if req.Type == TypeAIPersona {
		booking.Status = StatusScheduled
		booking.Price = 0
	}

	return booking, nil
}

// Transition applies action to b on behalf of actorID. Legality is checked before roles.
func Transition(b Booking, action Action, actorID string) (Booking, error) {
	if !action.Valid() {
		return b, newValidationError("action", "must be one of cancel accept reject")
	}

	next, ok := transitions[b.Status][action]
	if !ok {
		return b, fmt.Errorf("%w: cannot %s a %s booking", ErrInvalidTransition, action, b.Status)
	}

	switch action {
	case ActionAccept, ActionReject:
		if actorID == "" || actorID != b.TargetID {
			return b, fmt.Errorf("%w: only the target may %s", ErrUnauthorized, action)
		}
	case ActionCancel:
		if !b.IsParty(actorID) {
			return b, fmt.Errorf("%w: only the requester or the target may cancel", ErrUnauthorized)
		}
	}

	b.Status = next

	return b, nil
}

// NeedsRefund reports whether moving from "from" to "to" releases credits paid for b.
func NeedsRefund(b Booking, from, to Status) bool {
	return b.Price > 0 && from.Reserves() && to.Terminal()
}

func validateRequest(req CreateRequest) error {
	switch {
	case req.RequesterID == "":
		return newValidationError("requester_id", "is required")
	case req.TargetID == "":
		return newValidationError("target_id", "is required")
	case req.Date == "":
		return newValidationError("date", "is required")
	case req.Time == "":
		return newValidationError("time", "is required")
	case strings.TrimSpace(req.Topic) == "":
		return newValidationError("topic", "is required")
	case !req.Type.Valid():
		return newValidationError("type", "must be peerToPeer or aiPersona")
	case !req.Duration.Valid():
		return newValidationError("duration", "must be 25 or 55")
	}

	if _, err := ParseDate(string(req.Date)); err != nil {
		return err
	}

	return nil
}

func findFreeSlot(slots []Slot, start string) (Slot, bool) {
	for _, slot := range slots {
		if slot.Start == start && !slot.Busy {
			return slot, true
		}
	}

	return Slot{}, false
}
