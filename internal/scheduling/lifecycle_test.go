package scheduling_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorbook/internal/scheduling"
)

var fixedNow = time.Date(2023, 12, 20, 8, 0, 0, 0, time.UTC)

func newEngine() *scheduling.Engine {
	engine := scheduling.NewEngine(scheduling.DefaultPeerRate)
	engine.NewID = func() string { return "booking-1" }
	engine.Now = func() time.Time { return fixedNow }

	return engine
}

func validRequest(bookingType scheduling.BookingType) scheduling.CreateRequest {
	return scheduling.CreateRequest{
		RequesterID:       "requester",
		TargetID:          "target",
		TargetDisplayName: "Target",
		TargetImage:       "https://cdn.example.com/target.png",
		Date:              monday,
		Time:              "10:05",
		Duration:          scheduling.DurationShort,
		Topic:             "  Career advice  ",
		Type:              bookingType,
	}
}

func TestEngine_CreateAIPersona(t *testing.T) {
	booking, err := newEngine().Create(validRequest(scheduling.TypeAIPersona), mondayPolicy(), nil)

	require.NoError(t, err)
	assert.Equal(t, scheduling.StatusScheduled, booking.Status)
	assert.Equal(t, 0, booking.Price)
	assert.Equal(t, "booking-1", booking.ID)
	assert.Equal(t, "10:05", booking.Time)
	assert.Equal(t, "10:30", booking.EndTime)
	assert.Equal(t, "Career advice", booking.Topic)
	assert.Equal(t, fixedNow, booking.CreatedAt)
}

func TestEngine_CreatePeerToPeer(t *testing.T) {
	booking, err := newEngine().Create(validRequest(scheduling.TypePeerToPeer), mondayPolicy(), nil)

	require.NoError(t, err)
	assert.Equal(t, scheduling.StatusPending, booking.Status)
	assert.Equal(t, scheduling.DefaultPeerRate, booking.Price)

	accepted, err := scheduling.Transition(booking, scheduling.ActionAccept, "target")
	require.NoError(t, err)
	assert.Equal(t, scheduling.StatusScheduled, accepted.Status)

	_, err = scheduling.Transition(booking, scheduling.ActionAccept, "requester")
	assert.ErrorIs(t, err, scheduling.ErrUnauthorized)
}

func TestEngine_PeerPriceIsFlat(t *testing.T) {
	engine := newEngine()

	short, err := engine.Create(validRequest(scheduling.TypePeerToPeer), mondayPolicy(), nil)
	require.NoError(t, err)

	req := validRequest(scheduling.TypePeerToPeer)
	req.Duration = scheduling.DurationLong

	long, err := engine.Create(req, mondayPolicy(), nil)
	require.NoError(t, err)

	assert.Equal(t, short.Price, long.Price)
	assert.Equal(t, "11:00", long.EndTime)
}

func TestEngine_CreateTwiceIsUnavailable(t *testing.T) {
	engine := newEngine()
	req := validRequest(scheduling.TypePeerToPeer)

	first, err := engine.Create(req, mondayPolicy(), nil)
	require.NoError(t, err)

	_, err = engine.Create(req, mondayPolicy(), []scheduling.Booking{first})
	assert.ErrorIs(t, err, scheduling.ErrSlotUnavailable)
}

func TestEngine_CreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *scheduling.CreateRequest)
		field   string
		wantErr error
	}{
		{
			name:   "missing requester",
			mutate: func(req *scheduling.CreateRequest) { req.RequesterID = "" },
			field:  "requester_id",
		},
		{
			name:   "missing target",
			mutate: func(req *scheduling.CreateRequest) { req.TargetID = "" },
			field:  "target_id",
		},
		{
			name:   "missing date",
			mutate: func(req *scheduling.CreateRequest) { req.Date = "" },
			field:  "date",
		},
		{
			name:   "malformed date",
			mutate: func(req *scheduling.CreateRequest) { req.Date = "2024/01/01" },
			field:  "date",
		},
		{
			name:   "missing time",
			mutate: func(req *scheduling.CreateRequest) { req.Time = "" },
			field:  "time",
		},
		{
			name:   "blank topic",
			mutate: func(req *scheduling.CreateRequest) { req.Topic = "   " },
			field:  "topic",
		},
		{
			name:   "unknown type",
			mutate: func(req *scheduling.CreateRequest) { req.Type = "group" },
			field:  "type",
		},
		{
			name:   "unsupported duration",
			mutate: func(req *scheduling.CreateRequest) { req.Duration = 40 },
			field:  "duration",
		},
		{
			name:    "time that is not a slot start",
			mutate:  func(req *scheduling.CreateRequest) { req.Time = "10:00" },
			wantErr: scheduling.ErrSlotUnavailable,
		},
		{
			name:    "date outside active days",
			mutate:  func(req *scheduling.CreateRequest) { req.Date = "2024-01-02" },
			wantErr: scheduling.ErrSlotUnavailable,
		},
		{
			name:    "time outside window",
			mutate:  func(req *scheduling.CreateRequest) { req.Time = "11:05" },
			wantErr: scheduling.ErrSlotUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(scheduling.TypePeerToPeer)
			tt.mutate(&req)

			_, err := newEngine().Create(req, mondayPolicy(), nil)
			require.Error(t, err)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			var valErr *scheduling.ValidationError
			require.True(t, errors.As(err, &valErr))
			assert.Equal(t, tt.field, valErr.Field)
		})
	}
}

func TestEngine_CreateIgnoresReleasedBookings(t *testing.T) {
	existing := []scheduling.Booking{
		{Date: monday, Time: "10:05", Status: scheduling.StatusCancelled},
		{Date: monday, Time: "10:05", Status: scheduling.StatusRejected},
	}

	booking, err := newEngine().Create(validRequest(scheduling.TypePeerToPeer), mondayPolicy(), existing)

	require.NoError(t, err)
	assert.Equal(t, "10:05", booking.Time)
}

func TestNewEngine_ClampsNegativeRate(t *testing.T) {
	assert.Equal(t, 0, scheduling.NewEngine(-5).PeerRate)
}

func TestTransition(t *testing.T) {
	base := scheduling.Booking{ID: "b1", RequesterID: "requester", TargetID: "target"}

	tests := []struct {
		name     string
		from     scheduling.Status
		action   scheduling.Action
		actor    string
		expected scheduling.Status
		wantErr  error
	}{
		{name: "target accepts pending", from: scheduling.StatusPending, action: scheduling.ActionAccept, actor: "target", expected: scheduling.StatusScheduled},
		{name: "target rejects pending", from: scheduling.StatusPending, action: scheduling.ActionReject, actor: "target", expected: scheduling.StatusRejected},
		{name: "requester cancels pending", from: scheduling.StatusPending, action: scheduling.ActionCancel, actor: "requester", expected: scheduling.StatusCancelled},
		{name: "target cancels scheduled", from: scheduling.StatusScheduled, action: scheduling.ActionCancel, actor: "target", expected: scheduling.StatusCancelled},
		{name: "requester cancels scheduled", from: scheduling.StatusScheduled, action: scheduling.ActionCancel, actor: "requester", expected: scheduling.StatusCancelled},
		{name: "requester cannot reject", from: scheduling.StatusPending, action: scheduling.ActionReject, actor: "requester", wantErr: scheduling.ErrUnauthorized},
		{name: "stranger cannot cancel", from: scheduling.StatusPending, action: scheduling.ActionCancel, actor: "stranger", wantErr: scheduling.ErrUnauthorized},
		{name: "empty actor cannot cancel", from: scheduling.StatusScheduled, action: scheduling.ActionCancel, actor: "", wantErr: scheduling.ErrUnauthorized},
		{name: "accept scheduled", from: scheduling.StatusScheduled, action: scheduling.ActionAccept, actor: "target", wantErr: scheduling.ErrInvalidTransition},
		{name: "reject scheduled", from: scheduling.StatusScheduled, action: scheduling.ActionReject, actor: "target", wantErr: scheduling.ErrInvalidTransition},
		{name: "accept cancelled", from: scheduling.StatusCancelled, action: scheduling.ActionAccept, actor: "target", wantErr: scheduling.ErrInvalidTransition},
		{name: "reject cancelled", from: scheduling.StatusCancelled, action: scheduling.ActionReject, actor: "target", wantErr: scheduling.ErrInvalidTransition},
		{name: "accept rejected", from: scheduling.StatusRejected, action: scheduling.ActionAccept, actor: "target", wantErr: scheduling.ErrInvalidTransition},
		{name: "reject rejected", from: scheduling.StatusRejected, action: scheduling.ActionReject, actor: "target", wantErr: scheduling.ErrInvalidTransition},
		{name: "cancel cancelled", from: scheduling.StatusCancelled, action: scheduling.ActionCancel, actor: "requester", wantErr: scheduling.ErrInvalidTransition},
		{name: "cancel rejected", from: scheduling.StatusRejected, action: scheduling.ActionCancel, actor: "target", wantErr: scheduling.ErrInvalidTransition},
		{name: "illegal action by wrong actor is still invalid", from: scheduling.StatusScheduled, action: scheduling.ActionAccept, actor: "requester", wantErr: scheduling.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := base
			booking.Status = tt.from

			result, err := scheduling.Transition(booking, tt.action, tt.actor)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, result.Status)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Status)
			assert.Equal(t, tt.from, booking.Status)
		})
	}
}

func TestTransition_UnknownAction(t *testing.T) {
	booking := scheduling.Booking{Status: scheduling.StatusPending, TargetID: "target"}

	_, err := scheduling.Transition(booking, "postpone", "target")

	assert.True(t, scheduling.IsValidationError(err))
}

func TestNeedsRefund(t *testing.T) {
	paid := scheduling.Booking{Price: 10}
	free := scheduling.Booking{Price: 0}

	assert.True(t, scheduling.NeedsRefund(paid, scheduling.StatusPending, scheduling.StatusRejected))
	assert.True(t, scheduling.NeedsRefund(paid, scheduling.StatusScheduled, scheduling.StatusCancelled))
	assert.False(t, scheduling.NeedsRefund(paid, scheduling.StatusPending, scheduling.StatusScheduled))
	assert.False(t, scheduling.NeedsRefund(free, scheduling.StatusScheduled, scheduling.StatusCancelled))
}
