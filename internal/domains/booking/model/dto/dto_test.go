package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	avDto "mentorbook/internal/domains/availability/model/dto"
	"mentorbook/internal/domains/booking/model/dto"
	"mentorbook/internal/scheduling"
)

func TestMineRequest_ToFilter(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.MineRequest
		expected string
	}{
		{
			name:     "both sides",
			req:      dto.MineRequest{},
			expected: "((bookings.requester_id = :requester_id OR bookings.target_id = :target_id))",
		},
		{
			name:     "as requester",
			req:      dto.MineRequest{Role: dto.RoleRequester},
			expected: "(bookings.requester_id = :requester_id)",
		},
		{
			name:     "as target with status and date",
			req:      dto.MineRequest{Role: dto.RoleTarget, Status: "pending", Date: "2024-01-01"},
			expected: "(bookings.target_id = :target_id AND bookings.status = :status AND bookings.booking_date = :booking_date)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := tt.req.ToFilter("u1")

			where, args := filter.GetWhereClause()

			assert.Equal(t, tt.expected, where)

			for key, value := range args {
				if key == "requester_id" || key == "target_id" {
					assert.Equal(t, "u1", value)
				}
			}
		})
	}
}

func TestCreateBookingRequest_ToEngine(t *testing.T) {
	req := dto.CreateBookingRequest{
		TargetID: "p1",
		Date:     "2024-01-01",
		Time:     "09:05",
		Duration: 55,
		Topic:    "Interview practice",
		Type:     "aiPersona",
	}

	target := avDto.Target{ID: "p1", Kind: avDto.TargetKindPersona, DisplayName: "Ada", Image: "ada.png"}

	got := req.ToEngine("u1", target)

	assert.Equal(t, scheduling.CreateRequest{
		RequesterID:       "u1",
		TargetID:          "p1",
		TargetDisplayName: "Ada",
		TargetImage:       "ada.png",
		Date:              "2024-01-01",
		Time:              "09:05",
		Duration:          scheduling.DurationLong,
		Topic:             "Interview practice",
		Type:              scheduling.TypeAIPersona,
	}, got)
	assert.Equal(t, scheduling.TypeAIPersona, target.BookingType())
}
