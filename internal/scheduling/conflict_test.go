package scheduling_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mentorbook/internal/scheduling"
)

func busyStarts(slots []scheduling.Slot) []string {
	starts := []string{}

	for _, slot := range slots {
		if slot.Busy {
			starts = append(starts, slot.Start)
		}
	}

	return starts
}

func TestAnnotate_MondayScenario(t *testing.T) {
	slots := scheduling.Generate(mondayPolicy(), monday, scheduling.DurationShort)
	bookings := []scheduling.Booking{
		{ID: "b1", Date: monday, Time: "10:05", Status: scheduling.StatusScheduled},
	}

	annotated := scheduling.Annotate(slots, bookings, monday)

	assert.Len(t, annotated, 4)
	assert.Equal(t, []string{"10:05"}, busyStarts(annotated))
	assert.Equal(t, "10:30", annotated[2].End)
}

func TestAnnotate(t *testing.T) {
	tests := []struct {
		name     string
		bookings []scheduling.Booking
		expected []string
	}{
		{
			name:     "no bookings",
			bookings: nil,
			expected: []string{},
		},
		{
			name: "pending booking reserves its slot",
			bookings: []scheduling.Booking{
				{Date: monday, Time: "09:05", Status: scheduling.StatusPending},
			},
			expected: []string{"09:05"},
		},
		{
			name: "cancelled and rejected bookings free the slot",
			bookings: []scheduling.Booking{
				{Date: monday, Time: "09:05", Status: scheduling.StatusCancelled},
				{Date: monday, Time: "09:35", Status: scheduling.StatusRejected},
			},
			expected: []string{},
		},
		{
			name: "free slot with a cancelled and an active booking is busy",
			bookings: []scheduling.Booking{
				{Date: monday, Time: "09:35", Status: scheduling.StatusCancelled},
				{Date: monday, Time: "09:35", Status: scheduling.StatusPending},
			},
			expected: []string{"09:35"},
		},
		{
			name: "bookings on another date are ignored",
			bookings: []scheduling.Booking{
				{Date: "2024-01-08", Time: "09:05", Status: scheduling.StatusScheduled},
			},
			expected: []string{},
		},
		{
			name: "overlapping booking with a different start is not detected",
			bookings: []scheduling.Booking{
				{Date: monday, Time: "09:05", Duration: scheduling.DurationLong, Status: scheduling.StatusScheduled},
			},
			expected: []string{"09:05"},
		},
		{
			name: "booking at a time that is not a slot start",
			bookings: []scheduling.Booking{
				{Date: monday, Time: "09:00", Status: scheduling.StatusScheduled},
			},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := scheduling.Generate(mondayPolicy(), monday, scheduling.DurationShort)

			annotated := scheduling.Annotate(slots, tt.bookings, monday)

			assert.Len(t, annotated, len(slots))
			assert.Equal(t, tt.expected, busyStarts(annotated))
		})
	}
}

func TestAnnotate_DoesNotMutateInput(t *testing.T) {
	slots := scheduling.Generate(mondayPolicy(), monday, scheduling.DurationShort)
	bookings := []scheduling.Booking{{Date: monday, Time: "09:05", Status: scheduling.StatusScheduled}}

	_ = scheduling.Annotate(slots, bookings, monday)

	assert.Empty(t, busyStarts(slots))
}

func TestFreeSlots(t *testing.T) {
	slots := scheduling.Generate(mondayPolicy(), monday, scheduling.DurationShort)
	bookings := []scheduling.Booking{{Date: monday, Time: "09:35", Status: scheduling.StatusPending}}

	free := scheduling.FreeSlots(scheduling.Annotate(slots, bookings, monday))

	assert.Len(t, free, 3)

	for _, slot := range free {
		assert.NotEqual(t, "09:35", slot.Start)
	}
}
