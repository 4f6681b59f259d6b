package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mentorbook/internal/domains/availability/model"
)

func TestEncodeDecodeDays(t *testing.T) {
	tests := []struct {
		name     string
		days     []int
		expected []int
	}{
		{name: "undeclared", days: nil, expected: nil},
		{name: "explicitly empty", days: []int{}, expected: []int{}},
		{name: "several days", days: []int{1, 3, 5}, expected: []int{1, 3, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, model.DecodeDays(model.EncodeDays(tt.days)))
		})
	}
}

func TestDecodeDays_SkipsGarbage(t *testing.T) {
	encoded := "1, x,4"

	assert.Equal(t, []int{1, 4}, model.DecodeDays(&encoded))
}

func TestPolicy_ToRaw(t *testing.T) {
	assert.Nil(t, model.Policy{}.ToRaw())

	start := 8
	days := "0,6"

	raw := model.Policy{TargetID: "t1", StartHour: &start, ActiveDays: &days}.ToRaw()

	assert.Nil(t, raw.Enabled)
	assert.Equal(t, &start, raw.StartHour)
	assert.Nil(t, raw.EndHour)
	assert.Equal(t, []int{0, 6}, raw.ActiveDays)
}
