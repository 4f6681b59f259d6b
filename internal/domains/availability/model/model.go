package model

import (
	"strconv"
	"strings"

	"mentorbook/internal/scheduling"
	"mentorbook/shared/model"
)

const (
	TableName  = "availability_policies"
	EntityName = "availability"

	FieldTargetID   = "target_id"
	FieldEnabled    = "enabled"
	FieldStartHour  = "start_hour"
	FieldEndHour    = "end_hour"
	FieldActiveDays = "active_days"

	daySeparator = ","
)

// Policy is the stored availability of a target. Every column is nullable so a partial
// declaration survives a round trip; ActiveDays holds comma separated weekday numbers.
type Policy struct {
	TargetID   string  `db:"target_id"`
	Enabled    *bool   `db:"enabled"`
	StartHour  *int    `db:"start_hour"`
	EndHour    *int    `db:"end_hour"`
	ActiveDays *string `db:"active_days"`
	model.Metadata
}

// ToRaw converts the row into engine input. A zero Policy means nothing has been declared.
func (p Policy) ToRaw() *scheduling.RawPolicy {
	if p.TargetID == "" {
		return nil
	}

	return &scheduling.RawPolicy{
		Enabled:    p.Enabled,
		StartHour:  p.StartHour,
		EndHour:    p.EndHour,
		ActiveDays: DecodeDays(p.ActiveDays),
	}
}

func EncodeDays(days []int) *string {
	if days == nil {
		return nil
	}

	parts := make([]string, len(days))
	for i, day := range days {
		parts[i] = strconv.Itoa(day)
	}

	encoded := strings.Join(parts, daySeparator)

	return &encoded
}

// DecodeDays skips entries that are not numbers. nil stays nil, "" becomes an empty slice.
func DecodeDays(encoded *string) []int {
	if encoded == nil {
		return nil
	}

	days := []int{}

	for _, part := range strings.Split(*encoded, daySeparator) {
		day, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}

		days = append(days, day)
	}

	return days
}
