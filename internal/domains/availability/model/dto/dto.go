package dto

import (
	"time"

	"mentorbook/internal/domains/availability/model"
	"mentorbook/internal/scheduling"
	"mentorbook/shared/constant"
	"mentorbook/shared/failure"
	gModel "mentorbook/shared/model"
	"mentorbook/shared/timezone"
)

const (
	TargetKindMember  = "member"
	TargetKindPersona = "persona"
)

// Target is anyone who can be booked, resolved from members or personas.
type Target struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	DisplayName string `json:"display_name"`
	Image       string `json:"image"`
}

// BookingType is the only type a booking against this target may have.
func (t Target) BookingType() scheduling.BookingType {
	if t.Kind == TargetKindPersona {
		return scheduling.TypeAIPersona
	}

	return scheduling.TypePeerToPeer
}

// SetPolicyRequest replaces the whole stored policy. Omitted fields are stored as undeclared.
type SetPolicyRequest struct {
	Enabled    *bool `json:"enabled,omitempty"`
	StartHour  *int  `json:"start_hour,omitempty"  validate:"omitempty,min=0,max=23"`
	EndHour    *int  `json:"end_hour,omitempty"    validate:"omitempty,min=0,max=23"`
	ActiveDays []int `json:"active_days,omitempty" validate:"omitempty,dive,min=0,max=6"`
}

// Check covers the rules the struct tags cannot express.
func (r *SetPolicyRequest) Check() error {
	if r.StartHour != nil && r.EndHour != nil && *r.StartHour >= *r.EndHour {
		return failure.BadRequestFromString("start_hour must be before end_hour")
	}

	return nil
}

func (r *SetPolicyRequest) ToModel(targetID, user string) model.Policy {
	now := timezone.Now()

	return model.Policy{
		TargetID:   targetID,
		Enabled:    r.Enabled,
		StartHour:  r.StartHour,
		EndHour:    r.EndHour,
		ActiveDays: model.EncodeDays(r.ActiveDays),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type PolicyResponse struct {
	TargetID   string     `json:"target_id"`
	Declared   bool       `json:"declared"`
	Enabled    bool       `json:"enabled"`
	StartHour  int        `json:"start_hour"`
	EndHour    int        `json:"end_hour"`
	ActiveDays []int      `json:"active_days"`
	ModifiedAt *time.Time `json:"modified_at,omitempty"`
}

func (r *PolicyResponse) FromPolicy(targetID string, stored model.Policy, policy scheduling.Policy) {
	r.TargetID = targetID
	r.Declared = stored.TargetID != constant.Empty
	r.Enabled = policy.Enabled
	r.StartHour = policy.StartHour
	r.EndHour = policy.EndHour

	r.ActiveDays = make([]int, len(policy.ActiveDays))
	for i, day := range policy.ActiveDays {
		r.ActiveDays[i] = int(day)
	}

	if r.Declared {
		modifiedAt := stored.ModifiedAt
		r.ModifiedAt = &modifiedAt
	}
}

type SlotsRequest struct {
	TargetID string `json:"target_id" validate:"required"`
	ViewerID string `json:"-"`
	Date     string `json:"date"      validate:"required,datetime=2006-01-02"`
	Duration int    `json:"duration"  validate:"required,oneof=25 55"`
	FreeOnly bool   `json:"free_only"`
}

type SlotsResponse struct {
	Target   Target            `json:"target"`
	Date     scheduling.Date   `json:"date"`
	Duration int               `json:"duration"`
	Slots    []scheduling.Slot `json:"slots"`
}

type RangeRequest struct {
	TargetID string `json:"target_id" validate:"required"`
	ViewerID string `json:"-"`
	From     string `json:"from"      validate:"required,datetime=2006-01-02"`
	To       string `json:"to"        validate:"required,datetime=2006-01-02"`
	Duration int    `json:"duration"  validate:"required,oneof=25 55"`
	FreeOnly bool   `json:"free_only"`
}

type DaySlots struct {
	Date  scheduling.Date   `json:"date"`
	Slots []scheduling.Slot `json:"slots"`
}

type RangeResponse struct {
	Target   Target     `json:"target"`
	From     string     `json:"from"`
	To       string     `json:"to"`
	Duration int        `json:"duration"`
	Days     []DaySlots `json:"days"`
}
