package dto

import (
	avDto "mentorbook/internal/domains/availability/model/dto"
	"mentorbook/internal/domains/booking/model"
	"mentorbook/internal/scheduling"
	"mentorbook/shared"
	gDto "mentorbook/shared/dto"
)

const (
	RoleRequester = "requester"
	RoleTarget    = "target"
)

type CreateBookingRequest struct {
	TargetID string `json:"target_id" validate:"required"`
	Date     string `json:"date"      validate:"required,datetime=2006-01-02"`
	Time     string `json:"time"      validate:"required,datetime=15:04"`
	Duration int    `json:"duration"  validate:"required,oneof=25 55"`
	Topic    string `json:"topic"     validate:"required,max=500"`
	Type     string `json:"type"      validate:"required,oneof=peerToPeer aiPersona"`
}

// ToEngine enriches the request with the resolved target's display data.
func (r *CreateBookingRequest) ToEngine(requesterID string, target avDto.Target) scheduling.CreateRequest {
	return scheduling.CreateRequest{
		RequesterID:       requesterID,
		TargetID:          target.ID,
		TargetDisplayName: target.DisplayName,
		TargetImage:       target.Image,
		Date:              scheduling.Date(r.Date),
		Time:              r.Time,
		Duration:          scheduling.Duration(r.Duration),
		Topic:             r.Topic,
		Type:              scheduling.BookingType(r.Type),
	}
}

// MineRequest narrows the caller's bookings. An empty Role matches both sides.
type MineRequest struct {
	Role   string `json:"role"   validate:"omitempty,oneof=requester target"`
	Status string `json:"status" validate:"omitempty,oneof=pending scheduled cancelled rejected"`
	Date   string `json:"date"   validate:"omitempty,datetime=2006-01-02"`
}

func (r *MineRequest) ToFilter(userID string) gDto.FilterGroup {
	requester := gDto.Filter{
		Field:    model.FieldRequesterID,
		Operator: gDto.FilterOperatorEq,
		Value:    userID,
		Table:    model.TableName,
	}
	target := gDto.Filter{
		Field:    model.FieldTargetID,
		Operator: gDto.FilterOperatorEq,
		Value:    userID,
		Table:    model.TableName,
	}

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	switch r.Role {
	case RoleRequester:
		filter.Filters = append(filter.Filters, requester)
	case RoleTarget:
		filter.Filters = append(filter.Filters, target)
	default:
		filter.Filters = append(filter.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters:  []any{requester, target},
		})
	}

	if r.Status != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    r.Status,
			Table:    model.TableName,
		})
	}

	if r.Date != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldBookingDate,
			Operator: gDto.FilterOperatorEq,
			Value:    r.Date,
			Table:    model.TableName,
		})
	}

	return filter
}

type BookingResponse struct {
	ID                string `json:"id"`
	RequesterID       string `json:"requester_id"`
	TargetID          string `json:"target_id"`
	TargetDisplayName string `json:"target_display_name"`
	TargetImage       string `json:"target_image"`
	Date              string `json:"date"`
	Time              string `json:"time"`
	EndTime           string `json:"end_time"`
	Duration          int    `json:"duration"`
	Topic             string `json:"topic"`
	Type              string `json:"type"`
	Status            string `json:"status"`
	Price             int    `json:"price"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RequesterID = model.RequesterID
	r.TargetID = model.TargetID
	r.TargetDisplayName = model.TargetDisplayName
	r.TargetImage = model.TargetImage
	r.Date = model.BookingDate
	r.Time = model.StartTime
	r.EndTime = model.EndTime
	r.Duration = model.Duration
	r.Topic = model.Topic
	r.Type = model.Type
	r.Status = model.Status
	r.Price = model.Price
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
