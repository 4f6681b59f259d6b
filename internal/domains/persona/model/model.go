package model

import "mentorbook/shared/model"

const (
	TableName  = "personas"
	EntityName = "persona"

	FieldID          = "id"
	FieldName        = "name"
	FieldHeadline    = "headline"
	FieldDescription = "description"
	FieldImage       = "image"
	FieldActive      = "active"
)

// Persona is an AI mentor that can be booked like a member.
type Persona struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Headline    string `db:"headline"`
	Description string `db:"description"`
	Image       string `db:"image"`
	Active      bool   `db:"active"`
	model.Metadata
}
