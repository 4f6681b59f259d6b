package dto

import (
	"mime/multipart"

	"mentorbook/internal/domains/persona/model"
	"mentorbook/shared"
	gDto "mentorbook/shared/dto"
	gModel "mentorbook/shared/model"
	"mentorbook/shared/timezone"

	"github.com/google/uuid"
)

type CreatePersonaRequest struct {
	Name        string                `json:"name"        validate:"required,max=100"`
	Headline    string                `json:"headline"    validate:"omitempty,max=150"`
	Description string                `json:"description" validate:"omitempty,max=2000"`
	Image       *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
	Active      *bool                 `json:"active"      validate:"omitempty"`
}

func (c *CreatePersonaRequest) ToModel(user string, imageURL string) model.Persona {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	now := timezone.Now()

	return model.Persona{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Headline:    c.Headline,
		Description: c.Description,
		Image:       imageURL,
		Active:      active,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdatePersonaRequest struct {
	Name        string                `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Headline    string                `db:"headline"    json:"headline"    validate:"omitempty,max=150"`
	Description string                `db:"description" json:"description" validate:"omitempty,max=2000"`
	Image       *multipart.FileHeader `json:"image"     validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
	Active      *bool                 `db:"active"      json:"active"      validate:"omitempty"`
}

// IsEmpty reports whether the request carries nothing to change.
func (u *UpdatePersonaRequest) IsEmpty() bool {
	return u.Name == "" && u.Headline == "" && u.Description == "" && u.Image == nil && u.Active == nil
}

type PersonaResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Headline    string `json:"headline"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Active      bool   `json:"active"`
	gDto.Metadata
}

func (r *PersonaResponse) FromModel(model model.Persona) {
	r.ID = model.ID
	r.Name = model.Name
	r.Headline = model.Headline
	r.Description = model.Description
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetPersonasResponse struct {
	Personas  []PersonaResponse `json:"personas"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPersonasResponse) FromModels(models []model.Persona, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Personas = make([]PersonaResponse, len(models))
	for i, mod := range models {
		r.Personas[i].FromModel(mod)
	}
}
