package persona

import (
	"mentorbook/infras/otel"
	"mentorbook/internal/domains/persona/model"
	"mentorbook/internal/domains/persona/model/dto"
	"mentorbook/internal/domains/persona/service"
	"mentorbook/shared"
	"mentorbook/shared/constant"
	gDto "mentorbook/shared/dto"
	"mentorbook/shared/validator"
	"mentorbook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Persona
	otel    otel.Otel
}

func New(service service.Persona, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/personas", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePersona)
		routerGroup.Get("/", handler.GetPersonas)
		routerGroup.Get("/{id}", handler.GetPersonaByID)
		routerGroup.Patch("/{id}", handler.UpdatePersona)
		routerGroup.Delete("/{id}", handler.DeactivatePersona)
	})
}

// CreatePersona handles the creation of a new AI persona.
// @Summary Create a new persona
// @Tags Persona
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Persona name"
// @Param headline formData string false "Short headline"
// @Param description formData string false "Long description"
// @Param active formData boolean false "Persona active status"
// @Param image formData file false "Persona avatar"
// @Success 201 {object} response.Data[string] "Persona ID"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/personas [post]
// @Security BearerAuth
func (handler *Handler) CreatePersona(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePersona")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.CreatePersonaRequest{
		Name:        r.FormValue(model.FieldName),
		Headline:    r.FormValue(model.FieldHeadline),
		Description: r.FormValue(model.FieldDescription),
		Active:      shared.ConvertStringToBool(r.FormValue(model.FieldActive)),
	}

	file, fileHeader, err := r.FormFile(model.FieldImage)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create persona")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Persona created successfully")

	response.WithJSON(w, http.StatusCreated, id)
}

// GetPersonas lists personas.
// @Summary Get all personas
// @Tags Persona
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetPersonasResponse] "List of personas"
// @Failure 500 {object} response.Error
// @Router /v1/personas [get]
func (handler *Handler) GetPersonas(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPersonas")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if name := r.URL.Query().Get(model.FieldName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	personas, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get personas")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, personas)
}

// GetPersonaByID retrieves a persona by its ID.
// @Summary Get a persona by ID
// @Tags Persona
// @Produce json
// @Param id path string true "Persona ID"
// @Success 200 {object} response.Data[dto.PersonaResponse] "Persona details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/personas/{id} [get]
func (handler *Handler) GetPersonaByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPersonaByID")
	defer scope.End()

	persona, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get persona by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, persona)
}

// UpdatePersona updates an existing persona by its ID.
// @Summary Update a persona by ID
// @Tags Persona
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Persona ID"
// @Param name formData string false "Persona name"
// @Param headline formData string false "Short headline"
// @Param description formData string false "Long description"
// @Param active formData boolean false "Persona active status"
// @Param image formData file false "Persona avatar"
// @Success 200 {object} response.Message "Persona updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/personas/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePersona(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePersona")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.UpdatePersonaRequest{
		Name:        r.FormValue(model.FieldName),
		Headline:    r.FormValue(model.FieldHeadline),
		Description: r.FormValue(model.FieldDescription),
		Active:      shared.ConvertStringToBool(r.FormValue(model.FieldActive)),
	}

	file, fileHeader, err := r.FormFile(model.FieldImage)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update persona")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Persona updated successfully")

	response.WithMessage(w, http.StatusOK, "Persona updated successfully")
}

// DeactivatePersona hides a persona from new bookings.
// @Summary Deactivate a persona
// @Tags Persona
// @Produce json
// @Param id path string true "Persona ID"
// @Success 200 {object} response.Message "Persona deactivated successfully"
// @Failure 404 {object} response.Error
// @Router /v1/personas/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeactivatePersona(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeactivatePersona")
	defer scope.End()

	if err := handler.service.Deactivate(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to deactivate persona")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Persona deactivated successfully")

	response.WithMessage(w, http.StatusOK, "Persona deactivated successfully")
}
