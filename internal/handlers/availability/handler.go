package availability

import (
	"mentorbook/infras/otel"
	"mentorbook/internal/domains/availability/model/dto"
	"mentorbook/internal/domains/availability/service"
	"mentorbook/shared"
	"mentorbook/shared/constant"
	"mentorbook/shared/validator"
	"mentorbook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	paramTargetID = "targetId"

	queryDate     = "date"
	queryFrom     = "from"
	queryTo       = "to"
	queryDuration = "duration"
	queryFree     = "free"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/me", handler.GetMyPolicy)
		routerGroup.Put("/me", handler.SetMyPolicy)
		routerGroup.Get("/{targetId}", handler.GetPolicy)
		routerGroup.Put("/{targetId}", handler.SetPolicy)
	})

	router.Route("/targets/{targetId}", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTarget)
		routerGroup.Get("/slots", handler.GetSlots)
		routerGroup.Get("/availability", handler.GetRange)
	})
}

// GetMyPolicy returns the caller's effective availability.
// @Summary Get own availability
// @Tags Availability
// @Produce json
// @Success 200 {object} response.Data[dto.PolicyResponse]
// @Failure 401 {object} response.Error
// @Router /v1/availability/me [get]
// @Security BearerAuth
func (handler *Handler) GetMyPolicy(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyPolicy")
	defer scope.End()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.GetPolicy(ctx, userID, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability policy")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SetMyPolicy replaces the caller's availability policy.
// @Summary Set own availability
// @Tags Availability
// @Accept json
// @Produce json
// @Param request body dto.SetPolicyRequest true "Availability policy"
// @Success 200 {object} response.Data[dto.PolicyResponse]
// @Failure 400 {object} response.Error
// @Router /v1/availability/me [put]
// @Security BearerAuth
func (handler *Handler) SetMyPolicy(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(constant.ContextKeyUserID).(string)

	handler.setPolicy(w, r, userID)
}

// GetPolicy returns the effective availability of any target.
// @Summary Get target availability policy
// @Tags Availability
// @Produce json
// @Param targetId path string true "Member or persona ID"
// @Success 200 {object} response.Data[dto.PolicyResponse]
// @Failure 404 {object} response.Error
// @Router /v1/availability/{targetId} [get]
func (handler *Handler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPolicy")
	defer scope.End()

	viewerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.GetPolicy(ctx, chi.URLParam(r, paramTargetID), viewerID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability policy")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SetPolicy replaces the availability policy of a target, typically a persona.
// @Summary Set target availability
// @Tags Availability
// @Accept json
// @Produce json
// @Param targetId path string true "Member or persona ID"
// @Param request body dto.SetPolicyRequest true "Availability policy"
// @Success 200 {object} response.Data[dto.PolicyResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/availability/{targetId} [put]
// @Security BearerAuth
func (handler *Handler) SetPolicy(w http.ResponseWriter, r *http.Request) {
	handler.setPolicy(w, r, chi.URLParam(r, paramTargetID))
}

// GetTarget resolves a member or persona into its bookable identity.
// @Summary Get bookable target
// @Tags Availability
// @Produce json
// @Param targetId path string true "Member or persona ID"
// @Success 200 {object} response.Data[dto.Target]
// @Failure 404 {object} response.Error
// @Router /v1/targets/{targetId} [get]
func (handler *Handler) GetTarget(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTarget")
	defer scope.End()

	target, err := handler.service.Target(ctx, chi.URLParam(r, paramTargetID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get target")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, target)
}

// GetSlots lists the slots of a target on one date with their busy flag.
// @Summary Get slots for a date
// @Tags Availability
// @Produce json
// @Param targetId path string true "Member or persona ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param duration query int true "Session length" Enums(25, 55)
// @Param free query boolean false "Only return free slots"
// @Success 200 {object} response.Data[dto.SlotsResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/targets/{targetId}/slots [get]
func (handler *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSlots")
	defer scope.End()

	query := r.URL.Query()
	viewerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	req := dto.SlotsRequest{
		TargetID: chi.URLParam(r, paramTargetID),
		ViewerID: viewerID,
		Date:     query.Get(queryDate),
		FreeOnly: isTrue(query.Get(queryFree)),
	}

	duration, err := shared.ConvertStringToInt(query.Get(queryDuration))
	if err == nil {
		req.Duration = duration
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Slots(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get slots")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetRange lists the slots of a target for every date of a short range.
// @Summary Get slots for a date range
// @Tags Availability
// @Produce json
// @Param targetId path string true "Member or persona ID"
// @Param from query string true "First date (YYYY-MM-DD)"
// @Param to query string true "Last date (YYYY-MM-DD), inclusive"
// @Param duration query int true "Session length" Enums(25, 55)
// @Param free query boolean false "Only return free slots"
// @Success 200 {object} response.Data[dto.RangeResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/targets/{targetId}/availability [get]
func (handler *Handler) GetRange(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRange")
	defer scope.End()

	query := r.URL.Query()
	viewerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	req := dto.RangeRequest{
		TargetID: chi.URLParam(r, paramTargetID),
		ViewerID: viewerID,
		From:     query.Get(queryFrom),
		To:       query.Get(queryTo),
		FreeOnly: isTrue(query.Get(queryFree)),
	}

	duration, err := shared.ConvertStringToInt(query.Get(queryDuration))
	if err == nil {
		req.Duration = duration
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Range(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability range")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func (handler *Handler) setPolicy(w http.ResponseWriter, r *http.Request, targetID string) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetPolicy")
	defer scope.End()

	req := dto.SetPolicyRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SetPolicy(ctx, req, targetID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set availability policy")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Availability policy updated successfully")

	response.WithJSON(w, http.StatusOK, res)
}

func isTrue(value string) bool {
	b := shared.ConvertStringToBool(value)

	return b != nil && *b
}
