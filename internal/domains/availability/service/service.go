package service

import (
	"context"
	"fmt"
	"time"

	"mentorbook/config"
	"mentorbook/infras/otel"
	"mentorbook/internal/domains/availability/model"
	"mentorbook/internal/domains/availability/model/dto"
	"mentorbook/internal/domains/availability/repository"
	bookingModel "mentorbook/internal/domains/booking/model"
	bookingRepo "mentorbook/internal/domains/booking/repository"
	personaModel "mentorbook/internal/domains/persona/model"
	personaRepo "mentorbook/internal/domains/persona/repository"
	userModel "mentorbook/internal/domains/user/model"
	userRepo "mentorbook/internal/domains/user/repository"
	"mentorbook/internal/scheduling"
	"mentorbook/shared"
	"mentorbook/shared/constant"
	"mentorbook/shared/failure"

	"github.com/rs/zerolog/log"
)

type Availability interface {
	Target(ctx context.Context, id string) (dto.Target, error)
	GetPolicy(ctx context.Context, targetID, viewerID string) (dto.PolicyResponse, error)
	SetPolicy(ctx context.Context, req dto.SetPolicyRequest, targetID string) (dto.PolicyResponse, error)
	ResolvePolicy(ctx context.Context, targetID, viewerID string) (scheduling.Policy, error)
	Slots(ctx context.Context, req dto.SlotsRequest) (dto.SlotsResponse, error)
	Range(ctx context.Context, req dto.RangeRequest) (dto.RangeResponse, error)
}

type serviceImpl struct {
	repo     repository.Availability
	bookings bookingRepo.Booking
	users    userRepo.User
	personas personaRepo.Persona
	cfg      *config.Config
	otel     otel.Otel
}

func New(
	repo repository.Availability,
	bookings bookingRepo.Booking,
	users userRepo.User,
	personas personaRepo.Persona,
	cfg *config.Config,
	otel otel.Otel,
) Availability {
	return &serviceImpl{
		repo:     repo,
		bookings: bookings,
		users:    users,
		personas: personas,
		cfg:      cfg,
		otel:     otel,
	}
}

// Target looks the id up among active members first, then active personas.
func (s *serviceImpl) Target(ctx context.Context, id string) (res dto.Target, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Target")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if id == constant.Empty {
		return res, failure.BadRequestFromString("target id is required")
	}

	user, err := s.users.Get(ctx, shared.FilterByID(id, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID != constant.Empty && user.Active {
		return dto.Target{
			ID:          user.ID,
			Kind:        dto.TargetKindMember,
			DisplayName: user.DisplayName(),
			Image:       user.Image(),
		}, nil
	}

	persona, err := s.personas.Get(ctx, shared.FilterByID(id, personaModel.FieldID, personaModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get persona")

		return res, fmt.Errorf("failed to get persona: %w", err)
	}

	if persona.ID != constant.Empty && persona.Active {
		return dto.Target{
			ID:          persona.ID,
			Kind:        dto.TargetKindPersona,
			DisplayName: persona.Name,
			Image:       persona.Image,
		}, nil
	}

	return res, failure.NotFound("target not found") // nolint:wrapcheck
}

func (s *serviceImpl) GetPolicy(ctx context.Context, targetID, viewerID string) (res dto.PolicyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPolicy")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if _, err = s.Target(ctx, targetID); err != nil {
		return res, err
	}

	stored, err := s.stored(ctx, targetID)
	if err != nil {
		return res, err
	}

	res.FromPolicy(targetID, stored, scheduling.Resolve(stored.ToRaw(), viewerID, targetID))

	return res, nil
}

// SetPolicy replaces the stored policy of the target as a whole.
func (s *serviceImpl) SetPolicy(ctx context.Context, req dto.SetPolicyRequest, targetID string) (res dto.PolicyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetPolicy")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = req.Check(); err != nil {
		return res, err
	}

	if _, err = s.Target(ctx, targetID); err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	policy := req.ToModel(targetID, user)

	if err = s.repo.Upsert(ctx, policy); err != nil {
		log.Error().Err(err).Msg("failed to save availability policy")

		return res, fmt.Errorf("failed to save availability policy: %w", err)
	}

	log.Info().Str("target", targetID).Str("by", user).Msg("availability policy updated")

	res.FromPolicy(targetID, policy, scheduling.Resolve(policy.ToRaw(), user, targetID))

	return res, nil
}

func (s *serviceImpl) ResolvePolicy(ctx context.Context, targetID, viewerID string) (res scheduling.Policy, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResolvePolicy")
	defer scope.End()
	defer scope.TraceIfError(&err)

	stored, err := s.stored(ctx, targetID)
	if err != nil {
		return res, err
	}

	return scheduling.Resolve(stored.ToRaw(), viewerID, targetID), nil
}

// Slots is recomputed on every call so it always reflects the latest bookings.
func (s *serviceImpl) Slots(ctx context.Context, req dto.SlotsRequest) (res dto.SlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Slots")
	defer scope.End()
	defer scope.TraceIfError(&err)

	date, err := scheduling.ParseDate(req.Date)
	if err != nil {
		return res, failure.BadRequest(err)
	}

	duration := scheduling.Duration(req.Duration)
	if !duration.Valid() {
		return res, failure.BadRequestFromString("duration must be 25 or 55")
	}

	target, err := s.Target(ctx, req.TargetID)
	if err != nil {
		return res, err
	}

	policy, err := s.ResolvePolicy(ctx, target.ID, req.ViewerID)
	if err != nil {
		return res, err
	}

	bookings, err := s.bookings.GetByTargetAndDates(ctx, target.ID, date, date)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res = dto.SlotsResponse{
		Target:   target,
		Date:     date,
		Duration: req.Duration,
		Slots:    daySlots(policy, date, duration, bookingModel.ToEngineBookings(bookings), req.FreeOnly),
	}

	return res, nil
}

// Range returns the slots of every day from req.From to req.To inclusive.
func (s *serviceImpl) Range(ctx context.Context, req dto.RangeRequest) (res dto.RangeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Range")
	defer scope.End()
	defer scope.TraceIfError(&err)

	from, to, days, err := s.parseRange(req.From, req.To)
	if err != nil {
		return res, err
	}

	duration := scheduling.Duration(req.Duration)
	if !duration.Valid() {
		return res, failure.BadRequestFromString("duration must be 25 or 55")
	}

	target, err := s.Target(ctx, req.TargetID)
	if err != nil {
		return res, err
	}

	policy, err := s.ResolvePolicy(ctx, target.ID, req.ViewerID)
	if err != nil {
		return res, err
	}

	stored, err := s.bookings.GetByTargetAndDates(ctx, target.ID, from, to)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	byDate := map[scheduling.Date][]scheduling.Booking{}
	for _, b := range bookingModel.ToEngineBookings(stored) {
		byDate[b.Date] = append(byDate[b.Date], b)
	}

	res = dto.RangeResponse{
		Target:   target,
		From:     from.String(),
		To:       to.String(),
		Duration: req.Duration,
		Days:     make([]dto.DaySlots, 0, days),
	}

	for i := range days {
		date := from.AddDays(i)

		res.Days = append(res.Days, dto.DaySlots{
			Date:  date,
			Slots: daySlots(policy, date, duration, byDate[date], req.FreeOnly),
		})
	}

	return res, nil
}

func (s *serviceImpl) stored(ctx context.Context, targetID string) (model.Policy, error) {
	policy, err := s.repo.Get(ctx, shared.FilterByID(targetID, model.FieldTargetID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get availability policy")

		return policy, fmt.Errorf("failed to get availability policy: %w", err)
	}

	return policy, nil
}

func (s *serviceImpl) parseRange(rawFrom, rawTo string) (from, to scheduling.Date, days int, err error) {
	if from, err = scheduling.ParseDate(rawFrom); err != nil {
		return from, to, 0, failure.BadRequest(err)
	}

	if to, err = scheduling.ParseDate(rawTo); err != nil {
		return from, to, 0, failure.BadRequest(err)
	}

	start, _ := time.Parse(scheduling.DateLayout, from.String())
	end, _ := time.Parse(scheduling.DateLayout, to.String())

	days = int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return from, to, 0, failure.BadRequestFromString("from must not be after to")
	}

	if limit := s.cfg.Booking.MaxRangeDays; limit > 0 && days > limit {
		return from, to, 0, failure.BadRequestFromString(fmt.Sprintf("range cannot exceed %d days", limit))
	}

	return from, to, days, nil
}

func daySlots(policy scheduling.Policy, date scheduling.Date, duration scheduling.Duration, bookings []scheduling.Booking, freeOnly bool) []scheduling.Slot {
	slots := scheduling.Annotate(scheduling.Generate(policy, date, duration), bookings, date)
	if freeOnly {
		return scheduling.FreeSlots(slots)
	}

	return slots
}
