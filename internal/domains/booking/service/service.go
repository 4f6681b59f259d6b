package service

import (
	"context"
	"errors"
	"fmt"

	"mentorbook/config"
	"mentorbook/infras/kafka"
	"mentorbook/infras/otel"
	avService "mentorbook/internal/domains/availability/service"
	"mentorbook/internal/domains/booking/model"
	"mentorbook/internal/domains/booking/model/dto"
	"mentorbook/internal/domains/booking/repository"
	userRepo "mentorbook/internal/domains/user/repository"
	"mentorbook/internal/scheduling"
	"mentorbook/shared"
	"mentorbook/shared/cache"
	"mentorbook/shared/constant"
	gDto "mentorbook/shared/dto"
	"mentorbook/shared/failure"
	gRepo "mentorbook/shared/repository"
	"mentorbook/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const cacheLockBooking = "booking:lock"

var errStaleStatus = errors.New("booking status changed concurrently")

var sortableFields = []string{
	model.FieldBookingDate,
	model.FieldStartTime,
	model.FieldStatus,
	constant.FieldCreatedAt,
}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Mine(ctx context.Context, req dto.MineRequest, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Transition(ctx context.Context, id string, action scheduling.Action) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	users        userRepo.User
	availability avService.Availability
	engine       *scheduling.Engine
	cfg          *config.Config
	cache        cache.RedisCache
	kafka        kafka.Client
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	users userRepo.User,
	availability avService.Availability,
	cfg *config.Config,
	cache cache.RedisCache,
	kafka kafka.Client,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		users:        users,
		availability: availability,
		engine:       scheduling.NewEngine(cfg.Booking.PeerRate),
		cfg:          cfg,
		cache:        cache,
		kafka:        kafka,
		otel:         otel,
	}
}

// Create books a free slot of the target for the caller and debits the session price.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		return res, failure.Unauthorized("login required to book a session")
	}

	if req.TargetID == user {
		return res, failure.BadRequestFromString("cannot book a session with yourself")
	}

	date, err := scheduling.ParseDate(req.Date)
	if err != nil {
		return res, failure.BadRequest(err)
	}

	target, err := s.availability.Target(ctx, req.TargetID)
	if err != nil {
		return res, err
	}

	if bookingType := target.BookingType(); scheduling.BookingType(req.Type) != bookingType {
		return res, failure.BadRequestFromString(fmt.Sprintf("a %s can only be booked as %s", target.Kind, bookingType))
	}

	lockKey := shared.BuildCacheKey(cacheLockBooking, target.ID, date.String(), req.Time)

	acquired, err := s.cache.Lock(ctx, lockKey, s.cfg.Booking.LockTTLSeconds)

	switch {
	case err != nil:
		log.Warn().Err(err).Str("key", lockKey).Msg("failed to acquire booking lock, relying on the database")
	case !acquired:
		return res, failure.Conflict("this slot is being booked right now, try again")
	default:
		defer func() {
			if err := s.cache.Unlock(context.WithoutCancel(ctx), lockKey); err != nil {
				log.Warn().Err(err).Str("key", lockKey).Msg("failed to release booking lock")
			}
		}()
	}

	policy, err := s.availability.ResolvePolicy(ctx, target.ID, user)
	if err != nil {
		return res, err
	}

	existing, err := s.repo.GetByTargetAndDates(ctx, target.ID, date, date)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	booking, err := s.engine.Create(req.ToEngine(user, target), policy, model.ToEngineBookings(existing))
	if err != nil {
		return res, engineFailure(err)
	}

	row := model.FromEngine(booking, user)

	err = s.repo.Transaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, row); err != nil {
			return err
		}

		if booking.Price > 0 {
			return s.users.AdjustCoinsTx(ctx, tx, user, -booking.Price, user)
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, userRepo.ErrInsufficientCoins):
			return res, failure.PaymentRequired(fmt.Sprintf("this session costs %d coins", booking.Price))
		case gRepo.IsUniqueViolation(err):
			return res, failure.Conflict("slot is no longer available")
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	log.Info().
		Str("booking", booking.ID).
		Str("target", booking.TargetID).
		Str("date", booking.Date.String()).
		Str("time", booking.Time).
		Str("status", string(booking.Status)).
		Msg("booking created")

	s.publish(ctx, model.NewEvent(model.EventCreated, booking, constant.Empty, user, booking.CreatedAt))

	res.FromModel(row)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req.Sortable(model.TableName, sortableFields...), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

// Mine lists the bookings the caller made or received.
func (s *serviceImpl) Mine(ctx context.Context, req dto.MineRequest, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Mine")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		return res, failure.Unauthorized("login required")
	}

	return s.GetAll(ctx, params, req.ToFilter(user))
}

// Get is restricted to the two parties of the booking and administrators.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if !booking.ToEngine().IsParty(user) && role != constant.RoleAdmin && role != constant.RoleSuperAdmin {
		return res, failure.ResourceRestrictedError
	}

	res.FromModel(booking)

	return res, nil
}

// Transition applies action on behalf of the caller. Credits are returned to the requester
// when a paid booking is released.
func (s *serviceImpl) Transition(ctx context.Context, id string, action scheduling.Action) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transition")
	defer scope.End()
	defer scope.TraceIfError(&err)

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	from := scheduling.Status(current.Status)

	next, err := scheduling.Transition(current.ToEngine(), action, actor)
	if err != nil {
		return res, engineFailure(err)
	}

	refund := scheduling.NeedsRefund(next, from, next.Status)

	err = s.repo.Transaction(ctx, func(tx *sqlx.Tx) error {
		applied, err := s.repo.TransitionTx(ctx, tx, id, from, next.Status, actor)
		if err != nil {
			return err
		}

		if !applied {
			return errStaleStatus
		}

		if refund {
			return s.users.AdjustCoinsTx(ctx, tx, next.RequesterID, next.Price, actor)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, errStaleStatus) {
			return res, failure.Conflict("booking was updated by someone else, reload and retry")
		}

		log.Error().Err(err).Msg("failed to update booking status")

		return res, fmt.Errorf("failed to update booking status: %w", err)
	}

	now := timezone.Now()

	log.Info().
		Str("booking", id).
		Str("action", string(action)).
		Str("from", string(from)).
		Str("to", string(next.Status)).
		Bool("refund", refund).
		Msg("booking status changed")

	s.publish(ctx, model.NewEvent(model.EventStatusChanged, next, from, actor, now))

	current.Status = string(next.Status)
	current.ModifiedAt = now
	current.ModifiedBy = actor

	res.FromModel(current)

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found")
	}

	return booking, nil
}

func (s *serviceImpl) publish(ctx context.Context, event model.Event) {
	if !s.cfg.Kafka.Enable {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{Key: event.BookingID, Value: event}

		if err := s.kafka.Publish(c, s.cfg.Kafka.Topic.Booking, message); err != nil {
			log.Error().Err(err).Str("event", event.Type).Str("booking", event.BookingID).Msg("failed to publish booking event")
		}
	}()
}

func engineFailure(err error) error {
	switch {
	case scheduling.IsValidationError(err):
		return failure.BadRequest(err)
	case errors.Is(err, scheduling.ErrSlotUnavailable), errors.Is(err, scheduling.ErrInvalidTransition):
		return failure.Conflict(err.Error())
	case errors.Is(err, scheduling.ErrUnauthorized):
		return failure.Forbidden(err.Error())
	}

	return fmt.Errorf("failed to apply booking rules: %w", err)
}
