package service

import (
	"context"
	"fmt"
	"mentorbook/config"
	"mentorbook/infras/jwt"
	"mentorbook/infras/otel"
	"mentorbook/internal/domains/auth/model/dto"
	userModel "mentorbook/internal/domains/user/model"
	userRepo "mentorbook/internal/domains/user/repository"
	"mentorbook/shared"
	"mentorbook/shared/constant"
	gDto "mentorbook/shared/dto"
	"mentorbook/shared/failure"
	"mentorbook/shared/password"
	gRepo "mentorbook/shared/repository"
	"mentorbook/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	msgEmailTaken         = "email already registered"
	msgInvalidCredentials = "invalid email or password"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) error
}

type serviceImpl struct {
	users userRepo.User
	cfg   *config.Config
	otel  otel.Otel
	jwt   jwt.JWT
}

func New(users userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		users: users,
		cfg:   cfg,
		otel:  otel,
		jwt:   jwt,
	}
}

func byEmail(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: userModel.FieldEmail, Operator: gDto.FilterOperatorEq, Value: email, Table: userModel.TableName},
		},
	}
}

// Register opens a member account with the configured coin grant. The unique email index
// settles concurrent registrations that both pass the existence check.
func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(&err)

	taken, err := s.users.Exist(ctx, byEmail(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if taken {
		return failure.Conflict(msgEmailTaken)
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return failure.BadRequest(err)
	}

	err = s.users.Insert(ctx, req.ToUserModel(constant.ActorGuest, hash, s.cfg.Booking.InitialCoins))

	switch {
	case gRepo.IsUniqueViolation(err):
		return failure.Conflict(msgEmailTaken)
	case err != nil:
		log.Error().Err(err).Msg("failed to create user")

		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// Login answers unknown emails and wrong passwords alike.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, err := s.users.Get(ctx, byEmail(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty || password.Verify(req.Password, user.Password) != nil {
		log.Warn().Str("email", req.Email).Msg("rejected login attempt")

		return res, failure.Unauthorized(msgInvalidCredentials)
	}

	if !user.Active {
		return res, failure.Forbidden("user account is deactivated")
	}

	pair, err := s.jwt.GenerateTokenPair(ctx, user.ID, user.Email, user.Level)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	now := timezone.Now()
	seen := map[string]any{userModel.FieldLastLogin: now, constant.FieldModifiedAt: now, constant.FieldModifiedBy: user.ID}

	if err = s.users.Update(ctx, seen, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record last login")
	}

	user.LastLogin = &now

	res.FromTokenPair(pair)
	res.User.FromModel(user)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(&err)

	pair, err := s.jwt.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token")
	}

	res.FromTokenPair(pair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(userID, userModel.FieldID, userModel.TableName)

	user, err := s.users.Get(ctx, filter, userModel.FieldID, userModel.FieldPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found")
	}

	if password.Verify(req.CurrentPassword, user.Password) != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		return failure.BadRequest(err)
	}

	now := timezone.Now()
	fields := map[string]any{userModel.FieldPassword: hash, constant.FieldModifiedAt: now, constant.FieldModifiedBy: userID}

	if err = s.users.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
