package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"mentorbook/config"
	"mentorbook/infras/jwt"
	jwtMocks "mentorbook/infras/jwt/mocks"
	"mentorbook/infras/otel/mocks"
	"mentorbook/internal/domains/auth/model/dto"
	"mentorbook/internal/domains/auth/service"
	userMocks "mentorbook/internal/domains/user/mocks"
	userModel "mentorbook/internal/domains/user/model"
	"mentorbook/shared/constant"
	gDto "mentorbook/shared/dto"
	"mentorbook/shared/failure"
	"mentorbook/shared/password"
)

type fixture struct {
	users *userMocks.MockUser
	jwt   *jwtMocks.MockJWT
	svc   service.Auth
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Booking.InitialCoins = 50

	f := fixture{
		users: userMocks.NewMockUser(ctrl),
		jwt:   jwtMocks.NewMockJWT(ctrl),
	}
	f.svc = service.New(f.users, cfg, mocks.NewOtel(), f.jwt)

	return f
}

func member(t *testing.T, plain string) userModel.User {
	t.Helper()

	hash, err := password.Hash(plain)
	require.NoError(t, err)

	name := "Ada Lovelace"

	return userModel.User{ID: "u1", Email: "ada@example.com", Password: hash, Level: constant.RoleUser, FullName: &name, Active: true, Coins: 40}
}

func assertCode(t *testing.T, wantCode int, err error) {
	t.Helper()

	if wantCode == 0 {
		require.NoError(t, err)

		return
	}

	require.Error(t, err)
	assert.Equal(t, wantCode, failure.GetCode(err))
}

var pair = &jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}

func TestAuthService_Register(t *testing.T) {
	req := dto.RegisterRequest{Email: "new@example.com", Password: "correct horse"}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "grants the initial coins",
			setupMock: func(f fixture) {
				f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.users.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) error {
						assert.Equal(t, "new@example.com", user.Email)
						assert.Equal(t, constant.RoleUser, user.Level)
						assert.Equal(t, 50, user.Coins)
						assert.NoError(t, password.Verify("correct horse", user.Password))

						return nil
					})
			},
		},
		{
			name: "email taken",
			setupMock: func(f fixture) {
				f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "email taken concurrently",
			setupMock: func(f fixture) {
				f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.users.EXPECT().Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "lookup failure",
			setupMock: func(f fixture) {
				f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("connection refused"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "insert failure",
			setupMock: func(f fixture) {
				f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.users.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			assertCode(t, tt.wantCode, f.svc.Register(context.Background(), req))
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ada := member(t, "correct horse")

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "success records the login",
			req:  dto.LoginRequest{Email: ada.Email, Password: "correct horse"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ada, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), ada.ID, ada.Email, ada.Level).Return(pair, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Contains(t, fields, userModel.FieldLastLogin)
						assert.Equal(t, ada.ID, fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name: "last login failure does not block",
			req:  dto.LoginRequest{Email: ada.Email, Password: "correct horse"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ada, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(pair, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("timeout"))
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@example.com", Password: "correct horse"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: ada.Email, Password: "battery staple"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ada, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "deactivated account",
			req:  dto.LoginRequest{Email: ada.Email, Password: "correct horse"},
			setupMock: func(f fixture) {
				inactive := ada
				inactive.Active = false

				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "repository failure",
			req:  dto.LoginRequest{Email: ada.Email, Password: "correct horse"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("connection refused"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "token failure",
			req:  dto.LoginRequest{Email: ada.Email, Password: "correct horse"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ada, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("sign"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Login(context.Background(), tt.req)
			assertCode(t, tt.wantCode, err)

			if tt.wantCode == 0 {
				assert.Equal(t, "access", res.AccessToken)
				assert.Equal(t, "refresh", res.RefreshToken)
				assert.Equal(t, int64(900), res.ExpiresIn)
				assert.Equal(t, ada.ID, res.User.ID)
				assert.Equal(t, 40, res.User.Coins)
				assert.NotNil(t, res.User.LastLogin)
			}
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	f := newFixture(t)

	f.jwt.EXPECT().RefreshTokens(gomock.Any(), "refresh").Return(pair, nil)

	res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})
	require.NoError(t, err)
	assert.Equal(t, "access", res.AccessToken)

	f.jwt.EXPECT().RefreshTokens(gomock.Any(), "stale").Return(nil, jwt.ErrExpiredToken)

	_, err = f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "stale"})
	assertCode(t, http.StatusUnauthorized, err)
}

func TestAuthService_ChangePassword(t *testing.T) {
	ada := member(t, "correct horse")

	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "stores the new hash",
			req:  dto.ChangePasswordRequest{CurrentPassword: "correct horse", NewPassword: "battery staple"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any(), userModel.FieldID, userModel.FieldPassword).Return(ada, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						hash, ok := fields[userModel.FieldPassword].(string)
						require.True(t, ok)
						assert.NoError(t, password.Verify("battery staple", hash))

						return nil
					})
			},
		},
		{
			name: "wrong current password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "guess", NewPassword: "battery staple"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(ada, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown user",
			req:  dto.ChangePasswordRequest{CurrentPassword: "correct horse", NewPassword: "battery staple"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "update failure",
			req:  dto.ChangePasswordRequest{CurrentPassword: "correct horse", NewPassword: "battery staple"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(ada, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			assertCode(t, tt.wantCode, f.svc.ChangePassword(context.Background(), tt.req, ada.ID))
		})
	}
}
