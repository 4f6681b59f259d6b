package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"mentorbook/infras/otel/mocks"
	userMocks "mentorbook/internal/domains/user/mocks"
	"mentorbook/internal/domains/user/model"
	"mentorbook/internal/domains/user/model/dto"
	"mentorbook/internal/domains/user/repository"
	"mentorbook/internal/domains/user/service"
	"mentorbook/shared/constant"
	gDto "mentorbook/shared/dto"
	"mentorbook/shared/failure"
)

func stringPtr(s string) *string {
	return &s
}

func adminContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func TestUserService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
		wantCoins int
	}{
		{
			name: "found",
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(model.User{ID: "u1", Email: "a@example.com", Coins: 40}, nil)
			},
			wantCoins: 40,
		},
		{
			name: "not found",
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)
			},
			wantCode: 404,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, errors.New("db down"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), "u1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCoins, res.Coins)
		})
	}
}

func TestUserService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	params := gDto.QueryParams{Page: 1, Limit: 2}

	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	mockRepo.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{Page: 1, Limit: 2, SortBy: "users.created_at", SortDir: gDto.SortDirDesc}, gomock.Any()).
		Return([]model.User{{ID: "u1"}, {ID: "u2"}}, nil)

	res, err := svc.GetAll(context.Background(), params, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Len(t, res.Users, 2)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
}

func TestUserService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	tests := []struct {
		name      string
		req       dto.UpdateUserRequest
		setupMock func()
		wantCode  int
	}{
		{
			name:      "empty request",
			req:       dto.UpdateUserRequest{},
			setupMock: func() {},
			wantCode:  400,
		},
		{
			name: "user missing",
			req:  dto.UpdateUserRequest{FullName: stringPtr("New Name")},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: 404,
		},
		{
			name: "updates fields with the acting admin",
			req:  dto.UpdateUserRequest{Level: stringPtr(constant.RoleAdmin)},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])
						assert.Contains(t, fields, model.FieldLevel)

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Update(adminContext(), tt.req, "u1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	err := svc.UpdateProfile(context.Background(), dto.UpdateProfileRequest{}, "u1")
	assert.Equal(t, 400, failure.GetCode(err))

	mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	err = svc.UpdateProfile(context.Background(), dto.UpdateProfileRequest{FullName: stringPtr("Me")}, "u1")
	assert.NoError(t, err)
}

func TestUserService_TopUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	tests := []struct {
		name      string
		amount    int
		setupMock func()
		wantCode  int
	}{
		{
			name:      "non positive amount",
			amount:    0,
			setupMock: func() {},
			wantCode:  400,
		},
		{
			name:   "unknown user",
			amount: 10,
			setupMock: func() {
				mockRepo.EXPECT().AdjustCoins(gomock.Any(), "u1", 10, "admin-1").Return(repository.ErrInsufficientCoins)
			},
			wantCode: 404,
		},
		{
			name:   "credited",
			amount: 10,
			setupMock: func() {
				mockRepo.EXPECT().AdjustCoins(gomock.Any(), "u1", 10, "admin-1").Return(nil)
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u1", Coins: 60}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.TopUp(adminContext(), dto.TopUpRequest{Amount: tt.amount}, "u1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, 60, res.Coins)
		})
	}
}
