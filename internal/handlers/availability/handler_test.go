package availability_test

import (
	"context"
	"mentorbook/infras/otel/mocks"
	"mentorbook/internal/domains/availability/model/dto"
	domainMocks "mentorbook/internal/domains/availability/mocks"
	"mentorbook/internal/handlers/availability"
	"mentorbook/shared/constant"
	"mentorbook/shared/failure"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*domainMocks.MockAvailabilityService, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	service := domainMocks.NewMockAvailabilityService(ctrl)

	handler := availability.New(service, mocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/v1", handler.Router)

	return service, router
}

// serve sends the request as viewer, or anonymously when viewer is empty.
func serve(router http.Handler, method, target, viewer, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if viewer != "" {
		req = req.WithContext(context.WithValue(req.Context(), constant.ContextKeyUserID, viewer))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_GetSlots(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		viewer       string
		mock         func(service *domainMocks.MockAvailabilityService)
		expectedCode int
	}{
		{
			name:   "anonymous viewer",
			query:  "date=2024-01-01&duration=25",
			viewer: "",
			mock: func(service *domainMocks.MockAvailabilityService) {
				service.EXPECT().Slots(gomock.Any(), dto.SlotsRequest{TargetID: "u2", Date: "2024-01-01", Duration: 25}).
					Return(dto.SlotsResponse{Duration: 25}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "viewer and free filter are forwarded",
			query:  "date=2024-01-01&duration=55&free=true",
			viewer: "u2",
			mock: func(service *domainMocks.MockAvailabilityService) {
				service.EXPECT().Slots(gomock.Any(), dto.SlotsRequest{TargetID: "u2", ViewerID: "u2", Date: "2024-01-01", Duration: 55, FreeOnly: true}).
					Return(dto.SlotsResponse{Duration: 55}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "unsupported duration",
			query:        "date=2024-01-01&duration=40",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing duration",
			query:        "date=2024-01-01",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "malformed date",
			query:        "date=01/01/2024&duration=25",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:  "unknown target",
			query: "date=2024-01-01&duration=25",
			mock: func(service *domainMocks.MockAvailabilityService) {
				service.EXPECT().Slots(gomock.Any(), gomock.Any()).Return(dto.SlotsResponse{}, failure.NotFound("Target not found"))
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, router := setup(t)
			if tt.mock != nil {
				tt.mock(service)
			}

			rec := serve(router, http.MethodGet, "/v1/targets/u2/slots?"+tt.query, tt.viewer, "")

			assert.Equal(t, tt.expectedCode, rec.Code)
		})
	}
}

func TestHandler_GetRange(t *testing.T) {
	service, router := setup(t)

	service.EXPECT().
		Range(gomock.Any(), dto.RangeRequest{TargetID: "p1", ViewerID: "u1", From: "2024-01-01", To: "2024-01-07", Duration: 25}).
		Return(dto.RangeResponse{}, nil)

	rec := serve(router, http.MethodGet, "/v1/targets/p1/availability?from=2024-01-01&to=2024-01-07&duration=25", "u1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_SetMyPolicy(t *testing.T) {
	t.Run("caller owns the policy", func(t *testing.T) {
		service, router := setup(t)

		start, end := 8, 12

		service.EXPECT().
			SetPolicy(gomock.Any(), dto.SetPolicyRequest{StartHour: &start, EndHour: &end}, "u1").
			Return(dto.PolicyResponse{}, nil)

		rec := serve(router, http.MethodPut, "/v1/availability/me", "u1", `{"start_hour":8,"end_hour":12}`)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("hour out of range", func(t *testing.T) {
		_, router := setup(t)

		rec := serve(router, http.MethodPut, "/v1/availability/me", "u1", `{"start_hour":24}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
