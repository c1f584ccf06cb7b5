package deposits

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/saveup/saveup/internal/domain"
	"github.com/saveup/saveup/internal/service/depositservice"
	"github.com/saveup/saveup/pkg/auth"
	"github.com/saveup/saveup/pkg/utils"
)

func NewMock(t *testing.T) (*DepositHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func newDepositRequest(id, body string, fid int64) *http.Request {
	req := httptest.NewRequest("POST", "/api/challenges/"+id+"/deposit", bytes.NewReader([]byte(body)))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if fid != 0 {
		ctx = context.WithValue(ctx, auth.FIDKey, fid)
	}
	return req.WithContext(ctx)
}

func TestDepositHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		challengeID   string
		fid           int64
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name:        "Successful deposit",
			challengeID: "7",
			fid:         8152,
			body:        `{"amount":25,"transactionHash":"0x7c41"}`,
			prepareMock: func() {
				service.EXPECT().Deposit(gomock.Any(), int64(7), int64(8152), int64(25_000000), "0x7c41").
					Return(&domain.Challenge{ID: 7, GoalAmount: 200_000000, CurrentAmount: 125_000000}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Non-numeric amount never reaches the service",
			challengeID:   "7",
			fid:           8152,
			body:          `{"amount":"abc"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid amount",
		},
		{
			name:          "Zero amount",
			challengeID:   "7",
			fid:           8152,
			body:          `{"amount":0}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid amount",
		},
		{
			name:        "Unknown challenge",
			challengeID: "99",
			fid:         8152,
			body:        `{"amount":25}`,
			prepareMock: func() {
				service.EXPECT().Deposit(gomock.Any(), int64(99), int64(8152), int64(25_000000), "").
					Return(nil, depositservice.ErrChallengeNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "Challenge not found",
		},
		{
			name:          "Missing auth context",
			challengeID:   "7",
			fid:           0,
			body:          `{"amount":25}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusUnauthorized,
			expectedError: "Unauthorized",
		},
		{
			name:          "Invalid challenge id",
			challengeID:   "abc",
			fid:           8152,
			body:          `{"amount":25}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid challenge id",
		},
		{
			name:          "Invalid request body",
			challengeID:   "7",
			fid:           8152,
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			rr := httptest.NewRecorder()
			handler.Deposit(rr, newDepositRequest(tt.challengeID, tt.body, tt.fid))

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Error)
				return
			}

			var challenge map[string]any
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&challenge))
			assert.Equal(t, "125.000000", challenge["currentAmount"])
		})
	}
}
