package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GlebRadaev/novafunded/internal/domain"
	"github.com/GlebRadaev/novafunded/internal/service/paymentservice"
	"github.com/GlebRadaev/novafunded/internal/service/planservice"
	"github.com/GlebRadaev/novafunded/internal/verifier"
	"github.com/GlebRadaev/novafunded/pkg/auth"
	"github.com/GlebRadaev/novafunded/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

const (
	paymentID = "2f1c7f5e-8d4b-4a53-9a53-4a6c4e1f0b11"
	txHash    = "4a1c3e8f0b7d9c2e5f6a8b0c1d2e3f405162738495a6b7c8d9e0f1a2b3c4d5e6"
)

func NewMock(t *testing.T) (*PaymentHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func authorized(r *http.Request, userID int) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), auth.UserIDKey, userID))
}

func TestCreatePayment(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Intent created",
			body: `{"plan_id":1}`,
			prepareMock: func() {
				service.EXPECT().CreateIntent(gomock.Any(), 7, 1).Return(&domain.PaymentIntent{
					PaymentID:     paymentID,
					WalletAddress: "TV386Let8mNrkzDV5aKLgxXjFWNE3qnQxM",
					Amount:        decimal.NewFromInt(99),
					Currency:      "USDT",
					PlanName:      "10K Challenge",
					Memo:          "Payment for 10K Challenge - ID: " + paymentID,
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Missing plan id",
			body:          `{}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name:          "Malformed body",
			body:          `{plan`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Plan not found",
			body: `{"plan_id":5}`,
			prepareMock: func() {
				service.EXPECT().CreateIntent(gomock.Any(), 7, 5).Return(nil, planservice.ErrPlanNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: planservice.ErrPlanNotFound.Error(),
		},
		{
			name: "Service error",
			body: `{"plan_id":1}`,
			prepareMock: func() {
				service.EXPECT().CreateIntent(gomock.Any(), 7, 1).Return(nil, errors.New("database error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			req := authorized(httptest.NewRequest(http.MethodPost, "/api/user/payments", bytes.NewReader([]byte(tt.body))), 7)
			rr := httptest.NewRecorder()

			handler.CreatePayment(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Error)
				return
			}
			var resp map[string]any
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, paymentID, resp["payment_id"])
			assert.Equal(t, float64(99), resp["amount"])
			assert.Equal(t, "USDT", resp["currency"])
		})
	}
}

func TestVerifyPayment(t *testing.T) {
	handler, service := NewMock(t)
	pending := &domain.Payment{
		ID:            paymentID,
		UserID:        7,
		Amount:        decimal.NewFromInt(99),
		WalletAddress: "TV386Let8mNrkzDV5aKLgxXjFWNE3qnQxM",
		Status:        domain.PaymentStatusPending,
	}

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
		expectedBody map[string]any
	}{
		{
			name: "Verified",
			body: fmt.Sprintf(`{"payment_id":%q,"transaction_hash":%q}`, paymentID, txHash),
			prepareMock: func() {
				service.EXPECT().Verify(gomock.Any(), 7, paymentID, txHash).Return(&domain.VerifyResult{
					Payment: pending,
					Outcome: &domain.VerificationOutcome{
						Success:    true,
						Message:    paymentservice.MessageVerified,
						AmountPaid: decimal.RequireFromString("99.5"),
					},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: map[string]any{
				"success":     true,
				"message":     paymentservice.MessageVerified,
				"amount_paid": 99.5,
			},
		},
		{
			name: "Rejected",
			body: fmt.Sprintf(`{"payment_id":%q,"transaction_hash":%q}`, paymentID, txHash),
			prepareMock: func() {
				service.EXPECT().Verify(gomock.Any(), 7, paymentID, txHash).Return(&domain.VerifyResult{
					Payment: pending,
					Outcome: &domain.VerificationOutcome{
						Message: paymentservice.MessageNotVerified,
						Details: verifier.ReasonFailedOnChain,
					},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: map[string]any{
				"success": false,
				"message": paymentservice.MessageNotVerified,
				"details": verifier.ReasonFailedOnChain,
			},
		},
		{
			name: "Status without hash",
			body: fmt.Sprintf(`{"payment_id":%q}`, paymentID),
			prepareMock: func() {
				service.EXPECT().Verify(gomock.Any(), 7, paymentID, "").Return(&domain.VerifyResult{Payment: pending}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: map[string]any{
				"payment_id":     paymentID,
				"status":         "pending",
				"amount":         float64(99),
				"wallet_address": "TV386Let8mNrkzDV5aKLgxXjFWNE3qnQxM",
			},
		},
		{
			name:         "Malformed hash",
			body:         fmt.Sprintf(`{"payment_id":%q,"transaction_hash":"0xzz"}`, paymentID),
			prepareMock:  func() {},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:         "Payment id is not a uuid",
			body:         `{"payment_id":"42"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "Payment not found",
			body: fmt.Sprintf(`{"payment_id":%q,"transaction_hash":%q}`, paymentID, txHash),
			prepareMock: func() {
				service.EXPECT().Verify(gomock.Any(), 7, paymentID, txHash).Return(nil, paymentservice.ErrPaymentNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: map[string]any{"error": paymentservice.ErrPaymentNotFound.Error()},
		},
		{
			name: "Already processed",
			body: fmt.Sprintf(`{"payment_id":%q,"transaction_hash":%q}`, paymentID, txHash),
			prepareMock: func() {
				service.EXPECT().Verify(gomock.Any(), 7, paymentID, txHash).Return(nil, paymentservice.ErrConflict)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Explorer unavailable",
			body: fmt.Sprintf(`{"payment_id":%q,"transaction_hash":%q}`, paymentID, txHash),
			prepareMock: func() {
				service.EXPECT().Verify(gomock.Any(), 7, paymentID, txHash).
					Return(nil, fmt.Errorf("%w: %w", verifier.ErrVerification, context.DeadlineExceeded))
			},
			expectedCode: http.StatusBadGateway,
			expectedBody: map[string]any{"error": "Could not reach the blockchain explorer, please try again"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			req := authorized(httptest.NewRequest(http.MethodPost, "/api/user/payments/verify", bytes.NewReader([]byte(tt.body))), 7)
			rr := httptest.NewRecorder()

			handler.VerifyPayment(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedBody != nil {
				var resp map[string]any
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedBody, resp)
			}
		})
	}
}

func TestGetPayments(t *testing.T) {
	handler, service := NewMock(t)

	service.EXPECT().ListByUser(gomock.Any(), 7).Return([]domain.PaymentView{
		{Payment: domain.Payment{ID: paymentID, UserID: 7, Amount: decimal.NewFromInt(99), Status: "confirmed"}, PlanName: "10K Challenge", UserLogin: "trader"},
	}, nil)
	req := authorized(httptest.NewRequest(http.MethodGet, "/api/user/payments", nil), 7)
	rr := httptest.NewRecorder()
	handler.GetPayments(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp []map[string]any
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Len(t, resp, 1)
	assert.Equal(t, "10K Challenge", resp[0]["plan_name"])
	assert.NotContains(t, resp[0], "user_login")

	service.EXPECT().ListByUser(gomock.Any(), 7).Return(nil, errors.New("database error"))
	rr = httptest.NewRecorder()
	handler.GetPayments(rr, req)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
