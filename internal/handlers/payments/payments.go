package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GlebRadaev/novafunded/internal/domain"
	"github.com/GlebRadaev/novafunded/internal/dto"
	"github.com/GlebRadaev/novafunded/internal/service/paymentservice"
	"github.com/GlebRadaev/novafunded/internal/service/planservice"
	"github.com/GlebRadaev/novafunded/internal/verifier"
	"github.com/GlebRadaev/novafunded/pkg/auth"
	"github.com/GlebRadaev/novafunded/pkg/utils"
	"github.com/GlebRadaev/novafunded/pkg/validate"
)

//go:generate mockgen -source=payments.go -destination=mock_payments.go -package=payments

type Service interface {
	CreateIntent(ctx context.Context, userID, planID int) (*domain.PaymentIntent, error)
	Verify(ctx context.Context, userID int, paymentID, hash string) (*domain.VerifyResult, error)
	ListByUser(ctx context.Context, userID int) ([]domain.PaymentView, error)
}

type PaymentHandler struct {
	paymentService Service
}

func New(paymentService Service) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// CreatePayment godoc
//
//	@Summary		Create a payment intent
//	@Description	Creates a pending payment for the plan and returns where and how much to pay
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.CreatePaymentRequestDTO	true	"Plan to buy"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.PaymentIntentResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid request body"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Plan not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/payments [post]
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreatePaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithErrorDetails(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	intent, err := h.paymentService.CreateIntent(r.Context(), userID, req.PlanID)
	if err != nil {
		switch {
		case errors.Is(err, planservice.ErrPlanNotFound), errors.Is(err, paymentservice.ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewPaymentIntentResponse(intent))
}

// VerifyPayment godoc
//
//	@Summary		Verify a payment
//	@Description	Checks the submitted TRON transaction against the payment. Without a hash it returns the stored payment status.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.VerifyPaymentRequestDTO	true	"Payment and transaction hash"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.VerifyPaymentResponseDTO	"Verification outcome"
//	@Success		200	{object}	dto.PaymentStatusResponseDTO	"Stored payment status"
//	@Failure		400	{object}	utils.Response	"Invalid request body"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Payment not found"
//	@Failure		409	{object}	utils.Response	"Payment already processed or being verified"
//	@Failure		422	{object}	utils.Response	"Invalid payment id or transaction hash"
//	@Failure		502	{object}	utils.Response	"Blockchain explorer unavailable"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/payments/verify [post]
func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.VerifyPaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithErrorDetails(w, http.StatusUnprocessableEntity, "Invalid payment id or transaction hash", err.Error())
		return
	}

	result, err := h.paymentService.Verify(r.Context(), userID, req.PaymentID, req.TransactionHash)
	if err != nil {
		switch {
		case errors.Is(err, paymentservice.ErrPaymentNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, paymentservice.ErrConflict):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, verifier.ErrVerification):
			utils.RespondWithError(w, http.StatusBadGateway, "Could not reach the blockchain explorer, please try again")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	if result.Outcome == nil {
		utils.RespondWithJSON(w, http.StatusOK, dto.NewPaymentStatusResponse(result.Payment))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewVerifyPaymentResponse(result.Outcome))
}

// GetPayments godoc
//
//	@Summary		List own payments
//	@Tags			Payments
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.PaymentResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/payments [get]
func (h *PaymentHandler) GetPayments(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	payments, err := h.paymentService.ListByUser(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewPaymentResponses(payments, false))
}
