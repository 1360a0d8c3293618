package dto

import (
	"time"

	"github.com/GlebRadaev/novafunded/internal/domain"
)

type CreatePaymentRequestDTO struct {
	PlanID int `json:"plan_id" validate:"required,gt=0" example:"1"`
}

type PaymentIntentResponseDTO struct {
	PaymentID     string  `json:"payment_id" example:"2f1c7f5e-8d4b-4a53-9a53-4a6c4e1f0b11"`
	WalletAddress string  `json:"wallet_address" example:"TV386Let8mNrkzDV5aKLgxXjFWNE3qnQxM"`
	Amount        float64 `json:"amount" example:"99"`
	Currency      string  `json:"currency" example:"USDT"`
	PlanName      string  `json:"plan_name" example:"10K Challenge"`
	Memo          string  `json:"memo" example:"Payment for 10K Challenge - ID: 2f1c7f5e-8d4b-4a53-9a53-4a6c4e1f0b11"`
}

type VerifyPaymentRequestDTO struct {
	PaymentID       string `json:"payment_id" validate:"required,uuid" example:"2f1c7f5e-8d4b-4a53-9a53-4a6c4e1f0b11"`
	TransactionHash string `json:"transaction_hash" validate:"omitempty,txhash" example:"4a1c3e8f0b7d9c2e5f6a8b0c1d2e3f405162738495a6b7c8d9e0f1a2b3c4d5e6"`
}

type VerifyPaymentResponseDTO struct {
	Success    bool    `json:"success" example:"true"`
	Message    string  `json:"message" example:"Payment verified and challenge created"`
	AmountPaid float64 `json:"amount_paid,omitempty" example:"99"`
	Details    string  `json:"details,omitempty" example:"insufficient amount: received 50, expected 99"`
}

type PaymentStatusResponseDTO struct {
	PaymentID     string  `json:"payment_id" example:"2f1c7f5e-8d4b-4a53-9a53-4a6c4e1f0b11"`
	Status        string  `json:"status" example:"pending"`
	Amount        float64 `json:"amount" example:"99"`
	WalletAddress string  `json:"wallet_address" example:"TV386Let8mNrkzDV5aKLgxXjFWNE3qnQxM"`
}

type PaymentResponseDTO struct {
	ID              string     `json:"id" example:"2f1c7f5e-8d4b-4a53-9a53-4a6c4e1f0b11"`
	PlanID          int        `json:"plan_id" example:"1"`
	PlanName        string     `json:"plan_name" example:"10K Challenge"`
	AccountSize     float64    `json:"account_size" example:"10000"`
	Amount          float64    `json:"amount" example:"99"`
	Currency        string     `json:"currency" example:"USDT"`
	WalletAddress   string     `json:"wallet_address" example:"TV386Let8mNrkzDV5aKLgxXjFWNE3qnQxM"`
	Status          string     `json:"status" example:"confirmed"`
	TransactionHash *string    `json:"transaction_hash,omitempty"`
	UserLogin       string     `json:"user_login,omitempty" example:"trader"`
	CreatedAt       time.Time  `json:"created_at" example:"2025-01-02T03:04:05Z"`
	ConfirmedAt     *time.Time `json:"confirmed_at,omitempty"`
}

func NewPaymentIntentResponse(intent *domain.PaymentIntent) PaymentIntentResponseDTO {
	return PaymentIntentResponseDTO{
		PaymentID:     intent.PaymentID,
		WalletAddress: intent.WalletAddress,
		Amount:        intent.Amount.InexactFloat64(),
		Currency:      intent.Currency,
		PlanName:      intent.PlanName,
		Memo:          intent.Memo,
	}
}

func NewPaymentStatusResponse(payment *domain.Payment) PaymentStatusResponseDTO {
	return PaymentStatusResponseDTO{
		PaymentID:     payment.ID,
		Status:        payment.Status,
		Amount:        payment.Amount.InexactFloat64(),
		WalletAddress: payment.WalletAddress,
	}
}

func NewVerifyPaymentResponse(outcome *domain.VerificationOutcome) VerifyPaymentResponseDTO {
	response := VerifyPaymentResponseDTO{
		Success: outcome.Success,
		Message: outcome.Message,
		Details: outcome.Details,
	}
	if outcome.Success {
		response.AmountPaid = outcome.AmountPaid.InexactFloat64()
	}
	return response
}

// NewPaymentResponse includes the payer login only when withUser is set.
func NewPaymentResponse(view domain.PaymentView, withUser bool) PaymentResponseDTO {
	response := PaymentResponseDTO{
		ID:              view.ID,
		PlanID:          view.PlanID,
		PlanName:        view.PlanName,
		AccountSize:     view.AccountSize.InexactFloat64(),
		Amount:          view.Amount.InexactFloat64(),
		Currency:        view.Currency,
		WalletAddress:   view.WalletAddress,
		Status:          view.Status,
		TransactionHash: view.TransactionHash,
		CreatedAt:       view.CreatedAt,
		ConfirmedAt:     view.ConfirmedAt,
	}
	if withUser {
		response.UserLogin = view.UserLogin
	}
	return response
}

func NewPaymentResponses(views []domain.PaymentView, withUser bool) []PaymentResponseDTO {
	response := make([]PaymentResponseDTO, 0, len(views))
	for _, view := range views {
		response = append(response, NewPaymentResponse(view, withUser))
	}
	return response
}
