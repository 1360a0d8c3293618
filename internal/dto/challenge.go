package dto

import (
	"time"

	"github.com/GlebRadaev/novafunded/internal/domain"
)

type ChallengeResponseDTO struct {
	ID             int        `json:"id" example:"3"`
	PlanID         int        `json:"plan_id" example:"1"`
	PlanName       string     `json:"plan_name" example:"10K Challenge"`
	AccountSize    float64    `json:"account_size" example:"10000"`
	ProfitTarget   float64    `json:"profit_target" example:"8"`
	PaymentID      *string    `json:"payment_id,omitempty"`
	Status         string     `json:"status" example:"active"`
	StartDate      time.Time  `json:"start_date" example:"2025-01-02T03:04:05Z"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	CurrentBalance float64    `json:"current_balance" example:"10250.5"`
	HighestBalance float64    `json:"highest_balance" example:"10400"`
	LowestBalance  float64    `json:"lowest_balance" example:"9800"`
	TotalProfit    float64    `json:"total_profit" example:"250.5"`
	TradingDays    int        `json:"trading_days" example:"4"`
	UserLogin      string     `json:"user_login,omitempty" example:"trader"`
	CreatedAt      time.Time  `json:"created_at" example:"2025-01-02T03:04:05Z"`
	UpdatedAt      time.Time  `json:"updated_at" example:"2025-01-02T03:04:05Z"`
}

type TradingHistoryResponseDTO struct {
	ID           int       `json:"id" example:"12"`
	ChallengeID  int       `json:"challenge_id" example:"3"`
	PlanName     string    `json:"plan_name" example:"10K Challenge"`
	TradeDate    time.Time `json:"trade_date" example:"2025-01-05T00:00:00Z"`
	ProfitLoss   float64   `json:"profit_loss" example:"-12.5"`
	BalanceAfter float64   `json:"balance_after" example:"9987.5"`
}

type ChallengeDetailResponseDTO struct {
	Challenge ChallengeResponseDTO        `json:"challenge"`
	History   []TradingHistoryResponseDTO `json:"history"`
}

func NewChallengeResponse(view domain.ChallengeView, withUser bool) ChallengeResponseDTO {
	response := ChallengeResponseDTO{
		ID:             view.ID,
		PlanID:         view.PlanID,
		PlanName:       view.PlanName,
		AccountSize:    view.AccountSize.InexactFloat64(),
		ProfitTarget:   view.ProfitTarget.InexactFloat64(),
		PaymentID:      view.PaymentID,
		Status:         view.Status,
		StartDate:      view.StartDate,
		EndDate:        view.EndDate,
		CurrentBalance: view.CurrentBalance.InexactFloat64(),
		HighestBalance: view.HighestBalance.InexactFloat64(),
		LowestBalance:  view.LowestBalance.InexactFloat64(),
		TotalProfit:    view.TotalProfit.InexactFloat64(),
		TradingDays:    view.TradingDays,
		CreatedAt:      view.CreatedAt,
		UpdatedAt:      view.UpdatedAt,
	}
	if withUser {
		response.UserLogin = view.UserLogin
	}
	return response
}

func NewChallengeResponses(views []domain.ChallengeView, withUser bool) []ChallengeResponseDTO {
	response := make([]ChallengeResponseDTO, 0, len(views))
	for _, view := range views {
		response = append(response, NewChallengeResponse(view, withUser))
	}
	return response
}

func NewTradingHistoryResponses(history []domain.TradingHistory) []TradingHistoryResponseDTO {
	response := make([]TradingHistoryResponseDTO, 0, len(history))
	for _, h := range history {
		response = append(response, TradingHistoryResponseDTO{
			ID:           h.ID,
			ChallengeID:  h.ChallengeID,
			PlanName:     h.PlanName,
			TradeDate:    h.TradeDate,
			ProfitLoss:   h.ProfitLoss.InexactFloat64(),
			BalanceAfter: h.BalanceAfter.InexactFloat64(),
		})
	}
	return response
}
