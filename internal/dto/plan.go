package dto

import (
	"time"

	"github.com/GlebRadaev/novafunded/internal/domain"
	"github.com/shopspring/decimal"
)

type PlanResponseDTO struct {
	ID               int       `json:"id" example:"1"`
	Name             string    `json:"name" example:"10K Challenge"`
	AccountSize      float64   `json:"account_size" example:"10000"`
	Price            float64   `json:"price" example:"99"`
	ProfitTarget     float64   `json:"profit_target" example:"8"`
	MaxDrawdown      float64   `json:"max_drawdown" example:"10"`
	DailyDrawdown    float64   `json:"daily_drawdown" example:"5"`
	EvaluationPeriod int       `json:"evaluation_period" example:"30"`
	MinTradingDays   int       `json:"min_trading_days" example:"5"`
	ProfitSplit      float64   `json:"profit_split" example:"80"`
	IsActive         bool      `json:"is_active" example:"true"`
	CreatedAt        time.Time `json:"created_at" example:"2025-01-02T03:04:05Z"`
}

type PlanRequestDTO struct {
	Name             string  `json:"name" validate:"required,max=100" example:"10K Challenge"`
	AccountSize      float64 `json:"account_size" validate:"gt=0" example:"10000"`
	Price            float64 `json:"price" validate:"gt=0" example:"99"`
	ProfitTarget     float64 `json:"profit_target" validate:"gte=0,lte=100" example:"8"`
	MaxDrawdown      float64 `json:"max_drawdown" validate:"gte=0,lte=100" example:"10"`
	DailyDrawdown    float64 `json:"daily_drawdown" validate:"gte=0,lte=100" example:"5"`
	EvaluationPeriod int     `json:"evaluation_period" validate:"gte=0" example:"30"`
	MinTradingDays   int     `json:"min_trading_days" validate:"gte=0" example:"5"`
	ProfitSplit      float64 `json:"profit_split" validate:"gte=0,lte=100" example:"80"`
	IsActive         *bool   `json:"is_active" example:"true"`
}

func NewPlanResponse(plan domain.TradingPlan) PlanResponseDTO {
	return PlanResponseDTO{
		ID:               plan.ID,
		Name:             plan.Name,
		AccountSize:      plan.AccountSize.InexactFloat64(),
		Price:            plan.Price.InexactFloat64(),
		ProfitTarget:     plan.ProfitTarget.InexactFloat64(),
		MaxDrawdown:      plan.MaxDrawdown.InexactFloat64(),
		DailyDrawdown:    plan.DailyDrawdown.InexactFloat64(),
		EvaluationPeriod: plan.EvaluationPeriod,
		MinTradingDays:   plan.MinTradingDays,
		ProfitSplit:      plan.ProfitSplit.InexactFloat64(),
		IsActive:         plan.IsActive,
		CreatedAt:        plan.CreatedAt,
	}
}

func NewPlanResponses(plans []domain.TradingPlan) []PlanResponseDTO {
	response := make([]PlanResponseDTO, 0, len(plans))
	for _, plan := range plans {
		response = append(response, NewPlanResponse(plan))
	}
	return response
}

// ToDomain builds a plan; a missing is_active means active.
func (r PlanRequestDTO) ToDomain() *domain.TradingPlan {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &domain.TradingPlan{
		Name:             r.Name,
		AccountSize:      decimal.NewFromFloat(r.AccountSize),
		Price:            decimal.NewFromFloat(r.Price),
		ProfitTarget:     decimal.NewFromFloat(r.ProfitTarget),
		MaxDrawdown:      decimal.NewFromFloat(r.MaxDrawdown),
		DailyDrawdown:    decimal.NewFromFloat(r.DailyDrawdown),
		EvaluationPeriod: r.EvaluationPeriod,
		MinTradingDays:   r.MinTradingDays,
		ProfitSplit:      decimal.NewFromFloat(r.ProfitSplit),
		IsActive:         active,
	}
}
