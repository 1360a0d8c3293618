package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusConfirmed = "confirmed"
	PaymentStatusFailed    = "failed"
)

const (
	ChallengeStatusPending = "pending"
	ChallengeStatusActive  = "active"
	ChallengeStatusPassed  = "passed"
	ChallengeStatusFailed  = "failed"
	ChallengeStatusFunded  = "funded"
)

type User struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

type TradingPlan struct {
	ID               int             `db:"id"`
	Name             string          `db:"name"`
	AccountSize      decimal.Decimal `db:"account_size"`
	Price            decimal.Decimal `db:"price"`
	ProfitTarget     decimal.Decimal `db:"profit_target"`
	MaxDrawdown      decimal.Decimal `db:"max_drawdown"`
	DailyDrawdown    decimal.Decimal `db:"daily_drawdown"`
	EvaluationPeriod int             `db:"evaluation_period"`
	MinTradingDays   int             `db:"min_trading_days"`
	ProfitSplit      decimal.Decimal `db:"profit_split"`
	IsActive         bool            `db:"is_active"`
	CreatedAt        time.Time       `db:"created_at"`
}

type Payment struct {
	ID              string          `db:"id"`
	UserID          int             `db:"user_id"`
	PlanID          int             `db:"plan_id"`
	Amount          decimal.Decimal `db:"amount"`
	Currency        string          `db:"currency"`
	WalletAddress   string          `db:"wallet_address"`
	Status          string          `db:"status"`
	TransactionHash *string         `db:"transaction_hash"`
	CreatedAt       time.Time       `db:"created_at"`
	ConfirmedAt     *time.Time      `db:"confirmed_at"`
}

// PaymentView is a payment joined with the names the read views display.
type PaymentView struct {
	Payment
	PlanName    string          `db:"plan_name"`
	AccountSize decimal.Decimal `db:"account_size"`
	UserLogin   string          `db:"user_login"`
}

type PaymentIntent struct {
	PaymentID     string
	WalletAddress string
	Amount        decimal.Decimal
	Currency      string
	PlanName      string
	Memo          string
}

// VerificationOutcome is what the payer sees after a transaction hash was checked.
type VerificationOutcome struct {
	Success    bool
	Message    string
	Details    string
	AmountPaid decimal.Decimal
}

// VerifyResult carries the stored payment, plus the outcome when a hash was checked.
type VerifyResult struct {
	Payment *Payment
	Outcome *VerificationOutcome
}

type UserChallenge struct {
	ID             int             `db:"id"`
	UserID         int             `db:"user_id"`
	PlanID         int             `db:"plan_id"`
	PaymentID      *string         `db:"payment_id"`
	Status         string          `db:"status"`
	StartDate      time.Time       `db:"start_date"`
	EndDate        *time.Time      `db:"end_date"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	HighestBalance decimal.Decimal `db:"highest_balance"`
	LowestBalance  decimal.Decimal `db:"lowest_balance"`
	TotalProfit    decimal.Decimal `db:"total_profit"`
	TradingDays    int             `db:"trading_days"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

type ChallengeView struct {
	UserChallenge
	PlanName     string          `db:"plan_name"`
	AccountSize  decimal.Decimal `db:"account_size"`
	ProfitTarget decimal.Decimal `db:"profit_target"`
	UserLogin    string          `db:"user_login"`
}

type TradingHistory struct {
	ID           int             `db:"id"`
	ChallengeID  int             `db:"challenge_id"`
	TradeDate    time.Time       `db:"trade_date"`
	ProfitLoss   decimal.Decimal `db:"profit_loss"`
	BalanceAfter decimal.Decimal `db:"balance_after"`
	CreatedAt    time.Time       `db:"created_at"`
	PlanName     string          `db:"plan_name"`
}

type Stats struct {
	TotalUsers       int
	TotalPayments    int
	ActiveChallenges int
	TotalRevenue     decimal.Decimal
}

// IsTerminalChallengeStatus reports whether no further trading can change the challenge.
func IsTerminalChallengeStatus(status string) bool {
	switch status {
	case ChallengeStatusPassed, ChallengeStatusFailed, ChallengeStatusFunded:
		return true
	}
	return false
}

func IsChallengeStatus(status string) bool {
	switch status {
	case ChallengeStatusPending, ChallengeStatusActive, ChallengeStatusPassed, ChallengeStatusFailed, ChallengeStatusFunded:
		return true
	}
	return false
}

func IsPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusPending, PaymentStatusConfirmed, PaymentStatusFailed:
		return true
	}
	return false
}
