package planrepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/novafunded/internal/domain"
	"github.com/GlebRadaev/novafunded/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const planColumns = `id, name, account_size, price, profit_target, max_drawdown, daily_drawdown, evaluation_period, min_trading_days, profit_split, is_active, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanPlan(row pgx.Row, p *domain.TradingPlan) error {
	return row.Scan(&p.ID, &p.Name, &p.AccountSize, &p.Price, &p.ProfitTarget, &p.MaxDrawdown, &p.DailyDrawdown,
		&p.EvaluationPeriod, &p.MinTradingDays, &p.ProfitSplit, &p.IsActive, &p.CreatedAt)
}

func (r *Repository) ListActive(ctx context.Context) ([]domain.TradingPlan, error) {
	query := `SELECT ` + planColumns + ` FROM trading_plans WHERE is_active = TRUE ORDER BY account_size ASC`
	return r.list(ctx, query)
}

func (r *Repository) ListAll(ctx context.Context) ([]domain.TradingPlan, error) {
	query := `SELECT ` + planColumns + ` FROM trading_plans ORDER BY account_size ASC`
	return r.list(ctx, query)
}

func (r *Repository) list(ctx context.Context, query string) ([]domain.TradingPlan, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't get plans", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var plans []domain.TradingPlan
	for rows.Next() {
		var plan domain.TradingPlan
		if err := scanPlan(rows, &plan); err != nil {
			zap.L().Error("can't scan plan row", zap.Error(err))
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("can't iterate plan rows", zap.Error(err))
		return nil, err
	}
	return plans, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.TradingPlan, error) {
	query := `SELECT ` + planColumns + ` FROM trading_plans WHERE id = $1`
	var plan domain.TradingPlan
	err := scanPlan(r.db.QueryRow(ctx, query, id), &plan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find plan", zap.Int("plan_id", id), zap.Error(err))
		return nil, err
	}
	return &plan, nil
}

func (r *Repository) Create(ctx context.Context, plan *domain.TradingPlan) (*domain.TradingPlan, error) {
	query := `
        INSERT INTO trading_plans (name, account_size, price, profit_target, max_drawdown, daily_drawdown, evaluation_period, min_trading_days, profit_split, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		plan.Name, plan.AccountSize, plan.Price, plan.ProfitTarget, plan.MaxDrawdown, plan.DailyDrawdown,
		plan.EvaluationPeriod, plan.MinTradingDays, plan.ProfitSplit, plan.IsActive,
	).Scan(&plan.ID, &plan.CreatedAt)
	if err != nil {
		zap.L().Error("can't save plan", zap.Error(err))
		return nil, err
	}
	return plan, nil
}

// Update overwrites every mutable column. It returns nil when the plan does not exist.
func (r *Repository) Update(ctx context.Context, plan *domain.TradingPlan) (*domain.TradingPlan, error) {
	query := `
        UPDATE trading_plans
        SET name = $2, account_size = $3, price = $4, profit_target = $5, max_drawdown = $6, daily_drawdown = $7,
            evaluation_period = $8, min_trading_days = $9, profit_split = $10, is_active = $11
        WHERE id = $1
        RETURNING created_at
    `
	err := r.db.QueryRow(ctx, query,
		plan.ID, plan.Name, plan.AccountSize, plan.Price, plan.ProfitTarget, plan.MaxDrawdown, plan.DailyDrawdown,
		plan.EvaluationPeriod, plan.MinTradingDays, plan.ProfitSplit, plan.IsActive,
	).Scan(&plan.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't update plan", zap.Int("plan_id", plan.ID), zap.Error(err))
		return nil, err
	}
	return plan, nil
}
