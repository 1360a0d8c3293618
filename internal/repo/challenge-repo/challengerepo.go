package challengerepo

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/novafunded/internal/domain"
	"github.com/GlebRadaev/novafunded/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	challengeColumns = `uc.id, uc.user_id, uc.plan_id, uc.payment_id, uc.status, uc.start_date, uc.end_date, uc.current_balance, uc.highest_balance, uc.lowest_balance, uc.total_profit, uc.trading_days, uc.created_at, uc.updated_at`
	viewColumns      = challengeColumns + `, tp.name, tp.account_size, tp.profit_target, u.login`
	viewFrom         = `
        FROM user_challenges uc
        JOIN trading_plans tp ON tp.id = uc.plan_id
        JOIN users u ON u.id = uc.user_id`
	historyColumns = `th.id, th.challenge_id, th.trade_date, th.profit_loss, th.balance_after, th.created_at, tp.name`
	historyFrom    = `
        FROM trading_history th
        JOIN user_challenges uc ON uc.id = th.challenge_id
        JOIN trading_plans tp ON tp.id = uc.plan_id`
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanChallenge(row pgx.Row, c *domain.UserChallenge, extra ...any) error {
	dest := []any{&c.ID, &c.UserID, &c.PlanID, &c.PaymentID, &c.Status, &c.StartDate, &c.EndDate,
		&c.CurrentBalance, &c.HighestBalance, &c.LowestBalance, &c.TotalProfit, &c.TradingDays, &c.CreatedAt, &c.UpdatedAt}
	return row.Scan(append(dest, extra...)...)
}

// CreateForPayment inserts the challenge bought by a payment. It returns nil
// without an error when that payment already has its challenge.
func (r *Repository) CreateForPayment(ctx context.Context, challenge *domain.UserChallenge) (*domain.UserChallenge, error) {
	query := `
        INSERT INTO user_challenges (user_id, plan_id, payment_id, status, start_date, current_balance, highest_balance, lowest_balance, total_profit, trading_days)
        VALUES ($1, $2, $3, $4, $5, 0, 0, 0, 0, 0)
        ON CONFLICT (payment_id) DO NOTHING
        RETURNING id, created_at, updated_at
    `
	err := r.db.QueryRow(ctx, query,
		challenge.UserID, challenge.PlanID, challenge.PaymentID, challenge.Status, challenge.StartDate,
	).Scan(&challenge.ID, &challenge.CreatedAt, &challenge.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't save challenge", zap.Error(err))
		return nil, err
	}
	return challenge, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.ChallengeView, error) {
	query := `
        SELECT ` + viewColumns + viewFrom + `
        WHERE uc.id = $1
    `
	var view domain.ChallengeView
	err := scanChallenge(r.db.QueryRow(ctx, query, id), &view.UserChallenge,
		&view.PlanName, &view.AccountSize, &view.ProfitTarget, &view.UserLogin)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find challenge", zap.Int("challenge_id", id), zap.Error(err))
		return nil, err
	}
	return &view, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.ChallengeView, error) {
	query := `
        SELECT ` + viewColumns + viewFrom + `
        WHERE uc.user_id = $1
        ORDER BY uc.created_at DESC
    `
	return r.queryViews(ctx, query, userID)
}

func (r *Repository) FindAll(ctx context.Context) ([]domain.ChallengeView, error) {
	query := `
        SELECT ` + viewColumns + viewFrom + `
        ORDER BY uc.created_at DESC
    `
	return r.queryViews(ctx, query)
}

func (r *Repository) queryViews(ctx context.Context, query string, args ...any) ([]domain.ChallengeView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get challenges", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var challenges []domain.ChallengeView
	for rows.Next() {
		var view domain.ChallengeView
		err := scanChallenge(rows, &view.UserChallenge, &view.PlanName, &view.AccountSize, &view.ProfitTarget, &view.UserLogin)
		if err != nil {
			zap.L().Error("can't scan challenge row", zap.Error(err))
			return nil, err
		}
		challenges = append(challenges, view)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("can't iterate challenge rows", zap.Error(err))
		return nil, err
	}
	return challenges, nil
}

// UpdateStatus sets the status and, for terminal ones, the end date. It
// returns false when no challenge has that id.
func (r *Repository) UpdateStatus(ctx context.Context, id int, status string, endDate *time.Time) (bool, error) {
	query := `
        UPDATE user_challenges
        SET status = $2, end_date = COALESCE($3, end_date), updated_at = now()
        WHERE id = $1
    `
	tag, err := r.db.Exec(ctx, query, id, status, endDate)
	if err != nil {
		zap.L().Error("can't update challenge status", zap.Int("challenge_id", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM user_challenges WHERE status = 'active'`).Scan(&count)
	if err != nil {
		zap.L().Error("can't count active challenges", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *Repository) FindHistoryByChallengeID(ctx context.Context, challengeID int, limit uint32) ([]domain.TradingHistory, error) {
	query := `
        SELECT ` + historyColumns + historyFrom + `
        WHERE th.challenge_id = $1
        ORDER BY th.trade_date DESC
        LIMIT $2
    `
	return r.queryHistory(ctx, query, challengeID, int(limit))
}

func (r *Repository) FindHistoryByUserID(ctx context.Context, userID int, limit uint32) ([]domain.TradingHistory, error) {
	query := `
        SELECT ` + historyColumns + historyFrom + `
        WHERE uc.user_id = $1
        ORDER BY th.trade_date DESC
        LIMIT $2
    `
	return r.queryHistory(ctx, query, userID, int(limit))
}

func (r *Repository) queryHistory(ctx context.Context, query string, args ...any) ([]domain.TradingHistory, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get trading history", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var history []domain.TradingHistory
	for rows.Next() {
		var h domain.TradingHistory
		if err := rows.Scan(&h.ID, &h.ChallengeID, &h.TradeDate, &h.ProfitLoss, &h.BalanceAfter, &h.CreatedAt, &h.PlanName); err != nil {
			zap.L().Error("can't scan trading history row", zap.Error(err))
			return nil, err
		}
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("can't iterate trading history rows", zap.Error(err))
		return nil, err
	}
	return history, nil
}
