package paymentrepo

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/novafunded/internal/domain"
	"github.com/GlebRadaev/novafunded/internal/pg"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	paymentColumns = `p.id, p.user_id, p.plan_id, p.amount, p.currency, p.wallet_address, p.status, p.transaction_hash, p.created_at, p.confirmed_at`
	viewColumns    = paymentColumns + `, tp.name, tp.account_size, u.login`
	viewFrom       = `
        FROM payments p
        JOIN trading_plans tp ON tp.id = p.plan_id
        JOIN users u ON u.id = p.user_id`
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanPayment(row pgx.Row, p *domain.Payment, extra ...any) error {
	dest := []any{&p.ID, &p.UserID, &p.PlanID, &p.Amount, &p.Currency, &p.WalletAddress, &p.Status, &p.TransactionHash, &p.CreatedAt, &p.ConfirmedAt}
	return row.Scan(append(dest, extra...)...)
}

func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	query := `
        INSERT INTO payments (id, user_id, plan_id, amount, currency, wallet_address, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at
    `
	err := r.db.QueryRow(ctx, query,
		payment.ID, payment.UserID, payment.PlanID, payment.Amount, payment.Currency, payment.WalletAddress, payment.Status,
	).Scan(&payment.CreatedAt)
	if err != nil {
		zap.L().Error("can't save payment", zap.Error(err))
		return nil, err
	}
	return payment, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `
        SELECT ` + paymentColumns + `
        FROM payments p
        WHERE p.id = $1
    `
	var payment domain.Payment
	err := scanPayment(r.db.QueryRow(ctx, query, id), &payment)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find payment", zap.String("payment_id", id), zap.Error(err))
		return nil, err
	}
	return &payment, nil
}

func (r *Repository) FindByTransactionHash(ctx context.Context, hash string) (*domain.Payment, error) {
	query := `
        SELECT ` + paymentColumns + `
        FROM payments p
        WHERE p.transaction_hash = $1
    `
	var payment domain.Payment
	err := scanPayment(r.db.QueryRow(ctx, query, hash), &payment)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find payment by transaction hash", zap.Error(err))
		return nil, err
	}
	return &payment, nil
}

// Confirm moves a pending payment to confirmed. It returns false when the
// payment was not pending any more, so concurrent confirmations apply once.
func (r *Repository) Confirm(ctx context.Context, id, hash string, confirmedAt time.Time) (bool, error) {
	query := `
        UPDATE payments
        SET status = 'confirmed', transaction_hash = $2, confirmed_at = $3
        WHERE id = $1 AND status = 'pending'
    `
	tag, err := r.db.Exec(ctx, query, id, hash, confirmedAt)
	if err != nil {
		zap.L().Error("can't confirm payment", zap.String("payment_id", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, payment *domain.Payment) error {
	query := `
        UPDATE payments
        SET status = $2, transaction_hash = $3, confirmed_at = $4
        WHERE id = $1
    `
	_, err := r.db.Exec(ctx, query, payment.ID, payment.Status, payment.TransactionHash, payment.ConfirmedAt)
	if err != nil {
		zap.L().Error("can't update payment status", zap.String("payment_id", payment.ID), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.PaymentView, error) {
	query := `
        SELECT ` + viewColumns + viewFrom + `
        WHERE p.user_id = $1
        ORDER BY p.created_at DESC
    `
	return r.queryViews(ctx, query, userID)
}

func (r *Repository) FindAll(ctx context.Context) ([]domain.PaymentView, error) {
	query := `
        SELECT ` + viewColumns + viewFrom + `
        ORDER BY p.created_at DESC
    `
	return r.queryViews(ctx, query)
}

// FindConfirmedWithoutChallenge lists confirmed payments that never got their challenge.
func (r *Repository) FindConfirmedWithoutChallenge(ctx context.Context, limit uint32) ([]domain.PaymentView, error) {
	query := `
        SELECT ` + viewColumns + viewFrom + `
        LEFT JOIN user_challenges uc ON uc.payment_id = p.id
        WHERE p.status = 'confirmed' AND uc.id IS NULL
        ORDER BY p.confirmed_at ASC
        LIMIT $1
    `
	return r.queryViews(ctx, query, int(limit))
}

func (r *Repository) queryViews(ctx context.Context, query string, args ...any) ([]domain.PaymentView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get payments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var payments []domain.PaymentView
	for rows.Next() {
		var view domain.PaymentView
		err := scanPayment(rows, &view.Payment, &view.PlanName, &view.AccountSize, &view.UserLogin)
		if err != nil {
			zap.L().Error("can't scan payment row", zap.Error(err))
			return nil, err
		}
		payments = append(payments, view)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("can't iterate payment rows", zap.Error(err))
		return nil, err
	}
	return payments, nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM payments`).Scan(&count)
	if err != nil {
		zap.L().Error("can't count payments", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *Repository) ConfirmedRevenue(ctx context.Context) (decimal.Decimal, error) {
	var revenue decimal.Decimal
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'confirmed'`).Scan(&revenue)
	if err != nil {
		zap.L().Error("can't sum confirmed payments", zap.Error(err))
		return decimal.Zero, err
	}
	return revenue, nil
}
