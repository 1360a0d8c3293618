package paymentrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/novafunded/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var (
	paymentCols = []string{"id", "user_id", "plan_id", "amount", "currency", "wallet_address", "status", "transaction_hash", "created_at", "confirmed_at"}
	viewCols    = append(append([]string{}, paymentCols...), "name", "account_size", "login")
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func strPtr(s string) *string { return &s }

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	query := regexp.QuoteMeta(`INSERT INTO payments (id, user_id, plan_id, amount, currency, wallet_address, status)`)

	tests := []struct {
		name      string
		mockSetup func(p *domain.Payment)
		expectErr bool
	}{
		{
			name: "Payment saved",
			mockSetup: func(p *domain.Payment) {
				mock.ExpectQuery(query).
					WithArgs(p.ID, p.UserID, p.PlanID, p.Amount, p.Currency, p.WalletAddress, p.Status).
					WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))
			},
			expectErr: false,
		},
		{
			name: "Database error",
			mockSetup: func(p *domain.Payment) {
				mock.ExpectQuery(query).
					WithArgs(p.ID, p.UserID, p.PlanID, p.Amount, p.Currency, p.WalletAddress, p.Status).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment := &domain.Payment{
				ID:            "0b8f3c1e-2f4e-4a43-8d4e-2b0f3f1c9a11",
				UserID:        1,
				PlanID:        2,
				Amount:        decimal.NewFromInt(100),
				Currency:      "USDT",
				WalletAddress: "TV386Let8mNrkzDV5aKLgxXjFWNE3qnQxM",
				Status:        domain.PaymentStatusPending,
			}
			tt.mockSetup(payment)
			result, err := repo.Create(context.Background(), payment)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, createdAt, result.CreatedAt)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	query := regexp.QuoteMeta(`SELECT ` + paymentColumns + ` FROM payments p WHERE p.id = $1`)

	tests := []struct {
		name      string
		id        string
		mockSetup func()
		expectErr bool
		result    *domain.Payment
	}{
		{
			name: "Payment found",
			id:   "p-1",
			mockSetup: func() {
				rows := pgxmock.NewRows(paymentCols).
					AddRow("p-1", 1, 2, decimal.NewFromInt(100), "USDT", "TWallet", "pending", nil, createdAt, nil)
				mock.ExpectQuery(query).WithArgs("p-1").WillReturnRows(rows)
			},
			result: &domain.Payment{
				ID:            "p-1",
				UserID:        1,
				PlanID:        2,
				Amount:        decimal.NewFromInt(100),
				Currency:      "USDT",
				WalletAddress: "TWallet",
				Status:        "pending",
				CreatedAt:     createdAt,
			},
		},
		{
			name: "Payment not found",
			id:   "missing",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("missing").WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name: "Database error",
			id:   "p-1",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("p-1").WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByID(context.Background(), tt.id)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_FindByTransactionHash(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	confirmedAt := createdAt.Add(time.Minute)
	query := regexp.QuoteMeta(`FROM payments p WHERE p.transaction_hash = $1`)

	rows := pgxmock.NewRows(paymentCols).
		AddRow("p-1", 1, 2, decimal.NewFromInt(100), "USDT", "TWallet", "confirmed", strPtr("abc"), createdAt, &confirmedAt)
	mock.ExpectQuery(query).WithArgs("abc").WillReturnRows(rows)

	result, err := repo.FindByTransactionHash(context.Background(), "abc")
	assert.NoError(t, err)
	assert.Equal(t, "p-1", result.ID)
	assert.Equal(t, "abc", *result.TransactionHash)
	assert.Equal(t, confirmedAt, *result.ConfirmedAt)

	mock.ExpectQuery(query).WithArgs("unused").WillReturnError(pgx.ErrNoRows)
	result, err = repo.FindByTransactionHash(context.Background(), "unused")
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestRepository_Confirm(t *testing.T) {
	repo, mock := NewMock(t)
	confirmedAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	query := regexp.QuoteMeta(`UPDATE payments SET status = 'confirmed', transaction_hash = $2, confirmed_at = $3 WHERE id = $1 AND status = 'pending'`)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		applied   bool
	}{
		{
			name: "Pending payment confirmed",
			mockSetup: func() {
				mock.ExpectExec(query).WithArgs("p-1", "hash", confirmedAt).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			applied: true,
		},
		{
			name: "Payment no longer pending",
			mockSetup: func() {
				mock.ExpectExec(query).WithArgs("p-1", "hash", confirmedAt).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			applied: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(query).WithArgs("p-1", "hash", confirmedAt).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			applied, err := repo.Confirm(context.Background(), "p-1", "hash", confirmedAt)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.applied, applied)
		})
	}
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta(`UPDATE payments SET status = $2, transaction_hash = $3, confirmed_at = $4 WHERE id = $1`)
	payment := &domain.Payment{ID: "p-1", Status: domain.PaymentStatusFailed}

	mock.ExpectExec(query).WithArgs("p-1", "failed", payment.TransactionHash, payment.ConfirmedAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	assert.NoError(t, repo.UpdateStatus(context.Background(), payment))

	mock.ExpectExec(query).WithArgs("p-1", "failed", payment.TransactionHash, payment.ConfirmedAt).
		WillReturnError(errors.New("database error"))
	assert.Error(t, repo.UpdateStatus(context.Background(), payment))
}

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	query := regexp.QuoteMeta(`WHERE p.user_id = $1 ORDER BY p.created_at DESC`)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    []domain.PaymentView
	}{
		{
			name: "Payments found",
			mockSetup: func() {
				rows := pgxmock.NewRows(viewCols).
					AddRow("p-2", 1, 2, decimal.NewFromInt(200), "USDT", "TWallet", "pending", nil, createdAt, nil, "25K Challenge", decimal.NewFromInt(25000), "trader")
				mock.ExpectQuery(query).WithArgs(1).WillReturnRows(rows)
			},
			result: []domain.PaymentView{
				{
					Payment: domain.Payment{
						ID:            "p-2",
						UserID:        1,
						PlanID:        2,
						Amount:        decimal.NewFromInt(200),
						Currency:      "USDT",
						WalletAddress: "TWallet",
						Status:        "pending",
						CreatedAt:     createdAt,
					},
					PlanName:    "25K Challenge",
					AccountSize: decimal.NewFromInt(25000),
					UserLogin:   "trader",
				},
			},
		},
		{
			name: "No payments",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(1).WillReturnRows(pgxmock.NewRows(viewCols))
			},
			result: nil,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(1).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByUserID(context.Background(), 1)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_FindAll(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	rows := pgxmock.NewRows(viewCols).
		AddRow("p-1", 1, 2, decimal.NewFromInt(100), "USDT", "TWallet", "pending", nil, createdAt, nil, "10K Challenge", decimal.NewFromInt(10000), "alice").
		AddRow("p-2", 2, 2, decimal.NewFromInt(100), "USDT", "TWallet", "failed", nil, createdAt, nil, "10K Challenge", decimal.NewFromInt(10000), "bob")
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY p.created_at DESC`)).WillReturnRows(rows)

	result, err := repo.FindAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, "bob", result[1].UserLogin)
}

func TestRepository_FindConfirmedWithoutChallenge(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	confirmedAt := createdAt.Add(time.Minute)
	query := regexp.QuoteMeta(`LEFT JOIN user_challenges uc ON uc.payment_id = p.id WHERE p.status = 'confirmed' AND uc.id IS NULL`)

	rows := pgxmock.NewRows(viewCols).
		AddRow("p-1", 1, 2, decimal.NewFromInt(100), "USDT", "TWallet", "confirmed", strPtr("hash"), createdAt, &confirmedAt, "10K Challenge", decimal.NewFromInt(10000), "alice")
	mock.ExpectQuery(query).WithArgs(10).WillReturnRows(rows)

	result, err := repo.FindConfirmedWithoutChallenge(context.Background(), 10)
	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, domain.PaymentStatusConfirmed, result[0].Status)

	mock.ExpectQuery(query).WithArgs(10).WillReturnError(errors.New("database error"))
	result, err = repo.FindConfirmedWithoutChallenge(context.Background(), 10)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestRepository_Stats(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM payments`)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))
	count, err := repo.Count(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 7, count)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'confirmed'`)).
		WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(decimal.RequireFromString("450.5")))
	revenue, err := repo.ConfirmedRevenue(context.Background())
	assert.NoError(t, err)
	assert.True(t, decimal.RequireFromString("450.5").Equal(revenue))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM payments`)).
		WillReturnError(errors.New("database error"))
	_, err = repo.Count(context.Background())
	assert.Error(t, err)
}
