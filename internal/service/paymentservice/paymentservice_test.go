package paymentservice

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/GlebRadaev/novafunded/internal/domain"
	"github.com/GlebRadaev/novafunded/internal/lock"
	"github.com/GlebRadaev/novafunded/internal/notify"
	"github.com/GlebRadaev/novafunded/internal/pg"
	"github.com/GlebRadaev/novafunded/internal/service/planservice"
	"github.com/GlebRadaev/novafunded/internal/verifier"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

const (
	wallet = "TV386Let8mNrkzDV5aKLgxXjFWNE3qnQxM"
	txHash = "4a1c3e8f0b7d9c2e5f6a8b0c1d2e3f405162738495a6b7c8d9e0f1a2b3c4d5e6"
)

type mocks struct {
	payments   *MockPaymentRepo
	challenges *MockChallengeRepo
	users      *MockUserRepo
	plans      *MockPlanRepo
	tx         *pg.MockTXManager
	verifier   *verifier.MockService
	locker     *lock.MockLocker
	publisher  *notify.MockPublisher
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		payments:   NewMockPaymentRepo(ctrl),
		challenges: NewMockChallengeRepo(ctrl),
		users:      NewMockUserRepo(ctrl),
		plans:      NewMockPlanRepo(ctrl),
		tx:         pg.NewMockTXManager(ctrl),
		verifier:   verifier.NewMockService(ctrl),
		locker:     lock.NewMockLocker(ctrl),
		publisher:  notify.NewMockPublisher(ctrl),
	}
	service := New(m.payments, m.challenges, m.users, m.plans, m.tx, m.verifier, m.locker, m.publisher,
		Settings{WalletAddress: wallet, Currency: "USDT"})
	defer ctrl.Finish()
	return service, m
}

type eventMatcher struct {
	eventType string
	entityID  string
}

func eventOf(eventType, entityID string) gomock.Matcher {
	return eventMatcher{eventType: eventType, entityID: entityID}
}

func (m eventMatcher) Matches(x any) bool {
	event, ok := x.(notify.Event)
	return ok && event.Type == m.eventType && event.EntityID == m.entityID
}

func (m eventMatcher) String() string {
	return fmt.Sprintf("%s event for %s", m.eventType, m.entityID)
}

func pendingPayment() *domain.Payment {
	return &domain.Payment{
		ID:            "p-1",
		UserID:        1,
		PlanID:        2,
		Amount:        decimal.NewFromInt(100),
		Currency:      "USDT",
		WalletAddress: wallet,
		Status:        domain.PaymentStatusPending,
	}
}

func runTx(m *mocks) {
	m.tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
		return fn(ctx)
	})
}

func TestCreateIntent(t *testing.T) {
	service, m := NewMock(t)
	ctx := context.Background()
	plan := &domain.TradingPlan{ID: 2, Name: "10K Challenge", Price: decimal.NewFromInt(100), IsActive: true}

	tests := []struct {
		name          string
		prepareMock   func()
		expectedError error
	}{
		{
			name: "Intent created",
			prepareMock: func() {
				m.users.EXPECT().FindByID(ctx, 1).Return(&domain.User{ID: 1}, nil)
				m.plans.EXPECT().FindByID(ctx, 2).Return(plan, nil)
				m.payments.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
					assert.NotEmpty(t, p.ID)
					assert.Equal(t, domain.PaymentStatusPending, p.Status)
					assert.True(t, plan.Price.Equal(p.Amount))
					assert.Equal(t, wallet, p.WalletAddress)
					assert.Equal(t, "USDT", p.Currency)
					return p, nil
				})
			},
		},
		{
			name: "User not found",
			prepareMock: func() {
				m.users.EXPECT().FindByID(ctx, 1).Return(nil, nil)
			},
			expectedError: ErrUserNotFound,
		},
		{
			name: "Plan not found",
			prepareMock: func() {
				m.users.EXPECT().FindByID(ctx, 1).Return(&domain.User{ID: 1}, nil)
				m.plans.EXPECT().FindByID(ctx, 2).Return(nil, nil)
			},
			expectedError: planservice.ErrPlanNotFound,
		},
		{
			name: "Plan inactive",
			prepareMock: func() {
				m.users.EXPECT().FindByID(ctx, 1).Return(&domain.User{ID: 1}, nil)
				m.plans.EXPECT().FindByID(ctx, 2).Return(&domain.TradingPlan{ID: 2, IsActive: false}, nil)
			},
			expectedError: planservice.ErrPlanNotFound,
		},
		{
			name: "Database error on insert",
			prepareMock: func() {
				m.users.EXPECT().FindByID(ctx, 1).Return(&domain.User{ID: 1}, nil)
				m.plans.EXPECT().FindByID(ctx, 2).Return(plan, nil)
				m.payments.EXPECT().Create(ctx, gomock.Any()).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			intent, err := service.CreateIntent(ctx, 1, 2)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, intent)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, wallet, intent.WalletAddress)
			assert.Equal(t, "10K Challenge", intent.PlanName)
			assert.Equal(t, "Payment for 10K Challenge - ID: "+intent.PaymentID, intent.Memo)
			assert.True(t, decimal.NewFromInt(100).Equal(intent.Amount))
		})
	}
}

func TestVerify(t *testing.T) {
	service, m := NewMock(t)
	ctx := context.Background()
	amount := decimal.RequireFromString("100.5")

	tests := []struct {
		name          string
		userID        int
		hash          string
		prepareMock   func(released *bool)
		expectedError error
		expectRelease bool
		check         func(t *testing.T, result *domain.VerifyResult)
	}{
		{
			name:   "Payment not found",
			userID: 1,
			hash:   txHash,
			prepareMock: func(_ *bool) {
				m.payments.EXPECT().FindByID(ctx, "p-1").Return(nil, nil)
			},
			expectedError: ErrPaymentNotFound,
		},
		{
			name:   "Payment of another user",
			userID: 7,
			hash:   txHash,
			prepareMock: func(_ *bool) {
				m.payments.EXPECT().FindByID(ctx, "p-1").Return(pendingPayment(), nil)
			},
			expectedError: ErrPaymentNotFound,
		},
		{
			name:   "No hash returns stored status",
			userID: 1,
			hash:   "  ",
			prepareMock: func(_ *bool) {
				m.payments.EXPECT().FindByID(ctx, "p-1").Return(pendingPayment(), nil)
			},
			check: func(t *testing.T, result *domain.VerifyResult) {
				assert.Equal(t, domain.PaymentStatusPending, result.Payment.Status)
				assert.Nil(t, result.Outcome)
			},
		},
		{
			name:   "Already confirmed",
			userID: 1,
			hash:   txHash,
			prepareMock: func(_ *bool) {
				p := pendingPayment()
				p.Status = domain.PaymentStatusConfirmed
				m.payments.EXPECT().FindByID(ctx, "p-1").Return(p, nil)
			},
			expectedError: ErrConflict,
		},
		{
			name:   "Verification in progress",
			userID: 1,
			hash:   txHash,
			prepareMock: func(_ *bool) {
				m.payments.EXPECT().FindByID(ctx, "p-1").Return(pendingPayment(), nil)
				m.locker.EXPECT().Acquire(ctx, "p-1").Return(nil, lock.ErrLocked)
			},
			expectedError: ErrConflict,
		},
		{
			name:   "Hash used by another payment",
			userID: 1,
			hash:   "0x" + txHash,
			prepareMock: func(released *bool) {
				m.payments.EXPECT().FindByID(ctx, "p-1").Return(pendingPayment(), nil)
				m.locker.EXPECT().Acquire(ctx, "p-1").Return(func() { *released = true }, nil)
				m.payments.EXPECT().FindByTransactionHash(ctx, txHash).Return(&domain.Payment{ID: "p-0"}, nil)
			},
			expectRelease: true,
			check: func(t *testing.T, result *domain.VerifyResult) {
				assert.False(t, result.Outcome.Success)
				assert.Equal(t, ReasonTransactionUsed, result.Outcome.Details)
			},
		},
		{
			name:   "Explorer unreachable",
			userID: 1,
			hash:   txHash,
			prepareMock: func(released *bool) {
				m.payments.EXPECT().FindByID(ctx, "p-1").Return(pendingPayment(), nil)
				m.locker.EXPECT().Acquire(ctx, "p-1").Return(func() { *released = true }, nil)
				m.payments.EXPECT().FindByTransactionHash(ctx, txHash).Return(nil, nil)
				m.verifier.EXPECT().Verify(ctx, gomock.Any(), txHash).
					Return(verifier.Verdict{}, fmt.Errorf("%w: %w", verifier.ErrVerification, context.DeadlineExceeded))
			},
			expectedError: verifier.ErrVerification,
			expectRelease: true,
		},
		{
			name:   "Transfer rejected",
			userID: 1,
			hash:   txHash,
			prepareMock: func(released *bool) {
				m.payments.EXPECT().FindByID(ctx, "p-1").Return(pendingPayment(), nil)
				m.locker.EXPECT().Acquire(ctx, "p-1").Return(func() { *released = true }, nil)
				m.payments.EXPECT().FindByTransactionHash(ctx, txHash).Return(nil, nil)
				m.verifier.EXPECT().Verify(ctx, gomock.Any(), txHash).
					Return(verifier.Verdict{Reason: verifier.ReasonWrongRecipient}, nil)
			},
			expectRelease: true,
			check: func(t *testing.T, result *domain.VerifyResult) {
				assert.False(t, result.Outcome.Success)
				assert.Equal(t, MessageNotVerified, result.Outcome.Message)
				assert.Equal(t, verifier.ReasonWrongRecipient, result.Outcome.Details)
				assert.Equal(t, domain.PaymentStatusPending, result.Payment.Status)
			},
		},
		{
			name:   "Transfer verified",
			userID: 1,
			hash:   txHash,
			prepareMock: func(released *bool) {
				m.payments.EXPECT().FindByID(ctx, "p-1").Return(pendingPayment(), nil)
				m.locker.EXPECT().Acquire(ctx, "p-1").Return(func() { *released = true }, nil)
				m.payments.EXPECT().FindByTransactionHash(ctx, txHash).Return(nil, nil)
				m.verifier.EXPECT().Verify(ctx, gomock.Any(), txHash).
					Return(verifier.Verdict{Verified: true, Amount: amount}, nil)
				runTx(m)
				m.payments.EXPECT().Confirm(ctx, "p-1", txHash, gomock.Any()).Return(true, nil)
				m.challenges.EXPECT().CreateForPayment(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.UserChallenge) (*domain.UserChallenge, error) {
					assert.Equal(t, domain.ChallengeStatusActive, c.Status)
					assert.Equal(t, "p-1", *c.PaymentID)
					assert.Equal(t, 2, c.PlanID)
					c.ID = 9
					return c, nil
				})
				m.publisher.EXPECT().Publish(eventOf(notify.EventPaymentUpdated, "p-1"))
				m.publisher.EXPECT().Publish(eventOf(notify.EventChallengeCreated, "9"))
			},
			expectRelease: true,
			check: func(t *testing.T, result *domain.VerifyResult) {
				assert.True(t, result.Outcome.Success)
				assert.Equal(t, MessageVerified, result.Outcome.Message)
				assert.True(t, amount.Equal(result.Outcome.AmountPaid))
				assert.Equal(t, domain.PaymentStatusConfirmed, result.Payment.Status)
				assert.Equal(t, txHash, *result.Payment.TransactionHash)
				assert.NotNil(t, result.Payment.ConfirmedAt)
			},
		},
		{
			name:   "Verified without lock backend",
			userID: 1,
			hash:   txHash,
			prepareMock: func(_ *bool) {
				m.payments.EXPECT().FindByID(ctx, "p-1").Return(pendingPayment(), nil)
				m.locker.EXPECT().Acquire(ctx, "p-1").Return(nil, errors.New("redis: connection refused"))
				m.payments.EXPECT().FindByTransactionHash(ctx, txHash).Return(nil, nil)
				m.verifier.EXPECT().Verify(ctx, gomock.Any(), txHash).
					Return(verifier.Verdict{Verified: true, Amount: amount}, nil)
				runTx(m)
				m.payments.EXPECT().Confirm(ctx, "p-1", txHash, gomock.Any()).Return(true, nil)
				m.challenges.EXPECT().CreateForPayment(ctx, gomock.Any()).Return(&domain.UserChallenge{ID: 9}, nil)
				m.publisher.EXPECT().Publish(gomock.Any()).Times(2)
			},
			check: func(t *testing.T, result *domain.VerifyResult) {
				assert.True(t, result.Outcome.Success)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			released := false
			tt.prepareMock(&released)
			result, err := service.Verify(ctx, tt.userID, "p-1", tt.hash)
			assert.Equal(t, tt.expectRelease, released)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
				return
			}
			assert.NoError(t, err)
			tt.check(t, result)
		})
	}
}

func TestApplyVerification(t *testing.T) {
	service, m := NewMock(t)
	ctx := context.Background()
	verified := verifier.Verdict{Verified: true, Amount: decimal.NewFromInt(100)}

	tests := []struct {
		name          string
		prepareMock   func()
		expectedError error
	}{
		{
			name: "Lost the race to another verification",
			prepareMock: func() {
				runTx(m)
				m.payments.EXPECT().Confirm(ctx, "p-1", txHash, gomock.Any()).Return(false, nil)
			},
			expectedError: ErrConflict,
		},
		{
			name: "Hash confirmed another payment meanwhile",
			prepareMock: func() {
				runTx(m)
				m.payments.EXPECT().Confirm(ctx, "p-1", txHash, gomock.Any()).
					Return(false, &pgconn.PgError{Code: "23505", ConstraintName: transactionHashConstraint})
			},
			expectedError: ErrConflict,
		},
		{
			name: "Challenge already exists",
			prepareMock: func() {
				runTx(m)
				m.payments.EXPECT().Confirm(ctx, "p-1", txHash, gomock.Any()).Return(true, nil)
				m.challenges.EXPECT().CreateForPayment(ctx, gomock.Any()).Return(nil, nil)
			},
			expectedError: ErrConflict,
		},
		{
			name: "Challenge insert fails",
			prepareMock: func() {
				runTx(m)
				m.payments.EXPECT().Confirm(ctx, "p-1", txHash, gomock.Any()).Return(true, nil)
				m.challenges.EXPECT().CreateForPayment(ctx, gomock.Any()).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
		{
			name: "Transaction cannot start",
			prepareMock: func() {
				m.tx.EXPECT().Begin(gomock.Any(), gomock.Any()).Return(errors.New("can't begin transaction"))
			},
			expectedError: errors.New("can't begin transaction"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			payment := pendingPayment()
			outcome, err := service.ApplyVerification(ctx, payment, txHash, verified)
			assert.Error(t, err)
			assert.Equal(t, tt.expectedError.Error(), err.Error())
			assert.Nil(t, outcome)
			assert.Equal(t, domain.PaymentStatusPending, payment.Status)
			assert.Nil(t, payment.ConfirmedAt)
		})
	}
}

func TestProvisionChallenge(t *testing.T) {
	service, m := NewMock(t)
	ctx := context.Background()
	confirmedAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	confirmed := pendingPayment()
	confirmed.Status = domain.PaymentStatusConfirmed
	confirmed.ConfirmedAt = &confirmedAt

	tests := []struct {
		name          string
		prepareMock   func()
		expectedError error
	}{
		{
			name: "Challenge provisioned",
			prepareMock: func() {
				m.payments.EXPECT().FindByID(ctx, "p-1").Return(confirmed, nil)
				m.challenges.EXPECT().CreateForPayment(ctx, gomock.Any()).Return(&domain.UserChallenge{ID: 4, UserID: 1}, nil)
				m.publisher.EXPECT().Publish(eventOf(notify.EventChallengeCreated, "4"))
			},
		},
		{
			name: "Payment not found",
			prepareMock: func() {
				m.payments.EXPECT().FindByID(ctx, "p-1").Return(nil, nil)
			},
			expectedError: ErrPaymentNotFound,
		},
		{
			name: "Payment still pending",
			prepareMock: func() {
				m.payments.EXPECT().FindByID(ctx, "p-1").Return(pendingPayment(), nil)
			},
			expectedError: ErrInvalidStatusChange,
		},
		{
			name: "Challenge already provisioned",
			prepareMock: func() {
				m.payments.EXPECT().FindByID(ctx, "p-1").Return(confirmed, nil)
				m.challenges.EXPECT().CreateForPayment(ctx, gomock.Any()).Return(nil, nil)
			},
			expectedError: ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			challenge, err := service.ProvisionChallenge(ctx, "p-1")
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, challenge)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 4, challenge.ID)
		})
	}
}

func TestInconsistent(t *testing.T) {
	service, m := NewMock(t)
	ctx := context.Background()
	views := []domain.PaymentView{{Payment: domain.Payment{ID: "p-3", UserID: 2, Status: domain.PaymentStatusConfirmed}}}

	m.payments.EXPECT().FindConfirmedWithoutChallenge(ctx, uint32(inconsistentLimit)).Return(views, nil)
	result, err := service.Inconsistent(ctx)
	assert.NoError(t, err)
	assert.Equal(t, views, result)

	m.payments.EXPECT().FindConfirmedWithoutChallenge(ctx, uint32(inconsistentLimit)).Return(nil, errors.New("database error"))
	result, err = service.Inconsistent(ctx)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestListByUser(t *testing.T) {
	service, m := NewMock(t)
	ctx := context.Background()
	views := []domain.PaymentView{{Payment: domain.Payment{ID: "p-1", UserID: 1}, PlanName: "10K Challenge"}}

	m.payments.EXPECT().FindByUserID(ctx, 1).Return(views, nil)
	result, err := service.ListByUser(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, views, result)
}
