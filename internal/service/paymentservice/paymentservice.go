package paymentservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GlebRadaev/novafunded/internal/domain"
	"github.com/GlebRadaev/novafunded/internal/lock"
	"github.com/GlebRadaev/novafunded/internal/notify"
	"github.com/GlebRadaev/novafunded/internal/pg"
	"github.com/GlebRadaev/novafunded/internal/service/planservice"
	"github.com/GlebRadaev/novafunded/internal/verifier"
	"github.com/GlebRadaev/novafunded/pkg/validate"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=paymentservice.go -destination=mock_paymentservice.go -package=paymentservice

const (
	transactionHashConstraint = "payments_transaction_hash_key"
	inconsistentLimit         = 100

	MessageVerified       = "Payment verified and challenge created"
	MessageNotVerified    = "Payment verification failed"
	ReasonTransactionUsed = "transaction already used"
)

var (
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrConflict            = errors.New("payment is being processed or was already processed")
	ErrInvalidStatusChange = errors.New("invalid payment status change")
	ErrInconsistentState   = errors.New("confirmed payment without challenge")
)

type PaymentRepo interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	FindByID(ctx context.Context, id string) (*domain.Payment, error)
	FindByTransactionHash(ctx context.Context, hash string) (*domain.Payment, error)
	Confirm(ctx context.Context, id, hash string, confirmedAt time.Time) (bool, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.PaymentView, error)
	FindConfirmedWithoutChallenge(ctx context.Context, limit uint32) ([]domain.PaymentView, error)
}

type ChallengeRepo interface {
	CreateForPayment(ctx context.Context, challenge *domain.UserChallenge) (*domain.UserChallenge, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

type PlanRepo interface {
	FindByID(ctx context.Context, id int) (*domain.TradingPlan, error)
}

type Settings struct {
	WalletAddress string
	Currency      string
}

type Service struct {
	paymentRepo   PaymentRepo
	challengeRepo ChallengeRepo
	userRepo      UserRepo
	planRepo      PlanRepo
	txManager     pg.TXManager
	verifier      verifier.Service
	locker        lock.Locker
	publisher     notify.Publisher
	settings      Settings
}

func New(
	paymentRepo PaymentRepo,
	challengeRepo ChallengeRepo,
	userRepo UserRepo,
	planRepo PlanRepo,
	txManager pg.TXManager,
	verifier verifier.Service,
	locker lock.Locker,
	publisher notify.Publisher,
	settings Settings,
) *Service {
	return &Service{
		paymentRepo:   paymentRepo,
		challengeRepo: challengeRepo,
		userRepo:      userRepo,
		planRepo:      planRepo,
		txManager:     txManager,
		verifier:      verifier,
		locker:        locker,
		publisher:     publisher,
		settings:      settings,
	}
}

// CreateIntent stores a pending payment for the plan price and tells the
// user where to send it. Every call creates a new intent.
func (s *Service) CreateIntent(ctx context.Context, userID, planID int) (*domain.PaymentIntent, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get user", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		zap.L().Error("failed to get plan", zap.Int("plan_id", planID), zap.Error(err))
		return nil, err
	}
	if plan == nil || !plan.IsActive {
		return nil, planservice.ErrPlanNotFound
	}

	payment, err := s.paymentRepo.Create(ctx, &domain.Payment{
		ID:            uuid.NewString(),
		UserID:        userID,
		PlanID:        planID,
		Amount:        plan.Price,
		Currency:      s.settings.Currency,
		WalletAddress: s.settings.WalletAddress,
		Status:        domain.PaymentStatusPending,
	})
	if err != nil {
		zap.L().Error("failed to create payment", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}

	zap.L().Info("payment intent created",
		zap.String("payment_id", payment.ID),
		zap.Int("user_id", userID),
		zap.Int("plan_id", planID),
		zap.String("amount", payment.Amount.String()),
	)
	return &domain.PaymentIntent{
		PaymentID:     payment.ID,
		WalletAddress: payment.WalletAddress,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		PlanName:      plan.Name,
		Memo:          fmt.Sprintf("Payment for %s - ID: %s", plan.Name, payment.ID),
	}, nil
}

// Verify checks hash against the caller's payment and applies the verdict.
// Without a hash it only reports the stored payment.
func (s *Service) Verify(ctx context.Context, userID int, paymentID, hash string) (*domain.VerifyResult, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		zap.L().Error("failed to get payment", zap.String("payment_id", paymentID), zap.Error(err))
		return nil, err
	}
	if payment == nil || payment.UserID != userID {
		return nil, ErrPaymentNotFound
	}

	hash = validate.NormalizeTxHash(hash)
	if hash == "" {
		return &domain.VerifyResult{Payment: payment}, nil
	}
	if payment.Status != domain.PaymentStatusPending {
		return nil, ErrConflict
	}

	release, err := s.locker.Acquire(ctx, payment.ID)
	switch {
	case errors.Is(err, lock.ErrLocked):
		return nil, ErrConflict
	case err != nil:
		// The conditional update and the unique challenge still guard the payment.
		zap.L().Warn("verification lock unavailable, continuing without it", zap.String("payment_id", payment.ID), zap.Error(err))
	default:
		defer release()
	}

	used, err := s.paymentRepo.FindByTransactionHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if used != nil && used.ID != payment.ID {
		zap.L().Info("transaction hash reused", zap.String("payment_id", payment.ID), zap.String("used_by", used.ID))
		return &domain.VerifyResult{Payment: payment, Outcome: notVerified(ReasonTransactionUsed)}, nil
	}

	verdict, err := s.verifier.Verify(ctx, payment, hash)
	if err != nil {
		return nil, err
	}

	outcome, err := s.ApplyVerification(ctx, payment, hash, verdict)
	if err != nil {
		return nil, err
	}
	return &domain.VerifyResult{Payment: payment, Outcome: outcome}, nil
}

// ApplyVerification commits a verdict. A verified payment is confirmed and
// its challenge created in one transaction; a rejected one stays pending.
func (s *Service) ApplyVerification(ctx context.Context, payment *domain.Payment, hash string, verdict verifier.Verdict) (*domain.VerificationOutcome, error) {
	if !verdict.Verified {
		zap.L().Info("payment not verified", zap.String("payment_id", payment.ID), zap.String("reason", verdict.Reason))
		return notVerified(verdict.Reason), nil
	}

	now := time.Now().UTC()
	var challenge *domain.UserChallenge
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		applied, err := s.paymentRepo.Confirm(ctx, payment.ID, hash, now)
		if pg.IsUniqueViolation(err, transactionHashConstraint) {
			return ErrConflict
		}
		if err != nil {
			return err
		}
		if !applied {
			return ErrConflict
		}

		challenge, err = s.createChallenge(ctx, payment, now)
		return err
	})
	if err != nil {
		zap.L().Error("failed to confirm payment", zap.String("payment_id", payment.ID), zap.Error(err))
		return nil, err
	}

	payment.Status = domain.PaymentStatusConfirmed
	payment.TransactionHash = &hash
	payment.ConfirmedAt = &now

	zap.L().Info("payment confirmed",
		zap.String("payment_id", payment.ID),
		zap.Int("challenge_id", challenge.ID),
		zap.String("amount_paid", verdict.Amount.String()),
	)
	s.publisher.Publish(notify.PaymentUpdated(payment.UserID, payment.ID, payment.Status))
	s.publisher.Publish(notify.ChallengeCreated(payment.UserID, challenge.ID))

	return &domain.VerificationOutcome{
		Success:    true,
		Message:    MessageVerified,
		AmountPaid: verdict.Amount,
	}, nil
}

// ProvisionChallenge creates the missing challenge of a confirmed payment.
func (s *Service) ProvisionChallenge(ctx context.Context, paymentID string) (*domain.UserChallenge, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if payment.Status != domain.PaymentStatusConfirmed {
		return nil, fmt.Errorf("%w: payment is %s", ErrInvalidStatusChange, payment.Status)
	}

	challenge, err := s.createChallenge(ctx, payment, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	zap.L().Info("challenge provisioned", zap.String("payment_id", payment.ID), zap.Int("challenge_id", challenge.ID))
	s.publisher.Publish(notify.ChallengeCreated(payment.UserID, challenge.ID))
	return challenge, nil
}

func (s *Service) createChallenge(ctx context.Context, payment *domain.Payment, start time.Time) (*domain.UserChallenge, error) {
	paymentID := payment.ID
	challenge, err := s.challengeRepo.CreateForPayment(ctx, &domain.UserChallenge{
		UserID:    payment.UserID,
		PlanID:    payment.PlanID,
		PaymentID: &paymentID,
		Status:    domain.ChallengeStatusActive,
		StartDate: start,
	})
	if err != nil {
		return nil, err
	}
	if challenge == nil {
		return nil, ErrConflict
	}
	return challenge, nil
}

func (s *Service) ListByUser(ctx context.Context, userID int) ([]domain.PaymentView, error) {
	payments, err := s.paymentRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get payments", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	return payments, nil
}

// Inconsistent lists confirmed payments that have no challenge and logs each one.
func (s *Service) Inconsistent(ctx context.Context) ([]domain.PaymentView, error) {
	payments, err := s.paymentRepo.FindConfirmedWithoutChallenge(ctx, inconsistentLimit)
	if err != nil {
		zap.L().Error("failed to get inconsistent payments", zap.Error(err))
		return nil, err
	}
	for _, payment := range payments {
		zap.L().Warn("inconsistent payment",
			zap.Bool("inconsistent_state", true),
			zap.String("payment_id", payment.ID),
			zap.Int("user_id", payment.UserID),
			zap.Error(ErrInconsistentState),
		)
	}
	return payments, nil
}

func notVerified(reason string) *domain.VerificationOutcome {
	return &domain.VerificationOutcome{
		Success: false,
		Message: MessageNotVerified,
		Details: reason,
	}
}
