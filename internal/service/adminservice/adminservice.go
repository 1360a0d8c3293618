package adminservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GlebRadaev/novafunded/internal/domain"
	"github.com/GlebRadaev/novafunded/internal/notify"
	"github.com/GlebRadaev/novafunded/internal/pg"
	"github.com/GlebRadaev/novafunded/internal/service/challengeservice"
	"github.com/GlebRadaev/novafunded/internal/service/paymentservice"
	"github.com/GlebRadaev/novafunded/pkg/validate"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=adminservice.go -destination=mock_adminservice.go -package=adminservice

var (
	ErrInvalidRole            = errors.New("invalid role")
	ErrInvalidChallengeStatus = errors.New("invalid challenge status")
)

type UserRepo interface {
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	SetRole(ctx context.Context, id int, role string) (bool, error)
	Count(ctx context.Context) (int, error)
}

type PaymentRepo interface {
	FindByID(ctx context.Context, id string) (*domain.Payment, error)
	FindAll(ctx context.Context) ([]domain.PaymentView, error)
	UpdateStatus(ctx context.Context, payment *domain.Payment) error
	Count(ctx context.Context) (int, error)
	ConfirmedRevenue(ctx context.Context) (decimal.Decimal, error)
}

type ChallengeRepo interface {
	FindByID(ctx context.Context, id int) (*domain.ChallengeView, error)
	FindAll(ctx context.Context) ([]domain.ChallengeView, error)
	UpdateStatus(ctx context.Context, id int, status string, endDate *time.Time) (bool, error)
	CountActive(ctx context.Context) (int, error)
}

type Payments interface {
	ProvisionChallenge(ctx context.Context, paymentID string) (*domain.UserChallenge, error)
	Inconsistent(ctx context.Context) ([]domain.PaymentView, error)
}

type Plans interface {
	ListAll(ctx context.Context) ([]domain.TradingPlan, error)
	Create(ctx context.Context, plan *domain.TradingPlan) (*domain.TradingPlan, error)
	Update(ctx context.Context, id int, plan *domain.TradingPlan) (*domain.TradingPlan, error)
}

type Service struct {
	userRepo      UserRepo
	paymentRepo   PaymentRepo
	challengeRepo ChallengeRepo
	payments      Payments
	plans         Plans
	publisher     notify.Publisher
}

func New(userRepo UserRepo, paymentRepo PaymentRepo, challengeRepo ChallengeRepo, payments Payments, plans Plans, publisher notify.Publisher) *Service {
	return &Service{
		userRepo:      userRepo,
		paymentRepo:   paymentRepo,
		challengeRepo: challengeRepo,
		payments:      payments,
		plans:         plans,
		publisher:     publisher,
	}
}

func (s *Service) Stats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalUsers, err = s.userRepo.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalPayments, err = s.paymentRepo.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.ActiveChallenges, err = s.challengeRepo.CountActive(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalRevenue, err = s.paymentRepo.ConfirmedRevenue(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		zap.L().Error("failed to collect stats", zap.Error(err))
		return nil, err
	}
	return &stats, nil
}

func (s *Service) ListPayments(ctx context.Context) ([]domain.PaymentView, error) {
	return s.paymentRepo.FindAll(ctx)
}

func (s *Service) InconsistentPayments(ctx context.Context) ([]domain.PaymentView, error) {
	return s.payments.Inconsistent(ctx)
}

func (s *Service) ProvisionChallenge(ctx context.Context, paymentID string) (*domain.UserChallenge, error) {
	return s.payments.ProvisionChallenge(ctx, paymentID)
}

// ForcePaymentStatus overrides the status of a payment. Confirming requires a
// transaction hash, either already stored or passed in.
func (s *Service) ForcePaymentStatus(ctx context.Context, paymentID, status, hash string) (*domain.Payment, error) {
	if !domain.IsPaymentStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", paymentservice.ErrInvalidStatusChange, status)
	}
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, paymentservice.ErrPaymentNotFound
	}

	if hash != "" {
		if !validate.IsTxHash(hash) {
			return nil, fmt.Errorf("%w: malformed transaction hash", paymentservice.ErrInvalidStatusChange)
		}
		normalized := validate.NormalizeTxHash(hash)
		payment.TransactionHash = &normalized
	}

	previous := payment.Status
	payment.Status = status
	switch status {
	case domain.PaymentStatusConfirmed:
		if payment.TransactionHash == nil {
			return nil, fmt.Errorf("%w: confirmed payment needs a transaction hash", paymentservice.ErrInvalidStatusChange)
		}
		if payment.ConfirmedAt == nil {
			now := time.Now().UTC()
			payment.ConfirmedAt = &now
		}
	default:
		payment.ConfirmedAt = nil
	}

	err = s.paymentRepo.UpdateStatus(ctx, payment)
	if pg.IsUniqueViolation(err, "") {
		return nil, paymentservice.ErrConflict
	}
	if err != nil {
		return nil, err
	}

	zap.L().Warn("payment status overridden",
		zap.String("payment_id", payment.ID),
		zap.String("from", previous),
		zap.String("to", payment.Status),
	)
	s.publisher.Publish(notify.PaymentUpdated(payment.UserID, payment.ID, payment.Status))
	return payment, nil
}

func (s *Service) ListChallenges(ctx context.Context) ([]domain.ChallengeView, error) {
	return s.challengeRepo.FindAll(ctx)
}

// UpdateChallengeStatus moves a challenge to status. Terminal statuses close
// the challenge with today's end date.
func (s *Service) UpdateChallengeStatus(ctx context.Context, challengeID int, status string) (*domain.ChallengeView, error) {
	if !domain.IsChallengeStatus(status) {
		return nil, ErrInvalidChallengeStatus
	}

	var endDate *time.Time
	if domain.IsTerminalChallengeStatus(status) {
		now := time.Now().UTC()
		endDate = &now
	}
	updated, err := s.challengeRepo.UpdateStatus(ctx, challengeID, status, endDate)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, challengeservice.ErrChallengeNotFound
	}

	challenge, err := s.challengeRepo.FindByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if challenge == nil {
		return nil, challengeservice.ErrChallengeNotFound
	}

	zap.L().Info("challenge status updated", zap.Int("challenge_id", challengeID), zap.String("status", status))
	s.publisher.Publish(notify.ChallengeUpdated(challenge.UserID, challenge.ID, status))
	return challenge, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}

func (s *Service) SetUserRole(ctx context.Context, userID int, role string) error {
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return ErrInvalidRole
	}
	updated, err := s.userRepo.SetRole(ctx, userID, role)
	if err != nil {
		return err
	}
	if !updated {
		return paymentservice.ErrUserNotFound
	}
	zap.L().Info("user role changed", zap.Int("user_id", userID), zap.String("role", role))
	return nil
}

// GrantAdmin promotes the user with the given login.
func (s *Service) GrantAdmin(ctx context.Context, login string) (*domain.User, error) {
	user, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, paymentservice.ErrUserNotFound
	}
	if err := s.SetUserRole(ctx, user.ID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	user.Role = domain.RoleAdmin
	return user, nil
}

func (s *Service) ListPlans(ctx context.Context) ([]domain.TradingPlan, error) {
	return s.plans.ListAll(ctx)
}

func (s *Service) CreatePlan(ctx context.Context, plan *domain.TradingPlan) (*domain.TradingPlan, error) {
	return s.plans.Create(ctx, plan)
}

func (s *Service) UpdatePlan(ctx context.Context, id int, plan *domain.TradingPlan) (*domain.TradingPlan, error) {
	return s.plans.Update(ctx, id, plan)
}
