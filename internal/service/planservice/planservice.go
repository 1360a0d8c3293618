package planservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/GlebRadaev/novafunded/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=planservice.go -destination=mock_planservice.go -package=planservice

var (
	ErrPlanNotFound = errors.New("plan not found")
	ErrInvalidPlan  = errors.New("invalid plan")
)

type Repo interface {
	ListActive(ctx context.Context) ([]domain.TradingPlan, error)
	ListAll(ctx context.Context) ([]domain.TradingPlan, error)
	FindByID(ctx context.Context, id int) (*domain.TradingPlan, error)
	Create(ctx context.Context, plan *domain.TradingPlan) (*domain.TradingPlan, error)
	Update(ctx context.Context, plan *domain.TradingPlan) (*domain.TradingPlan, error)
}

type Cache interface {
	ActivePlans(ctx context.Context) ([]domain.TradingPlan, bool, error)
	SetActivePlans(ctx context.Context, plans []domain.TradingPlan) error
	Invalidate(ctx context.Context) error
}

type Service struct {
	repo  Repo
	cache Cache
}

// New accepts a nil cache; the catalog then always reads the database.
func New(repo Repo, cache Cache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

func (s *Service) ListActive(ctx context.Context) ([]domain.TradingPlan, error) {
	if s.cache != nil {
		plans, ok, err := s.cache.ActivePlans(ctx)
		if err != nil {
			zap.L().Warn("plan cache unavailable", zap.Error(err))
		} else if ok {
			return plans, nil
		}
	}

	plans, err := s.repo.ListActive(ctx)
	if err != nil {
		zap.L().Error("failed to get active plans", zap.Error(err))
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetActivePlans(ctx, plans); err != nil {
			zap.L().Warn("can't cache active plans", zap.Error(err))
		}
	}
	return plans, nil
}

func (s *Service) ListAll(ctx context.Context) ([]domain.TradingPlan, error) {
	plans, err := s.repo.ListAll(ctx)
	if err != nil {
		zap.L().Error("failed to get plans", zap.Error(err))
		return nil, err
	}
	return plans, nil
}

// Get returns active plans only; admins read inactive ones through ListAll.
func (s *Service) Get(ctx context.Context, id int) (*domain.TradingPlan, error) {
	plan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		zap.L().Error("failed to get plan", zap.Int("plan_id", id), zap.Error(err))
		return nil, err
	}
	if plan == nil || !plan.IsActive {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

func (s *Service) Create(ctx context.Context, plan *domain.TradingPlan) (*domain.TradingPlan, error) {
	if err := Validate(plan); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, plan)
	if err != nil {
		zap.L().Error("failed to create plan", zap.Error(err))
		return nil, err
	}
	s.invalidate(ctx)
	zap.L().Info("plan created", zap.Int("plan_id", created.ID), zap.String("name", created.Name))
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int, plan *domain.TradingPlan) (*domain.TradingPlan, error) {
	if err := Validate(plan); err != nil {
		return nil, err
	}
	plan.ID = id
	updated, err := s.repo.Update(ctx, plan)
	if err != nil {
		zap.L().Error("failed to update plan", zap.Int("plan_id", id), zap.Error(err))
		return nil, err
	}
	if updated == nil {
		return nil, ErrPlanNotFound
	}
	s.invalidate(ctx)
	zap.L().Info("plan updated", zap.Int("plan_id", id))
	return updated, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		zap.L().Warn("can't invalidate plan cache", zap.Error(err))
	}
}

var hundred = decimal.NewFromInt(100)

// Validate checks the invariants every stored plan must hold.
func Validate(plan *domain.TradingPlan) error {
	switch {
	case plan.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidPlan)
	case !plan.Price.IsPositive():
		return fmt.Errorf("%w: price must be positive", ErrInvalidPlan)
	case !plan.AccountSize.IsPositive():
		return fmt.Errorf("%w: account size must be positive", ErrInvalidPlan)
	case plan.EvaluationPeriod < 0:
		return fmt.Errorf("%w: evaluation period must not be negative", ErrInvalidPlan)
	case plan.MinTradingDays < 0:
		return fmt.Errorf("%w: min trading days must not be negative", ErrInvalidPlan)
	}

	percentages := map[string]decimal.Decimal{
		"profit target":  plan.ProfitTarget,
		"max drawdown":   plan.MaxDrawdown,
		"daily drawdown": plan.DailyDrawdown,
		"profit split":   plan.ProfitSplit,
	}
	for name, value := range percentages {
		if value.IsNegative() || value.GreaterThan(hundred) {
			return fmt.Errorf("%w: %s must be between 0 and 100", ErrInvalidPlan, name)
		}
	}
	return nil
}
