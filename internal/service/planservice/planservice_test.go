package planservice

import (
	"context"
	"errors"
	"testing"

	"github.com/GlebRadaev/novafunded/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockRepo, *MockCache) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	cache := NewMockCache(ctrl)
	defer ctrl.Finish()
	return New(repo, cache), repo, cache
}

func validPlan() *domain.TradingPlan {
	return &domain.TradingPlan{
		Name:             "10K Challenge",
		AccountSize:      decimal.NewFromInt(10000),
		Price:            decimal.NewFromInt(100),
		ProfitTarget:     decimal.NewFromInt(8),
		MaxDrawdown:      decimal.NewFromInt(10),
		DailyDrawdown:    decimal.NewFromInt(5),
		EvaluationPeriod: 30,
		MinTradingDays:   5,
		ProfitSplit:      decimal.NewFromInt(80),
		IsActive:         true,
	}
}

func TestListActive(t *testing.T) {
	service, repo, cache := NewMock(t)
	plans := []domain.TradingPlan{*validPlan()}
	ctx := context.Background()

	tests := []struct {
		name          string
		prepareMock   func()
		expected      []domain.TradingPlan
		expectedError error
	}{
		{
			name: "Served from cache",
			prepareMock: func() {
				cache.EXPECT().ActivePlans(ctx).Return(plans, true, nil)
			},
			expected: plans,
		},
		{
			name: "Cache miss fills cache",
			prepareMock: func() {
				cache.EXPECT().ActivePlans(ctx).Return(nil, false, nil)
				repo.EXPECT().ListActive(ctx).Return(plans, nil)
				cache.EXPECT().SetActivePlans(ctx, plans).Return(nil)
			},
			expected: plans,
		},
		{
			name: "Cache down falls back to database",
			prepareMock: func() {
				cache.EXPECT().ActivePlans(ctx).Return(nil, false, errors.New("connection refused"))
				repo.EXPECT().ListActive(ctx).Return(plans, nil)
				cache.EXPECT().SetActivePlans(ctx, plans).Return(errors.New("connection refused"))
			},
			expected: plans,
		},
		{
			name: "Database error",
			prepareMock: func() {
				cache.EXPECT().ActivePlans(ctx).Return(nil, false, nil)
				repo.EXPECT().ListActive(ctx).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			result, err := service.ListActive(ctx)
			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestListActiveWithoutCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	service := New(repo, nil)

	repo.EXPECT().ListActive(context.Background()).Return([]domain.TradingPlan{*validPlan()}, nil)

	plans, err := service.ListActive(context.Background())
	assert.NoError(t, err)
	assert.Len(t, plans, 1)
}

func TestGet(t *testing.T) {
	service, repo, _ := NewMock(t)
	ctx := context.Background()
	inactive := validPlan()
	inactive.IsActive = false

	tests := []struct {
		name          string
		prepareMock   func()
		expectedError error
	}{
		{
			name: "Active plan",
			prepareMock: func() {
				repo.EXPECT().FindByID(ctx, 1).Return(validPlan(), nil)
			},
		},
		{
			name: "Missing plan",
			prepareMock: func() {
				repo.EXPECT().FindByID(ctx, 1).Return(nil, nil)
			},
			expectedError: ErrPlanNotFound,
		},
		{
			name: "Inactive plan",
			prepareMock: func() {
				repo.EXPECT().FindByID(ctx, 1).Return(inactive, nil)
			},
			expectedError: ErrPlanNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			plan, err := service.Get(ctx, 1)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, plan)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, plan)
			}
		})
	}
}

func TestCreate(t *testing.T) {
	service, repo, cache := NewMock(t)
	ctx := context.Background()

	plan := validPlan()
	repo.EXPECT().Create(ctx, plan).DoAndReturn(func(_ context.Context, p *domain.TradingPlan) (*domain.TradingPlan, error) {
		p.ID = 9
		return p, nil
	})
	cache.EXPECT().Invalidate(ctx).Return(nil)

	created, err := service.Create(ctx, plan)
	assert.NoError(t, err)
	assert.Equal(t, 9, created.ID)

	bad := validPlan()
	bad.Price = decimal.Zero
	_, err = service.Create(ctx, bad)
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestUpdate(t *testing.T) {
	service, repo, cache := NewMock(t)
	ctx := context.Background()

	repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, p *domain.TradingPlan) (*domain.TradingPlan, error) {
		assert.Equal(t, 4, p.ID)
		return p, nil
	})
	cache.EXPECT().Invalidate(ctx).Return(errors.New("connection refused"))

	updated, err := service.Update(ctx, 4, validPlan())
	assert.NoError(t, err)
	assert.Equal(t, 4, updated.ID)

	repo.EXPECT().Update(ctx, gomock.Any()).Return(nil, nil)
	_, err = service.Update(ctx, 5, validPlan())
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *domain.TradingPlan)
		valid  bool
	}{
		{name: "Valid", mutate: func(p *domain.TradingPlan) {}, valid: true},
		{name: "Zero percentages allowed", mutate: func(p *domain.TradingPlan) { p.DailyDrawdown = decimal.Zero }, valid: true},
		{name: "Empty name", mutate: func(p *domain.TradingPlan) { p.Name = "" }},
		{name: "Negative price", mutate: func(p *domain.TradingPlan) { p.Price = decimal.NewFromInt(-1) }},
		{name: "Zero account size", mutate: func(p *domain.TradingPlan) { p.AccountSize = decimal.Zero }},
		{name: "Profit split above 100", mutate: func(p *domain.TradingPlan) { p.ProfitSplit = decimal.NewFromInt(101) }},
		{name: "Negative drawdown", mutate: func(p *domain.TradingPlan) { p.MaxDrawdown = decimal.NewFromInt(-5) }},
		{name: "Negative evaluation period", mutate: func(p *domain.TradingPlan) { p.EvaluationPeriod = -1 }},
		{name: "Negative trading days", mutate: func(p *domain.TradingPlan) { p.MinTradingDays = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := validPlan()
			tt.mutate(plan)
			err := Validate(plan)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidPlan)
			}
		})
	}
}
