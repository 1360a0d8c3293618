package challengeservice

import (
	"context"
	"errors"

	"github.com/GlebRadaev/novafunded/internal/domain"
	"go.uber.org/zap"
)

//go:generate mockgen -source=challengeservice.go -destination=mock_challengeservice.go -package=challengeservice

const historyLimit = 50

var ErrChallengeNotFound = errors.New("challenge not found")

type Repo interface {
	FindByID(ctx context.Context, id int) (*domain.ChallengeView, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.ChallengeView, error)
	FindHistoryByChallengeID(ctx context.Context, challengeID int, limit uint32) ([]domain.TradingHistory, error)
	FindHistoryByUserID(ctx context.Context, userID int, limit uint32) ([]domain.TradingHistory, error)
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListByUser(ctx context.Context, userID int) ([]domain.ChallengeView, error) {
	challenges, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get challenges", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	return challenges, nil
}

// GetForUser returns the challenge with its latest trades. Challenges of
// other users are reported as missing.
func (s *Service) GetForUser(ctx context.Context, userID, challengeID int) (*domain.ChallengeView, []domain.TradingHistory, error) {
	challenge, err := s.repo.FindByID(ctx, challengeID)
	if err != nil {
		zap.L().Error("failed to get challenge", zap.Int("challenge_id", challengeID), zap.Error(err))
		return nil, nil, err
	}
	if challenge == nil || challenge.UserID != userID {
		return nil, nil, ErrChallengeNotFound
	}

	history, err := s.repo.FindHistoryByChallengeID(ctx, challengeID, historyLimit)
	if err != nil {
		zap.L().Error("failed to get challenge history", zap.Int("challenge_id", challengeID), zap.Error(err))
		return nil, nil, err
	}
	return challenge, history, nil
}

func (s *Service) HistoryByUser(ctx context.Context, userID int) ([]domain.TradingHistory, error) {
	history, err := s.repo.FindHistoryByUserID(ctx, userID, historyLimit)
	if err != nil {
		zap.L().Error("failed to get trading history", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	return history, nil
}
