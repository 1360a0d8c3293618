package dto

import (
	"time"

	"github.com/GlebRadaev/novafunded/internal/domain"
)

type StatsResponseDTO struct {
	TotalUsers       int     `json:"total_users" example:"120"`
	TotalPayments    int     `json:"total_payments" example:"87"`
	ActiveChallenges int     `json:"active_challenges" example:"31"`
	TotalRevenue     float64 `json:"total_revenue" example:"8613"`
}

type UserResponseDTO struct {
	ID        int       `json:"id" example:"1"`
	Login     string    `json:"login" example:"trader"`
	Role      string    `json:"role" example:"user"`
	CreatedAt time.Time `json:"created_at" example:"2025-01-02T03:04:05Z"`
}

type UpdatePaymentStatusRequestDTO struct {
	Status          string `json:"status" validate:"required,oneof=pending confirmed failed" example:"confirmed"`
	TransactionHash string `json:"transaction_hash" validate:"omitempty,txhash"`
}

type UpdateChallengeStatusRequestDTO struct {
	Status string `json:"status" validate:"required,oneof=pending active passed failed funded" example:"passed"`
}

type UpdateUserRoleRequestDTO struct {
	Role string `json:"role" validate:"required,oneof=user admin" example:"admin"`
}

func NewStatsResponse(stats *domain.Stats) StatsResponseDTO {
	return StatsResponseDTO{
		TotalUsers:       stats.TotalUsers,
		TotalPayments:    stats.TotalPayments,
		ActiveChallenges: stats.ActiveChallenges,
		TotalRevenue:     stats.TotalRevenue.InexactFloat64(),
	}
}

func NewUserResponses(users []domain.User) []UserResponseDTO {
	response := make([]UserResponseDTO, 0, len(users))
	for _, user := range users {
		response = append(response, UserResponseDTO{
			ID:        user.ID,
			Login:     user.Login,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
		})
	}
	return response
}
