package challenges

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/novafunded/internal/domain"
	"github.com/GlebRadaev/novafunded/internal/dto"
	"github.com/GlebRadaev/novafunded/internal/service/challengeservice"
	"github.com/GlebRadaev/novafunded/pkg/auth"
	"github.com/GlebRadaev/novafunded/pkg/utils"
	"github.com/go-chi/chi/v5"
)

//go:generate mockgen -source=challenges.go -destination=mock_challenges.go -package=challenges

type Service interface {
	ListByUser(ctx context.Context, userID int) ([]domain.ChallengeView, error)
	GetForUser(ctx context.Context, userID, challengeID int) (*domain.ChallengeView, []domain.TradingHistory, error)
	HistoryByUser(ctx context.Context, userID int) ([]domain.TradingHistory, error)
}

type ChallengeHandler struct {
	challengeService Service
}

func New(challengeService Service) *ChallengeHandler {
	return &ChallengeHandler{
		challengeService: challengeService,
	}
}

// GetChallenges godoc
//
//	@Summary		List own challenges
//	@Tags			Challenges
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.ChallengeResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/challenges [get]
func (h *ChallengeHandler) GetChallenges(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	challenges, err := h.challengeService.ListByUser(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewChallengeResponses(challenges, false))
}

// GetChallenge godoc
//
//	@Summary		Get own challenge with its latest trades
//	@Tags			Challenges
//	@Produce		json
//	@Param			id	path	int	true	"Challenge ID"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.ChallengeDetailResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid challenge id"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Challenge not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/challenges/{id} [get]
func (h *ChallengeHandler) GetChallenge(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid challenge id")
		return
	}

	challenge, history, err := h.challengeService.GetForUser(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, challengeservice.ErrChallengeNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ChallengeDetailResponseDTO{
		Challenge: dto.NewChallengeResponse(*challenge, false),
		History:   dto.NewTradingHistoryResponses(history),
	})
}

// GetTradingHistory godoc
//
//	@Summary		Latest trades across own challenges
//	@Tags			Challenges
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.TradingHistoryResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/trading-history [get]
func (h *ChallengeHandler) GetTradingHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	history, err := h.challengeService.HistoryByUser(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewTradingHistoryResponses(history))
}
