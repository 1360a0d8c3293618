package plans

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/novafunded/internal/domain"
	"github.com/GlebRadaev/novafunded/internal/dto"
	"github.com/GlebRadaev/novafunded/internal/service/planservice"
	"github.com/GlebRadaev/novafunded/pkg/utils"
	"github.com/go-chi/chi/v5"
)

//go:generate mockgen -source=plans.go -destination=mock_plans.go -package=plans

type Service interface {
	ListActive(ctx context.Context) ([]domain.TradingPlan, error)
	Get(ctx context.Context, id int) (*domain.TradingPlan, error)
}

type PlanHandler struct {
	planService Service
}

func New(planService Service) *PlanHandler {
	return &PlanHandler{
		planService: planService,
	}
}

// GetPlans godoc
//
//	@Summary		List trading plans
//	@Description	Active trading plans ordered by account size
//	@Tags			Plans
//	@Produce		json
//	@Success		200	{array}		dto.PlanResponseDTO
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/plans [get]
func (h *PlanHandler) GetPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.planService.ListActive(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewPlanResponses(plans))
}

// GetPlan godoc
//
//	@Summary		Get a trading plan
//	@Tags			Plans
//	@Produce		json
//	@Param			id	path		int	true	"Plan ID"
//	@Success		200	{object}	dto.PlanResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid plan id"
//	@Failure		404	{object}	utils.Response	"Plan not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/plans/{id} [get]
func (h *PlanHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid plan id")
		return
	}
	plan, err := h.planService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, planservice.ErrPlanNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewPlanResponse(*plan))
}
