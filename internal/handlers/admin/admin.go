package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/novafunded/internal/domain"
	"github.com/GlebRadaev/novafunded/internal/dto"
	"github.com/GlebRadaev/novafunded/internal/service/adminservice"
	"github.com/GlebRadaev/novafunded/internal/service/challengeservice"
	"github.com/GlebRadaev/novafunded/internal/service/paymentservice"
	"github.com/GlebRadaev/novafunded/internal/service/planservice"
	"github.com/GlebRadaev/novafunded/pkg/utils"
	"github.com/GlebRadaev/novafunded/pkg/validate"
	"github.com/go-chi/chi/v5"
)

//go:generate mockgen -source=admin.go -destination=mock_admin.go -package=admin

type Service interface {
	Stats(ctx context.Context) (*domain.Stats, error)
	ListPayments(ctx context.Context) ([]domain.PaymentView, error)
	InconsistentPayments(ctx context.Context) ([]domain.PaymentView, error)
	ForcePaymentStatus(ctx context.Context, paymentID, status, hash string) (*domain.Payment, error)
	ProvisionChallenge(ctx context.Context, paymentID string) (*domain.UserChallenge, error)
	ListChallenges(ctx context.Context) ([]domain.ChallengeView, error)
	UpdateChallengeStatus(ctx context.Context, challengeID int, status string) (*domain.ChallengeView, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	SetUserRole(ctx context.Context, userID int, role string) error
	ListPlans(ctx context.Context) ([]domain.TradingPlan, error)
	CreatePlan(ctx context.Context, plan *domain.TradingPlan) (*domain.TradingPlan, error)
	UpdatePlan(ctx context.Context, id int, plan *domain.TradingPlan) (*domain.TradingPlan, error)
}

type AdminHandler struct {
	adminService Service
}

func New(adminService Service) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, paymentservice.ErrPaymentNotFound),
		errors.Is(err, paymentservice.ErrUserNotFound),
		errors.Is(err, challengeservice.ErrChallengeNotFound),
		errors.Is(err, planservice.ErrPlanNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, paymentservice.ErrInvalidStatusChange),
		errors.Is(err, planservice.ErrInvalidPlan),
		errors.Is(err, adminservice.ErrInvalidRole),
		errors.Is(err, adminservice.ErrInvalidChallengeStatus):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, paymentservice.ErrConflict):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decode(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithErrorDetails(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}
	return true
}

func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// GetStats godoc
//
//	@Summary	Platform totals
//	@Tags		Admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.StatsResponseDTO
//	@Failure	403	{object}	utils.Response	"Admin access required"
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/admin/stats [get]
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.Stats(r.Context())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewStatsResponse(stats))
}

// GetPayments godoc
//
//	@Summary	All payments
//	@Tags		Admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		dto.PaymentResponseDTO
//	@Failure	403	{object}	utils.Response	"Admin access required"
//	@Router		/api/admin/payments [get]
func (h *AdminHandler) GetPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.adminService.ListPayments(r.Context())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewPaymentResponses(payments, true))
}

// GetInconsistentPayments godoc
//
//	@Summary	Confirmed payments without a challenge
//	@Tags		Admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		dto.PaymentResponseDTO
//	@Failure	403	{object}	utils.Response	"Admin access required"
//	@Router		/api/admin/payments/inconsistent [get]
func (h *AdminHandler) GetInconsistentPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.adminService.InconsistentPayments(r.Context())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewPaymentResponses(payments, true))
}

// UpdatePaymentStatus godoc
//
//	@Summary	Override a payment status
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path	string								true	"Payment ID"
//	@Param		request	body	dto.UpdatePaymentStatusRequestDTO	true	"New status"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.PaymentStatusResponseDTO
//	@Failure	400	{object}	utils.Response	"Invalid status change"
//	@Failure	404	{object}	utils.Response	"Payment not found"
//	@Failure	409	{object}	utils.Response	"Transaction hash already used"
//	@Router		/api/admin/payments/{id}/status [patch]
func (h *AdminHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePaymentStatusRequestDTO
	if !decode(w, r, &req) {
		return
	}
	payment, err := h.adminService.ForcePaymentStatus(r.Context(), chi.URLParam(r, "id"), req.Status, req.TransactionHash)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewPaymentStatusResponse(payment))
}

// ProvisionChallenge godoc
//
//	@Summary	Create the missing challenge of a confirmed payment
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path	string	true	"Payment ID"
//	@Security	BearerAuth
//	@Success	201	{object}	utils.Response
//	@Failure	400	{object}	utils.Response	"Payment is not confirmed"
//	@Failure	404	{object}	utils.Response	"Payment not found"
//	@Failure	409	{object}	utils.Response	"Challenge already exists"
//	@Router		/api/admin/payments/{id}/provision [post]
func (h *AdminHandler) ProvisionChallenge(w http.ResponseWriter, r *http.Request) {
	challenge, err := h.adminService.ProvisionChallenge(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]int{"challenge_id": challenge.ID})
}

// GetChallenges godoc
//
//	@Summary	All challenges
//	@Tags		Admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		dto.ChallengeResponseDTO
//	@Failure	403	{object}	utils.Response	"Admin access required"
//	@Router		/api/admin/challenges [get]
func (h *AdminHandler) GetChallenges(w http.ResponseWriter, r *http.Request) {
	challenges, err := h.adminService.ListChallenges(r.Context())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewChallengeResponses(challenges, true))
}

// UpdateChallengeStatus godoc
//
//	@Summary	Change a challenge status
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path	int									true	"Challenge ID"
//	@Param		request	body	dto.UpdateChallengeStatusRequestDTO	true	"New status"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.ChallengeResponseDTO
//	@Failure	400	{object}	utils.Response	"Invalid status"
//	@Failure	404	{object}	utils.Response	"Challenge not found"
//	@Router		/api/admin/challenges/{id}/status [patch]
func (h *AdminHandler) UpdateChallengeStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	var req dto.UpdateChallengeStatusRequestDTO
	if !decode(w, r, &req) {
		return
	}
	challenge, err := h.adminService.UpdateChallengeStatus(r.Context(), id, req.Status)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewChallengeResponse(*challenge, true))
}

// GetUsers godoc
//
//	@Summary	All users
//	@Tags		Admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		dto.UserResponseDTO
//	@Failure	403	{object}	utils.Response	"Admin access required"
//	@Router		/api/admin/users [get]
func (h *AdminHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewUserResponses(users))
}

// UpdateUserRole godoc
//
//	@Summary	Change a user role
//	@Tags		Admin
//	@Accept		json
//	@Param		id		path	int							true	"User ID"
//	@Param		request	body	dto.UpdateUserRoleRequestDTO	true	"New role"
//	@Security	BearerAuth
//	@Success	204
//	@Failure	400	{object}	utils.Response	"Invalid role"
//	@Failure	404	{object}	utils.Response	"User not found"
//	@Router		/api/admin/users/{id}/role [patch]
func (h *AdminHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserRoleRequestDTO
	if !decode(w, r, &req) {
		return
	}
	if err := h.adminService.SetUserRole(r.Context(), id, req.Role); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPlans godoc
//
//	@Summary	All plans including inactive ones
//	@Tags		Admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		dto.PlanResponseDTO
//	@Router		/api/admin/plans [get]
func (h *AdminHandler) GetPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.adminService.ListPlans(r.Context())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewPlanResponses(plans))
}

// CreatePlan godoc
//
//	@Summary	Create a plan
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		request	body	dto.PlanRequestDTO	true	"Plan"
//	@Security	BearerAuth
//	@Success	201	{object}	dto.PlanResponseDTO
//	@Failure	400	{object}	utils.Response	"Invalid plan"
//	@Router		/api/admin/plans [post]
func (h *AdminHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequestDTO
	if !decode(w, r, &req) {
		return
	}
	plan, err := h.adminService.CreatePlan(r.Context(), req.ToDomain())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewPlanResponse(*plan))
}

// UpdatePlan godoc
//
//	@Summary	Replace a plan
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path	int					true	"Plan ID"
//	@Param		request	body	dto.PlanRequestDTO	true	"Plan"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.PlanResponseDTO
//	@Failure	400	{object}	utils.Response	"Invalid plan"
//	@Failure	404	{object}	utils.Response	"Plan not found"
//	@Router		/api/admin/plans/{id} [put]
func (h *AdminHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	var req dto.PlanRequestDTO
	if !decode(w, r, &req) {
		return
	}
	plan, err := h.adminService.UpdatePlan(r.Context(), id, req.ToDomain())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewPlanResponse(*plan))
}
