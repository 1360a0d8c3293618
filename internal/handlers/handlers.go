package handlers

import (
	"net/http"

	_ "github.com/GlebRadaev/novafunded/docs"
	adminhandlers "github.com/GlebRadaev/novafunded/internal/handlers/admin"
	authhandlers "github.com/GlebRadaev/novafunded/internal/handlers/auth"
	challengehandlers "github.com/GlebRadaev/novafunded/internal/handlers/challenges"
	notificationhandlers "github.com/GlebRadaev/novafunded/internal/handlers/notifications"
	paymenthandlers "github.com/GlebRadaev/novafunded/internal/handlers/payments"
	planhandlers "github.com/GlebRadaev/novafunded/internal/handlers/plans"
	"github.com/GlebRadaev/novafunded/internal/service"
	"github.com/GlebRadaev/novafunded/pkg/auth"
	"github.com/GlebRadaev/novafunded/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type PlanHandler interface {
	GetPlans(w http.ResponseWriter, r *http.Request)
	GetPlan(w http.ResponseWriter, r *http.Request)
}

type PaymentHandler interface {
	CreatePayment(w http.ResponseWriter, r *http.Request)
	VerifyPayment(w http.ResponseWriter, r *http.Request)
	GetPayments(w http.ResponseWriter, r *http.Request)
}

type ChallengeHandler interface {
	GetChallenges(w http.ResponseWriter, r *http.Request)
	GetChallenge(w http.ResponseWriter, r *http.Request)
	GetTradingHistory(w http.ResponseWriter, r *http.Request)
}

type NotificationHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	GetStats(w http.ResponseWriter, r *http.Request)
	GetPayments(w http.ResponseWriter, r *http.Request)
	GetInconsistentPayments(w http.ResponseWriter, r *http.Request)
	UpdatePaymentStatus(w http.ResponseWriter, r *http.Request)
	ProvisionChallenge(w http.ResponseWriter, r *http.Request)
	GetChallenges(w http.ResponseWriter, r *http.Request)
	UpdateChallengeStatus(w http.ResponseWriter, r *http.Request)
	GetUsers(w http.ResponseWriter, r *http.Request)
	UpdateUserRole(w http.ResponseWriter, r *http.Request)
	GetPlans(w http.ResponseWriter, r *http.Request)
	CreatePlan(w http.ResponseWriter, r *http.Request)
	UpdatePlan(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler         AuthHandler
	PlanHandler         PlanHandler
	PaymentHandler      PaymentHandler
	ChallengeHandler    ChallengeHandler
	NotificationHandler NotificationHandler
	AdminHandler        AdminHandler

	jwtService  auth.JWTServiceInterface
	roles       auth.RoleSource
	corsOrigins []string
}

func New(s *service.Services, jwtService auth.JWTServiceInterface, corsOrigins []string) *Handlers {
	return &Handlers{
		AuthHandler:         authhandlers.New(s.AuthService),
		PlanHandler:         planhandlers.New(s.PlanService),
		PaymentHandler:      paymenthandlers.New(s.PaymentService),
		ChallengeHandler:    challengehandlers.New(s.ChallengeService),
		NotificationHandler: notificationhandlers.New(s.NotificationService, corsOrigins),
		AdminHandler:        adminhandlers.New(s.AdminService),
		jwtService:          jwtService,
		roles:               s.Roles,
		corsOrigins:         corsOrigins,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		logger.RequestLogger(),
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins: h.corsOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			ExposedHeaders: []string{"Authorization"},
			MaxAge:         300,
		}),
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api/plans", func(r chi.Router) {
		r.Get("/", h.PlanHandler.GetPlans)
		r.Get("/{id}", h.PlanHandler.GetPlan)
	})
	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware(h.jwtService))
			r.Route("/payments", func(r chi.Router) {
				r.Post("/", h.PaymentHandler.CreatePayment)
				r.Get("/", h.PaymentHandler.GetPayments)
				r.Post("/verify", h.PaymentHandler.VerifyPayment)
			})
			r.Route("/challenges", func(r chi.Router) {
				r.Get("/", h.ChallengeHandler.GetChallenges)
				r.Get("/{id}", h.ChallengeHandler.GetChallenge)
			})
			r.Get("/trading-history", h.ChallengeHandler.GetTradingHistory)
		})
		r.Group(func(r chi.Router) {
			r.Use(auth.QueryTokenMiddleware(h.jwtService))
			r.Get("/notifications/ws", h.NotificationHandler.Stream)
		})
	})
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(auth.AuthMiddleware(h.jwtService), auth.RequireAdmin(h.roles))
		r.Get("/stats", h.AdminHandler.GetStats)
		r.Route("/payments", func(r chi.Router) {
			r.Get("/", h.AdminHandler.GetPayments)
			r.Get("/inconsistent", h.AdminHandler.GetInconsistentPayments)
			r.Patch("/{id}/status", h.AdminHandler.UpdatePaymentStatus)
			r.Post("/{id}/provision", h.AdminHandler.ProvisionChallenge)
		})
		r.Route("/challenges", func(r chi.Router) {
			r.Get("/", h.AdminHandler.GetChallenges)
			r.Patch("/{id}/status", h.AdminHandler.UpdateChallengeStatus)
		})
		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.AdminHandler.GetUsers)
			r.Patch("/{id}/role", h.AdminHandler.UpdateUserRole)
		})
		r.Route("/plans", func(r chi.Router) {
			r.Get("/", h.AdminHandler.GetPlans)
			r.Post("/", h.AdminHandler.CreatePlan)
			r.Put("/{id}", h.AdminHandler.UpdatePlan)
		})
	})

	return r
}
