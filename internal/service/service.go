package service

import (
	"time"

	"github.com/GlebRadaev/novafunded/internal/handlers/admin"
	"github.com/GlebRadaev/novafunded/internal/handlers/auth"
	"github.com/GlebRadaev/novafunded/internal/handlers/challenges"
	"github.com/GlebRadaev/novafunded/internal/handlers/notifications"
	"github.com/GlebRadaev/novafunded/internal/handlers/payments"
	"github.com/GlebRadaev/novafunded/internal/handlers/plans"
	"github.com/GlebRadaev/novafunded/internal/lock"
	"github.com/GlebRadaev/novafunded/internal/notify"
	"github.com/GlebRadaev/novafunded/internal/repo"
	"github.com/GlebRadaev/novafunded/internal/service/adminservice"
	"github.com/GlebRadaev/novafunded/internal/service/authservice"
	"github.com/GlebRadaev/novafunded/internal/service/challengeservice"
	"github.com/GlebRadaev/novafunded/internal/service/paymentservice"
	"github.com/GlebRadaev/novafunded/internal/service/planservice"
	"github.com/GlebRadaev/novafunded/internal/verifier"
	pkgauth "github.com/GlebRadaev/novafunded/pkg/auth"
)

// Deps are the collaborators built outside the database layer.
type Deps struct {
	JWT      pkgauth.JWTServiceInterface
	TokenTTL time.Duration
	// BcryptCost of zero means bcrypt.DefaultCost.
	BcryptCost int
	// PlanCache may be nil.
	PlanCache planservice.Cache
	Verifier  verifier.Service
	Locker    lock.Locker
	Hub       *notify.Hub
	Payments  paymentservice.Settings
}

type Services struct {
	AuthService         auth.Service
	PlanService         plans.Service
	PaymentService      payments.Service
	ChallengeService    challenges.Service
	NotificationService notifications.Service
	AdminService        admin.Service
	Roles               pkgauth.RoleSource

	// Payments and Admin are used by the reconciler and the CLI.
	Payments *paymentservice.Service
	Admin    *adminservice.Service
}

func New(repo *repo.Repositories, deps Deps) *Services {
	authService := authservice.New(repo.UserRepo, pkgauth.NewHashService(deps.BcryptCost), deps.JWT, deps.TokenTTL)
	planService := planservice.New(repo.PlanRepo, deps.PlanCache)
	paymentService := paymentservice.New(
		repo.PaymentRepo,
		repo.ChallengeRepo,
		repo.UserRepo,
		repo.PlanRepo,
		repo.TXManager,
		deps.Verifier,
		deps.Locker,
		deps.Hub,
		deps.Payments,
	)
	challengeService := challengeservice.New(repo.ChallengeRepo)
	adminService := adminservice.New(repo.UserRepo, repo.PaymentRepo, repo.ChallengeRepo, paymentService, planService, deps.Hub)

	return &Services{
		AuthService:         authService,
		PlanService:         planService,
		PaymentService:      paymentService,
		ChallengeService:    challengeService,
		NotificationService: deps.Hub,
		AdminService:        adminService,
		Roles:               authService,
		Payments:            paymentService,
		Admin:               adminService,
	}
}
