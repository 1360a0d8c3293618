package repo

import (
	"github.com/GlebRadaev/novafunded/internal/pg"
	challengerepo "github.com/GlebRadaev/novafunded/internal/repo/challenge-repo"
	paymentrepo "github.com/GlebRadaev/novafunded/internal/repo/payment-repo"
	planrepo "github.com/GlebRadaev/novafunded/internal/repo/plan-repo"
	userrepo "github.com/GlebRadaev/novafunded/internal/repo/user-repo"
)

// Repositories are shared by several services, each of which declares the
// narrow interface it needs, so the fields keep their concrete types.
type Repositories struct {
	UserRepo      *userrepo.Repository
	PlanRepo      *planrepo.Repository
	PaymentRepo   *paymentrepo.Repository
	ChallengeRepo *challengerepo.Repository
	TXManager     pg.TXManager
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:      userrepo.New(conn),
		PlanRepo:      planrepo.New(conn),
		PaymentRepo:   paymentrepo.New(conn),
		ChallengeRepo: challengerepo.New(conn),
		TXManager:     txManager,
	}
}
