// Package reconcile periodically looks for confirmed payments whose challenge
// was never created and, when allowed, creates it.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/GlebRadaev/novafunded/internal/config"
	"github.com/GlebRadaev/novafunded/internal/domain"
	"github.com/GlebRadaev/novafunded/internal/service/paymentservice"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=reconcile.go -destination=mock_reconcile.go -package=reconcile

const workers = 4

type Payments interface {
	Inconsistent(ctx context.Context) ([]domain.PaymentView, error)
	ProvisionChallenge(ctx context.Context, paymentID string) (*domain.UserChallenge, error)
}

type Reconciler struct {
	payments      Payments
	schedule      string
	autoProvision bool
	workerPool    WorkerPoolI
	cron          *cron.Cron

	inFlight sync.Map
}

func New(cfg *config.Config, payments Payments) *Reconciler {
	return &Reconciler{
		payments:      payments,
		schedule:      cfg.ReconcileSchedule,
		autoProvision: cfg.ReconcileAutoProvision,
		workerPool:    NewWorkerPool(workers),
		cron:          cron.New(),
	}
}

// Start registers the run on the schedule and stops it once ctx is done.
func (r *Reconciler) Start(ctx context.Context) error {
	if _, err := r.cron.AddFunc(r.schedule, func() { r.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid reconcile schedule %q: %w", r.schedule, err)
	}
	r.cron.Start()
	zap.L().Info("reconciler started",
		zap.String("schedule", r.schedule),
		zap.Bool("auto_provision", r.autoProvision))

	go func() {
		<-ctx.Done()
		<-r.cron.Stop().Done()
		r.workerPool.Close()
		zap.L().Info("reconciler stopped")
	}()
	return nil
}

// RunOnce reports inconsistent payments and, with auto provisioning on,
// creates their challenges. It returns once every started task finished.
func (r *Reconciler) RunOnce(ctx context.Context) {
	payments, err := r.payments.Inconsistent(ctx)
	if err != nil {
		zap.L().Error("failed to fetch inconsistent payments", zap.Error(err))
		return
	}
	if len(payments) == 0 || !r.autoProvision {
		return
	}

	var g errgroup.Group
	for _, payment := range payments {
		id := payment.ID
		if _, loaded := r.inFlight.LoadOrStore(id, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			done := make(chan error, 1)
			err := r.workerPool.AddTask(ctx, func() error {
				err := r.provision(ctx, id)
				r.inFlight.Delete(id)
				done <- err
				return err
			})
			if err != nil {
				r.inFlight.Delete(id)
				return err
			}
			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("reconcile run finished with errors", zap.Error(err))
	}
}

func (r *Reconciler) provision(ctx context.Context, paymentID string) error {
	challenge, err := r.payments.ProvisionChallenge(ctx, paymentID)
	if errors.Is(err, paymentservice.ErrConflict) {
		zap.L().Info("challenge already provisioned", zap.String("payment_id", paymentID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to provision challenge for payment %s: %w", paymentID, err)
	}
	zap.L().Info("challenge provisioned",
		zap.String("payment_id", paymentID),
		zap.Int("challenge_id", challenge.ID))
	return nil
}
