package main

import (
	"context"
	"fmt"
	"os"

	"github.com/GlebRadaev/novafunded/internal/app"
	"github.com/GlebRadaev/novafunded/internal/config"
	"github.com/GlebRadaev/novafunded/internal/domain"
	"github.com/GlebRadaev/novafunded/internal/lock"
	"github.com/GlebRadaev/novafunded/internal/notify"
	"github.com/GlebRadaev/novafunded/internal/pg"
	"github.com/GlebRadaev/novafunded/internal/repo"
	"github.com/GlebRadaev/novafunded/internal/service"
	"github.com/GlebRadaev/novafunded/internal/service/paymentservice"
	"github.com/GlebRadaev/novafunded/pkg/logger"
)

var Version = "dev"

// Admin is the part of the admin service the CLI drives.
type Admin interface {
	GrantAdmin(ctx context.Context, login string) (*domain.User, error)
	InconsistentPayments(ctx context.Context) ([]domain.PaymentView, error)
	ProvisionChallenge(ctx context.Context, paymentID string) (*domain.UserChallenge, error)
}

type env struct {
	cfg     *config.Config
	migrate func(ctx context.Context, cfg *config.Config) (int64, error)
	admin   func(ctx context.Context, cfg *config.Config) (Admin, func(), error)
}

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rt := &env{
		cfg:     cfg,
		migrate: migrate,
		admin:   openAdmin,
	}
	if err := newRootCmd(rt).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func migrate(ctx context.Context, cfg *config.Config) (int64, error) {
	if err := logger.InitLogger(cfg); err != nil {
		return 0, fmt.Errorf("can't init logger: %w", err)
	}
	pool, err := app.GetPgxpool(ctx, cfg)
	if err != nil {
		return 0, fmt.Errorf("can't connect to database: %w", err)
	}
	defer pool.Close()
	return pg.RunMigrations(ctx, pool)
}

func openAdmin(ctx context.Context, cfg *config.Config) (Admin, func(), error) {
	if err := logger.InitLogger(cfg); err != nil {
		return nil, nil, fmt.Errorf("can't init logger: %w", err)
	}
	pool, err := app.GetPgxpool(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("can't connect to database: %w", err)
	}

	repos := repo.New(pg.New(pool), pg.NewTXManager(pool))
	services := service.New(repos, service.Deps{
		Locker: lock.NewLocalLocker(),
		Hub:    notify.NewHub(),
		Payments: paymentservice.Settings{
			WalletAddress: cfg.ReceivingWallet,
			Currency:      cfg.TokenSymbol,
		},
	})
	return services.Admin, pool.Close, nil
}
