package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/GlebRadaev/novafunded/internal/cache"
	"github.com/GlebRadaev/novafunded/internal/config"
	"github.com/GlebRadaev/novafunded/internal/explorer"
	"github.com/GlebRadaev/novafunded/internal/handlers"
	"github.com/GlebRadaev/novafunded/internal/lock"
	"github.com/GlebRadaev/novafunded/internal/notify"
	"github.com/GlebRadaev/novafunded/internal/pg"
	"github.com/GlebRadaev/novafunded/internal/reconcile"
	"github.com/GlebRadaev/novafunded/internal/repo"
	"github.com/GlebRadaev/novafunded/internal/secrets"
	"github.com/GlebRadaev/novafunded/internal/service"
	"github.com/GlebRadaev/novafunded/internal/service/paymentservice"
	"github.com/GlebRadaev/novafunded/internal/service/planservice"
	"github.com/GlebRadaev/novafunded/internal/verifier"
	pkgauth "github.com/GlebRadaev/novafunded/pkg/auth"
	"github.com/GlebRadaev/novafunded/pkg/clients"
	"github.com/GlebRadaev/novafunded/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg        *config.Config
	api        *handlers.Handlers
	srv        *service.Services
	repo       *repo.Repositories
	reconciler *reconcile.Reconciler
	redis      *redis.Client

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("can't read config: %w", err)
	}

	if err := logger.InitLogger(cfg); err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	if err := secrets.Load(ctx, cfg); err != nil {
		return fmt.Errorf("can't load secrets: %w", err)
	}

	pool, err := GetPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if _, err := pg.RunMigrations(ctx, pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)
	conn := pg.New(pool)

	locker, planCache, err := a.setupRedis(ctx, cfg)
	if err != nil {
		return fmt.Errorf("can't connect to redis: %w", err)
	}

	tronExplorer := explorer.New(cfg, clients.NewHTTPClient())
	hub := notify.NewHub()
	jwtService := pkgauth.NewJWTService(cfg.JWTSecret)

	a.cfg = cfg
	a.repo = repo.New(conn, txManager)
	a.srv = service.New(a.repo, service.Deps{
		JWT:        jwtService,
		TokenTTL:   cfg.TokenTTL,
		BcryptCost: cfg.BcryptCost,
		PlanCache:  planCache,
		Verifier:   verifier.New(tronExplorer, cfg.TokenContract, cfg.TokenDecimals),
		Locker:     locker,
		Hub:        hub,
		Payments: paymentservice.Settings{
			WalletAddress: cfg.ReceivingWallet,
			Currency:      cfg.TokenSymbol,
		},
	})
	a.api = handlers.New(a.srv, jwtService, cfg.CORSOrigins)
	a.reconciler = reconcile.New(cfg, a.srv.Payments)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	if err = a.reconciler.Start(ctx); err != nil {
		return fmt.Errorf("can't start reconciler: %w", err)
	}

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func GetPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

// setupRedis falls back to an in-process lock and no plan cache when no
// Redis address is configured.
func (a *Application) setupRedis(ctx context.Context, cfg *config.Config) (lock.Locker, planservice.Cache, error) {
	if cfg.RedisAddress == "" {
		zap.L().Info("redis is not configured, using in-process verification lock")
		return lock.NewLocalLocker(), nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, err
	}
	a.redis = client

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()
		if err := client.Close(); err != nil {
			zap.L().Error("can't close redis client", zap.Error(err))
		}
	}()

	zap.L().Info("connected to redis", zap.String("address", cfg.RedisAddress))
	return lock.NewRedisLocker(client, cfg.VerifyLockTTL), cache.NewPlanCache(client, cfg.PlanCacheTTL), nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
