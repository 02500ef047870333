package main

import (
	"context"
	"log/slog"
	"os"

	"checklist/config"
	"checklist/internal/delivery"
	"checklist/internal/delivery/api"
	"checklist/internal/delivery/api/middleware"
	"checklist/internal/delivery/api/router/handler"
	"checklist/internal/domain/lifecycle"
	"checklist/internal/domain/repository"
	"checklist/internal/domain/service"
	"checklist/internal/infra/auth"
	"checklist/internal/infra/auth/google"
	logs "checklist/internal/infra/log"
	"checklist/internal/infra/metrics"
	"checklist/internal/infra/persistence/memory"
	"checklist/internal/infra/persistence/postgres"
	"checklist/internal/usecase"
	"checklist/internal/usecase/impl"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			seedAdmin,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		metrics.NewRegistry,
		func(reg *prometheus.Registry) prometheus.Registerer { return reg },
		func(reg *prometheus.Registry) prometheus.Gatherer { return reg },
	)
}

type repoParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// newIdentityRepository selects the store adapter named by store.driver.
func newIdentityRepository(params repoParams) (repository.IdentityRepository, error) {
	if params.Config.Store.Driver == config.StoreDriverMemory {
		params.Logger.Warn("Using the in-memory identity store; identities are lost on restart")

		return memory.NewIdentityRepository(), nil
	}

	db, err := postgres.New(postgres.Params{
		Lifecycle: params.Lifecycle,
		Config:    params.Config,
		Logger:    params.Logger,
	})
	if err != nil {
		return nil, err
	}

	return postgres.NewIdentityRepository(db), nil
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newIdentityRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptPolicy,
			auth.NewSessionTokenService,
			google.NewOAuthService,
			google.NewOneTapVerifier,
			fx.Annotate(
				metrics.NewCollector,
				fx.As(new(service.AuthMetrics)),
			),
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewIdentityResolver,
			impl.NewAuthService,
			impl.NewAccessGuard,
			impl.NewAdminService,
			impl.NewBootstrapper,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewSessionCookies,
			middleware.NewAuthMiddleware,
			middleware.NewRateLimiter,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewIdentityHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// seedAdmin runs after the store hooks (ping, migrations) registered before it.
func seedAdmin(lc fx.Lifecycle, bootstrapper usecase.Bootstrapper) {
	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			return errors.Wrap(bootstrapper.SeedAdmin(ctx), "failed to seed administrator")
		},
	})
}

// startServer begins serving once every earlier start hook has succeeded.
func startServer(ctx context.Context, params startServerParams) {
	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for _, delivery := range params.Deliveries {
				go func() {
					if err := delivery.Serve(ctx); err != nil {
						slog.Error("Failed to start server", slog.Any("error", err))
						os.Exit(1)
					}
				}()
			}

			return nil
		},
	})
}
