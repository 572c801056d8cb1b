package main

import (
	"context"
	"log/slog"
	"os"

	"fieldops/config"
	"fieldops/internal/delivery"
	"fieldops/internal/delivery/http"
	"fieldops/internal/delivery/http/middleware"
	"fieldops/internal/delivery/http/router/handler"
	"fieldops/internal/delivery/worker"
	workerhandler "fieldops/internal/delivery/worker/handler"
	"fieldops/internal/domain/service"
	"fieldops/internal/errors"
	"fieldops/internal/infra/auth"
	logs "fieldops/internal/infra/log"
	"fieldops/internal/infra/notification"
	"fieldops/internal/infra/persistence"
	"fieldops/internal/infra/pubsub"
	"fieldops/internal/realtime"
	"fieldops/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRealtime(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			persistence.New,
		),
		pubsub.Module,
	)
}

func injectRealtime() fx.Option {
	return fx.Options(
		fx.Provide(
			newRegistry,
			newPresenceBroadcaster,
			fx.Annotate(
				newDispatcher,
				fx.As(new(realtime.Fanout)),
				fx.As(new(workerhandler.LocalDeliverer)),
			),
		),
	)
}

// newRegistry creates the connection registry and runs its grace reaper for
// the lifetime of the app.
func newRegistry(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) *realtime.Registry {
	registry := realtime.NewRegistry(cfg.Realtime.GraceTimeout, logger)

	reaperCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go registry.Run(reaperCtx)

			return nil
		},
		OnStop: func(context.Context) error {
			cancel()

			return nil
		},
	})

	return registry
}

func newPresenceBroadcaster(lc fx.Lifecycle, registry *realtime.Registry, cfg *config.Config, logger *slog.Logger) *realtime.PresenceBroadcaster {
	presence := realtime.NewPresenceBroadcaster(registry, cfg.Realtime.PresenceDebounce, logger)
	lc.Append(fx.StopHook(presence.Stop))

	return presence
}

func newDispatcher(registry *realtime.Registry, publisher service.EventPublisher, logger *slog.Logger) *realtime.Dispatcher {
	return realtime.NewDispatcher(registry, publisher, logger)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			newFirebaseService,
		),
	)
}

// newFirebaseService creates a Firebase service with dependency injection
func newFirebaseService(ctx context.Context, cfg *config.Config) (service.PushService, error) {
	if cfg.Firebase == nil {
		return nil, nil // Firebase is optional
	}

	svc, err := notification.NewFirebaseService(ctx, cfg.Firebase.CredentialsPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Firebase service")
	}

	return svc, nil
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewDiscountService,
			impl.NewNotificationService,
			impl.NewLocationService,
			impl.NewDeviceService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewDiscountHandler,
			handler.NewNotificationHandler,
			handler.NewDeviceHandler,
			handler.NewPresenceHandler,
			handler.NewRealtimeHandler,
			workerhandler.NewPushHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
