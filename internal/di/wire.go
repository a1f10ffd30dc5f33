//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/elysenoe925-creator/NTS-PROJECT/internal/handler/stdio"
	"github.com/elysenoe925-creator/NTS-PROJECT/pkg/config"
	"github.com/elysenoe925-creator/NTS-PROJECT/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideRegistry,
		ProvideMetrics,

		// Infrastructure clients
		ProvideRedisClient,
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Repositories and caches
		ProvideResultCache,
		ProvideSalesStore,
		ProvideJobQueue,

		// Use cases
		ProvideBatchForecaster,
		ProvideSKUForecaster,
		ProvideJobService,

		// Transports
		ProvideRateLimiter,
		ProvideHTTPHandler,
		ProvideHTTPServer,
		ProvideKafkaConsumer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}

// InitializeStdinRunner wires the one-shot batch runner without infrastructure.
func InitializeStdinRunner(cfg *config.Config) (*stdio.Runner, error) {
	wire.Build(
		ProvideLogger,
		ProvideRegistry,
		ProvideMetrics,
		ProvideLocalCache,
		ProvideBatchForecaster,
		ProvideStdinRunner,
	)
	return &stdio.Runner{}, nil
}
