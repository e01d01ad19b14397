//go:build wireinject
// +build wireinject

package di

import (
	"BizPulse/pkg/config"
	"BizPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideCache,

		// Repositories
		ProvideDatasetStore,
		ProvideKafkaProducer,
		ProvidePublisher,
		ProvideKafkaConsumer,

		// Use cases
		ProvideSampleGenerator,
		ProvideIngestProcessor,
		ProvideAlertNotifier,
		ProvideAnalyzer,
		ProvideKafkaRecordsHandler,

		// HTTP layer
		ProvideDashboardHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
