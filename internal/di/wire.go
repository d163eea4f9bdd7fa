//go:build wireinject
// +build wireinject

package di

import (
	"Commander/pkg/config"
	"Commander/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,

		// Repositories
		ProvideScanStorage,
		ProvideScanPublisher,
		ProvideJournal,
		ProvideQuoteStream,

		// Providers
		ProvideEventHorizon,
		ProvideMarketDataProvider,
		ProvideMacroProvider,
		ProvideDealerFlowProvider,
		ProvideClock,

		// Use cases
		ProvideResultProcessor,
		ProvideScanner,
		ProvideDeskUseCase,
		ProvideJournalUseCase,
		ProvideTradeLabUseCase,
		ProvideQuoteCollector,
		ProvideKafkaScansHandler,

		// HTTP
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
