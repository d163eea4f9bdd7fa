package di

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"Commander/internal/domain/repository"
	domsvc "Commander/internal/domain/service"
	"Commander/internal/events"
	"Commander/internal/handler/api"
	mid "Commander/internal/middleware"
	internalrepo "Commander/internal/repository"
	icache "Commander/internal/service/cache"
	"Commander/internal/services/marketdata"
	"Commander/internal/usecase"
	"Commander/pkg/cache"
	pkgch "Commander/pkg/clickhouse"
	"Commander/pkg/config"
	xhttp "Commander/pkg/http"
	pkgkafka "Commander/pkg/kafka"
	applogger "Commander/pkg/logger"
	"Commander/pkg/metrics"
	"Commander/pkg/queue"
	"Commander/pkg/server"

	"github.com/labstack/echo/v4"
	kafkago "github.com/segmentio/kafka-go"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the domain cache, Redis-backed when enabled.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}
	host, portStr, err := net.SplitHostPort(cfg.Redis.Addr)
	if err != nil {
		return nil, fmt.Errorf("redis addr: %w", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("redis port: %w", err)
	}
	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(host),
		cache.WithRedisPort(port),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
	)
	if err != nil {
		return nil, err
	}
	if cfg.Redis.Layered {
		return cache.NewLayeredCache(rc), nil
	}
	return rc, nil
}

// redisBackend unwraps the Redis layer from the active cache, if any.
func redisBackend(c cache.Service) *cache.RedisCache {
	switch v := c.(type) {
	case *cache.RedisCache:
		return v
	case *cache.LayeredCache:
		return v.Redis()
	default:
		return nil
	}
}

// ProvideClickHouseClient creates a ClickHouse client and ensures the
// scan history schema exists.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmts := []string{
		"CREATE DATABASE IF NOT EXISTS " + cfg.ClickHouse.Database,
		fmt.Sprintf(internalrepo.ScanHistorySchema, cfg.ClickHouse.Database),
	}
	if err := client.InitSchema(ctx, stmts); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideScanStorage creates the ClickHouse scan history repository.
func ProvideScanStorage(chClient *pkgch.Client, cfg *config.Config) repository.Storage {
	return internalrepo.NewClickHouseScanHistory(chClient.DB(), cfg.ClickHouse.Database+".scan_history")
}

// ProvideScanPublisher creates the Kafka scan record publisher.
func ProvideScanPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	return internalrepo.NewKafkaScanPublisher(producer, cfg.Kafka.Topic)
}

// ProvideJournal creates the Redis-backed trade journal.
func ProvideJournal(c cache.Service) repository.Journal {
	return internalrepo.NewRedisJournal(c)
}

// ProvideKafkaScansHandler registers the handler for the scan topic.
func ProvideKafkaScansHandler(store repository.Storage, m repository.Metrics, cfg *config.Config) *usecase.KafkaScansHandler {
	return usecase.NewKafkaScansHandler(cfg.Kafka.Topic, store, m)
}

// ProvideEventHorizon builds the macro event calendar.
func ProvideEventHorizon(cfg *config.Config) (*events.Horizon, error) {
	return events.NewHorizon(cfg.Events.FOMCDates, cfg.Events.Blackout)
}

// ProvideMarketDataProvider creates the market data adapter.
func ProvideMarketDataProvider(cfg *config.Config, c cache.Service, lgr *applogger.Logger) domsvc.MarketDataProvider {
	base := marketdata.NewHTTPProviderBase(cfg.Providers.MarketDataURL, cfg.Providers.APIKey, cfg.Providers.Timeout)
	return marketdata.NewHTTPMarketDataProvider(base, c, cfg.Providers.CacheTTL.Snapshot, lgr)
}

// ProvideMacroProvider creates the macro context adapter.
func ProvideMacroProvider(cfg *config.Config, horizon *events.Horizon, lgr *applogger.Logger) domsvc.MacroProvider {
	base := marketdata.NewHTTPProviderBase(cfg.Providers.MacroURL, cfg.Providers.APIKey, cfg.Providers.Timeout)
	return marketdata.NewHTTPMacroProvider(base, horizon, lgr)
}

// ProvideDealerFlowProvider creates the dealer positioning adapter.
func ProvideDealerFlowProvider(cfg *config.Config, lgr *applogger.Logger) domsvc.DealerFlowProvider {
	base := marketdata.NewHTTPProviderBase(cfg.Providers.DealerFlowURL, cfg.Providers.APIKey, cfg.Providers.Timeout)
	return marketdata.NewHTTPDealerFlowProvider(base, lgr)
}

// ProvideQuoteStream creates the websocket quote stream.
func ProvideQuoteStream(cfg *config.Config, lgr *applogger.Logger) repository.QuoteStream {
	return marketdata.NewStreamClient(
		cfg.Providers.APIKey,
		cfg.Providers.StreamURL,
		cfg.Providers.StreamSymbols,
		cfg.Providers.ReconnectDelay,
		cfg.Providers.PingInterval,
		lgr,
	)
}

// ProvideResultProcessor creates the scan result processor.
func ProvideResultProcessor(
	pub repository.Publisher,
	store repository.Storage,
	m repository.Metrics,
	lgr *applogger.Logger,
	cfg *config.Config,
) *usecase.ResultProcessor {
	return usecase.NewResultProcessor(pub, store, m, lgr, cfg.Backend.Type)
}

// ProvideScanner creates the scanner use case.
func ProvideScanner(
	market domsvc.MarketDataProvider,
	macro domsvc.MacroProvider,
	proc *usecase.ResultProcessor,
	m repository.Metrics,
	lgr *applogger.Logger,
	cfg *config.Config,
) *usecase.ScannerUseCase {
	return usecase.NewScannerUseCase(market, macro, proc, m, lgr, cfg.Scanner.Watchlists, cfg.Scanner.BatchSize)
}

// systemClock implements the domain Clock with wall time.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// ProvideClock returns the wall clock.
func ProvideClock() domsvc.Clock { return systemClock{} }

// ProvideDeskUseCase creates the desk evaluation use case.
func ProvideDeskUseCase(
	dealer domsvc.DealerFlowProvider,
	macro domsvc.MacroProvider,
	clock domsvc.Clock,
	m repository.Metrics,
	lgr *applogger.Logger,
) *usecase.DeskUseCase {
	return usecase.NewDeskUseCase(dealer, macro, clock, m, lgr)
}

// ProvideJournalUseCase creates the journal use case.
func ProvideJournalUseCase(journal repository.Journal, lgr *applogger.Logger) *usecase.JournalUseCase {
	return usecase.NewJournalUseCase(journal, lgr)
}

// ProvideTradeLabUseCase creates the single-position analyzer.
func ProvideTradeLabUseCase(lgr *applogger.Logger) *usecase.TradeLabUseCase {
	return usecase.NewTradeLabUseCase(lgr)
}

// ProvideQuoteCollector wires the quote stream through the throttling
// pipeline into the snapshot cache.
func ProvideQuoteCollector(
	stream repository.QuoteStream,
	c cache.Service,
	m repository.Metrics,
	lgr *applogger.Logger,
	cfg *config.Config,
) *usecase.QuoteCollector {
	sink := usecase.NewCacheQuoteSink(c, cfg.Providers.CacheTTL.Snapshot)
	pipe := mid.NewQuotePipeline(sink, m,
		mid.WithMaxRPS(50),
		mid.WithBufferSize(2000),
	)
	return usecase.NewQuoteCollector(stream, pipe, m, lgr)
}

// apiHandler composes the per-concern route handlers into one.
type apiHandler struct {
	handlers []xhttp.Handler
	storage  repository.Storage
	cache    cache.Service
}

func (h *apiHandler) RegisterRoutes(e *echo.Echo) {
	for _, sub := range h.handlers {
		sub.RegisterRoutes(e)
	}
	e.GET("/health", h.health)
}

func (h *apiHandler) health(c echo.Context) error {
	ctx := c.Request().Context()
	status := map[string]string{"status": "ok"}
	if h.storage != nil {
		if err := h.storage.Health(ctx); err != nil {
			status["status"] = "degraded"
			status["clickhouse"] = err.Error()
		}
	}
	if h.cache != nil {
		if _, err := h.cache.Exists(ctx, "health"); err != nil {
			status["status"] = "degraded"
			status["cache"] = err.Error()
		}
	}
	if status["status"] != "ok" {
		return c.JSON(503, status)
	}
	return c.JSON(200, status)
}

// ProvideHTTPHandler builds the full route handler.
func ProvideHTTPHandler(
	lgr *applogger.Logger,
	scanner *usecase.ScannerUseCase,
	desk *usecase.DeskUseCase,
	lab *usecase.TradeLabUseCase,
	journal *usecase.JournalUseCase,
	storage repository.Storage,
	c cache.Service,
) xhttp.Handler {
	scan := api.NewScanHandler(lgr, scanner)
	if rc := redisBackend(c); rc != nil {
		scan.SetCache(icache.NewRedisCacheFromClient(rc.Client()))
	} else {
		scan.SetCache(icache.NewTTLCache())
	}

	return &apiHandler{
		handlers: []xhttp.Handler{
			scan,
			api.NewDeskHandler(lgr, desk),
			api.NewLabHandler(lgr, lab),
			api.NewJournalHandler(lgr, journal),
			api.NewHistoryHandler(lgr, storage),
		},
		storage: storage,
		cache:   c,
	}
}

// ProvideApp assembles the application server.
// kafkaLogPublisher adapts the Kafka producer to the log collector's
// publisher interface.
type kafkaLogPublisher struct {
	producer *pkgkafka.Producer
}

func (p kafkaLogPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return p.producer.Publish(ctx, topic, nil, payload)
}

func ProvideApp(
	cfg *config.Config,
	lgr *applogger.Logger,
	collector *usecase.QuoteCollector,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaScansHandler,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
	proc *usecase.ResultProcessor,
	scanner *usecase.ScannerUseCase,
	c cache.Service,
	handler xhttp.Handler,
) *server.App {
	// Scan records flow through Kafka only when it is the active backend.
	if cfg.Backend.Type != "kafka" {
		consumer = nil
	}
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.HookFuncs{
			Before: func(ctx context.Context, topic string, km kafkago.Message, data []byte) (context.Context, kafkago.Message, []byte, error) {
				ctx = pkgkafka.WithStartTime(ctx, time.Now())
				return pkgkafka.WithTraceID(ctx, pkgkafka.ExtractTraceID(km)), km, data, nil
			},
			Err: func(ctx context.Context, topic string, km kafkago.Message, data []byte, err error) {
				lgr.Warn("scan record rejected",
					applogger.String("topic", topic),
					applogger.Int("partition", km.Partition),
					applogger.Error(err))
			},
		})
	}

	// Aggregated error logs ride the same broker as scan records.
	if cfg.Backend.Type == "kafka" && producer != nil {
		lgr.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          cfg.Kafka.Topic + ".errors",
			Publisher:      kafkaLogPublisher{producer: producer},
		})
	}

	app := server.New(cfg, lgr, collector, consumer, kh, chClient)
	app.Processor = proc
	app.SetHTTPHandler(handler)

	// Scheduled watchlist scans run over the Redis queue when Redis is up.
	if rc := redisBackend(c); rc != nil {
		names := make([]string, 0, len(cfg.Scanner.Watchlists))
		for name := range cfg.Scanner.Watchlists {
			names = append(names, name)
		}
		job := usecase.NewWatchlistScanJob(scanner, lgr)
		q := queue.NewRedisQueue(lgr, &queue.QueueConfig{Workers: 1, RetryLimit: 2, RetryDelay: 30 * time.Second},
			rc.Client(), queue.ModeProducerConsumer, queue.WithKeyPrefix("commander:queue"))
		q.RegisterJob(job)
		app.SetScheduler(usecase.NewScanScheduler(q, lgr, names, cfg.Scanner.ScheduleInterval), q)
	}

	return app
}
