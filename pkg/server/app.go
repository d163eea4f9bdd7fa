package server

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"Commander/internal/usecase"
	pkgch "Commander/pkg/clickhouse"
	"Commander/pkg/config"
	xhttp "Commander/pkg/http"
	pkgkafka "Commander/pkg/kafka"
	applogger "Commander/pkg/logger"
	"Commander/pkg/queue"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	logger      *applogger.Logger
	collector   *usecase.QuoteCollector
	consumer    *pkgkafka.Consumer
	kh          pkgkafka.MessageHandler
	chClient    *pkgch.Client
	scheduler   *usecase.ScanScheduler
	scanQueue   *queue.RedisQueue
	httpServer  *xhttp.Server
	httpHandler xhttp.Handler

	Processor *usecase.ResultProcessor
}

// New creates a new App instance. Collector, consumer and scheduler are
// optional; nil disables the corresponding background worker.
func New(
	cfg *config.Config,
	lgr *applogger.Logger,
	collector *usecase.QuoteCollector,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:       cfg,
		logger:    lgr,
		collector: collector,
		consumer:  consumer,
		kh:        kh,
		chClient:  chClient,
	}
}

// SetHTTPHandler injects the HTTP route handler.
func (a *App) SetHTTPHandler(h xhttp.Handler) { a.httpHandler = h }

// SetScheduler injects the scheduled-scan publisher and its work queue.
func (a *App) SetScheduler(s *usecase.ScanScheduler, q *queue.RedisQueue) {
	a.scheduler = s
	a.scanQueue = q
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := a.logger

	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if a.collector != nil {
		go func() {
			if err := a.collector.Start(ctx); err != nil {
				l.Error("quote collector error", applogger.Error(err))
			}
		}()
		l.Info("quote collector started", applogger.Strings("symbols", a.cfg.Providers.StreamSymbols))
	}

	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				l.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		l.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	if a.scanQueue != nil {
		if err := a.scanQueue.Start(); err != nil {
			l.Error("scan queue start error", applogger.Error(err))
		}
	}
	if a.scheduler != nil {
		a.scheduler.Start(ctx)
		l.Info("scan scheduler started")
	}

	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	l := a.logger
	if l == nil {
		var err error
		l, err = applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})
		if err != nil {
			log.Printf("failed to create logger: %v", err)
			return err
		}
	}
	l.Info("shutting down...")

	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.scanQueue != nil {
		if err := a.scanQueue.Stop(ctx); err != nil {
			l.Warn("scan queue stop error", applogger.Error(err))
		}
	}

	if a.collector != nil {
		if err := a.collector.Stop(); err != nil {
			l.Warn("collector stop error", applogger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			l.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	if a.Processor != nil {
		if err := a.Processor.Close(); err != nil {
			l.Warn("processor close error", applogger.Error(err))
		}
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	l.Info("shutdown complete")
	if a.logger != nil {
		a.logger.RemoveCollector()
	}
	return nil
}
