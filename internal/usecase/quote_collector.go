package usecase

import (
	"context"
	"encoding/json"
	"time"

	"Commander/internal/domain/models"
	drepo "Commander/internal/domain/repository"
	"Commander/pkg/cache"
	"Commander/pkg/logger"
)

// QuoteSink receives quotes from the collector. The quote pipeline and
// the cache writer both satisfy it, so throttling can be layered in
// without the collector knowing.
type QuoteSink interface {
	Process(ctx context.Context, q *models.Quote) error
}

// CacheQuoteSink writes quotes into the snapshot cache so scans see
// near-live prices.
type CacheQuoteSink struct {
	cache cache.Service
	ttl   time.Duration
}

func NewCacheQuoteSink(c cache.Service, ttl time.Duration) *CacheQuoteSink {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CacheQuoteSink{cache: c, ttl: ttl}
}

// Process stores the quote as a JSON string so any cache backend
// round-trips it identically.
func (s *CacheQuoteSink) Process(ctx context.Context, q *models.Quote) error {
	b, err := json.Marshal(q)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, "quote:"+q.Ticker, string(b), s.ttl)
}

var _ QuoteSink = (*CacheQuoteSink)(nil)

// QuoteCollector consumes the streaming quote feed and forwards each
// quote to the configured sink.
type QuoteCollector struct {
	stream  drepo.QuoteStream
	sink    QuoteSink
	metrics drepo.Metrics
	log     *logger.Logger
}

func NewQuoteCollector(stream drepo.QuoteStream, sink QuoteSink, metrics drepo.Metrics, log *logger.Logger) *QuoteCollector {
	return &QuoteCollector{stream: stream, sink: sink, metrics: metrics, log: log}
}

func (c *QuoteCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *QuoteCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	quotes, errs := c.stream.Read(ctx)
	go c.consume(ctx, quotes, errs)
	return nil
}

func (c *QuoteCollector) consume(ctx context.Context, quotes <-chan *models.Quote, errs <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errs:
			if err != nil {
				c.metrics.RecordError("stream")
				if rerr := c.stream.Reconnect(ctx); rerr != nil {
					c.log.Error("quote stream reconnect failed", logger.Error(rerr))
					return
				}
				quotes, errs = c.stream.Read(ctx)
			}
		case q := <-quotes:
			if q == nil {
				continue
			}
			if err := c.sink.Process(ctx, q); err != nil {
				c.metrics.RecordError("quote_sink")
			}
		}
	}
}

func (c *QuoteCollector) Stop() error { return c.stream.Close() }
