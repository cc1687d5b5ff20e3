package poller

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rickgao/tn-data/internal/archiver"
	"github.com/rickgao/tn-data/pkg/tnclient"
)

// RecordFetcher fetches records for one stream. Satisfied by
// *tnclient.StreamClient.
type RecordFetcher interface {
	GetRecords(ctx context.Context, streamID string, opts tnclient.GetRecordsOptions) ([]map[string]any, error)
}

// RecordHandler receives fetched records.
type RecordHandler interface {
	HandleRecord(msg archiver.RecordMsg) error
}

// RecordHandlerFunc is a function adapter for RecordHandler.
type RecordHandlerFunc func(archiver.RecordMsg) error

func (f RecordHandlerFunc) HandleRecord(msg archiver.RecordMsg) error {
	return f(msg)
}

// Stream identifies one stream to poll.
type Stream struct {
	ID           string
	DataProvider string // optional hex provider, "" = caller's own context
}

// Config holds poller configuration.
type Config struct {
	Interval    time.Duration // Poll interval (default: 15m)
	Concurrency int           // Max concurrent requests (default: 4)
	Timeout     time.Duration // Per-request timeout (default: 30s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval:    15 * time.Minute,
		Concurrency: 4,
		Timeout:     30 * time.Second,
	}
}

// Poller periodically fetches stream records through the client facade.
type Poller struct {
	cfg     Config
	fetcher RecordFetcher
	streams []Stream
	handler RecordHandler
	logger  *slog.Logger

	// lastDate tracks the newest archived date per stream ID.
	mu       sync.Mutex
	lastDate map[string]string

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Poller.
func New(cfg Config, fetcher RecordFetcher, streams []Stream, handler RecordHandler, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		cfg:      cfg,
		fetcher:  fetcher,
		streams:  streams,
		handler:  handler,
		logger:   logger,
		lastDate: make(map[string]string),
	}
}

// Start begins the polling loop.
func (p *Poller) Start(ctx context.Context) error {
	p.ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(1)
	go p.run()

	p.logger.Info("record poller started",
		"streams", len(p.streams),
		"interval", p.cfg.Interval,
		"concurrency", p.cfg.Concurrency,
	)

	return nil
}

// Stop gracefully shuts down the poller.
func (p *Poller) Stop(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("record poller stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the main polling loop.
func (p *Poller) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	// Poll immediately on start.
	p.pollAll()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.pollAll()
		}
	}
}

// pollAll fetches records for all streams concurrently.
func (p *Poller) pollAll() {
	start := time.Now()

	if len(p.streams) == 0 {
		p.logger.Debug("no streams to poll")
		return
	}

	// Semaphore for bounded concurrency.
	sem := make(chan struct{}, p.cfg.Concurrency)
	var wg sync.WaitGroup
	var fetched, errors atomic.Int64

	for _, stream := range p.streams {
		wg.Add(1)
		go func(s Stream) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-p.ctx.Done():
				return
			}

			n, err := p.pollStream(s)
			if err != nil {
				p.logger.Warn("failed to poll stream",
					"stream_id", s.ID,
					"err", err,
				)
				errors.Add(1)
				return
			}

			fetched.Add(int64(n))
		}(stream)
	}

	wg.Wait()

	p.logger.Info("poll cycle complete",
		"streams", len(p.streams),
		"records", fetched.Load(),
		"errors", errors.Load(),
		"duration", time.Since(start),
	)
}

// pollStream fetches and handles records for a single stream. Returns the
// number of records handled.
func (p *Poller) pollStream(s Stream) (int, error) {
	ctx, cancel := context.WithTimeout(p.ctx, p.cfg.Timeout)
	defer cancel()

	opts := tnclient.GetRecordsOptions{}
	if s.DataProvider != "" {
		opts.DataProvider = tnclient.Str(s.DataProvider)
	}

	p.mu.Lock()
	since := p.lastDate[s.ID]
	p.mu.Unlock()
	if since != "" {
		opts.DateFrom = tnclient.Str(since)
	}

	rows, err := p.fetcher.GetRecords(ctx, s.ID, opts)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	handled := 0
	newest := since

	for _, row := range rows {
		msg, err := rowToMsg(s.ID, row, now)
		if err != nil {
			p.logger.Warn("skipping malformed record",
				"stream_id", s.ID,
				"err", err,
			)
			continue
		}

		if p.handler != nil {
			if err := p.handler.HandleRecord(msg); err != nil {
				return handled, err
			}
		}
		handled++

		if msg.Date > newest {
			newest = msg.Date
		}
	}

	if newest != since {
		p.mu.Lock()
		p.lastDate[s.ID] = newest
		p.mu.Unlock()
	}

	return handled, nil
}

// rowToMsg converts a gateway record row to an archive message. The node
// keys rows by "date" and "value".
func rowToMsg(streamID string, row map[string]any, receivedAt time.Time) (archiver.RecordMsg, error) {
	date, ok := row["date"].(string)
	if !ok {
		return archiver.RecordMsg{}, fmt.Errorf("record missing date field: %v", row)
	}

	var value float64
	switch v := row["value"].(type) {
	case float64:
		value = v
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return archiver.RecordMsg{}, fmt.Errorf("record value %q not numeric: %w", v, err)
		}
		value = parsed
	default:
		return archiver.RecordMsg{}, fmt.Errorf("record value has unsupported type %T", row["value"])
	}

	return archiver.RecordMsg{
		StreamID:   streamID,
		Date:       date,
		Value:      value,
		Source:     "poll",
		ReceivedAt: receivedAt,
	}, nil
}
