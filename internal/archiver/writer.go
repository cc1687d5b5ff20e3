package archiver

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RecordMsg is one stream record on its way to the archive.
type RecordMsg struct {
	StreamID   string
	Date       string // ISO-8601 date
	Value      float64
	Source     string // "poll" or "feed"
	ReceivedAt time.Time
}

// WriterConfig holds batch writer settings.
type WriterConfig struct {
	BatchSize     int
	FlushInterval time.Duration
}

// DefaultWriterConfig returns sensible defaults.
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{
		BatchSize:     1000,
		FlushInterval: 5 * time.Second,
	}
}

// WriterMetrics counts writer outcomes.
type WriterMetrics struct {
	Inserts   int64
	Conflicts int64
	Errors    int64
	Flushes   int64
}

// Writer consumes RecordMsg from the buffer and writes batches to the
// stream_records table.
type Writer struct {
	cfg    WriterConfig
	logger *slog.Logger

	input *Buffer[RecordMsg]
	db    *pgxpool.Pool

	batch       []recordRow
	batchMu     sync.Mutex
	flushTicker *time.Ticker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	metrics WriterMetrics
}

// recordRow is the database shape of an archived record.
type recordRow struct {
	StreamID   string
	Date       string
	Value      float64
	Source     string
	ReceivedAt int64 // µs since epoch
}

// NewWriter creates a Writer.
func NewWriter(cfg WriterConfig, input *Buffer[RecordMsg], db *pgxpool.Pool, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		cfg:    cfg,
		input:  input,
		db:     db,
		logger: logger,
		batch:  make([]recordRow, 0, cfg.BatchSize),
	}
}

// Start begins consuming messages and writing to the database.
func (w *Writer) Start(ctx context.Context) error {
	w.ctx, w.cancel = context.WithCancel(ctx)
	w.flushTicker = time.NewTicker(w.cfg.FlushInterval)

	w.wg.Add(1)
	go w.consumeLoop()

	w.wg.Add(1)
	go w.flushLoop()

	w.logger.Info("record writer started",
		"batch_size", w.cfg.BatchSize,
		"flush_interval", w.cfg.FlushInterval,
	)
	return nil
}

// Stop drains the writer: the input buffer is closed, remaining messages
// are batched, and a final flush runs before returning.
func (w *Writer) Stop(ctx context.Context) error {
	w.logger.Info("stopping record writer")

	// Closing the buffer lets the consumer drain what is left; cancelling
	// stops the periodic flusher.
	w.input.Close()
	if w.cancel != nil {
		w.cancel()
	}
	if w.flushTicker != nil {
		w.flushTicker.Stop()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		w.logger.Warn("record writer stop timed out")
	}

	w.flush()
	w.logger.Info("record writer stopped")
	return nil
}

// Stats returns current metrics.
func (w *Writer) Stats() WriterMetrics {
	w.batchMu.Lock()
	defer w.batchMu.Unlock()
	return w.metrics
}

// consumeLoop reads from the input buffer until it is closed and drained.
func (w *Writer) consumeLoop() {
	defer w.wg.Done()

	for {
		msg, ok := w.input.Receive()
		if !ok {
			return
		}
		w.handleMessage(msg)
	}
}

// flushLoop periodically flushes the batch.
func (w *Writer) flushLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-w.flushTicker.C:
			w.flush()
		}
	}
}

// handleMessage transforms and adds a message to the batch.
func (w *Writer) handleMessage(msg RecordMsg) {
	row := w.transform(msg)

	w.batchMu.Lock()
	w.batch = append(w.batch, row)
	shouldFlush := len(w.batch) >= w.cfg.BatchSize
	w.batchMu.Unlock()

	if shouldFlush {
		w.flush()
	}
}

// transform converts a RecordMsg to a recordRow.
func (w *Writer) transform(msg RecordMsg) recordRow {
	return recordRow{
		StreamID:   msg.StreamID,
		Date:       msg.Date,
		Value:      msg.Value,
		Source:     msg.Source,
		ReceivedAt: msg.ReceivedAt.UnixMicro(),
	}
}

// flush writes the current batch to the database.
func (w *Writer) flush() {
	w.batchMu.Lock()
	if len(w.batch) == 0 {
		w.batchMu.Unlock()
		return
	}

	// Take ownership of current batch
	batch := w.batch
	w.batch = make([]recordRow, 0, w.cfg.BatchSize)
	w.batchMu.Unlock()

	start := time.Now()

	conflicts, err := w.batchInsert(batch)
	if err != nil {
		w.logger.Error("batch insert failed", "error", err, "count", len(batch))
		w.batchMu.Lock()
		w.metrics.Errors++
		w.batchMu.Unlock()
		return
	}

	w.batchMu.Lock()
	w.metrics.Inserts += int64(len(batch) - conflicts)
	w.metrics.Conflicts += int64(conflicts)
	w.metrics.Flushes++
	w.batchMu.Unlock()

	w.logger.Debug("flushed records",
		"count", len(batch),
		"conflicts", conflicts,
		"duration", time.Since(start),
	)
}

// batchInsert inserts rows using pgx.Batch with ON CONFLICT DO NOTHING, so
// re-archiving a date range never duplicates records.
func (w *Writer) batchInsert(rows []recordRow) (conflicts int, err error) {
	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(`
			INSERT INTO stream_records (stream_id, date, value, source, received_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (stream_id, date) DO NOTHING
		`, r.StreamID, r.Date, r.Value, r.Source, r.ReceivedAt)
	}

	ctx := w.ctx
	if ctx == nil || ctx.Err() != nil {
		ctx = context.Background()
	}

	results := w.db.SendBatch(ctx, batch)
	defer results.Close()

	for range rows {
		ct, err := results.Exec()
		if err != nil {
			return 0, err
		}
		if ct.RowsAffected() == 0 {
			conflicts++
		}
	}

	return conflicts, nil
}
