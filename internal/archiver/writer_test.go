package archiver

import (
	"context"
	"testing"
	"time"
)

func TestWriter_Transform(t *testing.T) {
	cfg := DefaultWriterConfig()
	input := NewBuffer[RecordMsg](10)
	w := NewWriter(cfg, input, nil, nil)

	receivedAt := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	msg := RecordMsg{
		StreamID:   "st0123456789abcdef0123456789abcd",
		Date:       "2024-01-15",
		Value:      3.14,
		Source:     "poll",
		ReceivedAt: receivedAt,
	}

	row := w.transform(msg)

	if row.StreamID != msg.StreamID {
		t.Errorf("StreamID = %s, want %s", row.StreamID, msg.StreamID)
	}
	if row.Date != "2024-01-15" {
		t.Errorf("Date = %s, want 2024-01-15", row.Date)
	}
	if row.Value != 3.14 {
		t.Errorf("Value = %v, want 3.14", row.Value)
	}
	if row.Source != "poll" {
		t.Errorf("Source = %s, want poll", row.Source)
	}
	if row.ReceivedAt != receivedAt.UnixMicro() {
		t.Errorf("ReceivedAt = %d, want %d", row.ReceivedAt, receivedAt.UnixMicro())
	}
}

func TestWriter_HandleMessage_AddsToBatch(t *testing.T) {
	cfg := WriterConfig{
		BatchSize:     100,
		FlushInterval: time.Hour,
	}
	input := NewBuffer[RecordMsg](10)
	w := NewWriter(cfg, input, nil, nil)

	w.handleMessage(RecordMsg{
		StreamID:   "st-test",
		Date:       "2024-01-01",
		Value:      1.5,
		ReceivedAt: time.Now(),
	})

	w.batchMu.Lock()
	batchLen := len(w.batch)
	w.batchMu.Unlock()

	if batchLen != 1 {
		t.Errorf("batch length = %d, want 1", batchLen)
	}
}

func TestWriter_Lifecycle(t *testing.T) {
	cfg := WriterConfig{
		BatchSize:     10,
		FlushInterval: 100 * time.Millisecond,
	}
	input := NewBuffer[RecordMsg](10)
	w := NewWriter(cfg, input, nil, nil)

	ctx := context.Background()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := w.Stop(stopCtx); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}

func TestWriter_Stats(t *testing.T) {
	cfg := DefaultWriterConfig()
	input := NewBuffer[RecordMsg](10)
	w := NewWriter(cfg, input, nil, nil)

	stats := w.Stats()

	if stats.Inserts != 0 {
		t.Errorf("initial Inserts = %d, want 0", stats.Inserts)
	}
	if stats.Errors != 0 {
		t.Errorf("initial Errors = %d, want 0", stats.Errors)
	}
	if stats.Flushes != 0 {
		t.Errorf("initial Flushes = %d, want 0", stats.Flushes)
	}
}

func TestDefaultWriterConfig(t *testing.T) {
	cfg := DefaultWriterConfig()

	if cfg.BatchSize != 1000 {
		t.Errorf("BatchSize = %d, want 1000", cfg.BatchSize)
	}
	if cfg.FlushInterval != 5*time.Second {
		t.Errorf("FlushInterval = %v, want 5s", cfg.FlushInterval)
	}
}
