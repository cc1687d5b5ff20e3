package tnclient

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/rickgao/tn-data/internal/gateway"
	"github.com/rickgao/tn-data/pkg/types"
)

// Local validation errors, raised before any gateway contact.
var (
	// ErrNoRecords is returned when InsertRecords is called with no records.
	ErrNoRecords = errors.New("no records to insert")
)

// StreamClient exposes stream lifecycle and data operations over one
// gateway handle. It introduces no concurrency or locking of its own;
// concurrent use is as safe as the underlying gateway allows.
type StreamClient struct {
	gw types.Gateway
}

// Option configures the default HTTP gateway created by New.
type Option = gateway.ClientOption

// New creates a StreamClient connected to the given gateway endpoint using
// the provided auth token. The endpoint and token are not validated locally;
// a malformed URL or bad token surfaces from the gateway at first use.
func New(endpoint, token string, opts ...Option) *StreamClient {
	return &StreamClient{gw: gateway.NewClient(endpoint, token, opts...)}
}

// NewWithGateway creates a StreamClient over an existing gateway. Used to
// inject test doubles and alternative transports.
func NewWithGateway(gw types.Gateway) *StreamClient {
	return &StreamClient{gw: gw}
}

// Close releases the underlying gateway handle. The client must not be used
// after Close.
func (c *StreamClient) Close() error {
	return c.gw.Close()
}

// TxOpt configures how a mutating operation handles confirmation.
type TxOpt func(*txOptions)

type txOptions struct {
	wait bool
}

// NoWait makes the operation return immediately with the pending
// transaction hash instead of blocking until confirmation.
func NoWait() TxOpt {
	return func(o *txOptions) {
		o.wait = false
	}
}

func applyTxOpts(opts []TxOpt) txOptions {
	o := txOptions{wait: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// DeployStream deploys a stream with the given ID and type. By default it
// blocks until the deployment transaction is confirmed; pass NoWait to get
// the pending hash immediately.
func (c *StreamClient) DeployStream(ctx context.Context, streamID string, streamType types.StreamType, opts ...TxOpt) (types.TxHash, error) {
	hash, err := c.gw.DeployStream(ctx, streamID, streamType)
	if err != nil {
		return "", err
	}
	return hash, c.confirm(ctx, hash, opts)
}

// StreamExists reports whether a stream with the given ID exists. A nil
// dataProvider defaults to the caller's own provider context.
func (c *StreamClient) StreamExists(ctx context.Context, streamID string, dataProvider *string) (bool, error) {
	return c.gw.StreamExists(ctx, streamID, sentinel(dataProvider))
}

// InitStream initializes a deployed stream. Confirmation semantics match
// DeployStream.
func (c *StreamClient) InitStream(ctx context.Context, streamID string, opts ...TxOpt) (types.TxHash, error) {
	hash, err := c.gw.InitStream(ctx, streamID)
	if err != nil {
		return "", err
	}
	return hash, c.confirm(ctx, hash, opts)
}

// InsertRecords inserts records into a stream. Records are transmitted as
// two parallel slices whose ordering matches the input slice element by
// element. Confirmation semantics match DeployStream.
func (c *StreamClient) InsertRecords(ctx context.Context, streamID string, records []types.Record, opts ...TxOpt) (types.TxHash, error) {
	if len(records) == 0 {
		return "", ErrNoRecords
	}

	dates := make([]string, len(records))
	values := make([]float64, len(records))
	for i, r := range records {
		dates[i] = r.Date
		values[i] = r.Value
	}

	hash, err := c.gw.InsertRecords(ctx, streamID, dates, values)
	if err != nil {
		return "", err
	}
	return hash, c.confirm(ctx, hash, opts)
}

// GetRecordsOptions holds the optional query filters for GetRecords. A nil
// field means "no filter". Dates use YYYY-MM-DD; DataProvider is a hex
// string.
type GetRecordsOptions struct {
	DataProvider *string
	DateFrom     *string
	DateTo       *string
	FrozenAt     *string
	BaseDate     *string
}

// Str returns a pointer to s, for populating GetRecordsOptions fields and
// the StreamExists dataProvider argument inline.
func Str(s string) *string {
	return &s
}

// GetRecords fetches records from a stream. The returned rows preserve the
// gateway's record ordering and field names.
func (c *StreamClient) GetRecords(ctx context.Context, streamID string, opts GetRecordsOptions) ([]map[string]any, error) {
	return c.gw.GetRecords(ctx, streamID,
		sentinel(opts.DataProvider),
		sentinel(opts.DateFrom),
		sentinel(opts.DateTo),
		sentinel(opts.FrozenAt),
		sentinel(opts.BaseDate),
	)
}

// ExecuteProcedure executes a named procedure against a stream. args is
// row-major: each row holds the positional values for one call. Rows are
// transposed into typed columns before transmission; a column mixing
// incompatible scalar types fails locally without contacting the gateway.
// Confirmation semantics match DeployStream.
func (c *StreamClient) ExecuteProcedure(ctx context.Context, streamID, procedure string, args [][]any, opts ...TxOpt) (types.TxHash, error) {
	columns, err := buildColumns(args)
	if err != nil {
		return "", err
	}

	hash, err := c.gw.ExecuteProcedure(ctx, streamID, procedure, columns...)
	if err != nil {
		return "", err
	}
	return hash, c.confirm(ctx, hash, opts)
}

// WaitForTx blocks until the given transaction is confirmed or fails.
func (c *StreamClient) WaitForTx(ctx context.Context, hash types.TxHash) error {
	return c.gw.WaitForTx(ctx, hash)
}

// confirm waits for the transaction unless NoWait was requested.
func (c *StreamClient) confirm(ctx context.Context, hash types.TxHash, opts []TxOpt) error {
	if !applyTxOpts(opts).wait {
		return nil
	}
	return c.gw.WaitForTx(ctx, hash)
}

// sentinel translates an absent optional into the gateway's empty-string
// sentinel. This is the only place the nil-to-"" coercion happens.
func sentinel(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// WithLogger sets the logger on the default gateway.
func WithLogger(logger *slog.Logger) Option {
	return gateway.WithLogger(logger)
}

// WithTimeout sets the per-request timeout on the default gateway.
func WithTimeout(d time.Duration) Option {
	return gateway.WithTimeout(d)
}

// WithRetries sets the retry configuration on the default gateway.
func WithRetries(max int, backoff time.Duration) Option {
	return gateway.WithRetries(max, backoff)
}

// WithTxPollInterval sets how often WaitForTx checks transaction status.
func WithTxPollInterval(d time.Duration) Option {
	return gateway.WithPollInterval(d)
}
