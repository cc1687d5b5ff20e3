// Package types holds the domain types shared by the TN client facade and
// the gateway implementations behind it.
package types

import "context"

// TxHash is an opaque handle for a submitted transaction. It is returned by
// every mutating operation and consumed by WaitForTx.
type TxHash string

// StreamType selects the kind of stream to deploy.
type StreamType int

const (
	// StreamTypePrimitive holds raw records inserted by the data provider.
	StreamTypePrimitive StreamType = iota

	// StreamTypeComposed derives its values from other streams.
	StreamTypeComposed
)

// String returns the wire name of the stream type.
func (t StreamType) String() string {
	switch t {
	case StreamTypeComposed:
		return "composed"
	default:
		return "primitive"
	}
}

// Record is a single time-series entry.
type Record struct {
	Date  string  // ISO-8601 date (YYYY-MM-DD)
	Value float64 // Numeric value
}

// ProcedureArg is one positional argument column of a procedure call. Every
// scalar in a column shares one type, which the variant encodes statically.
type ProcedureArg interface {
	isProcedureArg()
}

// StringColumn is a procedure argument column of strings.
type StringColumn []string

func (StringColumn) isProcedureArg() {}

// FloatColumn is a procedure argument column of floats.
type FloatColumn []float64

func (FloatColumn) isProcedureArg() {}

// Gateway is the minimal capability set the TN node client must provide.
// Implementations are expected to be synchronous: each call either returns a
// result or an error, with no partial outcomes. An empty string for any
// GetRecords filter or for dataProvider means "no restriction".
type Gateway interface {
	// DeployStream submits a stream deployment transaction.
	DeployStream(ctx context.Context, streamID string, streamType StreamType) (TxHash, error)

	// StreamExists reports whether the stream exists. An empty dataProvider
	// defaults to the caller's own provider context.
	StreamExists(ctx context.Context, streamID, dataProvider string) (bool, error)

	// InitStream submits a stream initialization transaction.
	InitStream(ctx context.Context, streamID string) (TxHash, error)

	// InsertRecords submits records as two parallel slices. dates[i] pairs
	// with values[i]; the slices must be the same length.
	InsertRecords(ctx context.Context, streamID string, dates []string, values []float64) (TxHash, error)

	// GetRecords queries records, preserving the node's record ordering and
	// field names.
	GetRecords(ctx context.Context, streamID, dataProvider, dateFrom, dateTo, frozenAt, baseDate string) ([]map[string]any, error)

	// ExecuteProcedure submits a procedure call with one typed column per
	// parameter position.
	ExecuteProcedure(ctx context.Context, streamID, procedure string, args ...ProcedureArg) (TxHash, error)

	// WaitForTx blocks until the transaction is confirmed or fails.
	WaitForTx(ctx context.Context, hash TxHash) error

	// Close releases the underlying connection resources.
	Close() error
}
