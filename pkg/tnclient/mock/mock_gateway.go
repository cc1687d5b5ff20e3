// Package mock provides an in-memory Gateway for testing the facade and
// code built on it without a TN node.
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/rickgao/tn-data/pkg/types"
)

// Call records one gateway invocation and its arguments.
type Call struct {
	Method string
	Args   []any
}

// Gateway implements types.Gateway, recording every call and returning
// programmable results. The zero value is usable.
type Gateway struct {
	mu    sync.Mutex
	calls []Call

	// Programmable behavior. A nil error function means success.
	NextTxHash TxHashFunc
	Err        error
	ExistsResp bool
	Records    []map[string]any

	txCounter int
	closed    bool
}

// TxHashFunc produces the hash returned by the next mutating call.
type TxHashFunc func(n int) types.TxHash

var _ types.Gateway = (*Gateway)(nil)

// New creates an empty mock gateway.
func New() *Gateway {
	return &Gateway{}
}

func (g *Gateway) record(method string, args ...any) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, Call{Method: method, Args: args})
}

func (g *Gateway) nextHash() types.TxHash {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.txCounter++
	if g.NextTxHash != nil {
		return g.NextTxHash(g.txCounter)
	}
	return types.TxHash(fmt.Sprintf("0xmock%04d", g.txCounter))
}

// Calls returns a copy of all recorded calls in order.
func (g *Gateway) Calls() []Call {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Call, len(g.calls))
	copy(out, g.calls)
	return out
}

// CallsTo returns the recorded calls for one method.
func (g *Gateway) CallsTo(method string) []Call {
	var out []Call
	for _, c := range g.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Closed reports whether Close has been called.
func (g *Gateway) Closed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.closed
}

func (g *Gateway) DeployStream(ctx context.Context, streamID string, streamType types.StreamType) (types.TxHash, error) {
	g.record("DeployStream", streamID, streamType)
	if g.Err != nil {
		return "", g.Err
	}
	return g.nextHash(), nil
}

func (g *Gateway) StreamExists(ctx context.Context, streamID, dataProvider string) (bool, error) {
	g.record("StreamExists", streamID, dataProvider)
	if g.Err != nil {
		return false, g.Err
	}
	return g.ExistsResp, nil
}

func (g *Gateway) InitStream(ctx context.Context, streamID string) (types.TxHash, error) {
	g.record("InitStream", streamID)
	if g.Err != nil {
		return "", g.Err
	}
	return g.nextHash(), nil
}

func (g *Gateway) InsertRecords(ctx context.Context, streamID string, dates []string, values []float64) (types.TxHash, error) {
	g.record("InsertRecords", streamID, dates, values)
	if g.Err != nil {
		return "", g.Err
	}
	return g.nextHash(), nil
}

func (g *Gateway) GetRecords(ctx context.Context, streamID, dataProvider, dateFrom, dateTo, frozenAt, baseDate string) ([]map[string]any, error) {
	g.record("GetRecords", streamID, dataProvider, dateFrom, dateTo, frozenAt, baseDate)
	if g.Err != nil {
		return nil, g.Err
	}
	return g.Records, nil
}

func (g *Gateway) ExecuteProcedure(ctx context.Context, streamID, procedure string, args ...types.ProcedureArg) (types.TxHash, error) {
	g.record("ExecuteProcedure", streamID, procedure, args)
	if g.Err != nil {
		return "", g.Err
	}
	return g.nextHash(), nil
}

func (g *Gateway) WaitForTx(ctx context.Context, hash types.TxHash) error {
	g.record("WaitForTx", hash)
	return g.Err
}

func (g *Gateway) Close() error {
	g.record("Close")
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
	return nil
}
