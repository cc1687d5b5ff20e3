package gateway

import (
	"context"
	"fmt"

	"github.com/rickgao/tn-data/pkg/types"
)

// ExecuteProcedure submits a procedure call with one typed column per
// parameter position.
func (c *Client) ExecuteProcedure(ctx context.Context, streamID, procedure string, args ...types.ProcedureArg) (types.TxHash, error) {
	req := callRequest{
		Procedure: procedure,
		Args:      make([]callArg, 0, len(args)),
	}

	for i, arg := range args {
		switch col := arg.(type) {
		case types.StringColumn:
			req.Args = append(req.Args, callArg{Type: "string", Strings: col})
		case types.FloatColumn:
			req.Args = append(req.Args, callArg{Type: "float", Floats: col})
		default:
			return "", fmt.Errorf("execute procedure %s: argument %d has unknown column type %T", procedure, i, arg)
		}
	}

	var resp txResponse
	if err := c.post(ctx, "/v1/streams/"+streamID+"/call", req, &resp); err != nil {
		return "", fmt.Errorf("execute procedure %s on %s: %w", procedure, streamID, err)
	}

	c.logger.Debug("procedure submitted",
		"stream_id", streamID,
		"procedure", procedure,
		"args", len(args),
		"tx_hash", resp.TxHash,
	)

	return types.TxHash(resp.TxHash), nil
}
