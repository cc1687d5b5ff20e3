package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/rickgao/tn-data/pkg/types"
)

// WaitForTx blocks until the transaction is confirmed or fails, polling the
// node's status endpoint. The context bounds the overall wait.
func (c *Client) WaitForTx(ctx context.Context, hash types.TxHash) error {
	for {
		var resp txStatusResponse
		if err := c.get(ctx, "/v1/tx/"+string(hash), nil, &resp); err != nil {
			return fmt.Errorf("tx status %s: %w", hash, err)
		}

		switch resp.Status {
		case txStatusConfirmed:
			return nil
		case txStatusFailed:
			return fmt.Errorf("tx %s failed: %s", hash, resp.Error)
		case txStatusPending:
		default:
			return fmt.Errorf("tx %s: unknown status %q", hash, resp.Status)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}
