package gateway

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rickgao/tn-data/pkg/types"
)

// DeployStream submits a stream deployment transaction.
func (c *Client) DeployStream(ctx context.Context, streamID string, streamType types.StreamType) (types.TxHash, error) {
	req := deployRequest{
		StreamID:   streamID,
		StreamType: streamType.String(),
	}

	var resp txResponse
	if err := c.post(ctx, "/v1/streams", req, &resp); err != nil {
		return "", fmt.Errorf("deploy stream %s: %w", streamID, err)
	}

	c.logger.Debug("stream deployment submitted",
		"stream_id", streamID,
		"stream_type", req.StreamType,
		"tx_hash", resp.TxHash,
	)

	return types.TxHash(resp.TxHash), nil
}

// StreamExists reports whether the stream exists. An empty dataProvider
// defaults to the caller's own provider context on the node side.
func (c *Client) StreamExists(ctx context.Context, streamID, dataProvider string) (bool, error) {
	query := url.Values{}
	if dataProvider != "" {
		query.Set("data_provider", dataProvider)
	}

	var resp existsResponse
	if err := c.get(ctx, "/v1/streams/"+streamID+"/exists", query, &resp); err != nil {
		return false, fmt.Errorf("stream exists %s: %w", streamID, err)
	}

	return resp.Exists, nil
}

// InitStream submits a stream initialization transaction.
func (c *Client) InitStream(ctx context.Context, streamID string) (types.TxHash, error) {
	var resp txResponse
	if err := c.post(ctx, "/v1/streams/"+streamID+"/init", nil, &resp); err != nil {
		return "", fmt.Errorf("init stream %s: %w", streamID, err)
	}

	return types.TxHash(resp.TxHash), nil
}
