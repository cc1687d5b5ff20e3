package gateway

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rickgao/tn-data/pkg/types"
)

// InsertRecords submits records as two parallel slices.
func (c *Client) InsertRecords(ctx context.Context, streamID string, dates []string, values []float64) (types.TxHash, error) {
	if len(dates) != len(values) {
		return "", fmt.Errorf("insert records %s: %d dates but %d values", streamID, len(dates), len(values))
	}

	req := insertRequest{
		Dates:  dates,
		Values: values,
	}

	var resp txResponse
	if err := c.post(ctx, "/v1/streams/"+streamID+"/records", req, &resp); err != nil {
		return "", fmt.Errorf("insert records %s: %w", streamID, err)
	}

	c.logger.Debug("records submitted",
		"stream_id", streamID,
		"count", len(dates),
		"tx_hash", resp.TxHash,
	)

	return types.TxHash(resp.TxHash), nil
}

// GetRecords queries records from a stream. Empty filters are omitted from
// the query string; the node treats a missing parameter and an empty one
// identically (no restriction).
func (c *Client) GetRecords(ctx context.Context, streamID, dataProvider, dateFrom, dateTo, frozenAt, baseDate string) ([]map[string]any, error) {
	query := url.Values{}
	if dataProvider != "" {
		query.Set("data_provider", dataProvider)
	}
	if dateFrom != "" {
		query.Set("date_from", dateFrom)
	}
	if dateTo != "" {
		query.Set("date_to", dateTo)
	}
	if frozenAt != "" {
		query.Set("frozen_at", frozenAt)
	}
	if baseDate != "" {
		query.Set("base_date", baseDate)
	}

	var resp recordsResponse
	if err := c.get(ctx, "/v1/streams/"+streamID+"/records", query, &resp); err != nil {
		return nil, fmt.Errorf("get records %s: %w", streamID, err)
	}

	return resp.Records, nil
}
