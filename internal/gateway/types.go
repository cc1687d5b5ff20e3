package gateway

// txResponse is returned by every mutating endpoint.
type txResponse struct {
	TxHash string `json:"tx_hash"`
}

// deployRequest for POST /v1/streams.
type deployRequest struct {
	StreamID   string `json:"stream_id"`
	StreamType string `json:"stream_type"`
}

// existsResponse from GET /v1/streams/{id}/exists.
type existsResponse struct {
	Exists bool `json:"exists"`
}

// insertRequest for POST /v1/streams/{id}/records. Dates and Values are
// parallel: dates[i] pairs with values[i].
type insertRequest struct {
	Dates  []string  `json:"dates"`
	Values []float64 `json:"values"`
}

// recordsResponse from GET /v1/streams/{id}/records. Field names inside
// each record are owned by the node; today they are "date" and "value".
type recordsResponse struct {
	Records []map[string]any `json:"records"`
}

// callRequest for POST /v1/streams/{id}/call.
type callRequest struct {
	Procedure string    `json:"procedure"`
	Args      []callArg `json:"args"`
}

// callArg is one typed argument column. Exactly one of Strings or Floats is
// set, matching Type.
type callArg struct {
	Type    string    `json:"type"` // "string" or "float"
	Strings []string  `json:"strings,omitempty"`
	Floats  []float64 `json:"floats,omitempty"`
}

// txStatusResponse from GET /v1/tx/{hash}.
type txStatusResponse struct {
	Status string `json:"status"` // "pending", "confirmed" or "failed"
	Error  string `json:"error,omitempty"`
}

// Transaction status values.
const (
	txStatusPending   = "pending"
	txStatusConfirmed = "confirmed"
	txStatusFailed    = "failed"
)
