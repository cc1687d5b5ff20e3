// Package gateway implements types.Gateway over the TN node's REST API.
//
// Endpoints:
//   - POST /v1/streams                  deploy a stream
//   - GET  /v1/streams/{id}/exists      existence check
//   - POST /v1/streams/{id}/init        initialize a stream
//   - POST /v1/streams/{id}/records     insert records
//   - GET  /v1/streams/{id}/records     query records
//   - POST /v1/streams/{id}/call        execute a procedure
//   - GET  /v1/tx/{hash}                transaction status
//
// Mutating endpoints return a transaction hash; WaitForTx polls the status
// endpoint until the transaction confirms or fails.
package gateway
