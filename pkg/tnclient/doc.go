// Package tnclient provides the StreamClient facade over a TN stream
// gateway: stream deployment, record insertion and retrieval, procedure
// execution, and transaction confirmation.
//
// The facade owns exactly one gateway handle and does no networking of its
// own; every operation marshals caller-friendly shapes into the gateway's
// expected shapes and forwards a single synchronous call. Gateway errors
// propagate to the caller unmodified.
package tnclient
