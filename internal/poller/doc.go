// Package poller periodically fetches records for a set of streams and
// hands them to the archive writer. A per-stream high-water date keeps each
// cycle incremental; overlap at the boundary is harmless because the writer
// deduplicates on insert.
package poller
