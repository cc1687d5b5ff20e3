// Package archiver persists stream records into Postgres. Records arrive
// through a growable buffer (fed by the poller or the live feed) and are
// written in batches with conflict-free inserts, so replaying a date range
// is safe.
package archiver
