// Package feed maintains a websocket subscription to the TN gateway's live
// record feed. Records for subscribed streams arrive on a channel as they
// are confirmed, without waiting for the next poll cycle.
package feed
