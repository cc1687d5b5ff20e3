package tnclient

import (
	"crypto/sha256"
	"encoding/hex"
)

// streamIDPrefix marks derived identifiers so they are distinguishable from
// raw hashes in logs and on the wire.
const streamIDPrefix = "st"

// streamIDHexLen is the number of hash hex characters kept in the ID.
const streamIDHexLen = 30

// GenerateStreamID derives a stream identifier from a human-readable name.
// The derivation is a pure content-addressing hash: the same name always
// yields the same ID, across processes and time, and distinct names collide
// with negligible probability. Uniqueness among a data provider's streams is
// the provider's responsibility.
func GenerateStreamID(name string) string {
	sum := sha256.Sum256([]byte(name))
	return streamIDPrefix + hex.EncodeToString(sum[:])[:streamIDHexLen]
}
