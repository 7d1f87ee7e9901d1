package ir

import (
	"encoding/hex"
	"encoding/json"

	"github.com/zeebo/blake3"
)

// jsonMarshal is a variable to allow testing of marshal errors.
var jsonMarshal = json.Marshal

// HashBytes computes the BLAKE3-256 hash of bytes and returns it as a hex string.
func HashBytes(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}

// HashString computes the BLAKE3-256 hash of a string and returns it as a hex string.
func HashString(s string) string {
	return HashBytes([]byte(s))
}

// HashDocument computes the hash of a Document by serializing it to JSON.
// Two documents that render identically under the same options hash identically
// as long as their records are in the same order.
func HashDocument(d *Document) (string, error) {
	if d == nil {
		d = &Document{}
	}
	data, err := jsonMarshal(d)
	if err != nil {
		return "", err
	}
	return HashBytes(data), nil
}
