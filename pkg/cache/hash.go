package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds a stage cache key of the form "stage:digest", where the
// digest covers all inputs that can change the stage's output. Parts are
// JSON-encoded before hashing so struct option sets key deterministically.
func hashKey(stage string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return stage + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the hex SHA-256 digest of data. It is used to content-address
// GraphML source text and intermediate pipeline results; the full 64-char
// digest is kept so distinct networks never alias.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
