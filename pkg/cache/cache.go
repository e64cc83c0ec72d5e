// Package cache stores the output of external converters.
//
// Converting SVG to PDF shells out to rsvg-convert, which dominates export
// time for small figures. Results are cached under a key derived from the
// converter input, so re-exporting an unchanged figure skips the tool.
//
// [FileCache] keeps entries on disk for CLI use; [NullCache] disables
// caching.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Cache is a byte store keyed by string.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key, replacing any previous value.
	Set(ctx context.Context, key string, data []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// ConversionKey identifies the result of converting input to format with
// tool. args are the extra tool arguments that change the output.
func ConversionKey(tool, format string, input []byte, args ...string) string {
	return hashKey("convert", tool, format, Hash(input), args)
}

// hashKey joins prefix with a hash of parts.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
