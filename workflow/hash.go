package workflow

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/neuroval/validation-client/validation"
)

// ScoreHash computes the de-duplication hash of a score: a SHA-1 digest over
// a canonical projection of the result. json.Marshal of a string map gives
// stable (sorted) key order, and every value is string-coerced, so the same
// result always hashes the same way regardless of how it was produced.
//
// The execution timestamp participates in the hash: re-uploading the same
// persisted score file collides, while a genuine re-run (which gets a fresh
// timestamp) registers as a new result.
func ScoreHash(score *validation.Score) (string, error) {
	projection := map[string]string{
		"model_instance_id": score.ModelInstanceID,
		"test_instance_id":  score.TestInstanceID,
		"score":             coerceString(score.Value),
		"runtime":           score.Runtime,
		"timestamp":         score.ExecTimestamp.UTC().Format(time.RFC3339),
	}
	canonical, err := json.Marshal(projection)
	if err != nil {
		return "", fmt.Errorf("cannot canonicalize score for hashing: %w", err)
	}
	digest := sha1.Sum(canonical)
	return hex.EncodeToString(digest[:]), nil
}

// coerceString renders a score value deterministically. Structured values go
// through json.Marshal, which sorts map keys.
func coerceString(value interface{}) string {
	if value == nil {
		return ""
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(data)
}
