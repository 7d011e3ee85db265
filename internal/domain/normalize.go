package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Normalize decodes a raw document or draft into its typed record.
// Absent fields default to "" and unknown fields are dropped, so
// Normalize(Payload(Normalize(x))) == Normalize(x).
func Normalize[R any](raw []byte) (R, error) {
	var r R
	if len(bytes.TrimSpace(raw)) == 0 {
		return r, nil
	}
	if err := json.Unmarshal(raw, &r); err != nil {
		return r, fmt.Errorf("failed to normalize record: %w", err)
	}
	return r, nil
}
