package records

import (
	"encoding/json"
	"fmt"
	"time"
)

func encodePayload[P any](p P) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}
	return string(b), nil
}

func decodePayload[P any](raw []byte) (P, error) {
	var p P
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("failed to decode payload: %w", err)
	}
	return p, nil
}

func toNanos(t time.Time) int64 { return t.UnixNano() }

func fromNanos(n int64) time.Time { return time.Unix(0, n).UTC() }
