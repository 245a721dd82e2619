package pipeline

import (
	"encoding/json"
	"errors"
	"time"

	"movetrack/internal/models"
)

// Decode parses a raw sensor payload into a SensorReading. Absent fields
// stay nil; a structural or type error fails the whole payload, and so
// does a document that decodes to no record at all (JSON null).
func Decode(payload []byte) (*models.SensorReading, error) {
	var reading *models.SensorReading
	if err := json.Unmarshal(payload, &reading); err != nil {
		return nil, &DecodeError{Payload: payload, Err: err}
	}
	if reading == nil {
		return nil, &DecodeError{Payload: payload, Err: errors.New("document is null")}
	}
	return reading, nil
}

// NormalizeTimestamp resolves the raw timestamp string into an absolute
// instant. The raw string is never discarded: on parse failure it is
// returned unchanged alongside a nil instant so the row keeps the
// original value for manual correction. A nil input yields nil for both.
func NormalizeTimestamp(raw *string) (*time.Time, *string) {
	if raw == nil {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, raw
	}
	return &parsed, raw
}
