package invoke

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/klocke7-ford/pesterun/internal/domain"
)

// Envelope is the single JSON document the invocation script prints on
// stdout: run counts, the failure projection, and the depth-bounded
// PassThru object.
type Envelope struct {
	Version         string               `json:"version"`
	Total           int                  `json:"total"`
	Passed          int                  `json:"passed"`
	Failed          int                  `json:"failed"`
	Skipped         int                  `json:"skipped"`
	DurationSeconds float64              `json:"duration_seconds"`
	Failures        []domain.TestFailure `json:"failures"`
	Output          any                  `json:"output"`
}

// decodeEnvelope parses the envelope out of raw process stdout. Anything
// the interpreter printed before the JSON document is skipped.
func decodeEnvelope(stdout []byte) (*Envelope, error) {
	idx := bytes.IndexByte(stdout, '{')
	if idx < 0 {
		return nil, fmt.Errorf("framework returned no result payload")
	}
	var env Envelope
	if err := json.Unmarshal(stdout[idx:], &env); err != nil {
		return nil, fmt.Errorf("decode framework result: %w", err)
	}
	return &env, nil
}
