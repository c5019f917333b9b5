package proto

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/klocke7-ford/pesterun/internal/domain"
)

// Failure is the module-level failure document returned to the host for
// the documented error conditions.
type Failure struct {
	Failed bool   `json:"failed"`
	Msg    string `json:"msg"`
}

// WriteResult emits the successful result document.
func WriteResult(w io.Writer, result domain.RunResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteFailure emits the failure document for a module-level error.
func WriteFailure(w io.Writer, msg string) error {
	data, err := json.Marshal(Failure{Failed: true, Msg: msg})
	if err != nil {
		return fmt.Errorf("marshal failure: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
