// Package proto implements the host side of the module protocol: a JSON
// parameter document in, a JSON result document out.
package proto

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klocke7-ford/pesterun/internal/domain"
)

// DefaultPassThruDepth bounds result serialization when the host does not
// set pass_thru_depth.
const DefaultPassThruDepth = 2

// LoadParams reads the parameter document from the given file, or from
// stdin when path is "-". Unknown fields are rejected so a typoed
// parameter name fails loudly instead of being silently dropped.
func LoadParams(path string, stdin io.Reader) (domain.RunParams, error) {
	var r io.Reader
	if path == "-" {
		r = stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return domain.RunParams{}, fmt.Errorf("open args file: %w", err)
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var params domain.RunParams
	if err := dec.Decode(&params); err != nil {
		return domain.RunParams{}, fmt.Errorf("parse args: %w", err)
	}
	return params, nil
}

// Validate checks the parameter set and applies defaults. The path
// existence check produces the documented user-facing failure message.
func Validate(params *domain.RunParams) error {
	if params.Path == "" {
		return fmt.Errorf("parameter path is required")
	}

	info, err := os.Stat(params.Path)
	if err != nil {
		return fmt.Errorf("Cannot find file or directory: '%s'", params.Path)
	}
	if !info.IsDir() && !strings.HasSuffix(strings.ToLower(params.Path), ".ps1") {
		return fmt.Errorf("path must point to a .ps1 file or a directory: '%s'", params.Path)
	}

	if params.PassThruDepth < 0 {
		return fmt.Errorf("pass_thru_depth must be positive, got %d", params.PassThruDepth)
	}
	if params.PassThruDepth == 0 {
		params.PassThruDepth = DefaultPassThruDepth
	}
	return nil
}
