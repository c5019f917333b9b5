package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// Spinner shows an indeterminate progress indicator on stderr while the
// framework invocation is in flight. Only used in human mode; machine mode
// keeps stderr clean.
type Spinner struct {
	bar *progressbar.ProgressBar
}

// NewSpinner creates a spinner describing the running invocation.
func NewSpinner(path string) *Spinner {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(
			color.CyanString("Running Pester: ")+color.WhiteString("%s", path),
		),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
	)
	return &Spinner{bar: bar}
}

// Tick advances the spinner one frame.
func (s *Spinner) Tick() {
	_ = s.bar.Add(1)
}

// Finish stops the spinner and clears the line.
func (s *Spinner) Finish() {
	_ = s.bar.Finish()
}
