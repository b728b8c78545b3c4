// File: pkg/prompt/types.go
package prompt

import (
	"errors"

	"go.uber.org/multierr"
)

// Censor defaults used when building display paths.
const (
	DefaultMarker      = "Users"
	DefaultPlaceholder = "MyUsername"
)

var (
	// ErrNotText is returned when a file's contents are binary or not valid UTF-8.
	ErrNotText = errors.New("file is not valid text")
	// ErrTooLarge is returned when a file exceeds the configured size limit.
	ErrTooLarge = errors.New("file exceeds size limit")
)

// FileEntry is a single registered file. It holds no reference to any
// presentation object.
type FileEntry struct {
	CanonicalPath string // OS-normalized absolute path, unique registry key.
	DisplayPath   string // CanonicalPath with the censored segment replaced.
	Selected      bool   // Included in the next assembly.
}

// Censor configures the single segment replacement applied to display paths.
type Censor struct {
	Marker      string // Segment whose successor gets replaced.
	Placeholder string // Replacement for the successor segment.
}

// DefaultCensor returns the Users/MyUsername censor.
func DefaultCensor() Censor {
	return Censor{Marker: DefaultMarker, Placeholder: DefaultPlaceholder}
}

// Warning reports a selected file that exists but could not be read.
type Warning struct {
	Path string // Canonical path of the file.
	Err  error  // Underlying cause.
}

func (w Warning) Error() string {
	return w.Path + ": " + w.Err.Error()
}

func (w Warning) Unwrap() error {
	return w.Err
}

// Stats holds the derived counts of an assembled prompt.
type Stats struct {
	Chars int // Unicode code points.
	Words int // Maximal whitespace-delimited runs.
}

// Result is the outcome of a single assembly.
type Result struct {
	Text     string    // Assembled prompt.
	Pruned   []string  // Selected paths whose files no longer exist.
	Warnings []Warning // Non-fatal read failures.
	Stats    Stats     // Counts over Text.
}

// Err combines all warnings into a single error, or nil when there are none.
func (r Result) Err() error {
	var err error
	for _, w := range r.Warnings {
		err = multierr.Append(err, w)
	}
	return err
}
