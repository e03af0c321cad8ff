package extractor

import (
	"context"
	"errors"
	"fmt"
)

// ExtractionError wraps any failure of the external extraction tool: a
// subprocess error, unparseable output, or an exceeded deadline.
type ExtractionError struct {
	URL  string
	Mode Mode
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s (%s): %v", e.URL, e.Mode, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the extraction failed because the configured
// deadline elapsed.
func (e *ExtractionError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}
