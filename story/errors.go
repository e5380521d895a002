package story

import (
	"errors"
	"fmt"
)

// ErrMissingCredential is returned when neither the request nor the
// credential store provides an API key.
var ErrMissingCredential = errors.New("no API key available")

// UpstreamError is a non-success response from the text-generation API.
// Body is the raw response body, unparsed.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("OpenAI API error: %d", e.StatusCode)
}
