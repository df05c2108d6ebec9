package oaihttp

import "fmt"

// HTTPError reports a non-2xx response from the completion API. Body holds
// up to the first megabyte of the response so callers can log the upstream
// failure without re-reading it.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "completion api error"
	}
	if e.Body == "" {
		return fmt.Sprintf("completion api error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("completion api error: status=%d body=%s", e.StatusCode, e.Body)
}
