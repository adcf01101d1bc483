package search

import (
	"context"
	"errors"
	"net"
	"net/http"
)

// ClassifyHTTP maps a transport error or an HTTP status code onto a ResponseStatus.
// permanent is true for client errors that will not succeed on retry.
func ClassifyHTTP(resp *http.Response, err error) (status ResponseStatus, permanent bool) {
	if err != nil {
		return classifyTransport(err), false
	}

	code := resp.StatusCode
	switch {
	case code == http.StatusTooManyRequests:
		return StatusRateLimited, false
	case code >= 500:
		return StatusError, false
	case code >= 400:
		return StatusError, true
	}
	return StatusOK, false
}

// ContextStatus maps a context error onto a ResponseStatus
func ContextStatus(err error) ResponseStatus {
	if errors.Is(err, context.DeadlineExceeded) {
		return StatusTimeout
	}
	return StatusError
}

func classifyTransport(err error) ResponseStatus {
	if errors.Is(err, context.DeadlineExceeded) {
		return StatusTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return StatusTimeout
	}
	return StatusError
}
