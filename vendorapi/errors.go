package vendorapi

import (
	"fmt"
	"time"
)

// TransportError is a non-2xx HTTP response, or a network-level failure (in
// which case StatusCode is 0 and Err carries the underlying error).
type TransportError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("vendorapi: request to %s failed: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("vendorapi: %s returned HTTP %d", e.Endpoint, e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RateLimitError is an HTTP 429.  RetryAfter is the vendor-supplied hint, or
// zero if the response didn't carry one.  We don't back off automatically; the
// fixed pre-request throttle is supposed to keep us under the limit.
type RateLimitError struct {
	Endpoint   string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("vendorapi: rate limited on %s, retry after %s", e.Endpoint, e.RetryAfter)
	}
	return fmt.Sprintf("vendorapi: rate limited on %s", e.Endpoint)
}

// PermissionError is an HTTP 403.  Some vendors gate optional sub-resources
// (knowledge base, custom fields) behind plan tiers; callers treat this as
// "feature unavailable" rather than a failure.
type PermissionError struct {
	Endpoint string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("vendorapi: access denied (HTTP 403) on %s", e.Endpoint)
}
