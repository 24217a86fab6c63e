package vendorapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// request performs one authenticated GET.  It sleeps the throttle first, then
// issues the request under the per-request deadline, and maps the response
// status onto the error taxonomy.
func (api *API) request(ctx context.Context, endpoint *url.URL) ([]byte, error) {
	if api.Throttle > 0 {
		select {
		case <-time.After(api.Throttle):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if api.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, api.RequestTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("vendorapi: couldn't instantiate http request: %w", err)
	}

	req.Header.Add("Accept", "application/json, */*")
	api.Auth.apply(req)

	response, err := api.Client.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint.Path, Err: err}
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("vendorapi: couldn't read http response body: %w", err)
	}

	if err := response.Body.Close(); err != nil {
		return nil, fmt.Errorf("vendorapi: couldn't close response body: %w", err)
	}

	switch response.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusPartialContent, http.StatusNoContent:
		return body, nil
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("vendorapi: authentication failed on %s", endpoint.Path)
	case http.StatusForbidden:
		return nil, &PermissionError{Endpoint: endpoint.Path}
	case http.StatusTooManyRequests:
		return nil, &RateLimitError{
			Endpoint:   endpoint.Path,
			RetryAfter: retryAfterHint(response),
		}
	}

	return nil, &TransportError{Endpoint: endpoint.Path, StatusCode: response.StatusCode}
}

// retryAfterHint reads the Retry-After header, if the vendor sent one.  Only
// the delta-seconds form is recognised.
func retryAfterHint(response *http.Response) time.Duration {
	header := response.Header.Get("Retry-After")
	if header == "" {
		return 0
	}

	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return 0
	}

	return time.Duration(seconds) * time.Second
}
