// Package vendorapi is a small authenticated client for the paginated REST
// APIs that MSP/ITSM vendors expose.  It knows nothing about any particular
// vendor; the shapes (auth, pagination envelope, endpoints) come in as data.
package vendorapi

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultThrottle is the fixed delay before each request.  A cooperative
// courtesy to vendor rate limits, not a token bucket.
const DefaultThrottle = 400 * time.Millisecond

// DefaultRequestTimeout bounds a single page fetch so a hung vendor endpoint
// can't stall the run forever.
const DefaultRequestTimeout = 30 * time.Second

func NewAPI(baseURL string, auth Auth) (*API, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("vendorapi: configure your vendor instance URL")
	}
	if auth == nil {
		return nil, fmt.Errorf("vendorapi: no authentication material provided")
	}

	u, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("vendorapi: couldn't parse instance URL %s: %w", baseURL, err)
	}

	a := &API{
		BaseURI:        u,
		Auth:           auth,
		Throttle:       DefaultThrottle,
		RequestTimeout: DefaultRequestTimeout,
	}
	a.Client = &http.Client{}

	return a, nil
}

type API struct {
	// Base of the vendor instance, e.g. https://app.atera.com
	BaseURI *url.URL

	// An HTTP client - you can substitute VCR or whatnot.
	Client *http.Client

	// Auth info
	Auth Auth

	// Fixed sleep before every request.
	Throttle time.Duration

	// Per-request deadline.
	RequestTimeout time.Duration
}

// Do a bit of error checking on endpoint format, and return it relative to the base URI.
func (api *API) resolveEndpoint(endpoint string) (*url.URL, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("vendorapi: failed to parse endpoint ref: %w", err)
	}

	return api.BaseURI.ResolveReference(ref), nil
}
