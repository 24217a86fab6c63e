package vendorapi

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Auth attaches authentication material to an outgoing request.  The three
// shapes vendors use: a static key in a custom header, a bearer token, and
// OAuth2 client credentials (which resolve to a bearer token up front).
type Auth interface {
	apply(req *http.Request)
}

// HeaderAuth sends a static API key in a vendor-named header,
// e.g. X-API-KEY for Atera.
type HeaderAuth struct {
	Header string
	Key    string
}

func (a HeaderAuth) apply(req *http.Request) {
	req.Header.Set(a.Header, a.Key)
}

// BearerAuth sends an Authorization: Bearer header.
type BearerAuth struct {
	Token string
}

func (a BearerAuth) apply(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+a.Token)
}

// OAuthConfig describes a client-credentials grant against a vendor token
// endpoint.  Exchange is performed once per run; the resulting access token is
// not refreshed mid-run — export runs are short.
type OAuthConfig struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
}

// Exchange performs the client-credentials token exchange and returns the
// bearer auth to use for all subsequent calls.
func (c OAuthConfig) Exchange(ctx context.Context, client *http.Client) (BearerAuth, error) {
	if c.ClientID == "" || c.ClientSecret == "" {
		return BearerAuth{}, fmt.Errorf("vendorapi: OAuth client ID and secret are required")
	}

	cc := clientcredentials.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		TokenURL:     c.TokenURL,
		Scopes:       c.Scopes,
	}

	if client != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, client)
	}

	token, err := cc.Token(ctx)
	if err != nil {
		return BearerAuth{}, fmt.Errorf("vendorapi: token exchange against %s failed: %w", c.TokenURL, err)
	}

	return BearerAuth{Token: token.AccessToken}, nil
}
