// Package vendors holds the per-vendor adapter profiles.  A profile is data,
// not code: auth shape, pagination envelope, resource paths, and the
// field-mapping tables that translate vendor JSON into our canonical fields.
// Adding a vendor should mean adding a profile, not another exporter.
package vendors

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/mspdocs/vendor-dump/vendorapi"
)

// Kind is a canonical document kind.  The vendor-side names differ (Atera
// "agents" are devices, ITGlue "configurations" are devices too); kinds are
// ours.
type Kind string

const (
	KindOrganization  Kind = "organization-overview"
	KindDevice        Kind = "device"
	KindConfiguration Kind = "configuration"
	KindDocument      Kind = "document"
	KindAsset         Kind = "asset"
	KindRunbook       Kind = "runbook"
	KindKBArticle     Kind = "knowledge-base-article"
)

// NestedKinds is the fixed export order for per-organization resources.
var NestedKinds = []Kind{
	KindDevice,
	KindConfiguration,
	KindDocument,
	KindAsset,
	KindRunbook,
}

// Dir returns the output subdirectory for documents of this kind.
func (k Kind) Dir() string {
	switch k {
	case KindDevice:
		return "devices"
	case KindConfiguration:
		return "configurations"
	case KindDocument:
		return "documents"
	case KindAsset:
		return "assets"
	case KindRunbook:
		return "runbooks"
	case KindKBArticle:
		return "knowledge-base"
	default:
		return string(k)
	}
}

// AuthShape selects how credentials reach the vendor.
type AuthShape int

const (
	// APIKey: static key in a vendor-named header.
	APIKey AuthShape = iota
	// Bearer: static token in the Authorization header.
	Bearer
	// OAuthClientCredentials: one-time client-credentials exchange against
	// the vendor token endpoint, yielding a bearer token.
	OAuthClientCredentials
)

// Credentials is the raw auth material, from environment variables or an
// --api-key-cmd.  Never from the config file.
type Credentials struct {
	APIKey       string
	ClientID     string
	ClientSecret string
}

// Resource addresses one collection on the vendor API.  Exactly one of
// ParentParam or a "{parent}" placeholder in Path is used for
// filter-by-organization; resources without either are vendor-global.
type Resource struct {
	// Collection path, e.g. "/api/v3/agents".  May contain "{parent}".
	Path string

	// Query parameter carrying the parent organization ID, if the vendor
	// filters that way, e.g. "customerId".
	ParentParam string

	// Optional resources 403 on plans that don't include them; that's
	// "feature unavailable", not a failure.
	Optional bool
}

// Endpoint resolves the resource against a parent organization ID.
func (r Resource) Endpoint(parentID string) (string, url.Values) {
	path := strings.ReplaceAll(r.Path, "{parent}", url.PathEscape(parentID))

	filter := url.Values{}
	if r.ParentParam != "" && parentID != "" {
		filter.Set(r.ParentParam, parentID)
	}

	return path, filter
}

// Profile is one vendor adapter, fully data-driven.
type Profile struct {
	Name        string
	DisplayName string

	// Default instance base URL; overridable for self-hosted or EU
	// instances.
	BaseURL string

	Auth      AuthShape
	KeyHeader string // header name for APIKey auth
	TokenPath string // token endpoint path for OAuth, relative to the instance
	Scopes    []string

	Page vendorapi.Pagination

	// Top-level entity collection (organizations / customers / clients).
	Organizations Resource

	// Per-organization collections, keyed by canonical kind.  Kinds the
	// vendor has no equivalent for are simply absent.
	Nested map[Kind]Resource

	// Vendor-global knowledge base, exported flat at the top of the store.
	// Nil when the vendor has none.
	KnowledgeBase *Resource

	// Canonical field -> ordered candidate source keys, per kind.
	Fields map[Kind]FieldMap
}

// Authenticate turns credentials into the vendorapi auth for this profile,
// performing the OAuth token exchange when the profile calls for it.
func (p Profile) Authenticate(ctx context.Context, client *http.Client, baseURL string, creds Credentials) (vendorapi.Auth, error) {
	switch p.Auth {
	case APIKey:
		if creds.APIKey == "" {
			return nil, fmt.Errorf("vendors: %s needs an API key; set VENDOR_DUMP_API_KEY or --api-key-cmd", p.Name)
		}
		return vendorapi.HeaderAuth{Header: p.KeyHeader, Key: creds.APIKey}, nil

	case Bearer:
		if creds.APIKey == "" {
			return nil, fmt.Errorf("vendors: %s needs a bearer token; set VENDOR_DUMP_API_KEY or --api-key-cmd", p.Name)
		}
		return vendorapi.BearerAuth{Token: creds.APIKey}, nil

	case OAuthClientCredentials:
		tokenURL, err := url.JoinPath(baseURL, p.TokenPath)
		if err != nil {
			return nil, fmt.Errorf("vendors: couldn't build token URL for %s: %w", p.Name, err)
		}
		auth, err := vendorapi.OAuthConfig{
			TokenURL:     tokenURL,
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			Scopes:       p.Scopes,
		}.Exchange(ctx, client)
		if err != nil {
			return nil, fmt.Errorf("vendors: %s authentication failed: %w", p.Name, err)
		}
		return auth, nil
	}

	return nil, fmt.Errorf("vendors: unknown auth shape %d for %s", p.Auth, p.Name)
}

var registry = map[string]Profile{
	"atera":    Atera,
	"itglue":   ITGlue,
	"ninjaone": NinjaOne,
}

// Lookup returns the built-in profile for a vendor name.
func Lookup(name string) (Profile, error) {
	profile, ok := registry[strings.ToLower(name)]
	if !ok {
		return Profile{}, fmt.Errorf("vendors: unknown vendor '%s' (have: %s)", name, strings.Join(Names(), ", "))
	}
	return profile, nil
}

// Names lists the built-in vendor names, sorted.
func Names() []string {
	names := maps.Keys(registry)
	sort.Strings(names)
	return names
}
