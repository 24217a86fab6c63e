package vendors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mspdocs/vendor-dump/vendorapi"
)

func TestFieldMapResolveTriesCandidatesInOrder(t *testing.T) {
	fields := FieldMap{"name": {"CustomerName", "Name", "name"}}

	assert.Equal(t, "Acme",
		fields.Resolve(vendorapi.Record{"CustomerName": "Acme", "Name": "shadowed"}, "name"))
	assert.Equal(t, "Fallback Inc",
		fields.Resolve(vendorapi.Record{"name": "Fallback Inc"}, "name"))
}

func TestFieldMapResolveSkipsEmptyCandidates(t *testing.T) {
	fields := FieldMap{"name": {"CustomerName", "name"}}

	assert.Equal(t, "second",
		fields.Resolve(vendorapi.Record{"CustomerName": "", "name": "second"}, "name"))
}

func TestFieldMapResolveMissingIsEmpty(t *testing.T) {
	fields := FieldMap{"name": {"name"}}

	assert.Equal(t, "", fields.Resolve(vendorapi.Record{"other": "x"}, "name"))
	assert.Equal(t, "", fields.Resolve(vendorapi.Record{}, "unmapped"))
}

func TestFieldMapResolveOr(t *testing.T) {
	fields := FieldMap{"owner": {"owner"}}

	assert.Equal(t, "msp-team", fields.ResolveOr(vendorapi.Record{}, "owner", "msp-team"))
	assert.Equal(t, "alice", fields.ResolveOr(vendorapi.Record{"owner": "alice"}, "owner", "msp-team"))
}

func TestStringifyRendersScalarsVerbatim(t *testing.T) {
	assert.Equal(t, "42", stringify(float64(42)))
	assert.Equal(t, "3.5", stringify(3.5))
	assert.Equal(t, "true", stringify(true))
	assert.Equal(t, "WIN-ABC", stringify("WIN-ABC"))
	assert.Equal(t, "", stringify(map[string]any{"nested": 1}))
	assert.Equal(t, "", stringify(nil))
}

func TestLookup(t *testing.T) {
	profile, err := Lookup("Atera")
	require.NoError(t, err)
	assert.Equal(t, "atera", profile.Name)

	_, err = Lookup("hudu")
	require.Error(t, err)

	assert.Equal(t, []string{"atera", "itglue", "ninjaone"}, Names())
}

func TestResourceEndpoint(t *testing.T) {
	path, filter := Resource{Path: "/api/v3/agents", ParentParam: "customerId"}.Endpoint("42")
	assert.Equal(t, "/api/v3/agents", path)
	assert.Equal(t, "42", filter.Get("customerId"))

	path, filter = Resource{Path: "/v2/organization/{parent}/devices"}.Endpoint("42")
	assert.Equal(t, "/v2/organization/42/devices", path)
	assert.Empty(t, filter)
}
