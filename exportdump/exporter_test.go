package exportdump

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mspdocs/vendor-dump/htmlmd"
	"github.com/mspdocs/vendor-dump/render"
	"github.com/mspdocs/vendor-dump/vendorapi"
	"github.com/mspdocs/vendor-dump/vendors"
)

// fakeAtera serves the Atera wire shape: items/nextLink envelopes, API key in
// X-API-KEY.  Collections it doesn't know about come back empty.
type fakeAtera struct {
	customers  []vendorapi.Record
	agents     map[string][]vendorapi.Record // keyed by customerId
	kbStatus   int // HTTP status for the knowledge base; 0 means 200-with-empty
	kbArticles []vendorapi.Record
}

func (f *fakeAtera) server(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var items []vendorapi.Record

		switch r.URL.Path {
		case "/api/v3/customers":
			items = f.customers
		case "/api/v3/agents":
			items = f.agents[r.URL.Query().Get("customerId")]
		case "/api/v3/knowledgebases":
			if f.kbStatus != 0 {
				w.WriteHeader(f.kbStatus)
				return
			}
			items = f.kbArticles
		}

		// single page, no nextLink
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"items": items}))
	}))
}

func testExporter(t *testing.T, server *httptest.Server, store string) *Exporter {
	t.Helper()

	api, err := vendorapi.NewAPI(server.URL, vendorapi.HeaderAuth{Header: "X-API-KEY", Key: "k"})
	require.NoError(t, err)
	api.Client = server.Client()
	api.Throttle = 0

	renderer := render.NewRenderer(vendors.Atera, htmlmd.New(api.BaseURI))
	renderer.Now = func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }

	return &Exporter{
		StorePath:  store,
		API:        api,
		Profile:    vendors.Atera,
		Renderer:   renderer,
		WriteFiles: true,
		Logger:     log.New(os.Stderr, "[test] ", 0),
	}
}

func readStoreFile(t *testing.T, store string, parts ...string) string {
	t.Helper()

	contents, err := os.ReadFile(filepath.Join(append([]string{store}, parts...)...))
	require.NoError(t, err)
	return string(contents)
}

func TestRunOrgWithNoDevices(t *testing.T) {
	server := (&fakeAtera{
		customers: []vendorapi.Record{{"CustomerID": 1, "CustomerName": "Acme Corp!!"}},
		kbStatus:  http.StatusForbidden,
	}).server(t)
	defer server.Close()

	store := t.TempDir()
	e := testExporter(t, server, store)

	require.NoError(t, e.Run(context.Background()))

	readme := readStoreFile(t, store, "acme-corp", "README.md")
	assert.Contains(t, readme, "Acme Corp!!")
	assert.Contains(t, readme, "## Devices")
	assert.Contains(t, readme, "_No devices exported._")
}

func TestRunWritesDeviceDocuments(t *testing.T) {
	server := (&fakeAtera{
		customers: []vendorapi.Record{{"CustomerID": 1, "CustomerName": "Acme"}},
		agents: map[string][]vendorapi.Record{
			"1": {{"AgentID": 42, "MachineName": "WIN-ABC", "OS": "Windows 11"}},
		},
	}).server(t)
	defer server.Close()

	store := t.TempDir()
	e := testExporter(t, server, store)

	require.NoError(t, e.Run(context.Background()))

	device := readStoreFile(t, store, "acme", "devices", "win-abc.md")
	assert.Contains(t, device, "| Hostname | WIN-ABC |")
	assert.Contains(t, device, "| OS | Windows 11 |")
	assert.Contains(t, device, "vendor_id: \"42\"")

	readme := readStoreFile(t, store, "acme", "README.md")
	assert.Contains(t, readme, "- [WIN-ABC](devices/win-abc.md)")
}

func TestRunDisambiguatesSlugCollisions(t *testing.T) {
	server := (&fakeAtera{
		customers: []vendorapi.Record{{"CustomerID": 1, "CustomerName": "Acme"}},
		agents: map[string][]vendorapi.Record{
			"1": {
				{"AgentID": 1, "MachineName": "Server 01"},
				{"AgentID": 2, "MachineName": "server-01"},
			},
		},
	}).server(t)
	defer server.Close()

	store := t.TempDir()
	e := testExporter(t, server, store)

	require.NoError(t, e.Run(context.Background()))

	first := readStoreFile(t, store, "acme", "devices", "server-01.md")
	second := readStoreFile(t, store, "acme", "devices", "server-01-2.md")

	assert.Contains(t, first, "Server 01")
	assert.Contains(t, second, "server-01")
}

func TestRunForbiddenKnowledgeBaseIsNotFatal(t *testing.T) {
	server := (&fakeAtera{
		customers: []vendorapi.Record{{"CustomerID": 1, "CustomerName": "Acme"}},
		kbStatus:  http.StatusForbidden,
	}).server(t)
	defer server.Close()

	store := t.TempDir()
	e := testExporter(t, server, store)

	require.NoError(t, e.Run(context.Background()))

	_, err := os.Stat(filepath.Join(store, "knowledge-base"))
	assert.True(t, os.IsNotExist(err), "no knowledge-base files should be written")
}

func TestRunExportsKnowledgeBaseFlat(t *testing.T) {
	server := (&fakeAtera{
		customers: []vendorapi.Record{{"CustomerID": 1, "CustomerName": "Acme"}},
		kbArticles: []vendorapi.Record{
			{"ID": 9, "Title": "Reset a password", "Text": "<p>Use the portal.</p>"},
		},
	}).server(t)
	defer server.Close()

	store := t.TempDir()
	e := testExporter(t, server, store)

	require.NoError(t, e.Run(context.Background()))

	article := readStoreFile(t, store, "knowledge-base", "reset-a-password.md")
	assert.Contains(t, article, "Use the portal.")
	assert.NotContains(t, article, "<p>")
}

func TestRunDryRunWritesNothing(t *testing.T) {
	server := (&fakeAtera{
		customers: []vendorapi.Record{{"CustomerID": 1, "CustomerName": "Acme"}},
	}).server(t)
	defer server.Close()

	store := t.TempDir()
	e := testExporter(t, server, store)
	e.WriteFiles = false

	require.NoError(t, e.Run(context.Background()))

	entries, err := os.ReadDir(store)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunPrunesStaleFiles(t *testing.T) {
	server := (&fakeAtera{
		customers: []vendorapi.Record{{"CustomerID": 1, "CustomerName": "Acme"}},
	}).server(t)
	defer server.Close()

	store := t.TempDir()
	stale := filepath.Join(store, "gone-corp", "README.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0750))
	require.NoError(t, os.WriteFile(stale, []byte("---\ntitle: old\nvendor_id: \"99\"\n---\n\n# old\n"), 0600))

	e := testExporter(t, server, store)
	e.Prune = true

	require.NoError(t, e.Run(context.Background()))

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err))

	_, err = os.Stat(filepath.Join(store, "acme", "README.md"))
	assert.NoError(t, err)
}

// Re-running against an unchanged vendor produces identical bodies but
// re-stamped created/updated dates.  The date churn is a known cost of
// simplicity.
func TestRunRestampsDatesOnRerun(t *testing.T) {
	server := (&fakeAtera{
		customers: []vendorapi.Record{{"CustomerID": 1, "CustomerName": "Acme"}},
		agents: map[string][]vendorapi.Record{
			"1": {{"AgentID": 42, "MachineName": "WIN-ABC", "OS": "Windows 11"}},
		},
	}).server(t)
	defer server.Close()

	store := t.TempDir()

	e := testExporter(t, server, store)
	require.NoError(t, e.Run(context.Background()))
	first := readStoreFile(t, store, "acme", "devices", "win-abc.md")

	e = testExporter(t, server, store)
	e.Renderer.Now = func() time.Time { return time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC) }
	require.NoError(t, e.Run(context.Background()))
	second := readStoreFile(t, store, "acme", "devices", "win-abc.md")

	bodyOf := func(markdown string) string {
		parts := strings.SplitN(markdown, "\n---\n", 2)
		require.Len(t, parts, 2)
		return parts[1]
	}

	assert.Equal(t, bodyOf(first), bodyOf(second))
	assert.Contains(t, first, "updated: \"2026-03-14\"")
	assert.Contains(t, second, "updated: \"2026-03-15\"")
	assert.NotEqual(t, first, second)
}

func TestRunOrgFilter(t *testing.T) {
	server := (&fakeAtera{
		customers: []vendorapi.Record{
			{"CustomerID": 1, "CustomerName": "Acme"},
			{"CustomerID": 2, "CustomerName": "Globex"},
		},
	}).server(t)
	defer server.Close()

	store := t.TempDir()
	e := testExporter(t, server, store)
	e.OrgID = "2"

	require.NoError(t, e.Run(context.Background()))

	_, err := os.Stat(filepath.Join(store, "globex", "README.md"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(store, "acme"))
	assert.True(t, os.IsNotExist(err))
}

func TestAllocateFileDuplicateIDFails(t *testing.T) {
	e := &Exporter{}

	first, err := e.allocateFile("devices", "Server 01", "1")
	require.NoError(t, err)
	assert.Equal(t, "devices/server-01.md", first)

	second, err := e.allocateFile("devices", "server-01", "2")
	require.NoError(t, err)
	assert.Equal(t, "devices/server-01-2.md", second)

	_, err = e.allocateFile("devices", "Server 01!", "2")
	require.Error(t, err)
}

func TestParseExistingMarkdownRoundTrip(t *testing.T) {
	store := t.TempDir()
	relative := filepath.Join("acme", "devices", "srv.md")
	full := filepath.Join(store, relative)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0750))

	contents := "---\ntitle: srv\nstatus: published\nowner: msp-team\ncreated: \"2026-03-14\"\nupdated: \"2026-03-14\"\ntags:\n  - device\nvendor_id: \"42\"\n---\n\n# srv\n\n| Field | Value |\n"
	require.NoError(t, os.WriteFile(full, []byte(contents), 0600))

	doc, err := ParseExistingMarkdown(store, relative)
	require.NoError(t, err)

	assert.Equal(t, "srv", doc.Title)
	assert.Equal(t, "42", doc.VendorID)
	assert.Equal(t, "2026-03-14", doc.Updated)
}
