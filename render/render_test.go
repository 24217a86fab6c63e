package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mspdocs/vendor-dump/htmlmd"
	"github.com/mspdocs/vendor-dump/vendorapi"
	"github.com/mspdocs/vendor-dump/vendors"
)

var testDate = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()

	r := NewRenderer(vendors.Atera, htmlmd.New(nil))
	r.Now = func() time.Time { return testDate }
	return r
}

func frontMatterOf(t *testing.T, markdown string) map[string]any {
	t.Helper()

	parts := strings.SplitN(markdown, "\n---\n", 2)
	require.Len(t, parts, 2, "document has no front matter block")

	header := map[string]any{}
	require.NoError(t, yaml.Unmarshal([]byte(strings.TrimPrefix(parts[0], "---\n")), &header))
	return header
}

func TestRenderDeviceBodyTable(t *testing.T) {
	r := testRenderer(t)

	doc, err := r.Render(vendors.KindDevice, vendorapi.Record{
		"id":       42,
		"hostname": "WIN-ABC",
		"os":       "Windows 11",
	})
	require.NoError(t, err)

	assert.Contains(t, doc.Body, "| Hostname | WIN-ABC |")
	assert.Contains(t, doc.Body, "| OS | Windows 11 |")
	// fields the record doesn't supply render as a placeholder, not a
	// missing row
	assert.Contains(t, doc.Body, "| Serial Number | N/A |")
	assert.Contains(t, doc.Body, "| IP Address | N/A |")

	assert.Equal(t, "42", doc.FrontMatter.VendorID)
	assert.Equal(t, "WIN-ABC", doc.Title)
}

func TestRenderFrontMatterAlwaysComplete(t *testing.T) {
	r := testRenderer(t)

	// a record supplying none of the front-matter source fields
	doc, err := r.Render(vendors.KindDevice, vendorapi.Record{})
	require.NoError(t, err)

	markdown, err := doc.Markdown()
	require.NoError(t, err)

	header := frontMatterOf(t, markdown)
	for _, key := range []string{"title", "status", "owner", "created", "updated", "tags"} {
		assert.Contains(t, header, key)
	}

	assert.Equal(t, "published", header["status"])
	assert.Equal(t, "msp-team", header["owner"])
	assert.Equal(t, "2026-03-14", header["created"])
	assert.Equal(t, "2026-03-14", header["updated"])
	assert.Equal(t, "Untitled", header["title"])
	assert.NotEmpty(t, header["tags"])
}

func TestRenderStatusOutsideTaxonomyCollapses(t *testing.T) {
	r := NewRenderer(vendors.Profile{
		Fields: map[vendors.Kind]vendors.FieldMap{
			vendors.KindDocument: {
				"name":   {"name"},
				"status": {"status"},
			},
		},
	}, htmlmd.New(nil))
	r.Now = func() time.Time { return testDate }

	doc, err := r.Render(vendors.KindDocument, vendorapi.Record{"name": "x", "status": "Active"})
	require.NoError(t, err)
	assert.Equal(t, "published", doc.FrontMatter.Status)

	doc, err = r.Render(vendors.KindDocument, vendorapi.Record{"name": "x", "status": "Draft"})
	require.NoError(t, err)
	assert.Equal(t, "draft", doc.FrontMatter.Status)
}

func TestRenderTagsFromCategory(t *testing.T) {
	r := testRenderer(t)

	doc, err := r.Render(vendors.KindDevice, vendorapi.Record{
		"MachineName": "srv",
		"AgentType":   "Domain Controller",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"device", "domain-controller"}, doc.FrontMatter.Tags)
}

func TestRenderSynthesizesTitleFromID(t *testing.T) {
	r := testRenderer(t)

	doc, err := r.Render(vendors.KindDevice, vendorapi.Record{"id": 7})
	require.NoError(t, err)

	assert.Equal(t, "Device 7", doc.Title)
}

func TestRenderRichTextBody(t *testing.T) {
	r := testRenderer(t)

	doc, err := r.Render(vendors.KindKBArticle, vendorapi.Record{
		"Title": "Reset a password",
		"Text":  "<p>Use the <strong>portal</strong>.</p>",
	})
	require.NoError(t, err)

	assert.Contains(t, doc.Body, "## Notes")
	assert.Contains(t, doc.Body, "**portal**")
	assert.NotContains(t, doc.Body, "<strong>")
}

func TestRenderEscapesTableCells(t *testing.T) {
	r := testRenderer(t)

	doc, err := r.Render(vendors.KindDevice, vendorapi.Record{
		"hostname": "a|b",
	})
	require.NoError(t, err)

	assert.Contains(t, doc.Body, `a\|b`)
}

func TestRenderOrgReadme(t *testing.T) {
	r := testRenderer(t)

	doc, err := r.RenderOrgReadme(
		vendorapi.Record{"CustomerID": 1, "CustomerName": "Acme Corp!!"},
		[]Section{
			{Kind: vendors.KindDevice},
			{Kind: vendors.KindDocument, Links: []Link{
				{Title: "MSA", Path: "documents/msa.md"},
			}},
		})
	require.NoError(t, err)

	markdown, err := doc.Markdown()
	require.NoError(t, err)

	header := frontMatterOf(t, markdown)
	assert.Equal(t, "Acme Corp!!", header["title"])

	assert.Contains(t, markdown, "## Devices")
	assert.Contains(t, markdown, "_No devices exported._")
	assert.Contains(t, markdown, "## Documents")
	assert.Contains(t, markdown, "- [MSA](documents/msa.md)")
}

func TestMarkdownFraming(t *testing.T) {
	r := testRenderer(t)

	doc, err := r.Render(vendors.KindDevice, vendorapi.Record{"hostname": "srv-01"})
	require.NoError(t, err)

	markdown, err := doc.Markdown()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(markdown, "---\n"))
	assert.Contains(t, markdown, "\n---\n\n# srv-01\n")
	assert.True(t, strings.HasSuffix(markdown, "|\n"))
}
