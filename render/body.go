package render

import (
	"fmt"
	"strings"

	"github.com/mspdocs/vendor-dump/vendorapi"
	"github.com/mspdocs/vendor-dump/vendors"
)

// Placeholder rendered for fields the vendor didn't supply.  A visible N/A
// beats a silently missing row.
const Placeholder = "N/A"

type tableRow struct {
	label     string
	canonical string
}

// bodyLayout is the fixed field table per kind.  Canonical names; the
// profile's FieldMap decides which vendor keys feed them.
var bodyLayout = map[vendors.Kind][]tableRow{
	vendors.KindOrganization: {
		{"Domain", "domain"},
		{"Address", "address"},
		{"Phone", "phone"},
	},
	vendors.KindDevice: {
		{"Hostname", "hostname"},
		{"OS", "os"},
		{"Serial Number", "serial"},
		{"IP Address", "ip_address"},
		{"Last Seen", "last_seen"},
		{"Category", "category"},
	},
	vendors.KindConfiguration: {
		{"Type", "category"},
		{"Manufacturer", "manufacturer"},
		{"Model", "model"},
		{"Serial Number", "serial"},
	},
	vendors.KindDocument: {
		{"Category", "category"},
	},
	vendors.KindAsset: {
		{"Category", "category"},
	},
	vendors.KindRunbook: {
		{"Category", "category"},
	},
	vendors.KindKBArticle: {
		{"Category", "category"},
	},
}

// richTextField names the canonical rich-text field appended (normalized to
// Markdown) after the table, per kind.
var richTextField = map[vendors.Kind]string{
	vendors.KindOrganization:  "notes",
	vendors.KindConfiguration: "notes",
	vendors.KindDocument:      "body",
	vendors.KindAsset:         "notes",
	vendors.KindRunbook:       "body",
	vendors.KindKBArticle:     "body",
}

func (r *Renderer) renderBody(kind vendors.Kind, fields vendors.FieldMap, record vendorapi.Record) (string, error) {
	var b strings.Builder

	b.WriteString("| Field | Value |\n")
	b.WriteString("| --- | --- |\n")
	for _, row := range bodyLayout[kind] {
		value := fields.Resolve(record, row.canonical)
		if value == "" {
			value = Placeholder
		}
		fmt.Fprintf(&b, "| %s | %s |\n", row.label, escapeCell(value))
	}

	if canonical, ok := richTextField[kind]; ok {
		if raw := fields.Resolve(record, canonical); raw != "" {
			markdown, err := r.HTML.Normalize(raw)
			if err != nil {
				return "", fmt.Errorf("render: couldn't normalize %s field: %w", canonical, err)
			}
			if markdown != "" {
				b.WriteString("\n## Notes\n\n")
				b.WriteString(markdown)
				b.WriteString("\n")
			}
		}
	}

	return b.String(), nil
}

// escapeCell keeps vendor values from breaking the table.
func escapeCell(value string) string {
	value = strings.ReplaceAll(value, "|", "\\|")
	return strings.ReplaceAll(value, "\n", " ")
}

// headingFor is the human heading for a kind's README section (and synthesized
// titles).
func headingFor(kind vendors.Kind) string {
	switch kind {
	case vendors.KindOrganization:
		return "Organization"
	case vendors.KindDevice:
		return "Device"
	case vendors.KindConfiguration:
		return "Configuration"
	case vendors.KindDocument:
		return "Document"
	case vendors.KindAsset:
		return "Asset"
	case vendors.KindRunbook:
		return "Runbook"
	case vendors.KindKBArticle:
		return "Knowledge Base Article"
	default:
		return string(kind)
	}
}
