package render

import (
	"fmt"
	"strings"

	"github.com/mspdocs/vendor-dump/vendorapi"
	"github.com/mspdocs/vendor-dump/vendors"
)

// Link is one exported document referenced from an organization README.
type Link struct {
	Title string
	// Path relative to the organization directory.
	Path string
}

// Section is one resource-type listing in an organization README.
type Section struct {
	Kind  vendors.Kind
	Links []Link
}

// RenderOrgReadme renders the per-organization README.md: the organization
// overview document plus a listing section per resource type.  Empty sections
// still render, with a placeholder line, so the reader can tell "nothing
// exported" from "section missing".
func (r *Renderer) RenderOrgReadme(record vendorapi.Record, sections []Section) (Document, error) {
	doc, err := r.Render(vendors.KindOrganization, record)
	if err != nil {
		return Document{}, err
	}

	var b strings.Builder
	b.WriteString(strings.TrimSpace(doc.Body))
	b.WriteString("\n")

	for _, section := range sections {
		fmt.Fprintf(&b, "\n## %s\n\n", sectionHeading(section.Kind))

		if len(section.Links) == 0 {
			fmt.Fprintf(&b, "_No %s exported._\n", section.Kind.Dir())
			continue
		}

		for _, link := range section.Links {
			fmt.Fprintf(&b, "- [%s](%s)\n", link.Title, link.Path)
		}
	}

	doc.Body = b.String()
	return doc, nil
}

func sectionHeading(kind vendors.Kind) string {
	switch kind {
	case vendors.KindDevice:
		return "Devices"
	case vendors.KindConfiguration:
		return "Configurations"
	case vendors.KindDocument:
		return "Documents"
	case vendors.KindAsset:
		return "Assets"
	case vendors.KindRunbook:
		return "Runbooks"
	case vendors.KindKBArticle:
		return "Knowledge Base"
	default:
		return headingFor(kind)
	}
}
