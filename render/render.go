// Package render turns vendor records into complete Markdown documents: a
// YAML front-matter block followed by a kind-specific field table and any
// rich-text body the record carries.
package render

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mspdocs/vendor-dump/htmlmd"
	"github.com/mspdocs/vendor-dump/internal/slug"
	"github.com/mspdocs/vendor-dump/vendorapi"
	"github.com/mspdocs/vendor-dump/vendors"
)

// FrontMatter is the fixed metadata block every exported document carries.
// The six required keys are always present; created/updated are the export
// run's date, not the vendor's timestamps, so re-running the exporter
// re-stamps every document.
type FrontMatter struct {
	Title    string   `yaml:"title"`
	Status   string   `yaml:"status"`
	Owner    string   `yaml:"owner"`
	Created  string   `yaml:"created"`
	Updated  string   `yaml:"updated"`
	Tags     []string `yaml:"tags"`
	VendorID string   `yaml:"vendor_id,omitempty"`
}

const (
	DefaultStatus = "published"
	DefaultOwner  = "msp-team"
)

// statuses we admit in front matter; anything else the vendor reports
// collapses to the default.
var knownStatuses = map[string]bool{
	"draft":      true,
	"review":     true,
	"published":  true,
	"deprecated": true,
}

// Document is one rendered export target, short of its output path.
type Document struct {
	FrontMatter FrontMatter
	Title       string
	Body        string
}

// Markdown produces the full file contents: front matter, title heading,
// body.
func (d Document) Markdown() (string, error) {
	header, err := yaml.Marshal(d.FrontMatter)
	if err != nil {
		return "", fmt.Errorf("render: couldn't marshal front matter YAML: %w", err)
	}

	return fmt.Sprintf("---\n%s\n---\n\n# %s\n\n%s\n",
		strings.TrimSpace(string(header)),
		d.Title,
		strings.TrimSpace(d.Body)), nil
}

type Renderer struct {
	Profile vendors.Profile
	HTML    *htmlmd.Normalizer

	// Now is the clock stamped into created/updated.  Swappable for tests.
	Now func() time.Time
}

func NewRenderer(profile vendors.Profile, normalizer *htmlmd.Normalizer) *Renderer {
	return &Renderer{
		Profile: profile,
		HTML:    normalizer,
		Now:     time.Now,
	}
}

// Render produces the document for one record of the given kind.
func (r *Renderer) Render(kind vendors.Kind, record vendorapi.Record) (Document, error) {
	fields := r.Profile.Fields[kind]

	id := fields.Resolve(record, "id")
	title := fields.Resolve(record, "name")
	if title == "" {
		// no display name anywhere in the chain; synthesize one from the
		// vendor ID so the document is still addressable.
		if id != "" {
			title = fmt.Sprintf("%s %s", headingFor(kind), id)
		} else {
			title = "Untitled"
		}
	}

	body, err := r.renderBody(kind, fields, record)
	if err != nil {
		return Document{}, err
	}

	return Document{
		FrontMatter: r.frontMatter(kind, fields, record, title, id),
		Title:       title,
		Body:        body,
	}, nil
}

func (r *Renderer) frontMatter(kind vendors.Kind, fields vendors.FieldMap, record vendorapi.Record, title, id string) FrontMatter {
	today := r.Now().UTC().Format("2006-01-02")

	status := fields.ResolveOr(record, "status", DefaultStatus)
	status = strings.ToLower(status)
	if !knownStatuses[status] {
		status = DefaultStatus
	}

	return FrontMatter{
		Title:    title,
		Status:   status,
		Owner:    fields.ResolveOr(record, "owner", DefaultOwner),
		Created:  today,
		Updated:  today,
		Tags:     tagsFor(kind, fields, record),
		VendorID: id,
	}
}

// tagsFor derives deterministic tags: the kind itself, then the record's
// category field, both slugged.
func tagsFor(kind vendors.Kind, fields vendors.FieldMap, record vendorapi.Record) []string {
	tags := []string{slug.Make(string(kind))}

	if category := fields.Resolve(record, "category"); category != "" {
		if t := slug.Make(category); t != tags[0] {
			tags = append(tags, t)
		}
	}

	return tags
}
