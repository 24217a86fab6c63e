package vendors

import "github.com/mspdocs/vendor-dump/vendorapi"

// ITGlue: API key in x-api-key, JSON:API envelopes with meta.total-pages,
// attribute names in kebab-case.  https://api.itglue.com/developer/
//
// ITGlue "configurations" are our devices; flexible assets map onto assets.
// There's no vendor-global knowledge base — ITGlue documents are
// per-organization.
var ITGlue = Profile{
	Name:        "itglue",
	DisplayName: "IT Glue",
	BaseURL:     "https://api.itglue.com",
	Auth:        APIKey,
	KeyHeader:   "x-api-key",
	Page: vendorapi.Pagination{
		Shape:    vendorapi.JSONAPI,
		PageSize: 50,
	},
	Organizations: Resource{Path: "/organizations"},
	Nested: map[Kind]Resource{
		KindDevice:   {Path: "/configurations", ParentParam: "filter[organization-id]"},
		KindDocument: {Path: "/organizations/{parent}/relationships/documents"},
		KindAsset:    {Path: "/flexible_assets", ParentParam: "filter[organization-id]", Optional: true},
		KindRunbook:  {Path: "/organizations/{parent}/relationships/checklists", Optional: true},
	},
	Fields: map[Kind]FieldMap{
		KindOrganization: {
			"id":      {"id"},
			"name":    {"name"},
			"domain":  {"primary-domain", "domain"},
			"address": {"primary-location-name", "address"},
			"phone":   {"phone"},
			"notes":   {"description", "quick-notes"},
		},
		KindDevice: {
			"id":         {"id"},
			"name":       {"name", "hostname"},
			"hostname":   {"hostname", "name"},
			"os":         {"operating-system-name", "os"},
			"serial":     {"serial-number"},
			"ip_address": {"primary-ip"},
			"last_seen":  {"updated-at"},
			"category":   {"configuration-type-name", "type"},
		},
		KindDocument: {
			"id":       {"id"},
			"name":     {"name"},
			"category": {"document-folder-name", "category"},
			"body":     {"content", "body"},
		},
		KindAsset: {
			"id":       {"id"},
			"name":     {"name"},
			"category": {"flexible-asset-type-name", "type"},
			"notes":    {"description", "notes"},
		},
		KindRunbook: {
			"id":       {"id"},
			"name":     {"name"},
			"category": {"category"},
			"body":     {"description", "body"},
		},
	},
}
