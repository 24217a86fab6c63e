package vendors

import "github.com/mspdocs/vendor-dump/vendorapi"

// NinjaOne: OAuth2 client credentials against /ws/oauth/token, collections
// returned as bare JSON arrays.  https://app.ninjarmm.com/apidocs/
var NinjaOne = Profile{
	Name:        "ninjaone",
	DisplayName: "NinjaOne",
	BaseURL:     "https://app.ninjarmm.com",
	Auth:        OAuthClientCredentials,
	TokenPath:   "/ws/oauth/token",
	Scopes:      []string{"monitoring"},
	Page: vendorapi.Pagination{
		Shape:    vendorapi.PlainArray,
		PageSize: 100,
	},
	Organizations: Resource{Path: "/v2/organizations"},
	Nested: map[Kind]Resource{
		KindDevice:  {Path: "/v2/organization/{parent}/devices"},
		KindRunbook: {Path: "/v2/organization/{parent}/documents", Optional: true},
	},
	KnowledgeBase: &Resource{Path: "/v2/knowledgebase/articles", Optional: true},
	Fields: map[Kind]FieldMap{
		KindOrganization: {
			"id":    {"id"},
			"name":  {"name"},
			"notes": {"description"},
		},
		KindDevice: {
			"id":         {"id"},
			"name":       {"systemName", "dnsName", "name"},
			"hostname":   {"systemName", "dnsName", "hostname"},
			"os":         {"osName", "os"},
			"serial":     {"serialNumber", "serial"},
			"ip_address": {"ipAddress"},
			"last_seen":  {"lastContact", "last_seen"},
			"category":   {"nodeClass", "deviceType", "category"},
		},
		KindRunbook: {
			"id":       {"id", "documentId"},
			"name":     {"documentName", "name"},
			"category": {"documentType", "category"},
			"body":     {"content", "documentDescription", "body"},
		},
		KindKBArticle: {
			"id":       {"id", "articleId"},
			"name":     {"name", "title"},
			"category": {"folderPath", "category"},
			"body":     {"content", "body"},
		},
	},
}
