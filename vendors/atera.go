package vendors

import "github.com/mspdocs/vendor-dump/vendorapi"

// Atera: API key in X-API-KEY, collections wrapped in an items/nextLink
// envelope.  https://app.atera.com/apidocs
//
// Atera "agents" are our devices, SNMP devices are configurations, and
// contracts are the closest thing to documents.  There's a global knowledge
// base, gated behind some plans (hence Optional).
var Atera = Profile{
	Name:        "atera",
	DisplayName: "Atera",
	BaseURL:     "https://app.atera.com",
	Auth:        APIKey,
	KeyHeader:   "X-API-KEY",
	Page: vendorapi.Pagination{
		Shape:    vendorapi.ItemsEnvelope,
		PageSize: 50,
	},
	Organizations: Resource{Path: "/api/v3/customers"},
	Nested: map[Kind]Resource{
		KindDevice:        {Path: "/api/v3/agents", ParentParam: "customerId"},
		KindConfiguration: {Path: "/api/v3/devices/snmpdevices", ParentParam: "customerId"},
		KindDocument:      {Path: "/api/v3/contracts", ParentParam: "customerId"},
	},
	KnowledgeBase: &Resource{Path: "/api/v3/knowledgebases", Optional: true},
	Fields: map[Kind]FieldMap{
		KindOrganization: {
			"id":      {"CustomerID", "id"},
			"name":    {"CustomerName", "Name", "name"},
			"domain":  {"Domain", "domain"},
			"address": {"Address", "address"},
			"phone":   {"Phone", "phone"},
			"notes":   {"Notes", "notes"},
		},
		KindDevice: {
			"id":         {"AgentID", "DeviceID", "id"},
			"name":       {"MachineName", "AgentName", "hostname", "name"},
			"hostname":   {"MachineName", "hostname"},
			"os":         {"OS", "OSType", "os"},
			"serial":     {"VendorSerialNumber", "SerialNumber", "serial"},
			"ip_address": {"IPAddress", "LocalIP", "ip_address", "ip"},
			"last_seen":  {"LastSeen", "last_seen"},
			"category":   {"AgentType", "DeviceType", "category"},
		},
		KindConfiguration: {
			"id":           {"DeviceID", "id"},
			"name":         {"DeviceName", "Name", "name"},
			"category":     {"Type", "type", "category"},
			"manufacturer": {"Manufacturer", "manufacturer"},
			"model":        {"Model", "model"},
			"serial":       {"SerialNumber", "serial"},
			"notes":        {"Notes", "notes"},
		},
		KindDocument: {
			"id":       {"ContractID", "id"},
			"name":     {"ContractName", "Name", "name"},
			"category": {"ContractType", "category"},
			"body":     {"Description", "body"},
		},
		KindKBArticle: {
			"id":       {"ID", "KBID", "id"},
			"name":     {"Title", "title", "name"},
			"category": {"Section", "Category", "category"},
			"body":     {"Text", "Body", "body", "content"},
		},
	},
}
