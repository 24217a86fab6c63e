package vendors

import (
	"strconv"

	"github.com/mspdocs/vendor-dump/vendorapi"
)

// FieldMap maps a canonical field name to the vendor source keys that might
// hold it, tried in order.  This makes the "name or hostname or synthesized
// ID" fallback chains explicit instead of burying them in code.
type FieldMap map[string][]string

// Resolve returns the first present, non-empty candidate value as a string.
// Vendor numerics are rendered verbatim, not reformatted.  Missing fields
// resolve to "".
func (m FieldMap) Resolve(record vendorapi.Record, canonical string) string {
	for _, key := range m[canonical] {
		value, ok := record[key]
		if !ok {
			continue
		}
		if s := stringify(value); s != "" {
			return s
		}
	}
	return ""
}

// ResolveOr is Resolve with a fallback for absent fields.
func (m FieldMap) ResolveOr(record vendorapi.Record, canonical, fallback string) string {
	if s := m.Resolve(record, canonical); s != "" {
		return s
	}
	return fallback
}

// stringify renders a vendor JSON scalar as a string.  Nested structures
// don't belong in a table cell and resolve to "".
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		// encoding/json gives us float64 for all numbers; render 42 as
		// "42", not "42.000000".
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
