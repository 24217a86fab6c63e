package vendorapi

// Record is one entity as the vendor API returned it: an opaque mapping from
// field name to value.  There is no fixed schema; field presence varies per
// vendor and per record.
type Record map[string]any
