// Package slug derives filesystem- and URL-safe identifiers from display
// names.  Distinct names can normalise to the same slug ("Server 01" and
// "Server-01!" both become "server-01"); disambiguation is the caller's
// problem.
package slug

import (
	"regexp"
	"strings"
)

// Fallback is returned for input with no usable characters at all.
const Fallback = "unnamed"

const maxLength = 100

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Make converts a display name into a lowercase kebab-case slug.  It is
// idempotent: Make(Make(s)) == Make(s).
func Make(name string) string {
	str := nonAlphanumeric.ReplaceAllString(name, " ")
	str = strings.ToLower(str)
	str = strings.Join(strings.Fields(str), "-")

	if len(str) > maxLength {
		str = str[:maxLength]
	}

	str = strings.Trim(str, "-")

	if str == "" {
		return Fallback
	}

	return str
}
