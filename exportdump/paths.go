package exportdump

import (
	"fmt"
	"path"

	"github.com/mspdocs/vendor-dump/internal/slug"
)

// Slugs aren't collision-free: "Server 01" and "server-01" normalise to the
// same thing.  Within one run the first record in a directory claims the bare
// slug; later records with the same slug get a vendor-ID suffix.  A repeat of
// both slug and ID means the vendor handed us a duplicate, which is an error.

func (e *Exporter) claimPath(relative, vendorID string) (string, bool) {
	if e.usedPaths == nil {
		e.usedPaths = make(map[string]string)
	}

	owner, taken := e.usedPaths[relative]
	if !taken {
		e.usedPaths[relative] = vendorID
		return relative, true
	}

	return owner, false
}

// allocateFile reserves a unique .md path inside dir for a named record.
func (e *Exporter) allocateFile(dir, name, vendorID string) (string, error) {
	base := slug.Make(name)

	relative := path.Join(dir, base+".md")
	if _, ok := e.claimPath(relative, vendorID); ok {
		return relative, nil
	}

	suffixed := path.Join(dir, fmt.Sprintf("%s-%s.md", base, slug.Make(vendorID)))
	if owner, ok := e.claimPath(suffixed, vendorID); !ok {
		return "", fmt.Errorf("exportdump: path %s already claimed by vendor ID %s", suffixed, owner)
	}

	return suffixed, nil
}

// allocateDir reserves a unique directory for an organization.
func (e *Exporter) allocateDir(name, vendorID string) (string, error) {
	base := slug.Make(name)

	if _, ok := e.claimPath(base, vendorID); ok {
		return base, nil
	}

	suffixed := fmt.Sprintf("%s-%s", base, slug.Make(vendorID))
	if owner, ok := e.claimPath(suffixed, vendorID); !ok {
		return "", fmt.Errorf("exportdump: directory %s already claimed by vendor ID %s", suffixed, owner)
	}

	return suffixed, nil
}
