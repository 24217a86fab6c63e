package exportdump

import (
	"fmt"
	"os"
	"path/filepath"
)

// pruneStale deletes every .md in the store that this run didn't freshly
// write.  Only called after a complete walk, and never in dry-run mode.
func (e *Exporter) pruneStale() error {
	localFiles, err := ListAllMarkdownFiles(e.StorePath)
	if err != nil {
		return fmt.Errorf("exportdump: failed to list *.md under %s: %w", e.StorePath, err)
	}

	for _, file := range localFiles {
		relative, err := filepath.Rel(e.StorePath, file)
		if err != nil {
			return fmt.Errorf("exportdump: failed to get relative path: %w", err)
		}

		if e.freshLocalFiles[relative] {
			// file is fresh, skip!
			continue
		}

		e.Logger.Printf("Pruning: %s\n", relative)
		if err := os.Remove(file); err != nil {
			return fmt.Errorf("exportdump: failed to delete %s: %w", relative, err)
		}
	}

	return nil
}
