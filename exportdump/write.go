package exportdump

import (
	"fmt"
	"os"
	"path"
)

// writeLocal writes one document into the store, creating directories as
// needed.  Existing files are overwritten wholesale, never merged.
func (e *Exporter) writeLocal(relative string, contents string) error {
	// Does the store exist?
	stat, err := os.Stat(e.StorePath)
	if err != nil {
		return fmt.Errorf("exportdump: cannot stat '%s': %w", e.StorePath, err)
	}

	if !stat.IsDir() {
		// path is not a directory.  this is bad, we should bail
		return fmt.Errorf("exportdump: store path not a directory: '%s'", e.StorePath)
	}

	abs := path.Join(e.StorePath, relative)
	directory := path.Dir(abs)

	if e.freshLocalFiles == nil {
		e.freshLocalFiles = make(map[string]bool)
	}
	e.freshLocalFiles[relative] = true

	if !e.WriteFiles {
		// exit early to dry run
		return nil
	}

	// there's probably a nicer way to express 0750 but meh
	if err = os.MkdirAll(directory, 0750); err != nil {
		return fmt.Errorf("exportdump: couldn't create directory %s: %w", directory, err)
	}

	f, err := os.Create(abs)
	if err != nil {
		return fmt.Errorf("exportdump: couldn't create file %s: %w", abs, err)
	}

	defer f.Close()
	if _, err = f.WriteString(contents); err != nil {
		return fmt.Errorf("exportdump: couldn't write to file %s: %w", abs, err)
	}

	return nil
}
