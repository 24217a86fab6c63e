package exportdump

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// LocalDocument is what we can learn about an already-exported file from its
// front matter.
type LocalDocument struct {
	RelativePath string
	Title        string
	Updated      string
	VendorID     string
}

type localHeader struct {
	Title    string `yaml:"title"`
	Updated  string `yaml:"updated"`
	VendorID string `yaml:"vendor_id"`
}

// ParseExistingMarkdown reads the front matter of one local file.
func ParseExistingMarkdown(storePath string, relativePath string) (LocalDocument, error) {
	fullPath := path.Join(storePath, relativePath)
	source, err := os.ReadFile(fullPath)
	if err != nil {
		return LocalDocument{}, fmt.Errorf("exportdump: couldn't read file %s: %w", fullPath, err)
	}

	d := yaml.NewDecoder(bytes.NewReader(source))
	header := new(localHeader)

	// we expect the first "document" to be our header YAML.
	if err := d.Decode(&header); err != nil {
		return LocalDocument{}, fmt.Errorf("exportdump: couldn't parse header of file %s: %w", fullPath, err)
	}

	return LocalDocument{
		RelativePath: relativePath,
		Title:        header.Title,
		Updated:      header.Updated,
		VendorID:     header.VendorID,
	}, nil
}

// LoadLocalIndex walks the store and parses every .md file's front matter.
// Duplicate vendor IDs get a warning; that means an earlier run wrote two
// files for the same record.
func LoadLocalIndex(storePath string) (map[string]LocalDocument, error) {
	filenames, err := ListAllMarkdownFiles(storePath)
	if err != nil {
		return nil, fmt.Errorf("exportdump: error loading Markdown files: %w", err)
	}

	index := map[string]LocalDocument{}
	for _, file := range filenames {
		rel, err := filepath.Rel(storePath, file)
		if err != nil {
			return nil, fmt.Errorf("exportdump: couldn't compute relative path of %s: %w", file, err)
		}

		doc, err := ParseExistingMarkdown(storePath, rel)
		if err != nil {
			return nil, fmt.Errorf("exportdump: couldn't load local file %s: %w", file, err)
		}

		if doc.VendorID == "" {
			// hand-written file living in the store; leave it alone.
			continue
		}

		if dupe, ok := index[doc.VendorID]; ok {
			fmt.Fprintf(os.Stderr, "🚨 WARNING: vendor ID %s appears in both %s and %s\n",
				doc.VendorID, dupe.RelativePath, doc.RelativePath)
		}
		index[doc.VendorID] = doc
	}

	return index, nil
}

// ListAllMarkdownFiles returns absolute pathnames of every .md under inFolder.
func ListAllMarkdownFiles(inFolder string) ([]string, error) {
	if _, err := os.Stat(inFolder); err == nil {
		// path/to/whatever exists
	} else if errors.Is(err, os.ErrNotExist) {
		// this might mean this is the first time running.
		return []string{}, nil
	} else {
		return []string{}, fmt.Errorf("exportdump: error opening %s for file tree walk: %w", inFolder, err)
	}

	filenames := []string{}

	err := filepath.Walk(inFolder,
		func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return fmt.Errorf("exportdump: error during file tree walk: %w", err)
			}
			if !info.IsDir() && strings.HasSuffix(path, ".md") {
				filenames = append(filenames, path)
			}
			return nil
		})
	if err != nil {
		return []string{}, fmt.Errorf("exportdump: error initialising file tree walk: %w", err)
	}

	return filenames, nil
}
