package indexing

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/contre95/musicrescue/src/music"
	"gopkg.in/yaml.v3"
)

// Save encodes doc to w.
func Save(w io.Writer, doc *Document, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode yaml index: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		if err := json.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("failed to encode json index: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported index format %q", format)
	}
}

// Load decodes an index from r and checks that its recorded root is still a
// directory. The catalog itself is taken as is.
func Load(r io.Reader, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode yaml index: %w", err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode json index: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported index format %q", format)
	}
	if doc.Tree == nil {
		return nil, ErrNoTree
	}
	if err := music.VerifyRoot(doc.Tree.Root()); err != nil {
		return nil, err
	}
	return &doc, nil
}

// CreateIndexFile writes doc to a new file at path. It fails if the file
// already exists.
func CreateIndexFile(path string, doc *Document) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("can't create index file: %w", err)
	}
	if err := Save(f, doc, FormatFromPath(path)); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// WriteFile replaces the index at path. The new content is written next to
// it and renamed into place.
func WriteFile(path string, doc *Document) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("can't create temporary index: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Save(tmp, doc, FormatFromPath(path)); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("can't replace index file: %w", err)
	}
	return nil
}

// ReadFile loads the index stored at path.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can't open index file: %w", err)
	}
	defer f.Close()
	return Load(f, FormatFromPath(path))
}
