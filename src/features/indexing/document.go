package indexing

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/contre95/musicrescue/src/music"
	"github.com/google/uuid"
)

// ErrNoTree is returned when an index document carries no catalog.
var ErrNoTree = errors.New("index has no tree")

// Document is the persisted form of a scan.
type Document struct {
	ID        string           `json:"id" yaml:"id"`
	CreatedAt time.Time        `json:"created_at" yaml:"created_at"`
	Tree      *music.MusicTree `json:"tree" yaml:"tree"`
}

// NewDocument wraps a freshly scanned tree.
func NewDocument(tree *music.MusicTree) *Document {
	return &Document{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Tree:      tree,
	}
}

// Format is an index encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from the file extension. Anything that is
// not .yaml or .yml is JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}
