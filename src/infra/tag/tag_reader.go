package tag

import (
	"context"
	"fmt"
	"os"

	"github.com/contre95/musicrescue/src/features/scanning"
	"github.com/dhowden/tag"
)

// TagReader is an implementation of the scanning.TagReader interface that uses the dhowden/tag library.
type TagReader struct{}

// NewTagReader creates a new TagReader
func NewTagReader() scanning.TagReader {
	return &TagReader{}
}

// ReadTags reads the catalog relevant tags of a music file. Files without a
// recognizable tag block return an error.
func (r *TagReader) ReadTags(ctx context.Context, filePath string) (scanning.Tags, error) {
	if err := ctx.Err(); err != nil {
		return scanning.Tags{}, err
	}
	file, err := os.Open(filePath)
	if err != nil {
		return scanning.Tags{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return scanning.Tags{}, fmt.Errorf("failed to read tags: %w", err)
	}

	trackNumber, _ := metadata.Track()

	return scanning.Tags{
		Artist:      metadata.Artist(),
		Album:       metadata.Album(),
		Year:        metadata.Year(),
		Title:       metadata.Title(),
		TrackNumber: trackNumber,
	}, nil
}
