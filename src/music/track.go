package music

// Track represents a single audio file recorded in the catalog.
type Track struct {
	Title      string `json:"title" yaml:"title"`
	SourceFile string `json:"source_file" yaml:"source_file"`
	// DestinationFile is relative to the rescue output directory. It is empty
	// when the source file has no extension.
	DestinationFile string `json:"destination_file,omitempty" yaml:"destination_file,omitempty"`
}

// HasDestination reports whether the track can be rescued.
func (t *Track) HasDestination() bool {
	return t != nil && t.DestinationFile != ""
}
