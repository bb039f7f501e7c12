package config

// Config holds the application configuration.
type Config struct {
	Logger   Logger   `yaml:"logger"`
	Scan     Scan     `yaml:"scan"`
	Index    Index    `yaml:"index"`
	Rescue   Rescue   `yaml:"rescue"`
	Metrics  Metrics  `yaml:"metrics"`
	Server   Server   `yaml:"server"`
	Database Database `yaml:"database"`
	Watch    Watch    `yaml:"watch"`
}

// Logger holds the configuration for the app logging
type Logger struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format  string `yaml:"format" validate:"omitempty,oneof=text json logfmt"`
}

// Scan holds the configuration for building a catalog.
type Scan struct {
	WorkDir    string `yaml:"work_dir"` // Empty means the current directory
	ASCIIPaths bool   `yaml:"ascii_paths"` // Transliterate destination paths
}

// Index holds where the catalog snapshot is written and read.
type Index struct {
	Path string `yaml:"path" validate:"required"`
}

// Rescue holds the default output directory for copies.
type Rescue struct {
	OutDir string `yaml:"out_dir"`
}

// Metrics holds the Prometheus textfile output configuration.
type Metrics struct {
	Enabled  bool   `yaml:"enabled"`
	Textfile string `yaml:"textfile" validate:"required_if=Enabled true"`
}

// Server hold the configuration for the catalog browser
type Server struct {
	Port uint32 `yaml:"port" validate:"required,min=1,max=65535"`
}

// Database holds the configuration for the SQLite export
type Database struct {
	Path string `yaml:"path" validate:"required"`
}

// Watch holds the re-index trigger configuration.
type Watch struct {
	DebounceMS int `yaml:"debounce_ms" validate:"min=0"`
}
