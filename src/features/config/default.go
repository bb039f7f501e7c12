package config

// createDefaultConfig creates a new Config with sensible default values
func createDefaultConfig() *Config {
	return &Config{
		Logger: Logger{
			Enabled: true,
			Level:   "info",
			Format:  "text",
		},
		Scan: Scan{
			WorkDir:    "",
			ASCIIPaths: false,
		},
		Index: Index{
			Path: "./rescue_index.json",
		},
		Rescue: Rescue{
			OutDir: "",
		},
		Metrics: Metrics{
			Enabled:  false,
			Textfile: "",
		},
		Server: Server{
			Port: 3535,
		},
		Database: Database{
			Path: "./catalog.db",
		},
		Watch: Watch{
			DebounceMS: 5000,
		},
	}
}
