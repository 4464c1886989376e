package config

// Config holds runtime settings for the StudyPilot CLI.
//
// Fields:
//   - ServerBaseURL: base address of the backend HTTP API.
//   - DatabasePath: sqlite file holding durable local state (the session).
//   - HistoryLimit: how many prior Q&A entries the history view requests.
type Config struct {
	ServerBaseURL string
	DatabasePath  string
	HistoryLimit  int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8000"
	c.DatabasePath = "studypilot.db"
	c.HistoryLimit = 50
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
