package config

// Overrides holds command-line values that take precedence over the config
// file. Zero values and nil pointers leave the setting unchanged.
type Overrides struct {
	ConfigPath string
	Dataset    string

	Elevation  *float64 // Degrees
	Visibility *float64
	Albedo     *float64
	Time       string

	Addr string

	Debug    bool
	LogLevel string
	LogFile  string
}

// apply applies CLI flag overrides to the config.
func (o *Overrides) apply(cfg *Config) {
	if o.Dataset != "" {
		cfg.Dataset.Path = o.Dataset
	}
	if o.Elevation != nil {
		cfg.Sky.Elevation = *o.Elevation
		// An explicit elevation wins over a configured time.
		cfg.Sky.Time = ""
	}
	if o.Visibility != nil {
		cfg.Sky.Visibility = *o.Visibility
	}
	if o.Albedo != nil {
		cfg.Sky.Albedo = *o.Albedo
	}
	if o.Time != "" {
		cfg.Sky.Time = o.Time
	}
	if o.Addr != "" {
		cfg.Server.Addr = o.Addr
	}
	if o.Debug {
		cfg.Logging.Level = "debug"
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}
	if o.LogFile != "" {
		cfg.Logging.LogFile = o.LogFile
	}
}
