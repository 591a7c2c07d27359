package config

// SensorConfig controls where readings come from and how they are reported
type SensorConfig struct {
	// Source is a readings file path, or "-" for stdin. Empty means
	// readings must be given on the command line.
	Source string `mapstructure:"source"`

	// Strict turns the first rejected reading into a command failure
	Strict bool `mapstructure:"strict"`

	// Rate paces replayed readings in readings per second; 0 feeds them
	// all at once (serve only)
	Rate float64 `mapstructure:"rate" validate:"min=0"`

	// Watch keeps following Source for appended readings (serve only)
	Watch bool `mapstructure:"watch"`

	// ReportFormat: text, json, yaml
	ReportFormat string `mapstructure:"report_format" validate:"required,oneof=text json yaml"`
}
