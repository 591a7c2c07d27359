package config

import "github.com/spf13/viper"

// SetDefaults registers default values on v. They apply only to keys that
// neither the config file nor the environment set, so an explicit zero
// such as logging.rotation.max_backups: 0 is kept.
func SetDefaults(v *viper.Viper) {
	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stderr")
	v.SetDefault("logging.rotation.max_size", 10) // MB
	v.SetDefault("logging.rotation.max_backups", 3)
	v.SetDefault("logging.rotation.max_age", 28) // days

	// Metrics defaults
	v.SetDefault("metrics.host", "localhost")
	v.SetDefault("metrics.port", 9310)
	v.SetDefault("metrics.path", "/metrics")

	// Sensor defaults
	v.SetDefault("sensor.report_format", "text")
}
