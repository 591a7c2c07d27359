package config

import (
	"net"
	"strconv"
)

// MetricsConfig holds metrics collection and exposure configuration
type MetricsConfig struct {
	// Port for the HTTP metrics server
	Port int `mapstructure:"port" validate:"min=1024,max=65535"`

	// Host to bind the metrics HTTP server (default: localhost)
	Host string `mapstructure:"host" validate:"required"`

	// Path for the metrics endpoint (default: /metrics)
	Path string `mapstructure:"path" validate:"required,startswith=/"`

	// PIDFile, when set, keeps a second serve process from starting
	PIDFile string `mapstructure:"pid_file"`
}

// Address returns the host:port pair the metrics server listens on
func (m MetricsConfig) Address() string {
	return net.JoinHostPort(m.Host, strconv.Itoa(m.Port))
}
