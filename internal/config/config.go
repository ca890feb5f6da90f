// Package config loads application configuration from the environment.
package config

import (
	"github.com/kelseyhightower/envconfig"
)

// App holds all runtime configuration for the booking server.
type App struct {
	// Network
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	// Server timeouts (seconds)
	ReadTimeoutSec  int `envconfig:"READ_TIMEOUT_SEC" default:"15"`
	WriteTimeoutSec int `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`
	IdleTimeoutSec  int `envconfig:"IDLE_TIMEOUT_SEC" default:"60"`
	// Logging
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

// Load reads the App config from environment variables.
func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
