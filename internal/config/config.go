// Package config holds the ambient settings of the server and the YAML job
// files accepted by the command line.
package config

import (
	"os"
	"strings"
)

// LogLevelEnv names the environment variable that controls log verbosity.
const LogLevelEnv = "IMAGE_CROP_MCP_LOG_LEVEL"

// Settings is the process-wide configuration read from the environment.
type Settings struct {
	LogLevel string
}

// LoadSettings reads Settings from the environment.
func LoadSettings() Settings {
	return Settings{LogLevel: strings.ToLower(strings.TrimSpace(os.Getenv(LogLevelEnv)))}
}

// Debug reports whether debug logging is enabled.
func (s Settings) Debug() bool {
	return s.LogLevel == "debug"
}

// ValidationError reports a job field that cannot be used. Field is the YAML
// key of the offending value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
