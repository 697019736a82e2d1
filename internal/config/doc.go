// Package config defines the application configuration structure and loads it
// from the environment (optionally supplemented by a config file). A required
// value that is missing fails Load rather than surfacing later as a broken
// component.
package config
