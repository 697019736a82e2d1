package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"   validate:"required"`
	Encryption EncryptionConfig `mapstructure:"encryption" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// EncryptionConfig carries the settings for the identifier obfuscation cipher.
// All three values are required: the identifier codec cannot be constructed
// without them. Key length requirements depend on the algorithm and are
// enforced by the codec; the minimums here only catch obviously unusable
// values early.
type EncryptionConfig struct {
	Algorithm string `mapstructure:"algorithm" validate:"required"`
	Key       string `mapstructure:"key"       validate:"required,min=16"`
	IV        string `mapstructure:"iv"        validate:"required,min=16"`
}
