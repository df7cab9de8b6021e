package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Study    StudyConfig    `mapstructure:"study"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Path is the SQLite database file path. ":memory:" is accepted for
	// throwaway instances.
	Path string `mapstructure:"path" validate:"required"`
}

// StudyConfig tunes the review scheduler. The defaults match the values
// the scheduler was designed around; overriding them is for
// experimentation, not normal operation.
type StudyConfig struct {
	MaxIntervalDays int     `mapstructure:"max_interval_days" validate:"required,gt=0"`
	EasePenalty     float64 `mapstructure:"ease_penalty" validate:"required,gt=0,lt=1"`
}
