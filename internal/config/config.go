package config

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Feed    FeedConfig    `mapstructure:"feed" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Study   StudyConfig   `mapstructure:"study"`
}

// ServerConfig controls the local HTTP UI adapter.
type ServerConfig struct {
	Host           string   `mapstructure:"host" validate:"required"`
	Port           int      `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel       string   `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// FeedConfig locates the published built-in deck feed.
type FeedConfig struct {
	URL            string `mapstructure:"url" validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}

// StorageConfig selects and configures the device-local key-value backend.
type StorageConfig struct {
	Backend       string `mapstructure:"backend" validate:"required,oneof=memory sqlite redis"`
	SQLitePath    string `mapstructure:"sqlite_path" validate:"required_if=Backend sqlite"`
	RedisAddr     string `mapstructure:"redis_addr" validate:"required_if=Backend redis"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db" validate:"gte=0"`
	// KeyPrefix namespaces every stored key, e.g. one prefix per child profile.
	KeyPrefix string `mapstructure:"key_prefix"`
}

// StudyConfig holds study-session preferences.
type StudyConfig struct {
	// Shuffle randomizes card and choice order when a session starts.
	Shuffle bool `mapstructure:"shuffle"`
}
