package configs

// Config holds all configuration for the application.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Log         LogConfig         `mapstructure:"log" validate:"required"`
	FileStorage FileStorageConfig `mapstructure:"file_storage" validate:"required"`
	Storage     StorageConfig     `mapstructure:"storage" validate:"required"`
	Poller      PollerConfig      `mapstructure:"poller" validate:"required"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// FileStorageConfig holds file storage configuration.
type FileStorageConfig struct {
	RootDir string `mapstructure:"root_dir" validate:"required"`
}

// StorageConfig selects and parameterizes the event store backend.
type StorageConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=memory clickhouse"`
	// DedupFailOpen controls the insert path when the duplicate existence
	// check against persisted storage fails: true inserts the collapsed batch
	// anyway (availability over consistency), false fails the insert.
	DedupFailOpen bool             `mapstructure:"dedup_fail_open"`
	ClickHouse    ClickHouseConfig `mapstructure:"clickhouse"`
}

// ClickHouseConfig holds ClickHouse connection parameters.
// Checked by the store factory only when the clickhouse backend is selected.
type ClickHouseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// PollerConfig holds the upstream polling client configuration.
type PollerConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	URL                string `mapstructure:"url" validate:"required,url"`
	StateKey           string `mapstructure:"state_key" validate:"required"`
	ArchiveDir         string `mapstructure:"archive_dir" validate:"required"`
	RetryDelaySec      int    `mapstructure:"retry_delay_sec" validate:"required,min=1"`
	RateLimitThreshold int    `mapstructure:"rate_limit_threshold" validate:"min=0"`
}
