package config

import "time"

// SnifferConfig is the root configuration for a sniffer instance.
type SnifferConfig struct {
	Instance InstanceConfig `yaml:"instance"`
	Gateway  GatewayConfig  `yaml:"gateway"`
	Database DatabaseConfig `yaml:"database"`
	Writers  WritersConfig  `yaml:"writers"`
	Health   HealthConfig   `yaml:"health"`
}

// AnalyzerConfig is the root configuration for the analyzer API.
type AnalyzerConfig struct {
	Database DatabaseConfig `yaml:"database"`
	API      APIConfig      `yaml:"api"`
	Forecast ForecastConfig `yaml:"forecast"`
}

// InstanceConfig identifies this sniffer.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// GatewayConfig holds broadcast gateway settings.
type GatewayConfig struct {
	WSURL              string        `yaml:"ws_url"`
	SaleChannel        string        `yaml:"sale_channel"`  // channel id carrying sale notices
	FloorChannel       string        `yaml:"floor_channel"` // channel id carrying floor updates
	ReconnectBaseDelay time.Duration `yaml:"reconnect_base_delay"`
	ReconnectMaxDelay  time.Duration `yaml:"reconnect_max_delay"`
	PingTimeout        time.Duration `yaml:"ping_timeout"`
	BufferSize         int           `yaml:"buffer_size"`
}

// DatabaseConfig holds the PostgreSQL connection for the gift store.
type DatabaseConfig struct {
	Postgres DBConfig `yaml:"postgres"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// WritersConfig holds store writer settings.
type WritersConfig struct {
	SaleBufferSize  int `yaml:"sale_buffer_size"`
	FloorBufferSize int `yaml:"floor_buffer_size"`
}

// HealthConfig holds health endpoint settings.
type HealthConfig struct {
	Port int `yaml:"port"`
}

// APIConfig holds analyzer HTTP API settings.
type APIConfig struct {
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// ForecastConfig holds forecast engine tuning.
type ForecastConfig struct {
	Alpha             float64 `yaml:"alpha"`               // recency decay rate
	RANSACTrials      int     `yaml:"ransac_trials"`       // max sampling trials
	MinInlierFraction float64 `yaml:"min_inlier_fraction"` // consensus threshold
}
