package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultDBPort             = 5432
	DefaultDBSSLMode          = "prefer"
	DefaultMaxConns           = 10
	DefaultMinConns           = 2
	DefaultReconnectBaseDelay = 1 * time.Second
	DefaultReconnectMaxDelay  = 60 * time.Second
	DefaultPingTimeout        = 60 * time.Second
	DefaultGatewayBufferSize  = 1000
	DefaultSaleBufferSize     = 1000
	DefaultFloorBufferSize    = 1000
	DefaultHealthPort         = 8080
	DefaultAPIPort            = 8081
	DefaultAPIReadTimeout     = 10 * time.Second
	DefaultAPIWriteTimeout    = 30 * time.Second

	DefaultForecastAlpha     = 0.1
	DefaultRANSACTrials      = 100
	DefaultMinInlierFraction = 0.6
)

func (c *SnifferConfig) applyDefaults() {
	if c.Gateway.ReconnectBaseDelay == 0 {
		c.Gateway.ReconnectBaseDelay = DefaultReconnectBaseDelay
	}
	if c.Gateway.ReconnectMaxDelay == 0 {
		c.Gateway.ReconnectMaxDelay = DefaultReconnectMaxDelay
	}
	if c.Gateway.PingTimeout == 0 {
		c.Gateway.PingTimeout = DefaultPingTimeout
	}
	if c.Gateway.BufferSize == 0 {
		c.Gateway.BufferSize = DefaultGatewayBufferSize
	}

	applyDBDefaults(&c.Database.Postgres)

	if c.Writers.SaleBufferSize == 0 {
		c.Writers.SaleBufferSize = DefaultSaleBufferSize
	}
	if c.Writers.FloorBufferSize == 0 {
		c.Writers.FloorBufferSize = DefaultFloorBufferSize
	}

	if c.Health.Port == 0 {
		c.Health.Port = DefaultHealthPort
	}
}

func (c *AnalyzerConfig) applyDefaults() {
	applyDBDefaults(&c.Database.Postgres)

	if c.API.Port == 0 {
		c.API.Port = DefaultAPIPort
	}
	if c.API.ReadTimeout == 0 {
		c.API.ReadTimeout = DefaultAPIReadTimeout
	}
	if c.API.WriteTimeout == 0 {
		c.API.WriteTimeout = DefaultAPIWriteTimeout
	}

	if c.Forecast.Alpha == 0 {
		c.Forecast.Alpha = DefaultForecastAlpha
	}
	if c.Forecast.RANSACTrials == 0 {
		c.Forecast.RANSACTrials = DefaultRANSACTrials
	}
	if c.Forecast.MinInlierFraction == 0 {
		c.Forecast.MinInlierFraction = DefaultMinInlierFraction
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
