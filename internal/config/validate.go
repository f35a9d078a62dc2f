package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *SnifferConfig) Validate() error {
	if c.Instance.ID == "" {
		return errors.New("instance.id is required")
	}
	if c.Gateway.WSURL == "" {
		return errors.New("gateway.ws_url is required")
	}
	if c.Gateway.SaleChannel == "" {
		return errors.New("gateway.sale_channel is required")
	}
	if c.Gateway.FloorChannel == "" {
		return errors.New("gateway.floor_channel is required")
	}
	if c.Gateway.SaleChannel == c.Gateway.FloorChannel {
		return errors.New("gateway.sale_channel and gateway.floor_channel must differ")
	}

	if err := c.Database.Postgres.validate("database.postgres"); err != nil {
		return err
	}

	if c.Writers.SaleBufferSize < 1 {
		return errors.New("writers.sale_buffer_size must be >= 1")
	}
	if c.Writers.FloorBufferSize < 1 {
		return errors.New("writers.floor_buffer_size must be >= 1")
	}

	if c.Health.Port < 1 || c.Health.Port > 65535 {
		return errors.New("health.port must be 1-65535")
	}

	return nil
}

// Validate checks that all required fields are set and values are valid.
func (c *AnalyzerConfig) Validate() error {
	if err := c.Database.Postgres.validate("database.postgres"); err != nil {
		return err
	}

	if c.API.Port < 1 || c.API.Port > 65535 {
		return errors.New("api.port must be 1-65535")
	}

	if c.Forecast.Alpha <= 0 {
		return errors.New("forecast.alpha must be > 0")
	}
	if c.Forecast.RANSACTrials < 1 {
		return errors.New("forecast.ransac_trials must be >= 1")
	}
	if c.Forecast.MinInlierFraction <= 0 || c.Forecast.MinInlierFraction > 1 {
		return errors.New("forecast.min_inlier_fraction must be in (0, 1]")
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Port < 1 || db.Port > 65535 {
		return fmt.Errorf("%s.port must be 1-65535", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns must be <= max_conns", prefix)
	}
	return nil
}
