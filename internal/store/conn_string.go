package store

import (
	"fmt"
	"net/url"

	"github.com/prezix/telegram-gifts-parser/internal/config"
)

// BuildConnString builds a pgx connection URL from config. Credentials are
// URL-escaped by construction. SSLMode is filled in by the config defaults;
// this builder does not second-guess it.
func BuildConnString(cfg config.DBConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:     cfg.Name,
		RawQuery: "sslmode=" + cfg.SSLMode,
	}
	return u.String()
}
