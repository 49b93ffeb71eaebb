package config

import (
	"fmt"
	"net/url"
)

// ConnString returns the PostgreSQL connection string.
// The password is URL-encoded so special characters survive.
func (db PostgresConfig) ConnString() string {
	if db.DSN != "" {
		return db.DSN
	}

	sslMode := db.SSLMode
	if sslMode == "" {
		sslMode = DefaultDBSSLMode
	}

	userinfo := db.User
	if db.Password != "" {
		userinfo += ":" + url.QueryEscape(db.Password)
	}

	return fmt.Sprintf(
		"postgres://%s@%s:%d/%s?sslmode=%s",
		userinfo,
		db.Host,
		db.Port,
		db.Name,
		sslMode,
	)
}
