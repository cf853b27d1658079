package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the runtime configuration for the journaling API.
type Config struct {
	HTTPAddr    string
	MetricsAddr string
	// Store selects the backend: "postgres" (default) or "memory". The
	// in-memory store must be asked for explicitly so a deploy with missing
	// database configuration fails at startup instead of silently serving
	// from RAM.
	Store    string
	Database DatabaseConfig
}

// DatabaseConfig describes how to reach Postgres. Either a full DSN or the
// individual host/user/name parts, with the password read from a mounted
// secret file when one is present (Kubernetes CSI layout) and from the
// environment otherwise.
type DatabaseConfig struct {
	URL          string
	Host         string
	Port         int
	User         string
	Name         string
	Password     string
	PasswordFile string
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("metrics_addr", "")
	v.SetDefault("store", "postgres")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_user", "psqladmin")
	v.SetDefault("db_name", "postgres")
	v.SetDefault("db_password_file", "/mnt/secrets-store/pg-admin-password")

	v.AutomaticEnv()
	for _, key := range []string{
		"http_addr", "metrics_addr", "store",
		"database_url", "db_host", "db_port", "db_user", "db_name",
		"db_password", "db_password_file",
	} {
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		HTTPAddr:    v.GetString("http_addr"),
		MetricsAddr: v.GetString("metrics_addr"),
		Store:       strings.ToLower(strings.TrimSpace(v.GetString("store"))),
		Database: DatabaseConfig{
			URL:          strings.TrimSpace(v.GetString("database_url")),
			Host:         strings.TrimSpace(v.GetString("db_host")),
			Port:         v.GetInt("db_port"),
			User:         strings.TrimSpace(v.GetString("db_user")),
			Name:         strings.TrimSpace(v.GetString("db_name")),
			Password:     v.GetString("db_password"),
			PasswordFile: strings.TrimSpace(v.GetString("db_password_file")),
		},
	}
	switch cfg.Store {
	case "postgres", "memory":
	default:
		return nil, fmt.Errorf("unknown STORE %q (expected postgres or memory)", cfg.Store)
	}
	return cfg, nil
}

// DSN resolves the connection string through an ordered source chain:
// mounted secret file first, then DATABASE_URL, then DB_PASSWORD. An empty
// result with a nil error means no database was configured at all; unless the
// memory store was opted into, startup treats that as fatal.
func (d DatabaseConfig) DSN() (string, error) {
	if pw, ok, err := d.passwordFromFile(); err != nil {
		return "", err
	} else if ok {
		return d.compose(pw)
	}
	if d.URL != "" {
		return d.URL, nil
	}
	if d.Host != "" {
		if d.Password == "" {
			return "", errors.New("DB_HOST is set but no password source is available")
		}
		return d.compose(d.Password)
	}
	return "", nil
}

func (d DatabaseConfig) passwordFromFile() (string, bool, error) {
	if d.PasswordFile == "" {
		return "", false, nil
	}
	b, err := os.ReadFile(d.PasswordFile)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read password file: %w", err)
	}
	return strings.TrimSpace(string(b)), true, nil
}

// compose builds a postgres URL, escaping the credentials so passwords with
// '@' or ':' survive.
func (d DatabaseConfig) compose(password string) (string, error) {
	if d.Host == "" {
		return "", errors.New("DB_HOST env var is missing")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	return u.String(), nil
}
