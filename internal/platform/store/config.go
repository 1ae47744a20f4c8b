package store

import (
	"time"

	"feedbackd/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	// Driver selects the SQL backend: "pg" (default) or "sqlite"
	Driver string

	PG     PGConfig
	SQLite SQLiteConfig
	CH     CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// ConnectRetries bounds the boot ping loop, PingTimeout bounds each attempt
	ConnectRetries int
	PingTimeout    time.Duration
}

// SQLiteConfig configures the local sqlite backend
type SQLiteConfig struct {
	Path        string
	BusyTimeout time.Duration
	LogSQL      bool
	SlowQueryMs int
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled    bool
	URL        string
	ClientName string
	ClientTag  string
}

// ConfigFromEnv reads STORE_, SERVICE_PGSQL_, SERVICE_SQLITE_ and SERVICE_CLICKHOUSE_ keys
func ConfigFromEnv(root config.Conf, appName string) Config {
	st := root.Prefix("STORE_")
	pg := root.Prefix("SERVICE_PGSQL_")
	lite := root.Prefix("SERVICE_SQLITE_")
	chc := root.Prefix("SERVICE_CLICKHOUSE_")

	driver := st.MayEnum("DRIVER", DriverPG, DriverPG, DriverSQLite)

	cfg := Config{
		AppName: appName,
		Driver:  driver,
		SQLite: SQLiteConfig{
			Path:        lite.MayString("PATH", "feedback.db"),
			BusyTimeout: lite.MayDuration("BUSY_TIMEOUT", 5*time.Second),
			LogSQL:      lite.MayBool("LOG_SQL", false),
			SlowQueryMs: lite.MayInt("SLOW_MS", 250),
		},
		CH: CHConfig{
			Enabled:    chc.MayBool("ENABLED", false),
			URL:        chc.MayString("DBURL", ""),
			ClientName: appName,
			ClientTag:  chc.MayString("CLIENT_TAG", "dev"),
		},
	}
	if driver == DriverPG {
		cfg.PG = PGConfig{
			Enabled:        true,
			URL:            pg.MustString("DBURL"),
			MaxConns:       int32(pg.MayPositiveInt("MAX_CONNS", 8)),
			LogSQL:         pg.MayBool("LOG_SQL", false),
			SlowQueryMs:    pg.MayInt("SLOW_MS", 250),
			ConnectRetries: pg.MayPositiveInt("CONNECT_RETRIES", 20),
			PingTimeout:    pg.MayDuration("PING_TIMEOUT", 3*time.Second),
		}
	}
	if cfg.CH.Enabled {
		chc.Require("DBURL")
	}
	return cfg
}
