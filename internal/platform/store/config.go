package store

import (
	"time"

	"pbl/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	LogArgs     bool
	SlowQueryMs int

	// Migrate lets repos create their tables on startup
	Migrate bool

	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

// CHConfig configures clickhouse
type CHConfig struct {
	Enabled bool
	URL     string

	// Table receives assistant events
	Table string

	// Role is reported in client info, e.g. "api" or "ctl"
	Role string
}

// DefaultCHTable is the telemetry table when CH_TABLE is unset
const DefaultCHTable = "assistant_events"

// FromConf reads PG_* and CH_* keys from c
func FromConf(c config.Conf, role string) Config {
	pg := c.Prefix("PG_")
	ch := c.Prefix("CH_")

	cfg := Config{
		AppName: c.MayString("APP_NAME", "pbl"),
		PG: PGConfig{
			Enabled:        pg.MayBool("ENABLED", false),
			MaxConns:       int32(pg.MayInt("MAX_CONNS", 4)),
			LogSQL:         pg.MayBool("LOG_SQL", false),
			LogArgs:        pg.MayBool("LOG_ARGS", false),
			SlowQueryMs:    pg.MayInt("SLOW_MS", 500),
			Migrate:        pg.MayBool("MIGRATE", true),
			ConnectRetries: pg.MayInt("CONNECT_RETRIES", 20),
			PingTimeout:    pg.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		CH: CHConfig{
			Enabled: ch.MayBool("ENABLED", false),
			Table:   ch.MayString("TABLE", DefaultCHTable),
			Role:    role,
		},
	}
	if cfg.PG.Enabled {
		cfg.PG.URL = pg.MustString("URL")
	}
	if cfg.CH.Enabled {
		cfg.CH.URL = ch.MustString("URL")
	}
	return cfg
}
