package modkit

import (
	"feedbackd/internal/modkit/repokit"
	"feedbackd/internal/platform/config"
	"feedbackd/internal/platform/logger"
	"feedbackd/internal/platform/metrics"
	"feedbackd/internal/platform/store"
)

// Deps is what every module constructor receives
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// SQL is the relational seam; Driver names the backend ("pg" or "sqlite")
	SQL    repokit.TxRunner
	Driver string

	// CH is optional; nil when analytics are off
	CH store.Clickhouse

	Metrics *metrics.Metrics
}

// FromStore copies whichever backends s opened; a nil store leaves them empty
func FromStore(s *store.Store, cfg config.Conf, log logger.Logger, m *metrics.Metrics) Deps {
	d := Deps{Log: log, Cfg: cfg, Metrics: m}
	if s != nil {
		d.SQL, d.Driver, d.CH = s.SQL, s.Driver, s.CH
	}
	return d
}
