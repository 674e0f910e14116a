package jobs

import (
	"context"
	"log/slog"
	"time"

	"friendgraph-api/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var relationAnomalies = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "friendgraph_relation_anomalies",
	Help: "Relation set anomalies found by the last audit pass.",
}, []string{"kind"})

// RelationAuditJob periodically checks the friend graph for broken invariants
type RelationAuditJob struct {
	audit  *services.AuditService
	logger *slog.Logger
	ticker *time.Ticker
	done   chan struct{}
	// ran receives after each pass; tests use it to wait.
	ran chan services.AuditReport
}

func NewRelationAuditJob(audit *services.AuditService, interval time.Duration, logger *slog.Logger) *RelationAuditJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &RelationAuditJob{
		audit:  audit,
		logger: logger,
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
}

// Start begins the audit job
func (j *RelationAuditJob) Start() {
	j.logger.Info("relation audit job started")

	go func() {
		// Run immediately on start
		j.run()

		for {
			select {
			case <-j.ticker.C:
				j.run()
			case <-j.done:
				j.logger.Info("relation audit job stopped")
				return
			}
		}
	}()
}

// Stop stops the audit job
func (j *RelationAuditJob) Stop() {
	j.ticker.Stop()
	close(j.done)
}

func (j *RelationAuditJob) run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-j.done:
			cancel()
		case <-ctx.Done():
		}
	}()

	start := time.Now()
	report, err := j.audit.Run(ctx)
	if err != nil {
		j.logger.Error("relation audit failed", "error", err)
		return
	}

	for _, kind := range services.AnomalyKinds {
		relationAnomalies.WithLabelValues(string(kind)).Set(float64(report.Count(kind)))
	}

	j.logger.Info("relation audit completed",
		"accounts", report.AccountsScanned,
		"anomalies", len(report.Anomalies),
		"duration", time.Since(start),
	)

	if j.ran != nil {
		j.ran <- report
	}
}
