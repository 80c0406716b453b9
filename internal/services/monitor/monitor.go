package monitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/gamiempire/sovereign/internal/dependencies/clock"
	"github.com/gamiempire/sovereign/internal/model"
	"github.com/gamiempire/sovereign/internal/services/audit"
	"github.com/gamiempire/sovereign/internal/services/economy"
	"github.com/gamiempire/sovereign/internal/services/identity"
	"github.com/gamiempire/sovereign/internal/services/settings"
	"github.com/gamiempire/sovereign/internal/storage"
)

// Config holds the reconciliation intervals.
type Config struct {
	PerformanceInterval time.Duration
	SweepInterval       time.Duration
	AggregateInterval   time.Duration
	SnapshotInterval    time.Duration

	// InactivityThreshold is how long a session may idle before the
	// sweep evicts it.
	InactivityThreshold time.Duration
}

// DefaultConfig returns the platform's reconciliation schedule.
func DefaultConfig() Config {
	return Config{
		PerformanceInterval: 5 * time.Second,
		SweepInterval:       10 * time.Second,
		AggregateInterval:   30 * time.Second,
		SnapshotInterval:    60 * time.Second,
		InactivityThreshold: 5 * time.Minute,
	}
}

// Monitor runs the four periodic reconciliation tasks. Each task is
// idempotent and failure-isolated: a panic or storage error in one
// tick is logged (and audited where it matters) without touching the
// other tasks' schedules.
type Monitor struct {
	storage  storage.Storage
	identity *identity.Service
	engine   *economy.Engine
	registry *settings.Registry
	audit    *audit.Logger
	clock    clock.Clock
	logger   *slog.Logger
	cfg      Config

	metrics   metricsState
	startedAt time.Time
}

// New creates a Monitor.
func New(store storage.Storage, ids *identity.Service, engine *economy.Engine, registry *settings.Registry, auditor *audit.Logger, clk clock.Clock, cfg Config, logger *slog.Logger) *Monitor {
	return &Monitor{
		storage:   store,
		identity:  ids,
		engine:    engine,
		registry:  registry,
		audit:     auditor,
		clock:     clk,
		logger:    logger,
		cfg:       cfg,
		startedAt: clk.Now(),
	}
}

// Start launches the reconciliation loops. They run until ctx is
// cancelled; ticks are fire-and-forget and rescheduled unconditionally.
func (m *Monitor) Start(ctx context.Context) {
	go m.loop(ctx, "performance_sampling", m.cfg.PerformanceInterval, m.SamplePerformance)
	go m.loop(ctx, "inactivity_sweep", m.cfg.SweepInterval, m.SweepInactiveSessions)
	go m.loop(ctx, "economic_aggregation", m.cfg.AggregateInterval, m.AggregateEconomy)
	go m.loop(ctx, "state_snapshot", m.cfg.SnapshotInterval, m.PersistSnapshot)
}

func (m *Monitor) loop(ctx context.Context, name string, interval time.Duration, task func(context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.runIsolated(ctx, name, task)
		}
	}
}

// runIsolated executes one tick with panic isolation.
func (m *Monitor) runIsolated(ctx context.Context, name string, task func(context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("reconciliation task panicked",
				slog.String("task", name),
				slog.Any("panic", r),
			)
		}
	}()
	task(ctx)
}

// SweepInactiveSessions evicts sessions idle beyond the threshold,
// auditing one event per eviction.
func (m *Monitor) SweepInactiveSessions(ctx context.Context) {
	evicted := m.identity.SweepInactive(m.cfg.InactivityThreshold)
	for _, session := range evicted {
		m.audit.Record(ctx, model.AuditUserInactive, session.Username, map[string]any{
			"last_activity": session.LastActivity,
		})
	}
	if len(evicted) > 0 {
		m.logger.Info("inactive sessions evicted", slog.Int("count", len(evicted)))
	}
}

// AggregateEconomy recomputes income and occupancy totals across the
// world table and audits a snapshot. Read-only on economic state.
func (m *Monitor) AggregateEconomy(ctx context.Context) {
	agg := m.engine.Aggregate()
	m.audit.Record(ctx, model.AuditEconomicMonitor, "", map[string]any{
		"total_income":   agg.TotalIncome,
		"active_rentals": agg.ActiveRentals,
		"world_objects":  agg.Entities,
	})
}

// PersistSnapshot writes the last-known-good state slot. Failure is
// recorded, never fatal.
func (m *Monitor) PersistSnapshot(ctx context.Context) {
	snapshot := &model.Snapshot{
		Settings:       m.registry.Overrides(),
		Entities:       m.engine.Entities(),
		ActiveSessions: m.identity.ActiveSessions(),
		SavedAt:        m.clock.Now(),
	}

	if err := m.storage.SaveSnapshot(ctx, snapshot); err != nil {
		m.logger.Warn("state snapshot failed", slog.String("error", err.Error()))
		m.audit.Record(ctx, model.AuditAutoSaveFailed, "", map[string]any{
			"error": err.Error(),
		})
	}
}

// Uptime reports how long the monitor has been running.
func (m *Monitor) Uptime() time.Duration {
	return m.clock.Now().Sub(m.startedAt)
}
