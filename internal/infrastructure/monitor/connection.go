package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CheckFunc probes one dependency; a nil error means it is reachable.
type CheckFunc func(ctx context.Context) error

// Monitor periodically runs the registered checks and keeps the latest result.
type Monitor struct {
	checks   map[string]CheckFunc
	interval time.Duration
	timeout  time.Duration
	cron     *cron.Cron
	logger   *zap.Logger

	mu     sync.RWMutex
	status Status
}

func New(interval time.Duration, logger *zap.Logger) *Monitor {
	if interval < time.Second {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		checks:   make(map[string]CheckFunc),
		interval: interval,
		timeout:  3 * time.Second,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger,
	}
}

// Register adds a named check. It must be called before Start.
func (m *Monitor) Register(name string, check CheckFunc) {
	if check == nil {
		return
	}
	m.checks[name] = check
}

// Start runs the checks once synchronously and then on the configured schedule.
func (m *Monitor) Start() error {
	m.Refresh(context.Background())

	schedule := fmt.Sprintf("@every %ds", int(m.interval.Seconds()))
	if _, err := m.cron.AddFunc(schedule, func() {
		m.Refresh(context.Background())
	}); err != nil {
		return err
	}
	m.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running refresh to finish.
func (m *Monitor) Stop(ctx context.Context) {
	stopCtx := m.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
}

func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Healthy
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	checks := make(map[string]bool, len(m.status.Checks))
	for name, ok := range m.status.Checks {
		checks[name] = ok
	}
	status := m.status
	status.Checks = checks
	return status
}

// Refresh runs every check now and stores the result.
func (m *Monitor) Refresh(ctx context.Context) {
	status := Status{
		Checks:    make(map[string]bool, len(m.checks)),
		Healthy:   true,
		LastCheck: time.Now(),
	}
	for name, check := range m.checks {
		checkCtx, cancel := context.WithTimeout(ctx, m.timeout)
		err := check(checkCtx)
		cancel()

		status.Checks[name] = err == nil
		if err != nil {
			status.Healthy = false
			m.logger.Warn("dependency check failed", zap.String("dependency", name), zap.Error(err))
		}
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}
