// Package census polls the bot census and API health in the background and
// keeps the latest result for the exporter.
package census

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/tmcatcher/internal/api"
	"github.com/muurk/tmcatcher/internal/logging"
	"github.com/muurk/tmcatcher/internal/metrics"
)

const (
	// DefaultInterval is the census poll interval
	DefaultInterval = 10 * time.Second

	// DefaultHealthInterval is the health check interval
	DefaultHealthInterval = 30 * time.Second
)

// Source is what the poller queries. *api.Client satisfies it.
type Source interface {
	CheckTotalBots(ctx context.Context) api.CensusResult
	CheckAPIHealth(ctx context.Context) bool
}

// Snapshot is the latest known census state.
type Snapshot struct {
	OnlineBotCount int       `json:"onlineBotCount"`
	Online         bool      `json:"online"`
	Healthy        bool      `json:"healthy"`
	Message        string    `json:"message,omitempty"`
	AsOf           time.Time `json:"asOf"`
	HealthAsOf     time.Time `json:"healthAsOf"`
	Polls          uint64    `json:"polls"`
}

// Poller runs census and health checks on fixed intervals.
type Poller struct {
	source         Source
	interval       time.Duration
	healthInterval time.Duration

	mu   sync.RWMutex
	snap Snapshot
}

// NewPoller creates a poller. Non-positive intervals use the defaults.
func NewPoller(source Source, interval, healthInterval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if healthInterval <= 0 {
		healthInterval = DefaultHealthInterval
	}
	return &Poller{source: source, interval: interval, healthInterval: healthInterval}
}

// Snapshot returns a copy of the latest state.
func (p *Poller) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

// PollCensus queries the census once and records the result.
func (p *Poller) PollCensus(ctx context.Context) Snapshot {
	res := p.source.CheckTotalBots(ctx)
	metrics.ObserveCensus(res.Success, res.OnlineBotCount)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap.Online = res.Success
	p.snap.OnlineBotCount = res.OnlineBotCount
	p.snap.Message = ""
	if !res.Success {
		p.snap.OnlineBotCount = 0
		p.snap.Message = res.Message
	}
	p.snap.AsOf = res.AsOf
	p.snap.Polls++
	return p.snap
}

// PollHealth runs one health check and records the result.
func (p *Poller) PollHealth(ctx context.Context) Snapshot {
	healthy := p.source.CheckAPIHealth(ctx)
	metrics.SetAPIUp(healthy)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap.Healthy = healthy
	p.snap.HealthAsOf = time.Now()
	return p.snap
}

// Run polls immediately and then on every interval until ctx is canceled.
func (p *Poller) Run(ctx context.Context) {
	logging.Info("Census poller started",
		zap.Duration("interval", p.interval),
		zap.Duration("health_interval", p.healthInterval),
	)

	censusTicker := time.NewTicker(p.interval)
	defer censusTicker.Stop()
	healthTicker := time.NewTicker(p.healthInterval)
	defer healthTicker.Stop()

	p.PollCensus(ctx)
	p.PollHealth(ctx)

	for {
		select {
		case <-ctx.Done():
			logging.Info("Census poller stopped")
			return
		case <-censusTicker.C:
			snap := p.PollCensus(ctx)
			logging.Debug("Census polled",
				zap.Bool("online", snap.Online),
				zap.Int("online_bots", snap.OnlineBotCount),
			)
		case <-healthTicker.C:
			p.PollHealth(ctx)
		}
	}
}
