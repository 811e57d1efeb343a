package usage

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"emergency_response/pkg/contextx"
	"emergency_response/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Service names one external provider budget.
type Service string

const (
	ServiceLLM       Service = "llm"
	ServiceMaps      Service = "maps"
	ServiceTelephony Service = "telephony"
)

// Approximate per-unit provider prices, used only for the usage report.
const (
	costPerLLMRequest      = 0.002
	costPerMapsRequest     = 0.005
	costPerTelephonyMinute = 0.013
)

// Limits are the per-service daily ceilings. Telephony carries two: a call
// count and a cumulative-minutes budget.
type Limits struct {
	LLMRequests      int
	MapsRequests     int
	TelephonyCalls   int
	TelephonyMinutes int
}

// Guard gates every outbound external call against daily ceilings. Counters
// are shared process-wide and reset at UTC midnight. When demo mode is on,
// every acquisition is refused and callers degrade to their fallbacks.
type Guard struct {
	limits Limits
	clock  clockwork.Clock
	store  *fileStore

	mu       sync.Mutex
	day      string
	counts   map[Service]int
	minutes  int
	demoMode bool
}

func NewGuard(limits Limits) *Guard {
	return &Guard{
		limits: limits,
		clock:  clockwork.NewRealClock(),
		counts: map[Service]int{},
	}
}

// WithClock swaps the time source. Tests use a fake to cross day boundaries.
func (g *Guard) WithClock(clock clockwork.Clock) *Guard {
	g.clock = clock
	return g
}

// WithFile backs the counters with a JSON file, restoring same-day counts
// from a previous run.
func (g *Guard) WithFile(ctx context.Context, path string) *Guard {
	g.store = newFileStore(path)

	snap, err := g.store.load()
	if err != nil {
		logger(ctx).Warn("usage file unreadable, starting fresh", logx.Error(err))
		return g
	}

	if snap.Day == g.today() {
		g.day = snap.Day
		g.counts = snap.Counts
		g.minutes = snap.Minutes
	}

	return g
}

// WithDemoMode sets the initial demo/safe mode state.
func (g *Guard) WithDemoMode(enabled bool) *Guard {
	g.demoMode = enabled
	return g
}

// Acquire atomically checks the ceiling for a service and, when permitted,
// counts one call. A check-then-increment split would over-admit under
// concurrent requests, so admission and accounting are one critical section.
func (g *Guard) Acquire(ctx context.Context, service Service) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.rolloverLocked()

	if g.demoMode {
		return false
	}

	if g.counts[service] >= g.limitFor(service) {
		return false
	}

	g.counts[service]++
	g.persistLocked(ctx)

	return true
}

// AcquireCall admits one telephony call of the given estimated duration,
// checking both the call-count and cumulative-minutes ceilings.
func (g *Guard) AcquireCall(ctx context.Context, estimatedMinutes int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.rolloverLocked()

	if g.demoMode {
		return false
	}

	if g.counts[ServiceTelephony] >= g.limits.TelephonyCalls {
		return false
	}

	if g.minutes+estimatedMinutes > g.limits.TelephonyMinutes {
		return false
	}

	g.counts[ServiceTelephony]++
	g.minutes += estimatedMinutes
	g.persistLocked(ctx)

	return true
}

func (g *Guard) SetDemoMode(ctx context.Context, enabled bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.demoMode = enabled

	logger(ctx).Info("demo mode changed", "enabled", enabled)
}

func (g *Guard) DemoMode() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.demoMode
}

// ServiceUsage is one line of the usage report.
type ServiceUsage struct {
	Used    int
	Limit   int
	Minutes int
	Cost    float64
}

// Report snapshots today's consumption for all services.
type Report struct {
	Date      string
	DemoMode  bool
	Services  map[Service]ServiceUsage
	TotalCost float64
}

func (g *Guard) Report() Report {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.rolloverLocked()

	llmCost := float64(g.counts[ServiceLLM]) * costPerLLMRequest
	mapsCost := float64(g.counts[ServiceMaps]) * costPerMapsRequest
	telephonyCost := float64(g.minutes) * costPerTelephonyMinute

	return Report{
		Date:     g.day,
		DemoMode: g.demoMode,
		Services: map[Service]ServiceUsage{
			ServiceLLM: {
				Used:  g.counts[ServiceLLM],
				Limit: g.limits.LLMRequests,
				Cost:  llmCost,
			},
			ServiceMaps: {
				Used:  g.counts[ServiceMaps],
				Limit: g.limits.MapsRequests,
				Cost:  mapsCost,
			},
			ServiceTelephony: {
				Used:    g.counts[ServiceTelephony],
				Limit:   g.limits.TelephonyCalls,
				Minutes: g.minutes,
				Cost:    telephonyCost,
			},
		},
		TotalCost: llmCost + mapsCost + telephonyCost,
	}
}

func (g *Guard) limitFor(service Service) int {
	switch service {
	case ServiceLLM:
		return g.limits.LLMRequests
	case ServiceMaps:
		return g.limits.MapsRequests
	case ServiceTelephony:
		return g.limits.TelephonyCalls
	}

	return 0
}

func (g *Guard) today() string {
	return g.clock.Now().UTC().Format(time.DateOnly)
}

// rolloverLocked zeroes the counters when the UTC day key has changed. No
// partial-day rollover: yesterday's remainder is discarded.
func (g *Guard) rolloverLocked() {
	today := g.today()

	if g.day != today {
		g.day = today
		g.counts = map[Service]int{}
		g.minutes = 0
	}
}

func (g *Guard) persistLocked(ctx context.Context) {
	if g.store == nil {
		return
	}

	snap := snapshot{
		Day:     g.day,
		Counts:  g.counts,
		Minutes: g.minutes,
	}

	if err := g.store.save(snap); err != nil {
		logger(ctx).Error("usage persist failed", logx.Error(err))
	}
}
