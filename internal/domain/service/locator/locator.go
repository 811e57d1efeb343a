package locator

import (
	"context"
	"fmt"
	"sort"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"emergency_response/internal/domain"
	"emergency_response/internal/domain/entity"
	"emergency_response/internal/domain/value"
	"emergency_response/internal/observability"
	"emergency_response/internal/usage"
	"emergency_response/pkg/contextx"
	"emergency_response/pkg/logx"
)

// maxFacilities bounds the ranked list returned to callers.
const maxFacilities = 5

type provider interface {
	Nearby(ctx context.Context, coords value.Coordinates, radiusMeters int) ([]entity.Facility, error)
}

type guard interface {
	Acquire(ctx context.Context, service usage.Service) bool
}

// Locator finds medical facilities near a point. Results are ranked by
// rating, then review count, keeping provider order for full ties. Any
// problem reaching the mapping provider yields the static fallback list.
type Locator struct {
	provider provider
	guard    guard
	metrics  *observability.Metrics
	cache    *gocache.Cache
	radius   int
}

func NewLocator(guard guard, metrics *observability.Metrics, radiusMeters int, cacheTTL time.Duration) *Locator {
	return &Locator{
		guard:   guard,
		metrics: metrics,
		cache:   gocache.New(cacheTTL, 2*cacheTTL),
		radius:  radiusMeters,
	}
}

// WithProvider attaches a mapping provider. Without one the locator always
// serves the fallback list.
func (l *Locator) WithProvider(p provider) *Locator {
	l.provider = p
	return l
}

// Locate returns up to maxFacilities facilities near the given coordinates.
// It never returns an error: every provider failure degrades to the static
// fallback list, which is tagged as such.
func (l *Locator) Locate(ctx context.Context, coords value.Coordinates) entity.FacilityList {
	logger := contextx.LoggerFromContextOrDefault(ctx)

	if l.provider == nil {
		return fallbackFacilities()
	}

	key := cacheKey(coords, l.radius)
	if cached, ok := l.cache.Get(key); ok {
		l.metrics.FacilityCache.WithLabelValues("hit").Inc()
		return cached.(entity.FacilityList)
	}
	l.metrics.FacilityCache.WithLabelValues("miss").Inc()

	if !l.guard.Acquire(ctx, usage.ServiceMaps) {
		logger.Warn("maps call budget exhausted, serving fallback facilities", logx.Error(domain.ErrQuotaExceeded))
		l.metrics.ExternalCalls.WithLabelValues(string(usage.ServiceMaps), "refused").Inc()
		return fallbackFacilities()
	}

	facilities, err := l.provider.Nearby(ctx, coords, l.radius)
	if err != nil {
		logger.Warn("facility lookup failed, serving fallback facilities", logx.Error(domain.Unavailable(err)))
		l.metrics.ExternalCalls.WithLabelValues(string(usage.ServiceMaps), "error").Inc()
		return fallbackFacilities()
	}
	l.metrics.ExternalCalls.WithLabelValues(string(usage.ServiceMaps), "success").Inc()

	// Zero records is a legitimate lookup outcome, not a degradation.
	if len(facilities) == 0 {
		logger.Info("no facilities near coordinates", logx.Stringer("coordinates", coords))
	}

	list := entity.FacilityList{Facilities: rank(facilities)}
	l.cache.SetDefault(key, list)
	return list
}

// rank orders facilities by rating descending, then review count descending.
// Facilities tied on both keys keep the provider's order.
func rank(facilities []entity.Facility) []entity.Facility {
	ranked := make([]entity.Facility, len(facilities))
	copy(ranked, facilities)

	sort.SliceStable(ranked, func(i, j int) bool {
		ri, rj := deref(ranked[i].Rating), deref(ranked[j].Rating)
		if ri != rj {
			return ri > rj
		}
		return deref(ranked[i].ReviewCount) > deref(ranked[j].ReviewCount)
	})

	if len(ranked) > maxFacilities {
		ranked = ranked[:maxFacilities]
	}
	return ranked
}

func deref[T float64 | int](v *T) T {
	if v == nil {
		return 0
	}
	return *v
}

// cacheKey rounds coordinates to ~100m so nearby requests share an entry.
func cacheKey(coords value.Coordinates, radius int) string {
	return fmt.Sprintf("%.3f:%.3f:%d", coords.Latitude, coords.Longitude, radius)
}
