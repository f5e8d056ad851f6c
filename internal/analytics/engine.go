package analytics

import (
	"sync/atomic"
	"time"

	"github.com/sellerlytics/sellerlytics/internal/cache"
	"github.com/sellerlytics/sellerlytics/internal/logging"
	"github.com/sellerlytics/sellerlytics/internal/models"
)

// Result bundles every table a query produces. Results are immutable once
// computed; callers must not modify the slices.
type Result struct {
	SellerKPIs           []SellerKPI               `json:"seller_kpis"`
	MonthlyTrend         []MonthlyTrendRow         `json:"monthly_trend"`
	StatusDistribution   []StatusDistributionRow   `json:"status_distribution"`
	CategoryDistribution []CategoryDistributionRow `json:"category_distribution"`
	ReturnReasons        []ReturnReasonRow         `json:"return_reasons"`
	TopSellers           []SellerKPI               `json:"top_sellers"`
	Underperformers      []SellerKPI               `json:"underperformers"`
}

// Engine computes filtered KPI reports over the active snapshot. The
// snapshot reference is swapped atomically on regeneration: a new snapshot
// is built fully before being published, and in-flight queries keep reading
// the one they started with.
type Engine struct {
	snapshot atomic.Pointer[models.Snapshot]
	results  *cache.Cache

	onTimeDays int
	minOrders  int
	rankLimit  int
}

func NewEngine(cfg *models.Config) *Engine {
	return &Engine{
		results:    cache.New(cfg.CacheSize),
		onTimeDays: cfg.OnTimeDays,
		minOrders:  cfg.RankingMinOrders,
		rankLimit:  cfg.RankingLimit,
	}
}

// Replace publishes a new snapshot and invalidates cache entries tied to the
// one it supersedes.
func (e *Engine) Replace(snap *models.Snapshot) {
	old := e.snapshot.Swap(snap)
	if old != nil {
		e.results.InvalidateVersion(old.Version)
		logging.Info().
			Uint64("old_version", old.Version).
			Uint64("version", snap.Version).
			Msg("snapshot replaced")
	}
}

// Snapshot returns the currently published snapshot, or nil before the
// first Replace.
func (e *Engine) Snapshot() *models.Snapshot {
	return e.snapshot.Load()
}

// Invalidate drops cache entries computed against the given snapshot.
func (e *Engine) Invalidate(snap *models.Snapshot) {
	e.results.InvalidateVersion(snap.Version)
}

// Query computes every per-seller metric and breakdown for the filter, or
// returns the memoized result for an identical earlier query against the
// same snapshot version. referenceDate anchors days_since_joining so
// results are reproducible.
func (e *Engine) Query(spec FilterSpec, referenceDate time.Time) (*Result, error) {
	snap := e.snapshot.Load()
	return e.QuerySnapshot(snap, spec, referenceDate)
}

// QuerySnapshot is Query against an explicit snapshot, for callers that
// manage their own snapshot lifecycle.
func (e *Engine) QuerySnapshot(snap *models.Snapshot, spec FilterSpec, referenceDate time.Time) (*Result, error) {
	if snap == nil {
		return nil, &models.FilterError{Field: "snapshot", Constraint: "no snapshot published"}
	}
	if err := spec.Validate(snap); err != nil {
		return nil, err
	}

	key := spec.Signature(snap.Version, referenceDate)
	if cached, ok := e.results.Get(key); ok {
		return cached.(*Result), nil
	}

	started := time.Now()
	fs := spec.Apply(snap)
	rows := AggregateSellers(fs, referenceDate, e.onTimeDays)

	result := &Result{
		SellerKPIs:           rows,
		MonthlyTrend:         MonthlyTrend(fs, spec),
		StatusDistribution:   StatusDistribution(fs),
		CategoryDistribution: CategoryDistribution(fs),
		ReturnReasons:        ReturnReasons(fs),
		TopSellers:           TopSellers(rows, e.minOrders, e.rankLimit),
		Underperformers:      Underperformers(rows, e.minOrders, e.rankLimit),
	}
	e.results.Set(key, snap.Version, result)

	logging.Debug().
		Int("orders", len(fs.Orders)).
		Int("sellers", len(fs.Sellers)).
		Dur("elapsed", time.Since(started)).
		Msg("query computed")
	return result, nil
}
