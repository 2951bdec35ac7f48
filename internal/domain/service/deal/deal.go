package deal

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"money_saver/internal/domain"
	"money_saver/internal/domain/entity"
	"money_saver/internal/domain/service/pricehistory"
	"money_saver/internal/domain/value"
	"money_saver/internal/metrics"
	"money_saver/pkg/errcodes"
	"money_saver/pkg/logx"
)

const defaultAnalysisConcurrency = 8

type Feed interface {
	Fetch(ctx context.Context) ([]entity.Deal, error)
}

// HistoryCache memoizes synthesized series. A miss is (nil, false, nil).
// Add keeps the first series stored under a key and returns whatever the key
// holds after the call.
type HistoryCache interface {
	Get(ctx context.Context, key string) ([]entity.PriceHistoryEntry, bool, error)
	Add(ctx context.Context, key string, history []entity.PriceHistoryEntry) ([]entity.PriceHistoryEntry, error)
}

type Synthesizer interface {
	Synthesize(deal entity.Deal) []entity.PriceHistoryEntry
}

type Analyzer interface {
	Analyze(deal entity.Deal, history []entity.PriceHistoryEntry) entity.PriceAnalysis
	Outlook(deal entity.Deal, history []entity.PriceHistoryEntry) entity.SavingsOutlook
}

type Service struct {
	feed        Feed
	cache       HistoryCache
	synthesizer Synthesizer
	analyzer    Analyzer
	concurrency int
	now         func() time.Time
	group       singleflight.Group

	mu       sync.RWMutex
	deals    []entity.Deal
	index    map[string]int
	loadedAt time.Time
}

func NewService(
	feed Feed,
	cache HistoryCache,
	synthesizer Synthesizer,
	analyzer Analyzer,
) *Service {
	return &Service{
		feed:        feed,
		cache:       cache,
		synthesizer: synthesizer,
		analyzer:    analyzer,
		concurrency: defaultAnalysisConcurrency,
		now:         time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) WithAnalysisConcurrency(n int) *Service {
	if n > 0 {
		s.concurrency = n
	}

	return s
}

// Load fetches the feed and swaps the collection in one step. The previous
// collection stays in place when the fetch fails.
func (s *Service) Load(ctx context.Context) (int, error) {
	deals, err := s.feed.Fetch(ctx)
	if err != nil {
		metrics.FeedLoads.WithLabelValues(metrics.ResultFailed).Inc()

		return 0, domain.WrapError(err, errcodes.FeedUnavailable, "deal feed is unavailable")
	}

	index := make(map[string]int, len(deals))
	unique := make([]entity.Deal, 0, len(deals))

	for _, d := range deals {
		if _, dup := index[d.ID]; dup {
			logger(ctx).Warn("duplicate deal id skipped", slog.String(logx.FieldDealID, d.ID))
			continue
		}

		index[d.ID] = len(unique)
		unique = append(unique, d)
	}

	s.mu.Lock()
	s.deals = unique
	s.index = index
	s.loadedAt = s.now()
	s.mu.Unlock()

	metrics.FeedLoads.WithLabelValues(metrics.ResultOK).Inc()
	metrics.FeedDeals.Set(float64(len(unique)))

	logger(ctx).Info("deal feed loaded", slog.Int(logx.FieldCount, len(unique)))

	return len(unique), nil
}

func (s *Service) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loadedAt
}

func (s *Service) snapshot() ([]entity.Deal, map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.index == nil {
		return nil, nil, domain.NewError(errcodes.FeedUnavailable, "deal feed is not loaded yet")
	}

	return s.deals, s.index, nil
}

// List returns deals matching the filter in feed order.
func (s *Service) List(_ context.Context, filter Filter) ([]entity.Deal, error) {
	deals, _, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	return lo.Filter(deals, func(d entity.Deal, _ int) bool {
		return filter.Match(d)
	}), nil
}

func (s *Service) Deal(_ context.Context, id string) (entity.Deal, error) {
	deals, index, err := s.snapshot()
	if err != nil {
		return entity.Deal{}, err
	}

	i, ok := index[id]
	if !ok {
		return entity.Deal{}, domain.NewError(errcodes.DealNotFound, "deal not found")
	}

	return deals[i], nil
}

// History returns the supplied series of the deal, or a synthesized one
// memoized per deal content.
func (s *Service) History(ctx context.Context, id string) ([]entity.PriceHistoryEntry, error) {
	d, err := s.Deal(ctx, id)
	if err != nil {
		return nil, err
	}

	history, _ := s.history(ctx, d)

	return history, nil
}

func (s *Service) history(ctx context.Context, d entity.Deal) ([]entity.PriceHistoryEntry, bool) {
	if d.HasHistory() {
		metrics.HistoryLookups.WithLabelValues(metrics.SourceSupplied).Inc()
		return d.PriceHistory, false
	}

	// A series ends today, so yesterday's entry is never served after midnight.
	key := HistoryKey(d) + ":" + value.DateOf(s.now()).String()

	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger(ctx).Error("history cache get", logx.Error(err), slog.String(logx.FieldDealID, d.ID))
	}

	if ok {
		metrics.HistoryLookups.WithLabelValues(metrics.SourceCache).Inc()
		return cached, true
	}

	v, _, _ := s.group.Do(key, func() (any, error) {
		history := s.synthesizer.Synthesize(d)

		stored, err := s.cache.Add(ctx, key, history)
		if err != nil {
			logger(ctx).Error("history cache add", logx.Error(err), slog.String(logx.FieldDealID, d.ID))

			return history, nil
		}

		return stored, nil
	})

	metrics.HistoryLookups.WithLabelValues(metrics.SourceSynthesized).Inc()

	return v.([]entity.PriceHistoryEntry), true //nolint:forcetypeassert
}

func (s *Service) Analysis(ctx context.Context, id string) (entity.DealReport, error) {
	d, err := s.Deal(ctx, id)
	if err != nil {
		return entity.DealReport{}, err
	}

	return s.report(ctx, d), nil
}

// AnalyzeWith analyzes the deal against a caller supplied series.
func (s *Service) AnalyzeWith(ctx context.Context, id string, history []entity.PriceHistoryEntry) (entity.DealReport, error) {
	d, err := s.Deal(ctx, id)
	if err != nil {
		return entity.DealReport{}, err
	}

	if err = pricehistory.ValidateFor(d, history); err != nil {
		return entity.DealReport{}, domain.WrapError(err, errcodes.InvalidHistory, err.Error())
	}

	return s.analyze(d, history, false), nil
}

// AnalyzeAll analyzes every deal matching the filter, preserving feed order.
func (s *Service) AnalyzeAll(ctx context.Context, filter Filter) ([]entity.DealReport, error) {
	deals, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	reports := make([]entity.DealReport, len(deals))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, d := range deals {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("deal %s: %w", d.ID, err)
			}

			reports[i] = s.report(ctx, d)

			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return nil, fmt.Errorf("g.Wait: %w", err)
	}

	return reports, nil
}

func (s *Service) report(ctx context.Context, d entity.Deal) entity.DealReport {
	history, synthesized := s.history(ctx, d)
	return s.analyze(d, history, synthesized)
}

func (s *Service) analyze(d entity.Deal, history []entity.PriceHistoryEntry, synthesized bool) entity.DealReport {
	analysis := s.analyzer.Analyze(d, history)

	metrics.Analyses.WithLabelValues(analysis.Verdict.String()).Inc()

	return entity.DealReport{
		Deal:        d,
		History:     history,
		Synthesized: synthesized,
		Analysis:    analysis,
		Outlook:     s.analyzer.Outlook(d, history),
	}
}

// HistoryKey identifies a synthesized series: the deal id plus a fingerprint
// of the fields the series depends on, so an edited deal gets a fresh series.
func HistoryKey(d entity.Deal) string {
	h := xxhash.New()

	for _, part := range []string{
		d.ID,
		d.StoreName,
		d.ProductName,
		d.Category.String(),
		strconv.FormatInt(d.OriginalPrice, 10),
		strconv.FormatInt(d.DiscountPrice, 10),
	} {
		_, _ = h.WriteString(part)
		_, _ = h.WriteString("\x00")
	}

	return "history:" + d.ID + ":" + hex.EncodeToString(h.Sum(nil))
}
