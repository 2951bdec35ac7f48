package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"money_saver/internal/domain/entity"
	"money_saver/internal/domain/service/deal"
	"money_saver/internal/domain/value"
	"money_saver/internal/metrics"
	"money_saver/pkg/logx"
)

const (
	defaultScanInterval = 15 * time.Minute
	alertTTL            = 24 * time.Hour
)

type DealService interface {
	Load(ctx context.Context) (int, error)
	AnalyzeAll(ctx context.Context, filter deal.Filter) ([]entity.DealReport, error)
}

// DealScanner periodically analyzes the feed and raises alerts for watched deals
// that sit at their historical low.
type DealScanner struct {
	deals      DealService
	alerts     chan<- entity.Alert
	categories []value.Category

	interval    time.Duration
	minDiscount int64
	reload      bool
	processed   *cache.Cache
	now         func() time.Time

	// Control fields
	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

func NewDealScanner(deals DealService, alerts chan<- entity.Alert) *DealScanner {
	return &DealScanner{
		deals:     deals,
		alerts:    alerts,
		interval:  defaultScanInterval,
		processed: cache.New(alertTTL, time.Hour),
		now:       time.Now,
	}
}

func (w *DealScanner) WithCategories(categories ...value.Category) *DealScanner {
	w.SetCategories(categories)
	return w
}

func (w *DealScanner) WithInterval(interval time.Duration) *DealScanner {
	if interval > 0 {
		w.interval = interval
	}

	return w
}

func (w *DealScanner) WithMinDiscount(percent int64) *DealScanner {
	w.minDiscount = percent
	return w
}

// WithReload makes every cycle refetch the feed before analyzing it.
func (w *DealScanner) WithReload(reload bool) *DealScanner {
	w.reload = reload
	return w
}

func (w *DealScanner) WithClock(now func() time.Time) *DealScanner {
	w.now = now
	return w
}

func (w *DealScanner) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return errors.New("scanner is already running")
	}

	scanCtx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel
	w.isRunning = true

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() {
			w.mu.Lock()
			w.isRunning = false
			w.cancelFunc = nil
			w.mu.Unlock()
		}()

		if err := w.Run(scanCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger(ctx).Error("scanner stopped", logx.Error(err))
		}
	}()

	return nil
}

func (w *DealScanner) Stop() {
	w.mu.Lock()

	if !w.isRunning {
		w.mu.Unlock()
		return
	}

	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *DealScanner) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.isRunning
}

// Run scans right away and then on every tick until ctx is done.
func (w *DealScanner) Run(ctx context.Context) error {
	logger(ctx).Info("deal scanner started", slog.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if _, err := w.Scan(ctx); err != nil {
			if ctx.Err() != nil {
				break
			}

			logger(ctx).Error("scan failed", logx.Error(err))
		}

		select {
		case <-ctx.Done():
			logger(ctx).Info("deal scanner stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}

	logger(ctx).Info("deal scanner stopped")

	return ctx.Err()
}

// Scan runs one cycle and returns the number of alerts raised.
func (w *DealScanner) Scan(ctx context.Context) (int, error) {
	if w.reload {
		if _, err := w.deals.Load(ctx); err != nil {
			// анализируем предыдущую версию фида
			logger(ctx).Warn("feed reload failed", logx.Error(err))
		}
	}

	reports, err := w.deals.AnalyzeAll(ctx, deal.Filter{MinDiscount: w.minDiscount})
	if err != nil {
		return 0, fmt.Errorf("worker.Scan: %w", err)
	}

	var raised int

	for _, report := range reports {
		if !report.Analysis.IsHistoricalLow || !w.HasCategory(report.Deal.Category) {
			continue
		}

		key := deal.HistoryKey(report.Deal)
		if _, seen := w.processed.Get(key); seen {
			metrics.Alerts.WithLabelValues(metrics.ResultSkip).Inc()
			continue
		}

		alert := entity.Alert{
			Deal:       report.Deal,
			Analysis:   report.Analysis,
			DetectedAt: w.now(),
		}

		select {
		case w.alerts <- alert:
		case <-ctx.Done():
			return raised, ctx.Err()
		}

		w.processed.SetDefault(key, struct{}{})
		raised++
	}

	if raised > 0 {
		logger(ctx).Info("scan cycle completed", slog.Int(logx.FieldCount, raised))
	}

	return raised, nil
}
