package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "money_saver"

//nolint:gochecknoglobals
var (
	BuildInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "build_info",
		Help:      "Always 1, labeled with the running application name and version.",
	}, []string{"name", "version"})

	FeedLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "feed",
		Name:      "loads_total",
		Help:      "Deal feed loads by result.",
	}, []string{"result"})

	FeedDeals = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "feed",
		Name:      "deals",
		Help:      "Deals in the currently loaded feed.",
	})

	FeedRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "feed",
		Name:      "rejected_records_total",
		Help:      "Feed records skipped by validation.",
	})

	HistoryLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "history",
		Name:      "lookups_total",
		Help:      "Price history lookups by source: supplied, cache or synthesized.",
	}, []string{"source"})

	Analyses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "analysis",
		Name:      "total",
		Help:      "Price analyses by recommendation verdict.",
	}, []string{"verdict"})

	Alerts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "alerts",
		Name:      "total",
		Help:      "Historical low alerts by delivery result.",
	}, []string{"result"})

	HTTPRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "API request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

const (
	ResultOK     = "ok"
	ResultFailed = "failed"
	ResultSkip   = "skipped"

	SourceSupplied    = "supplied"
	SourceCache       = "cache"
	SourceSynthesized = "synthesized"
)
