package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChainReadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chain_reads_total",
		Help: "Total number of per-entity contract read calls",
	}, []string{"entity"})

	ChainReadsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chain_reads_failed_total",
		Help: "Total number of failed contract read calls",
	}, []string{"entity"})

	ChainWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chain_writes_total",
		Help: "Total number of submitted contract transactions",
	}, []string{"method"})

	ChainWritesFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chain_writes_failed_total",
		Help: "Total number of rejected contract transactions",
	}, []string{"method"})

	ReconcilePassLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reconcile_pass_latency_seconds",
		Help:    "Latency of full reconciliation passes",
		Buckets: prometheus.DefBuckets,
	}, []string{"entity"})

	ReconcileRecordsDegraded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reconcile_records_degraded_total",
		Help: "Records excluded or error-tagged because a chain read failed",
	}, []string{"entity"})

	MetadataFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metadata_fallbacks_total",
		Help: "Merged records that had no matching metadata document",
	}, []string{"entity"})

	MetadataOpsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metadata_ops_failed_total",
		Help: "Failed metadata store operations",
	}, []string{"op"})

	SnapshotCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "snapshot_cache_hits_total",
		Help: "Marketplace snapshot cache hits",
	})

	SnapshotCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "snapshot_cache_misses_total",
		Help: "Marketplace snapshot cache misses",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
