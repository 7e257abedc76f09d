package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the warehouse loaders and sync service

var (
	// API Call metrics
	APICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ffwh_api_calls_total",
			Help: "Total number of upstream API calls",
		},
		[]string{"source", "endpoint", "status"},
	)

	APICallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ffwh_api_call_duration_seconds",
			Help:    "Duration of upstream API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source", "endpoint"},
	)

	// Loader metrics
	RowsInserted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ffwh_rows_inserted_total",
			Help: "Total number of stat rows inserted",
		},
		[]string{"table"},
	)

	BatchesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ffwh_batches_failed_total",
			Help: "Total number of insert batches that rolled back",
		},
		[]string{"table"},
	)

	SeasonsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ffwh_seasons_skipped_total",
			Help: "Total number of seasons skipped because data already exists",
		},
		[]string{"table"},
	)

	// Database metrics
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ffwh_db_connections_active",
			Help: "Number of active database connections",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ffwh_db_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	// Cache metrics
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ffwh_cache_hits_total",
			Help: "Total number of cache hits",
		},
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ffwh_cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	// Sync metrics
	SyncOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ffwh_sync_operations_total",
			Help: "Total number of league sync operations",
		},
		[]string{"type", "status"},
	)

	SyncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ffwh_sync_duration_seconds",
			Help:    "Duration of league sync operations in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"type"},
	)

	PlayersInDirectory = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ffwh_players_directory_total",
			Help: "Total number of players in the directory",
		},
	)

	// Error metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ffwh_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)

	// System metrics
	SystemUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ffwh_system_uptime_seconds",
			Help: "System uptime in seconds",
		},
	)

	LastSuccessfulSync = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ffwh_last_successful_sync_timestamp",
			Help: "Timestamp of last successful sync operation",
		},
	)
)

// RecordAPICall records an upstream API call metric
func RecordAPICall(source, endpoint, status string, duration float64) {
	APICallsTotal.WithLabelValues(source, endpoint, status).Inc()
	APICallDuration.WithLabelValues(source, endpoint).Observe(duration)
}

// RecordRowsInserted records a successful batch insert
func RecordRowsInserted(table string, rows int) {
	RowsInserted.WithLabelValues(table).Add(float64(rows))
}

// RecordBatchFailed records a rolled-back batch
func RecordBatchFailed(table string) {
	BatchesFailed.WithLabelValues(table).Inc()
}

// RecordSeasonSkipped records a season skipped by the existence check
func RecordSeasonSkipped(table string) {
	SeasonsSkipped.WithLabelValues(table).Inc()
}

// RecordCacheHit records a cache hit
func RecordCacheHit() {
	CacheHitsTotal.Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss() {
	CacheMissesTotal.Inc()
}

// RecordSync records a sync operation
func RecordSync(syncType, status string, duration float64) {
	SyncOperationsTotal.WithLabelValues(syncType, status).Inc()
	SyncDuration.WithLabelValues(syncType).Observe(duration)

	if status == "success" {
		LastSuccessfulSync.SetToCurrentTime()
	}
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}

// UpdateDBConnectionStats updates database connection pool statistics
func UpdateDBConnectionStats(active, idle int32) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
