// Package promexport exposes a blocksim.Metrics snapshot through
// prometheus/client_golang, so a long compare_strategies-style run can be
// scraped mid-flight the way a real daemon would be. This is additive
// instrumentation: the Collector only reads *blocksim.Metrics, it never
// drives the simulator. Grounded on the pack's disk-stat gauge pattern
// (manifests/lesovsky-pgscv's go.mod depends on client_golang for the same
// reason — exporting disk/IO counters).
package promexport

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/diskosim/blocksim"
)

// Snapshotter is the subset of *blocksim.Metrics this package needs. The
// root package never imports internal/promexport, so taking a direct
// dependency on it here (rather than duplicating blocksim.Snapshot's
// fields locally) does not create an import cycle.
type Snapshotter interface {
	Snapshot() blocksim.Snapshot
}

var (
	descCacheHits = prometheus.NewDesc(
		"blocksim_cache_hits_total", "Total segmented-LFU cache hits.", nil, nil)
	descCacheMisses = prometheus.NewDesc(
		"blocksim_cache_misses_total", "Total segmented-LFU cache misses.", nil, nil)
	descEvictions = prometheus.NewDesc(
		"blocksim_cache_evictions_total", "Total buffers evicted from the right segment.", nil, nil)
	descDirtyEvictions = prometheus.NewDesc(
		"blocksim_cache_dirty_evictions_total", "Evictions that required a writeback first.", nil, nil)
	descReads = prometheus.NewDesc(
		"blocksim_disk_reads_total", "Total disk READ operations completed.", nil, nil)
	descWrites = prometheus.NewDesc(
		"blocksim_disk_writes_total", "Total disk WRITE operations completed.", nil, nil)
	descSeeks = prometheus.NewDesc(
		"blocksim_disk_seeks_total", "Total head seeks performed.", nil, nil)
	descSeekTimeMs = prometheus.NewDesc(
		"blocksim_disk_seek_time_ms_total", "Cumulative seek time in milliseconds.", nil, nil)
	descPreemptions = prometheus.NewDesc(
		"blocksim_scheduler_preemptions_total", "Processes preempted on quantum exhaustion.", nil, nil)
	descTruncations = prometheus.NewDesc(
		"blocksim_phase_truncations_total", "User/syscall phases cut short by an interrupt.", nil, nil)
	descIterations = prometheus.NewDesc(
		"blocksim_engine_iterations_total", "Outer simulator-loop iterations run.", nil, nil)
)

// Collector adapts a Snapshotter to prometheus.Collector.
type Collector struct {
	metrics Snapshotter
}

// New wraps metrics for registration with a prometheus.Registry.
func New(metrics Snapshotter) *Collector {
	return &Collector{metrics: metrics}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- descCacheHits
	ch <- descCacheMisses
	ch <- descEvictions
	ch <- descDirtyEvictions
	ch <- descReads
	ch <- descWrites
	ch <- descSeeks
	ch <- descSeekTimeMs
	ch <- descPreemptions
	ch <- descTruncations
	ch <- descIterations
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.metrics.Snapshot()

	ch <- prometheus.MustNewConstMetric(descCacheHits, prometheus.CounterValue, float64(snap.CacheHits))
	ch <- prometheus.MustNewConstMetric(descCacheMisses, prometheus.CounterValue, float64(snap.CacheMisses))
	ch <- prometheus.MustNewConstMetric(descEvictions, prometheus.CounterValue, float64(snap.Evictions))
	ch <- prometheus.MustNewConstMetric(descDirtyEvictions, prometheus.CounterValue, float64(snap.DirtyEvictions))
	ch <- prometheus.MustNewConstMetric(descReads, prometheus.CounterValue, float64(snap.Reads))
	ch <- prometheus.MustNewConstMetric(descWrites, prometheus.CounterValue, float64(snap.Writes))
	ch <- prometheus.MustNewConstMetric(descSeeks, prometheus.CounterValue, float64(snap.Seeks))
	ch <- prometheus.MustNewConstMetric(descSeekTimeMs, prometheus.CounterValue, snap.SeekTimeMs)
	ch <- prometheus.MustNewConstMetric(descPreemptions, prometheus.CounterValue, float64(snap.Preemptions))
	ch <- prometheus.MustNewConstMetric(descTruncations, prometheus.CounterValue, float64(snap.Truncations))
	ch <- prometheus.MustNewConstMetric(descIterations, prometheus.CounterValue, float64(snap.IterationsRun))
}
