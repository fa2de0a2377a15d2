// Package metrics exports engine activity as Prometheus metrics.
//
// A Collector subscribes to the engine notifications on an events.Bus and
// keeps counters and gauges up to date. A Server exposes them on /metrics,
// with a /healthz check, for as long as a game runs.
package metrics
