// Package metrics records per-episode results and exposes them two ways: as
// CSV tables for offline analysis and as Prometheus series for live
// monitoring.
package metrics
