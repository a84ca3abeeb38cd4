// Package observability turns engine lifecycle events into Prometheus metrics.
package observability
