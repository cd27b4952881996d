// Package metric provides Prometheus metrics for respkv.
//
// It exposes connection, command and keyspace metrics in Prometheus
// format for scraping via the metrics HTTP endpoint.
package metric
