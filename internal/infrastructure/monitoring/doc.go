/*
Package monitoring provides Prometheus metrics for the bridge backend.

# Overview

Metrics are registered against an injected registry so several collectors
can coexist (one per test, one per process).

# Features

- HTTP request metrics (latency, throughput, size)
- Method channel calls by outcome (success, error, not_implemented)
- Volume discovery (mount roots resolved, absent candidates, source failures)
- WebSocket and gRPC transport metrics
- Uptime

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "com.example.drivy/storage", "getStoragePaths")
	// ... handle call ...
	timer.Stop("success")
*/
package monitoring
