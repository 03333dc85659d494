// Package middleware provides gin middleware for the HTTP bridge: CORS for the
// UI shell origin and per-client rate limiting.
package middleware
