/*
Package http exposes the channel registry over JSON HTTP.

	GET  /                          service banner
	GET  /health                    registry stats and metric snapshot
	GET  /metrics                   Prometheus exposition
	GET  /channels                  channel definitions
	POST /channels/<channel>/invoke {"method": "...", "arguments": ...}

Invoke replies map onto status codes: success 200, error 500,
not implemented 501, unknown channel 404, malformed body 400.
*/
package http
