// Package server implements the census exporter behind `tmcatcher exporter`.
//
// The exporter polls the bot census and API health in the background and
// serves:
//
//	GET /metrics      Prometheus metrics (tmcatcher_* collectors)
//	GET /healthz      liveness plus the last API health result
//	GET /api/census   latest census snapshot as JSON
//
// /api/census answers 503 until the first poll has completed.
//
// Usage:
//
//	srv := server.New(&server.Config{Listen: ":9464"}, api.NewClient())
//	if err := srv.Start(); err != nil {
//		log.Fatal(err)
//	}
//
// Start blocks until SIGINT or SIGTERM and then shuts down gracefully.
package server
