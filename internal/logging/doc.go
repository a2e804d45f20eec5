// Package logging provides structured logging for tmcatcher.
//
// This package wraps a package-level zap logger with convenience functions and
// a few domain helpers for API traffic and wizard state changes.
//
// # Silent by default
//
// Logging is off unless a level is given with --log-level or the
// TMCATCHER_LOG_LEVEL environment variable. The interactive TUI owns the
// terminal, so it always logs to a file:
//
//	if err := logging.Initialize("debug", "/home/me/.config/tmcatcher/tmcatcher.log"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// # Domain helpers
//
//	logging.LogAPIRequest("check_total_bots", "GET", url, requestID)
//	logging.LogAPIResponse("check_total_bots", 200, elapsed, requestID)
//	logging.LogAPIFailure("check_total_bots", err, requestID)
//	logging.LogStateTransition("registration", "api_key", "bot_phone")
//
// All functions are safe for concurrent use.
package logging
