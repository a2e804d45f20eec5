// Package ui provides terminal output components for the tmcatcher CLI and
// shared pieces used by the interactive TUI.
//
// Components follow a "run once and exit" pattern, rendering styled output
// with Lipgloss:
//
//   - Header: command banner with the operation name and parameters
//   - Result: success, failure or warning box with ordered details and
//     troubleshooting tips derived from the api error kind
//   - Progress: step indicator for the registration wizard
//   - Confirm: typed-phrase confirmation before destructive commands
//
// Commands print through a Printer, which also handles --format json:
//
//	p := ui.NewPrinter(os.Stdout, ui.FormatDetailed)
//	p.PrintHeader("Status", "tmcatcher status --phone 0812345678", nil)
//	_ = p.PrintResult("Status", res.Response, api.StatusFields(res, time.Local), res)
//
// Logging is controlled via TMCATCHER_LOG_LEVEL; when unset, zap is silent
// so the curated output is displayed cleanly.
package ui
