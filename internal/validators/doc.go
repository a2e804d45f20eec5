// Package validators holds the input checks and display formatters shared by
// the CLI, the wizard state machines and the TUI.
//
// Everything here is a pure function with no I/O:
//
//	validators.IsValidThaiPhone("0812345678")   // true
//	validators.NormalizeBotPhone("0812345678")  // "+66812345678"
//	validators.FormatThaiDateIn("2024-01-15T10:30:00", time.UTC)
//	// "15/1/2567 10:30:00"
package validators
