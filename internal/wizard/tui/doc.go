// Package tui implements the full-screen terminal interface for registering
// phones, logging bots in and checking registration status.
//
// The TUI is built on Bubble Tea. AppModel owns the navigation and mounts one
// screen at a time:
//   - Splash: boot animation, advances to home after a few seconds
//   - Home: API health, clock and shortcuts
//   - Register: the four-step registration wizard
//   - Status: lookup by phone or API key, live countdown and bot census
//   - Help: usage instructions
//   - Bot login and API key setup: standalone flows reached from home
//
// Screens are remounted on every visit. Leaving a screen stops its timers
// (see package scheduler), cancels its in-flight requests and retires its
// generation so late results are dropped.
//
// # Usage
//
//	err := tui.Run(tui.Options{
//		Backend: client,
//		Store:   cfg,
//	})
package tui
