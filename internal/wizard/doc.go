// Package wizard implements the onboarding and status-check flows as plain
// state machines with no UI or network code of their own.
//
// A machine never calls the backend itself. Submit validates the current
// input and, when a request is needed, returns a *Call. The owner runs the
// call wherever it likes and feeds the result back with Apply:
//
//	reg := wizard.NewRegistration(store)
//	reg.SetPhone("0812345678")
//	reg.Submit()                 // local step, returns nil
//	reg.SetAPIKey("key-1")
//	if call := reg.Submit(); call != nil {
//	    reg.Apply(call.Do(ctx, client))
//	}
//
// In the TUI, Call.Do runs inside a tea.Cmd and the Outcome comes back as a
// message, so every mutation happens on the Update goroutine. An Outcome
// whose Call is no longer in flight (the user went back, or started another
// attempt) is discarded by Apply.
//
// The Run helpers do Submit, Do and Apply in one synchronous step for the CLI
// and tests.
package wizard
