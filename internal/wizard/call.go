package wizard

import (
	"context"
	"fmt"
	"sync"

	"github.com/muurk/tmcatcher/internal/api"
)

// Backend is the subset of the API client the flows need. *api.Client
// satisfies it.
type Backend interface {
	SubmitPhone(ctx context.Context, phone, apiKey string) api.Response
	InitiateBotLogin(ctx context.Context, phone, apiKey string) api.Response
	VerifyBotOTP(ctx context.Context, phone, code, apiKey string) api.Response
	CheckStatusByPhone(ctx context.Context, phone string) api.StatusResult
	CheckStatusByAPIKey(ctx context.Context, apiKey string) api.StatusResult
}

// PhoneStore keeps the registrant phone between flows.
type PhoneStore interface {
	RegistrantPhone() string
	SaveRegistrantPhone(phone string) error
}

// MemoryPhoneStore is a PhoneStore that lives for the process only.
type MemoryPhoneStore struct {
	mu    sync.Mutex
	phone string
}

// RegistrantPhone returns the stored phone, or "".
func (m *MemoryPhoneStore) RegistrantPhone() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phone
}

// SaveRegistrantPhone stores phone.
func (m *MemoryPhoneStore) SaveRegistrantPhone(phone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.phone = phone
	return nil
}

// Action identifies the backend operation a Call performs.
type Action int

const (
	ActionSubmitPhone Action = iota + 1
	ActionInitiateBotLogin
	ActionVerifyBotOTP
	ActionStatusByPhone
	ActionStatusByAPIKey
)

func (a Action) String() string {
	switch a {
	case ActionSubmitPhone:
		return "submit_phone"
	case ActionInitiateBotLogin:
		return "initiate_bot_login"
	case ActionVerifyBotOTP:
		return "verify_bot_otp"
	case ActionStatusByPhone:
		return "status_by_phone"
	case ActionStatusByAPIKey:
		return "status_by_api_key"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// Call is a backend request requested by a state machine.
type Call struct {
	Action Action
	Phone  string
	Code   string
	APIKey string

	seq uint64
}

// Outcome is the result of running a Call.
type Outcome struct {
	Call     Call
	Response api.Response
	// Status is set for the status lookups.
	Status *api.StatusResult
}

// Do runs the call against b. It is safe to call from any goroutine.
func (c Call) Do(ctx context.Context, b Backend) Outcome {
	o := Outcome{Call: c}
	switch c.Action {
	case ActionSubmitPhone:
		o.Response = b.SubmitPhone(ctx, c.Phone, c.APIKey)
	case ActionInitiateBotLogin:
		o.Response = b.InitiateBotLogin(ctx, c.Phone, c.APIKey)
	case ActionVerifyBotOTP:
		o.Response = b.VerifyBotOTP(ctx, c.Phone, c.Code, c.APIKey)
	case ActionStatusByPhone:
		s := b.CheckStatusByPhone(ctx, c.Phone)
		o.Response, o.Status = s.Response, &s
	case ActionStatusByAPIKey:
		s := b.CheckStatusByAPIKey(ctx, c.APIKey)
		o.Response, o.Status = s.Response, &s
	default:
		o.Response = api.Response{Message: fmt.Sprintf("unknown action %v", c.Action)}
	}
	return o
}

// flight tracks the single in-flight call of a machine.
type flight struct {
	seq     uint64
	pending *Call
}

// Loading reports whether a call is in flight.
func (f *flight) Loading() bool {
	return f.pending != nil
}

func (f *flight) begin(c Call) *Call {
	f.seq++
	c.seq = f.seq
	f.pending = &c
	return &c
}

// settle reports whether o belongs to the pending call and clears it.
func (f *flight) settle(o Outcome) bool {
	if f.pending == nil || f.pending.seq != o.Call.seq {
		return false
	}
	f.pending = nil
	return true
}

// abandon forgets the pending call; its Outcome will be discarded.
func (f *flight) abandon() {
	f.pending = nil
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
