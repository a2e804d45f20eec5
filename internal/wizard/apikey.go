package wizard

import (
	"context"

	"github.com/muurk/tmcatcher/internal/validators"
)

// APIKeySetup binds an API key to the registrant phone saved by an earlier
// registration.
type APIKeySetup struct {
	APIKey string
	Error  string
	Notice string
	Done   bool

	store PhoneStore
	flight
}

// NewAPIKeySetup creates the form. store may be nil, in which case every
// submission fails with MsgNoRegisteredPhone.
func NewAPIKeySetup(store PhoneStore) *APIKeySetup {
	return &APIKeySetup{store: store}
}

// SetAPIKey updates the key field
func (a *APIKeySetup) SetAPIKey(v string) {
	if a.APIKey != v {
		a.APIKey = v
		a.Error = ""
	}
}

// Phone returns the registrant phone the key will be bound to.
func (a *APIKeySetup) Phone() string {
	if a.store == nil {
		return ""
	}
	return a.store.RegistrantPhone()
}

// Submit validates the key and the stored phone.
func (a *APIKeySetup) Submit() *Call {
	if a.Loading() {
		return nil
	}
	a.Error = ""
	a.Notice = ""

	phone := a.Phone()
	if phone == "" {
		a.Error = MsgNoRegisteredPhone
		return nil
	}
	if !validators.IsValidAPIKey(a.APIKey) {
		a.Error = MsgAPIKeyRequired
		return nil
	}
	return a.begin(Call{Action: ActionSubmitPhone, Phone: phone, APIKey: a.APIKey})
}

// Apply feeds back the outcome of the Submit call.
func (a *APIKeySetup) Apply(o Outcome) bool {
	if !a.settle(o) {
		return false
	}
	if !o.Response.Success {
		a.Error = messageOr(o.Response.Message, msgSaveKeyFailed)
		return true
	}
	a.Done = true
	a.Notice = NoticeSetupSaved
	return true
}

// Run is Submit followed by a synchronous call.
func (a *APIKeySetup) Run(ctx context.Context, b Backend) bool {
	call := a.Submit()
	if call == nil {
		return false
	}
	a.Apply(call.Do(ctx, b))
	return true
}
