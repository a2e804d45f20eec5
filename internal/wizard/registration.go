package wizard

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/muurk/tmcatcher/internal/logging"
	"github.com/muurk/tmcatcher/internal/validators"
)

// Step is a registration wizard step.
type Step int

const (
	StepRegisterPhone Step = iota
	StepAPIKey
	StepBotPhone
	StepBotOTP
)

// Steps lists the wizard steps in order.
var Steps = []Step{StepRegisterPhone, StepAPIKey, StepBotPhone, StepBotOTP}

func (s Step) String() string {
	switch s {
	case StepRegisterPhone:
		return "register_phone"
	case StepAPIKey:
		return "api_key"
	case StepBotPhone:
		return "bot_phone"
	case StepBotOTP:
		return "bot_otp"
	default:
		return fmt.Sprintf("Step(%d)", s)
	}
}

// Label is the progress indicator label.
func (s Step) Label() string {
	switch s {
	case StepRegisterPhone:
		return "เบอร์รับซอง"
	case StepAPIKey:
		return "API Key"
	case StepBotPhone:
		return "เบอร์บอท"
	case StepBotOTP:
		return "รหัส OTP"
	default:
		return s.String()
	}
}

// Registration is the four-step registration wizard:
// registrant phone, API key, bot phone, bot OTP. Completing the OTP step
// resets the wizard for a fresh cycle.
//
// Step only advances on a successful response and only regresses through
// Back or JumpBack, which clear the field owned by the step being left.
type Registration struct {
	Phone    string
	APIKey   string
	BotPhone string
	Code     string
	Step     Step

	// Error is the single error slot, Notice the last success confirmation.
	Error  string
	Notice string

	// Completed counts finished cycles.
	Completed int

	store PhoneStore
	flight
}

// NewRegistration creates a wizard at StepRegisterPhone. store may be nil.
func NewRegistration(store PhoneStore) *Registration {
	return &Registration{store: store}
}

func (r *Registration) edit(field *string, value string) {
	if *field != value {
		*field = value
		r.Error = ""
	}
}

// SetPhone updates the registrant phone field
func (r *Registration) SetPhone(v string) { r.edit(&r.Phone, v) }

// SetAPIKey updates the API key field
func (r *Registration) SetAPIKey(v string) { r.edit(&r.APIKey, v) }

// SetBotPhone updates the bot phone field
func (r *Registration) SetBotPhone(v string) { r.edit(&r.BotPhone, v) }

// SetCode updates the OTP field
func (r *Registration) SetCode(v string) { r.edit(&r.Code, v) }

func (r *Registration) moveTo(s Step) {
	if r.Step == s {
		return
	}
	logging.LogStateTransition("registration", r.Step.String(), s.String())
	r.Step = s
}

// Submit validates the current step. It returns the backend call to run,
// or nil when the step was handled locally (the first step, a validation
// failure, or a submission while loading).
func (r *Registration) Submit() *Call {
	if r.Loading() {
		return nil
	}
	r.Error = ""
	r.Notice = ""

	switch r.Step {
	case StepRegisterPhone:
		if !validators.IsValidThaiPhone(r.Phone) {
			r.Error = MsgInvalidPhone
			return nil
		}
		r.moveTo(StepAPIKey)
		return nil

	case StepAPIKey:
		if !validators.IsValidAPIKey(r.APIKey) {
			r.Error = MsgAPIKeyRequired
			return nil
		}
		return r.begin(Call{Action: ActionSubmitPhone, Phone: r.Phone, APIKey: r.APIKey})

	case StepBotPhone:
		if !validators.AcceptsBotPhone(r.BotPhone) {
			r.Error = MsgInvalidBotPhone
			return nil
		}
		return r.begin(Call{
			Action: ActionInitiateBotLogin,
			Phone:  validators.NormalizeBotPhone(r.BotPhone),
			APIKey: r.APIKey,
		})

	case StepBotOTP:
		if !validators.IsValidOTP(r.Code) {
			r.Error = MsgInvalidOTP
			return nil
		}
		return r.begin(Call{
			Action: ActionVerifyBotOTP,
			Phone:  validators.NormalizeBotPhone(r.BotPhone),
			Code:   r.Code,
			APIKey: r.APIKey,
		})
	}
	return nil
}

// Resend asks for a new OTP without leaving StepBotOTP.
func (r *Registration) Resend() *Call {
	if r.Step != StepBotOTP || r.Loading() {
		return nil
	}
	r.Error = ""
	r.Notice = ""
	return r.begin(Call{
		Action: ActionInitiateBotLogin,
		Phone:  validators.NormalizeBotPhone(r.BotPhone),
		APIKey: r.APIKey,
	})
}

// Apply feeds back the outcome of a call returned by Submit or Resend. It
// reports false when the outcome is stale and was discarded.
func (r *Registration) Apply(o Outcome) bool {
	if !r.settle(o) {
		logging.Debug("Discarding stale outcome",
			zap.String("component", "registration"),
			zap.Stringer("action", o.Call.Action),
		)
		return false
	}

	resp := o.Response
	switch o.Call.Action {
	case ActionSubmitPhone:
		if !resp.Success {
			r.Error = messageOr(resp.Message, msgSaveKeyFailed)
			return true
		}
		if r.store != nil {
			if err := r.store.SaveRegistrantPhone(r.Phone); err != nil {
				logging.Warn("Failed to save registrant phone", zap.Error(err))
			}
		}
		r.Notice = NoticeKeySaved
		r.moveTo(StepBotPhone)

	case ActionInitiateBotLogin:
		if !resp.Success {
			r.Error = messageOr(resp.Message, msgSendOTPFailed)
			return true
		}
		if r.Step == StepBotOTP {
			r.Notice = NoticeOTPResent
			return true
		}
		r.Notice = NoticeOTPSent
		r.moveTo(StepBotOTP)

	case ActionVerifyBotOTP:
		if !resp.Success {
			r.Error = messageOr(resp.Message, msgVerifyFailed)
			return true
		}
		r.reset()
		r.Completed++
		r.Notice = NoticeLoginComplete
	}
	return true
}

func (r *Registration) reset() {
	r.moveTo(StepRegisterPhone)
	r.Phone, r.APIKey, r.BotPhone, r.Code = "", "", "", ""
	r.Error = ""
}

// Back returns to the previous step, clearing the field of the step being
// left. Any in-flight call is abandoned. It reports whether the step changed.
func (r *Registration) Back() bool {
	switch r.Step {
	case StepAPIKey:
		r.APIKey = ""
		r.moveTo(StepRegisterPhone)
	case StepBotPhone:
		r.BotPhone = ""
		r.moveTo(StepAPIKey)
	case StepBotOTP:
		r.Code = ""
		r.moveTo(StepBotPhone)
	default:
		return false
	}
	r.abandon()
	r.Error = ""
	return true
}

// JumpBack goes back to an earlier step as a sequence of Back actions.
// Later or equal steps are ignored.
func (r *Registration) JumpBack(target Step) {
	for r.Step > target {
		if !r.Back() {
			return
		}
	}
}

// Run submits the current step and, if that needs the backend, performs the
// call synchronously. It reports whether a backend call was made.
func (r *Registration) Run(ctx context.Context, b Backend) bool {
	call := r.Submit()
	if call == nil {
		return false
	}
	r.Apply(call.Do(ctx, b))
	return true
}

// RunResend is Resend followed by a synchronous call.
func (r *Registration) RunResend(ctx context.Context, b Backend) bool {
	call := r.Resend()
	if call == nil {
		return false
	}
	r.Apply(call.Do(ctx, b))
	return true
}
