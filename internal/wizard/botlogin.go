package wizard

import (
	"context"

	"github.com/muurk/tmcatcher/internal/logging"
	"github.com/muurk/tmcatcher/internal/validators"
)

// BotLogin is the standalone bot login form for an already known API key:
// enter the bot phone, then the OTP. A successful verification resets it.
type BotLogin struct {
	APIKey      string
	Phone       string
	Code        string
	AwaitingOTP bool

	Error  string
	Notice string

	flight
}

// NewBotLogin creates a bot login form bound to apiKey.
func NewBotLogin(apiKey string) *BotLogin {
	return &BotLogin{APIKey: apiKey}
}

// SetPhone updates the phone field
func (b *BotLogin) SetPhone(v string) {
	if b.Phone != v {
		b.Phone = v
		b.Error = ""
	}
}

// SetCode updates the OTP field
func (b *BotLogin) SetCode(v string) {
	if b.Code != v {
		b.Code = v
		b.Error = ""
	}
}

func (b *BotLogin) loginCall() *Call {
	return b.begin(Call{
		Action: ActionInitiateBotLogin,
		Phone:  validators.NormalizeBotPhone(b.Phone),
		APIKey: b.APIKey,
	})
}

// Submit validates the phone or the OTP depending on the stage.
func (b *BotLogin) Submit() *Call {
	if b.Loading() {
		return nil
	}
	b.Error = ""
	b.Notice = ""

	if !b.AwaitingOTP {
		if !validators.AcceptsBotPhone(b.Phone) {
			b.Error = MsgInvalidBotPhone
			return nil
		}
		return b.loginCall()
	}

	if !validators.IsValidOTP(b.Code) {
		b.Error = MsgInvalidOTP
		return nil
	}
	return b.begin(Call{
		Action: ActionVerifyBotOTP,
		Phone:  validators.NormalizeBotPhone(b.Phone),
		Code:   b.Code,
		APIKey: b.APIKey,
	})
}

// Resend requests a new OTP while awaiting one.
func (b *BotLogin) Resend() *Call {
	if !b.AwaitingOTP || b.Loading() {
		return nil
	}
	b.Error = ""
	b.Notice = ""
	return b.loginCall()
}

// Back leaves the OTP stage so another phone can be entered.
func (b *BotLogin) Back() bool {
	if !b.AwaitingOTP {
		return false
	}
	b.abandon()
	b.AwaitingOTP = false
	b.Code = ""
	b.Error = ""
	logging.LogStateTransition("bot_login", "awaiting_otp", "phone")
	return true
}

// Apply feeds back the outcome of a call returned by Submit or Resend.
func (b *BotLogin) Apply(o Outcome) bool {
	if !b.settle(o) {
		return false
	}

	resp := o.Response
	switch o.Call.Action {
	case ActionInitiateBotLogin:
		if !resp.Success {
			b.Error = messageOr(resp.Message, msgSendOTPFailed)
			return true
		}
		if b.AwaitingOTP {
			b.Notice = NoticeOTPResent
			return true
		}
		b.AwaitingOTP = true
		b.Notice = NoticeOTPSent
		logging.LogStateTransition("bot_login", "phone", "awaiting_otp")

	case ActionVerifyBotOTP:
		if !resp.Success {
			b.Error = messageOr(resp.Message, msgVerifyFailed)
			return true
		}
		b.Phone, b.Code = "", ""
		b.AwaitingOTP = false
		b.Notice = messageOr(resp.Message, NoticeBotStarted)
		logging.LogStateTransition("bot_login", "awaiting_otp", "phone")
	}
	return true
}

// Run is Submit followed by a synchronous call.
func (b *BotLogin) Run(ctx context.Context, be Backend) bool {
	call := b.Submit()
	if call == nil {
		return false
	}
	b.Apply(call.Do(ctx, be))
	return true
}
