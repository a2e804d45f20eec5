package wizard

import (
	"context"

	"github.com/muurk/tmcatcher/internal/api"
)

// fakeBackend records calls and returns canned responses.
type fakeBackend struct {
	calls []Call

	submit   api.Response
	initiate api.Response
	verify   api.Response
	status   api.StatusResult
}

func okResponse(msg string) api.Response {
	return api.Response{Success: true, Message: msg}
}

func failResponse(msg string) api.Response {
	return api.Response{Success: false, Message: msg}
}

func (f *fakeBackend) SubmitPhone(ctx context.Context, phone, apiKey string) api.Response {
	f.calls = append(f.calls, Call{Action: ActionSubmitPhone, Phone: phone, APIKey: apiKey})
	return f.submit
}

func (f *fakeBackend) InitiateBotLogin(ctx context.Context, phone, apiKey string) api.Response {
	f.calls = append(f.calls, Call{Action: ActionInitiateBotLogin, Phone: phone, APIKey: apiKey})
	return f.initiate
}

func (f *fakeBackend) VerifyBotOTP(ctx context.Context, phone, code, apiKey string) api.Response {
	f.calls = append(f.calls, Call{Action: ActionVerifyBotOTP, Phone: phone, Code: code, APIKey: apiKey})
	return f.verify
}

func (f *fakeBackend) CheckStatusByPhone(ctx context.Context, phone string) api.StatusResult {
	f.calls = append(f.calls, Call{Action: ActionStatusByPhone, Phone: phone})
	return f.status
}

func (f *fakeBackend) CheckStatusByAPIKey(ctx context.Context, apiKey string) api.StatusResult {
	f.calls = append(f.calls, Call{Action: ActionStatusByAPIKey, APIKey: apiKey})
	return f.status
}
