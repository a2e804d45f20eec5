package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/tmcatcher/internal/api"
	"github.com/muurk/tmcatcher/internal/wizard"
)

type fakeBackend struct {
	mu   sync.Mutex
	ctxs []context.Context

	submit   api.Response
	initiate api.Response
	verify   api.Response
	status   api.StatusResult
	census   api.CensusResult
	healthy  bool
}

func (f *fakeBackend) record(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctxs = append(f.ctxs, ctx)
}

func (f *fakeBackend) lastCtx() context.Context {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ctxs[len(f.ctxs)-1]
}

func (f *fakeBackend) SubmitPhone(ctx context.Context, phone, apiKey string) api.Response {
	f.record(ctx)
	return f.submit
}

func (f *fakeBackend) InitiateBotLogin(ctx context.Context, phone, apiKey string) api.Response {
	f.record(ctx)
	return f.initiate
}

func (f *fakeBackend) VerifyBotOTP(ctx context.Context, phone, code, apiKey string) api.Response {
	f.record(ctx)
	return f.verify
}

func (f *fakeBackend) CheckStatusByPhone(ctx context.Context, phone string) api.StatusResult {
	f.record(ctx)
	return f.status
}

func (f *fakeBackend) CheckStatusByAPIKey(ctx context.Context, apiKey string) api.StatusResult {
	f.record(ctx)
	return f.status
}

func (f *fakeBackend) CheckTotalBots(ctx context.Context) api.CensusResult {
	f.record(ctx)
	return f.census
}

func (f *fakeBackend) CheckAPIHealth(ctx context.Context) bool {
	f.record(ctx)
	return f.healthy
}

func newTestApp(t *testing.T, b *fakeBackend, store wizard.PhoneStore) *AppModel {
	t.Helper()
	m := NewAppModel(Options{
		Backend:           b,
		Store:             store,
		SkipSplash:        true,
		CountdownInterval: time.Millisecond,
	})
	m.Init()
	return m
}

// collect runs cmd and any batched commands, returning the messages produced.
// Only use it on commands that do not wait on timers.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findOutcome(t *testing.T, cmd tea.Cmd) outcomeMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if o, ok := msg.(outcomeMsg); ok {
			return o
		}
	}
	t.Fatal("command produced no outcome")
	return outcomeMsg{}
}

func typeText(m *AppModel, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func press(m *AppModel, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func TestNextTab(t *testing.T) {
	tests := []struct {
		from  Screen
		delta int
		want  Screen
	}{
		{ScreenHome, 1, ScreenRegister},
		{ScreenHelp, 1, ScreenHome},
		{ScreenHome, -1, ScreenHelp},
		{ScreenBotLogin, 1, ScreenRegister},
	}
	for _, tt := range tests {
		if got := nextTab(tt.from, tt.delta); got != tt.want {
			t.Errorf("nextTab(%s, %d) = %s, want %s", tt.from, tt.delta, got, tt.want)
		}
	}
}

func TestRenderNav(t *testing.T) {
	nav := renderNav(ScreenStatus)
	for _, label := range []string{"บ้าน", "เพิ่มเบอร์", "เช็คข้อมูล", "วิธีใช้"} {
		if !strings.Contains(nav, label) {
			t.Errorf("nav missing %q", label)
		}
	}
}

func TestSplash_AnyKeyGoesHome(t *testing.T) {
	m := NewAppModel(Options{Backend: &fakeBackend{}})
	m.Init()
	if m.Current != ScreenSplash {
		t.Fatalf("Current = %s, want splash", m.Current)
	}
	if !m.Scheduler().Running(splashAdvance) {
		t.Fatal("splash advance timer should be running")
	}

	typeText(m, "x")
	if m.Current != ScreenHome {
		t.Fatalf("Current = %s, want home", m.Current)
	}
	if m.Scheduler().Running(splashAdvance) || m.Scheduler().Running(splashTyping) {
		t.Error("splash timers should stop when the splash is left")
	}
}

func TestSwitchTab_StopsTimersOfPreviousScreen(t *testing.T) {
	m := newTestApp(t, &fakeBackend{}, nil)
	if !m.Scheduler().Running(homeHealth) || !m.Scheduler().Running(homeClock) {
		t.Fatal("home timers should be running")
	}

	press(m, tea.KeyTab)
	if m.Current != ScreenRegister {
		t.Fatalf("Current = %s, want register", m.Current)
	}
	if m.Scheduler().Active() != 0 {
		t.Errorf("Active() = %d, want 0 after leaving home", m.Scheduler().Active())
	}

	press(m, tea.KeyTab)
	if !m.Scheduler().Running(statusCensus) {
		t.Error("status census timer should be running")
	}
	press(m, tea.KeyShiftTab)
	if m.Scheduler().Running(statusCensus) {
		t.Error("status census timer should stop when status is left")
	}
}

func TestNumberKeysSwitchTabsOnlyWhenNotTyping(t *testing.T) {
	m := newTestApp(t, &fakeBackend{}, nil)

	typeText(m, "3")
	if m.Current != ScreenStatus {
		t.Fatalf("Current = %s, want status", m.Current)
	}

	// The status screen has a focused input, so digits are typed
	typeText(m, "1")
	if m.Current != ScreenStatus {
		t.Fatalf("Current = %s, want status to keep focus", m.Current)
	}
	if got := m.screen.(*statusScreen).w.Input; got != "1" {
		t.Errorf("Input = %q, want 1", got)
	}
}

func TestHome_HealthMessage(t *testing.T) {
	m := newTestApp(t, &fakeBackend{}, nil)
	h := m.screen.(*homeScreen)
	if !strings.Contains(h.view(80), "กำลังสแกน") {
		t.Error("expected scanning state before the first health check")
	}

	m.Update(healthMsg{gen: m.gen - 1, healthy: true})
	if h.healthy != nil {
		t.Fatal("stale health result should be dropped")
	}

	m.Update(healthMsg{gen: m.gen, healthy: false})
	if h.healthy == nil || *h.healthy {
		t.Fatal("expected offline state")
	}
	if !strings.Contains(h.view(80), "ออฟไลน์") {
		t.Error("view should render offline")
	}
}

func TestHome_Shortcuts(t *testing.T) {
	m := newTestApp(t, &fakeBackend{}, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	m.Update(msgs[0])
	if m.Current != ScreenBotLogin {
		t.Errorf("Current = %s, want bot_login", m.Current)
	}
}

func TestRegister_SubmitFlow(t *testing.T) {
	b := &fakeBackend{
		submit:   api.Response{Success: true},
		initiate: api.Response{Success: true},
		verify:   api.Response{Success: true},
	}
	store := &wizard.MemoryPhoneStore{}
	m := newTestApp(t, b, store)
	m.Update(navigateMsg{screen: ScreenRegister})
	r := m.screen.(*registerScreen)

	typeText(m, "0812345678")
	if cmd := press(m, tea.KeyEnter); cmd != nil {
		t.Error("the phone step should not call the API")
	}
	if r.w.Step != wizard.StepAPIKey {
		t.Fatalf("Step = %v, want api_key", r.w.Step)
	}
	if r.input.Value() != "" {
		t.Errorf("input should be cleared for the next step, got %q", r.input.Value())
	}

	typeText(m, "key-1")
	o := findOutcome(t, press(m, tea.KeyEnter))
	if !r.w.Loading() {
		t.Error("wizard should be loading while the call is in flight")
	}
	m.Update(o)
	if r.w.Step != wizard.StepBotPhone {
		t.Fatalf("Step = %v, want bot_phone (error %q)", r.w.Step, r.w.Error)
	}
	if store.RegistrantPhone() != "0812345678" {
		t.Errorf("registrant phone = %q", store.RegistrantPhone())
	}

	typeText(m, "0898765432")
	m.Update(findOutcome(t, press(m, tea.KeyEnter)))
	if r.w.Step != wizard.StepBotOTP {
		t.Fatalf("Step = %v, want bot_otp", r.w.Step)
	}
	if !r.keys.resend {
		t.Error("resend should be offered on the OTP step")
	}

	typeText(m, "12345")
	m.Update(findOutcome(t, press(m, tea.KeyEnter)))
	if r.w.Step != wizard.StepRegisterPhone || r.w.Completed != 1 {
		t.Errorf("Step = %v Completed = %d, want reset after login", r.w.Step, r.w.Completed)
	}
	if !strings.Contains(r.view(80), wizard.NoticeLoginComplete) {
		t.Error("view should show the completion notice")
	}
}

func TestRegister_EscGoesBack(t *testing.T) {
	m := newTestApp(t, &fakeBackend{}, nil)
	m.Update(navigateMsg{screen: ScreenRegister})
	r := m.screen.(*registerScreen)

	typeText(m, "0812345678")
	press(m, tea.KeyEnter)
	press(m, tea.KeyEsc)
	if r.w.Step != wizard.StepRegisterPhone {
		t.Fatalf("Step = %v, want register_phone", r.w.Step)
	}
	if r.input.Value() != "0812345678" {
		t.Errorf("input = %q, want the phone restored", r.input.Value())
	}
}

func TestRegister_AltJumpsBackToStep(t *testing.T) {
	b := &fakeBackend{submit: api.Response{Success: true}}
	m := newTestApp(t, b, nil)
	m.Update(navigateMsg{screen: ScreenRegister})
	r := m.screen.(*registerScreen)

	typeText(m, "0812345678")
	press(m, tea.KeyEnter)
	typeText(m, "key-1")
	m.Update(findOutcome(t, press(m, tea.KeyEnter)))
	if r.w.Step != wizard.StepBotPhone {
		t.Fatalf("Step = %v, want bot_phone", r.w.Step)
	}

	// forward jumps are ignored
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3"), Alt: true})
	if r.w.Step != wizard.StepBotPhone {
		t.Fatalf("Step = %v after alt+3, want bot_phone", r.w.Step)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1"), Alt: true})
	if r.w.Step != wizard.StepRegisterPhone {
		t.Fatalf("Step = %v after alt+1, want register_phone", r.w.Step)
	}
	if r.w.APIKey != "" {
		t.Errorf("APIKey = %q, want cleared when its step is left", r.w.APIKey)
	}
	if r.input.Value() != "0812345678" {
		t.Errorf("input = %q, want the phone restored", r.input.Value())
	}
}

func TestLeavingScreen_DropsLateOutcomeAndCancels(t *testing.T) {
	b := &fakeBackend{submit: api.Response{Success: true}}
	m := newTestApp(t, b, nil)
	m.Update(navigateMsg{screen: ScreenRegister})

	typeText(m, "0812345678")
	press(m, tea.KeyEnter)
	typeText(m, "key-1")
	o := findOutcome(t, press(m, tea.KeyEnter))

	press(m, tea.KeyTab)
	if err := b.lastCtx().Err(); err == nil {
		t.Error("request context should be canceled when the screen is left")
	}
	press(m, tea.KeyShiftTab)

	m.Update(o)
	r := m.screen.(*registerScreen)
	if r.w.Step != wizard.StepRegisterPhone || r.w.Phone != "" {
		t.Errorf("remounted screen should start fresh, got step %v phone %q", r.w.Step, r.w.Phone)
	}
}

func TestStatus_CountdownTicks(t *testing.T) {
	expires := time.Now().Add(2 * time.Hour).Format(time.RFC3339)
	b := &fakeBackend{
		status: api.StatusResult{
			Response: api.Response{Success: true},
			Phone:    "0812345678",
			BotSessionStatus: &api.BotSessionStatus{
				Session: &api.BotSession{Active: true, SessionExpiresAt: expires},
			},
		},
	}
	m := newTestApp(t, b, nil)
	m.Update(navigateMsg{screen: ScreenStatus})
	s := m.screen.(*statusScreen)

	typeText(m, "0812345678")
	_, start := m.Update(findOutcome(t, press(m, tea.KeyEnter)))
	if !s.w.CountdownActive() {
		t.Fatal("countdown should be active")
	}
	if !m.Scheduler().Running(statusCountdown) {
		t.Fatal("countdown timer should be running")
	}

	tick := start()
	if _, cmd := m.Update(tick); cmd == nil {
		t.Error("an accepted tick should re-arm the timer")
	}
	if !strings.Contains(s.view(80), "นับถอยหลัง") {
		t.Error("view should show the countdown")
	}

	s.w.Countdown.Target = time.Now().Add(-time.Second)
	m.Update(tick)
	if m.Scheduler().Running(statusCountdown) {
		t.Error("countdown timer should stop once expired")
	}
}

func TestStatus_SubmitAgainStopsCountdown(t *testing.T) {
	b := &fakeBackend{status: api.StatusResult{Response: api.Response{Success: false, Message: "ไม่พบข้อมูล"}}}
	m := newTestApp(t, b, nil)
	m.Update(navigateMsg{screen: ScreenStatus})
	s := m.screen.(*statusScreen)
	m.Scheduler().Start(statusCountdown, time.Hour)

	typeText(m, "0812345678")
	o := findOutcome(t, press(m, tea.KeyEnter))
	if m.Scheduler().Running(statusCountdown) {
		t.Error("a new lookup should stop the previous countdown")
	}
	m.Update(o)
	if s.w.Error != "ไม่พบข้อมูล" {
		t.Errorf("Error = %q", s.w.Error)
	}
}

func TestStatus_CensusMessage(t *testing.T) {
	m := newTestApp(t, &fakeBackend{}, nil)
	m.Update(navigateMsg{screen: ScreenStatus})
	s := m.screen.(*statusScreen)

	m.Update(censusMsg{gen: m.gen, result: api.CensusResult{
		Response:       api.Response{Success: true},
		OnlineBotCount: 7,
		AsOf:           time.Now(),
	}})
	if s.census == nil || s.census.OnlineBotCount != 7 {
		t.Fatal("census result not stored")
	}
	if !strings.Contains(s.view(80), "7 บอท") {
		t.Error("view should render the bot count")
	}
}

func TestStatus_ToggleMode(t *testing.T) {
	m := newTestApp(t, &fakeBackend{}, nil)
	m.Update(navigateMsg{screen: ScreenStatus})
	s := m.screen.(*statusScreen)

	typeText(m, "0812")
	press(m, tea.KeyCtrlT)
	if s.w.Mode != wizard.ModeAPIKey {
		t.Fatalf("Mode = %v, want api_key", s.w.Mode)
	}
	if s.w.Input != "" || s.input.Value() != "" {
		t.Error("toggling should clear the input")
	}
}

func TestBotLogin_AsksForKeyFirst(t *testing.T) {
	b := &fakeBackend{initiate: api.Response{Success: true}}
	m := newTestApp(t, b, nil)
	m.Update(navigateMsg{screen: ScreenBotLogin})
	bl := m.screen.(*botLoginScreen)

	if !bl.needKey {
		t.Fatal("should ask for an API key when none is configured")
	}
	press(m, tea.KeyEnter)
	if bl.keyError != wizard.MsgAPIKeyRequired {
		t.Errorf("keyError = %q", bl.keyError)
	}

	typeText(m, "key-1")
	press(m, tea.KeyEnter)
	if bl.needKey {
		t.Fatal("key step should be done")
	}

	typeText(m, "0812345678")
	m.Update(findOutcome(t, press(m, tea.KeyEnter)))
	if !bl.w.AwaitingOTP {
		t.Fatalf("should await OTP, error %q", bl.w.Error)
	}

	press(m, tea.KeyEsc)
	if bl.w.AwaitingOTP {
		t.Error("esc should leave the OTP step")
	}
	press(m, tea.KeyEsc)
	if !bl.needKey {
		t.Error("esc should return to the key step")
	}
}

func TestAPIKeySetup_NeedsRegisteredPhone(t *testing.T) {
	store := &wizard.MemoryPhoneStore{}
	b := &fakeBackend{submit: api.Response{Success: true}}
	m := newTestApp(t, b, store)
	m.Update(navigateMsg{screen: ScreenAPIKey})
	a := m.screen.(*apiKeyScreen)

	typeText(m, "key-1")
	if cmd := press(m, tea.KeyEnter); cmd != nil {
		t.Error("no request should be sent without a registered phone")
	}
	if a.w.Error != wizard.MsgNoRegisteredPhone {
		t.Errorf("Error = %q", a.w.Error)
	}

	_ = store.SaveRegistrantPhone("0812345678")
	m.Update(findOutcome(t, press(m, tea.KeyEnter)))
	if !a.w.Done {
		t.Fatalf("setup should be done, error %q", a.w.Error)
	}
	if !strings.Contains(a.view(80), "0812345678") {
		t.Error("view should show the bound phone")
	}
}

func TestView_RendersContainer(t *testing.T) {
	m := newTestApp(t, &fakeBackend{}, nil)
	m.Update(tea.WindowSizeMsg{Width: 90, Height: 40})
	out := m.View()
	if !strings.Contains(out, "ระบบ.คอนโซล") {
		t.Error("home content missing from view")
	}
	if !strings.Contains(out, "เพิ่มเบอร์") {
		t.Error("navigation missing from view")
	}
}
