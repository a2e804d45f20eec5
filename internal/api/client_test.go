package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// newTestServer returns a client pointed at handler.
func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClientWithURL(server.URL + "/")
}

// closedServerURL returns the URL of a server that is no longer listening.
func closedServerURL() string {
	server := httptest.NewServer(http.NotFoundHandler())
	u := server.URL
	server.Close()
	return u
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestNewClientWithURL(t *testing.T) {
	client := NewClientWithURL("http://example.test")

	if client.BaseURL != "http://example.test" {
		t.Errorf("BaseURL = %s, want http://example.test", client.BaseURL)
	}
	if client.CensusPath != DefaultCensusPath {
		t.Errorf("CensusPath = %s, want %s", client.CensusPath, DefaultCensusPath)
	}
	if client.HTTPClient == nil || client.HTTPClient.Timeout != DefaultTimeout {
		t.Errorf("HTTPClient timeout = %v, want %v", client.HTTPClient.Timeout, DefaultTimeout)
	}
	if client.LimitURL != "" {
		t.Errorf("LimitURL = %q, want empty", client.LimitURL)
	}
}

func TestSetTimeout(t *testing.T) {
	client := NewClientWithURL("http://example.test")
	client.SetTimeout(3 * time.Second)

	if client.HTTPClient.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", client.HTTPClient.Timeout)
	}
}

func TestSubmitPhone_Success(t *testing.T) {
	var got submitRequest
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/submit-phone" {
			t.Errorf("request = %s %s, want POST /submit-phone", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		if r.Header.Get(RequestIDHeader) == "" {
			t.Error("X-Request-ID header missing")
		}
		if !strings.HasPrefix(r.Header.Get("User-Agent"), "tmcatcher/") {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		writeJSON(w, http.StatusOK, `{"success":true,"message":"บันทึกแล้ว"}`)
	})

	res := client.SubmitPhone(context.Background(), "0812345678", "key-1")

	if !res.Success || res.Message != "บันทึกแล้ว" || res.Err != nil {
		t.Errorf("SubmitPhone() = %+v, want success", res)
	}
	if got.Phone != "0812345678" || got.APIKey != "key-1" {
		t.Errorf("request body = %+v", got)
	}
}

func TestSubmitPhone_BlankInputsSkipNetwork(t *testing.T) {
	var calls int32
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	tests := []struct{ phone, key string }{
		{"", "key"},
		{"0812345678", "   "},
		{" ", " "},
	}
	for _, tt := range tests {
		res := client.SubmitPhone(context.Background(), tt.phone, tt.key)
		if res.Success {
			t.Errorf("SubmitPhone(%q, %q) succeeded", tt.phone, tt.key)
		}
		if res.Message != MsgPhoneAndKeyRequired {
			t.Errorf("Message = %q, want %q", res.Message, MsgPhoneAndKeyRequired)
		}
		if !IsValidationError(res.Err) {
			t.Errorf("Err = %v, want validation error", res.Err)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("server received %d requests, want 0", n)
	}
}

func TestServerErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		call    func(c *Client) Response
		want    string
		wantErr int
	}{
		{
			name:   "body message wins",
			status: http.StatusConflict,
			body:   `{"success":false,"message":"เบอร์นี้ลงทะเบียนแล้ว"}`,
			call: func(c *Client) Response {
				return c.SubmitPhone(context.Background(), "0812345678", "k")
			},
			want:    "เบอร์นี้ลงทะเบียนแล้ว",
			wantErr: http.StatusConflict,
		},
		{
			name:   "404 has operation message",
			status: http.StatusNotFound,
			body:   ``,
			call: func(c *Client) Response {
				return c.SubmitPhone(context.Background(), "0812345678", "k")
			},
			want:    "API endpoint ไม่พบ กรุณาตรวจสอบ URL ที่ถูกต้อง",
			wantErr: http.StatusNotFound,
		},
		{
			name:   "400 on verify is a bad OTP",
			status: http.StatusBadRequest,
			body:   `not json`,
			call: func(c *Client) Response {
				return c.VerifyBotOTP(context.Background(), "+66812345678", "12345", "k")
			},
			want:    "รหัส OTP ไม่ถูกต้อง กรุณาตรวจสอบและลองอีกครั้ง",
			wantErr: http.StatusBadRequest,
		},
		{
			name:   "unknown status uses template",
			status: http.StatusBadGateway,
			body:   `{}`,
			call: func(c *Client) Response {
				return c.InitiateBotLogin(context.Background(), "+66812345678", "k")
			},
			want:    "เซิร์ฟเวอร์ตอบกลับด้วยรหัส 502",
			wantErr: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			res := tt.call(client)
			if res.Success {
				t.Fatal("expected failure")
			}
			if res.Message != tt.want {
				t.Errorf("Message = %q, want %q", res.Message, tt.want)
			}
			apiErr, ok := res.Err.(*Error)
			if !ok || apiErr.Kind != KindServer || apiErr.StatusCode != tt.wantErr {
				t.Errorf("Err = %#v, want server error %d", res.Err, tt.wantErr)
			}
		})
	}
}

func TestRejectedEnvelopeWithoutMessage(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":false}`)
	})

	res := client.InitiateBotLogin(context.Background(), "+66812345678", "k")
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Message != "เกิดข้อผิดพลาดในการเริ่มต้นล็อกอินบอท กรุณาลองใหม่อีกครั้ง" {
		t.Errorf("Message = %q", res.Message)
	}
	if res.Err != nil {
		t.Errorf("Err = %v, want nil for a business rejection", res.Err)
	}
}

func TestNetworkFailure(t *testing.T) {
	client := NewClientWithURL(closedServerURL())

	res := client.CheckStatusByPhone(context.Background(), "0812345678")
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Message != MsgCannotConnect {
		t.Errorf("Message = %q, want %q", res.Message, MsgCannotConnect)
	}
	if !IsNetworkError(res.Err) {
		t.Errorf("Err = %v, want network error", res.Err)
	}
}

func TestCheckTotalBots_OfflineMessage(t *testing.T) {
	client := NewClientWithURL(closedServerURL())

	res := client.CheckTotalBots(context.Background())
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.OnlineBotCount != 0 {
		t.Errorf("OnlineBotCount = %d, want 0", res.OnlineBotCount)
	}
	if res.Message != MsgCensusOffline {
		t.Errorf("Message = %q, want offline message %q", res.Message, MsgCensusOffline)
	}
	if res.AsOf.IsZero() {
		t.Error("AsOf should be stamped even on failure")
	}
}

func TestCheckTotalBots(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"online-bots", DefaultCensusPath, `{"success":true,"onlineBotCount":12}`, 12},
		{"legacy total-bots", LegacyCensusPath, `{"success":true,"totalBots":7}`, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != tt.path {
					t.Errorf("path = %s, want %s", r.URL.Path, tt.path)
				}
				writeJSON(w, http.StatusOK, tt.body)
			})
			client.CensusPath = tt.path
			fixed := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
			client.now = func() time.Time { return fixed }

			res := client.CheckTotalBots(context.Background())
			if !res.Success || res.OnlineBotCount != tt.want {
				t.Errorf("CheckTotalBots() = %+v, want %d bots", res, tt.want)
			}
			if !res.AsOf.Equal(fixed) {
				t.Errorf("AsOf = %v, want %v", res.AsOf, fixed)
			}
		})
	}
}

func TestCheckAPIHealth(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   bool
	}{
		{"success true", http.StatusOK, `{"success":true}`, true},
		{"success missing", http.StatusOK, `{"onlineBotCount":1}`, true},
		{"success false", http.StatusOK, `{"success":false}`, false},
		{"server error", http.StatusInternalServerError, `{}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})
			if got := client.CheckAPIHealth(context.Background()); got != tt.want {
				t.Errorf("CheckAPIHealth() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("unreachable", func(t *testing.T) {
		client := NewClientWithURL(closedServerURL())
		if client.CheckAPIHealth(context.Background()) {
			t.Error("CheckAPIHealth() = true for a closed server")
		}
	})
}

func TestCheckAPIHealth_UsesShortTimeout(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	client.HealthTimeout = 50 * time.Millisecond

	start := time.Now()
	if client.CheckAPIHealth(context.Background()) {
		t.Error("CheckAPIHealth() = true for a hanging server")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("CheckAPIHealth() took %v, want it bounded by HealthTimeout", elapsed)
	}
}

func TestCanceledContext(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":true}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := client.CheckStatusByAPIKey(ctx, "key-1")
	if res.Success {
		t.Fatal("expected failure on canceled context")
	}
	if !IsCanceled(res.Err) {
		t.Errorf("Err = %v, want canceled", res.Err)
	}
	if res.Message != MsgCanceled {
		t.Errorf("Message = %q, want %q", res.Message, MsgCanceled)
	}
}

func TestCheckStatus(t *testing.T) {
	body := `{
		"success": true,
		"message": "ok",
		"phone": "0812345678",
		"botPhone": "+66912345678",
		"totalAmount": 150.5,
		"expiresAt": "2024-01-20T10:30:00Z",
		"remainingTime": {"days": 5, "hours": 0, "minutes": 10},
		"botSessionStatus": {"active": true, "telegramPhone": "+66912345678", "sessionExpiresAt": "2024-01-16T00:00:00Z"}
	}`

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/status-by-phone/0812345678", "/status/key%2F1", "/status/key/1":
			writeJSON(w, http.StatusOK, body)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	for _, res := range []StatusResult{
		client.CheckStatusByPhone(context.Background(), "0812345678"),
		client.CheckStatusByAPIKey(context.Background(), "key/1"),
	} {
		if !res.Success {
			t.Fatalf("status lookup failed: %+v", res)
		}
		if res.Phone != "0812345678" || res.TotalAmount != 150.5 {
			t.Errorf("result = %+v", res)
		}
		if res.RemainingTime == nil || res.RemainingTime.Days != 5 {
			t.Errorf("RemainingTime = %+v", res.RemainingTime)
		}
		if res.BotSessionStatus == nil || res.BotSessionStatus.Session == nil || !res.BotSessionStatus.Session.Active {
			t.Errorf("BotSessionStatus = %+v", res.BotSessionStatus)
		}
	}
}

func TestCheckStatusByAPIKey_BlankKey(t *testing.T) {
	client := NewClientWithURL(closedServerURL())

	res := client.CheckStatusByAPIKey(context.Background(), "  ")
	if res.Message != MsgAPIKeyRequired || !IsValidationError(res.Err) {
		t.Errorf("CheckStatusByAPIKey(blank) = %+v", res)
	}
}

func TestBotLoginBodies(t *testing.T) {
	var bodies []map[string]any
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var m map[string]any
		_ = json.NewDecoder(r.Body).Decode(&m)
		bodies = append(bodies, m)
		writeJSON(w, http.StatusOK, `{"success":true,"message":"ส่ง OTP แล้ว"}`)
	})

	client.InitiateBotLogin(context.Background(), "+66812345678", "k")
	client.VerifyBotOTP(context.Background(), "+66812345678", "12345", "k")

	if len(bodies) != 2 {
		t.Fatalf("requests = %d, want 2", len(bodies))
	}
	if _, ok := bodies[0]["code"]; ok {
		t.Error("initiate body should not carry a code")
	}
	if bodies[1]["code"] != "12345" || bodies[1]["apiKey"] != "k" {
		t.Errorf("verify body = %v", bodies[1])
	}

	for _, res := range []Response{
		client.InitiateBotLogin(context.Background(), "+66812345678", ""),
		client.VerifyBotOTP(context.Background(), "+66812345678", "12345", " "),
	} {
		if !IsValidationError(res.Err) {
			t.Errorf("blank api key: Err = %v, want validation error", res.Err)
		}
	}
	if len(bodies) != 2 {
		t.Errorf("blank api key calls reached the server")
	}
}

func TestGenerateAPIKey(t *testing.T) {
	var query string
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("count")
		writeJSON(w, http.StatusOK, `{"success":true,"apiKeys":["a","b"]}`)
	})

	res := client.GenerateAPIKey(context.Background(), 0)
	if query != "1" {
		t.Errorf("count = %q, want 1 for a non-positive request", query)
	}
	if !res.Success || len(res.Keys) != 2 || res.Keys[0] != "a" {
		t.Errorf("GenerateAPIKey() = %+v", res)
	}
}

func TestRemoveBotSession(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/remove-bot/key-1" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		writeJSON(w, http.StatusOK, `{"success":true,"message":"ลบแล้ว"}`)
	})

	if res := client.RemoveBotSession(context.Background(), "key-1"); !res.Success {
		t.Errorf("RemoveBotSession() = %+v", res)
	}
	if res := client.RemoveBotSession(context.Background(), ""); !IsValidationError(res.Err) {
		t.Errorf("RemoveBotSession(blank) Err = %v", res.Err)
	}
}

func TestDeleteLimit(t *testing.T) {
	limit := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/deletelimit/key-1/50" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		writeJSON(w, http.StatusOK, `{"success":true}`)
	}))
	defer limit.Close()

	client := NewClientWithURL(closedServerURL())

	res := client.DeleteLimit(context.Background(), "key-1", 50)
	if res.Message != MsgLimitURLMissing || !IsValidationError(res.Err) {
		t.Errorf("DeleteLimit() without LimitURL = %+v", res)
	}

	client.LimitURL = limit.URL + "/"
	if res := client.DeleteLimit(context.Background(), "key-1", 50); !res.Success {
		t.Errorf("DeleteLimit() = %+v", res)
	}
	if res := client.DeleteLimit(context.Background(), " ", 50); res.Message != MsgLimitKeyRequired {
		t.Errorf("DeleteLimit(blank) Message = %q", res.Message)
	}
}

func TestParseError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success": tru`)
	})

	res := client.CheckStatusByPhone(context.Background(), "0812345678")
	if res.Success || res.Message != MsgUnexpectedResponse {
		t.Errorf("CheckStatusByPhone() = %+v", res)
	}
	if apiErr, ok := res.Err.(*Error); !ok || apiErr.Kind != KindParse {
		t.Errorf("Err = %v, want parse error", res.Err)
	}
}
