package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/muurk/tmcatcher/internal/logging"
	"github.com/muurk/tmcatcher/internal/metrics"
	"github.com/muurk/tmcatcher/internal/urls"
	"github.com/muurk/tmcatcher/internal/version"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 15 * time.Second

	// DefaultHealthTimeout is the shorter timeout used by CheckAPIHealth
	DefaultHealthTimeout = 5 * time.Second

	// DefaultCensusPath is the bot census endpoint
	DefaultCensusPath = "/online-bots"

	// LegacyCensusPath is the census endpoint of older backends
	LegacyCensusPath = "/total-bots"

	// RequestIDHeader carries a fresh UUID on every request
	RequestIDHeader = "X-Request-ID"

	// maxBodyBytes bounds how much of a response body is read
	maxBodyBytes = 1 << 20
)

// Client talks to the interception service backend. Every operation returns
// a result value with an embedded Response; transport failures never escape
// as Go errors.
type Client struct {
	// BaseURL is the backend base URL
	BaseURL string

	// LimitURL is the base URL of the delete-limit host (empty = not configured)
	LimitURL string

	// CensusPath is the bot census path, DefaultCensusPath unless overridden
	CensusPath string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// HealthTimeout bounds CheckAPIHealth independently of HTTPClient.Timeout
	HealthTimeout time.Duration

	// UserAgent is sent on every request
	UserAgent string

	// now stamps CensusResult.AsOf
	now func() time.Time
}

// NewClient creates a client for the default backend
func NewClient() *Client {
	return NewClientWithURL(urls.DefaultBaseURL)
}

// NewClientWithURL creates a client with a custom base URL
func NewClientWithURL(baseURL string) *Client {
	return &Client{
		BaseURL:       baseURL,
		LimitURL:      urls.DefaultLimitURL,
		CensusPath:    DefaultCensusPath,
		HTTPClient:    &http.Client{Timeout: DefaultTimeout},
		HealthTimeout: DefaultHealthTimeout,
		UserAgent:     version.UserAgent(),
		now:           time.Now,
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// request describes one HTTP exchange
type request struct {
	op      string
	method  string
	url     string
	body    any
	timeout time.Duration
}

func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.BaseURL, "/") + path
}

func (c *Client) censusPath() string {
	p := c.CensusPath
	if p == "" {
		p = DefaultCensusPath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func (c *Client) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

// do performs the exchange and decodes a 2xx body into out. It returns the
// classified failure, or nil when a 2xx response was decoded.
func (c *Client) do(ctx context.Context, r request, out any) *Error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return c.failed(r.op, "", NewRequestError(r.op, err), 0)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, r.url, body)
	if err != nil {
		return c.failed(r.op, "", NewRequestError(r.op, err), 0)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	logging.LogAPIRequest(r.op, r.method, r.url, requestID)
	start := time.Now()

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		apiErr := ClassifyNetworkError(r.op, err)
		apiErr.Message = networkMessage(r.op, apiErr.Kind)
		return c.failed(r.op, requestID, apiErr, time.Since(start))
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		apiErr := ClassifyNetworkError(r.op, err)
		apiErr.Message = networkMessage(r.op, apiErr.Kind)
		return c.failed(r.op, requestID, apiErr, time.Since(start))
	}

	elapsed := time.Since(start)
	logging.LogAPIResponse(r.op, resp.StatusCode, elapsed, requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		msg := eb.Message
		if msg == "" {
			msg = eb.Error
		}
		apiErr := NewServerError(r.op, resp.StatusCode, serverMessage(r.op, resp.StatusCode, msg))
		return c.failed(r.op, requestID, apiErr, elapsed)
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return c.failed(r.op, requestID, NewParseError(r.op, resp.StatusCode, err), elapsed)
		}
	}

	metrics.ObserveAPIRequest(r.op, "success", elapsed)
	return nil
}

func (c *Client) failed(op, requestID string, err *Error, elapsed time.Duration) *Error {
	metrics.ObserveAPIRequest(op, outcomeLabel(err.Kind), elapsed)
	logging.LogAPIFailure(op, err, requestID)
	return err
}

// invalid records a local validation failure; no request is sent.
func (c *Client) invalid(op, message string) *Error {
	return c.failed(op, "", NewValidationError(op, message), 0)
}

func outcomeLabel(k Kind) string {
	switch k {
	case KindValidation:
		return "validation"
	case KindServer:
		return "server_error"
	case KindNetwork:
		return "network_error"
	case KindTimeout:
		return "timeout"
	case KindRequest:
		return "request_error"
	case KindParse:
		return "parse_error"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// finish fills a result after do: failures populate the envelope, and a 2xx
// rejection without a message gets the operation's fallback text.
func finish(op string, res result, err *Error) {
	env := res.envelope()
	if err != nil {
		env.fail(err)
		return
	}
	if !env.Success && env.Message == "" {
		env.Message = rejectedMessage(op)
	}
}

// SubmitPhone registers phone with apiKey
func (c *Client) SubmitPhone(ctx context.Context, phone, apiKey string) Response {
	var res Response
	if strings.TrimSpace(phone) == "" || strings.TrimSpace(apiKey) == "" {
		res.fail(c.invalid(OpSubmitPhone, MsgPhoneAndKeyRequired))
		return res
	}

	err := c.do(ctx, request{
		op:     OpSubmitPhone,
		method: http.MethodPost,
		url:    c.endpoint("/submit-phone"),
		body:   submitRequest{Phone: phone, APIKey: apiKey},
	}, &res)
	finish(OpSubmitPhone, &res, err)
	return res
}

// GenerateAPIKey asks the backend for count new keys. A count below 1 is
// treated as 1.
func (c *Client) GenerateAPIKey(ctx context.Context, count int) GenerateKeyResult {
	if count < 1 {
		count = 1
	}

	var res GenerateKeyResult
	err := c.do(ctx, request{
		op:     OpGenerateAPIKey,
		method: http.MethodGet,
		url:    c.endpoint(fmt.Sprintf("/generate-key?count=%d", count)),
	}, &res)
	finish(OpGenerateAPIKey, &res, err)
	return res
}

// InitiateBotLogin asks the backend to send an OTP to phone
func (c *Client) InitiateBotLogin(ctx context.Context, phone, apiKey string) Response {
	var res Response
	if strings.TrimSpace(apiKey) == "" {
		res.fail(c.invalid(OpInitiateBotLogin, MsgAPIKeyRequired))
		return res
	}

	err := c.do(ctx, request{
		op:     OpInitiateBotLogin,
		method: http.MethodPost,
		url:    c.endpoint("/bot-login"),
		body:   loginRequest{Phone: phone, APIKey: apiKey},
	}, &res)
	finish(OpInitiateBotLogin, &res, err)
	return res
}

// VerifyBotOTP completes a bot login with the OTP code
func (c *Client) VerifyBotOTP(ctx context.Context, phone, code, apiKey string) Response {
	var res Response
	if strings.TrimSpace(apiKey) == "" {
		res.fail(c.invalid(OpVerifyBotOTP, MsgAPIKeyRequired))
		return res
	}

	err := c.do(ctx, request{
		op:     OpVerifyBotOTP,
		method: http.MethodPost,
		url:    c.endpoint("/bot-login"),
		body:   loginRequest{Phone: phone, Code: code, APIKey: apiKey},
	}, &res)
	finish(OpVerifyBotOTP, &res, err)
	return res
}

// CheckStatusByPhone looks up a registration by phone number
func (c *Client) CheckStatusByPhone(ctx context.Context, phone string) StatusResult {
	var res StatusResult
	err := c.do(ctx, request{
		op:     OpCheckStatusByPhone,
		method: http.MethodGet,
		url:    c.endpoint("/status-by-phone/" + url.PathEscape(phone)),
	}, &res)
	finish(OpCheckStatusByPhone, &res, err)
	return res
}

// CheckStatusByAPIKey looks up a registration by API key
func (c *Client) CheckStatusByAPIKey(ctx context.Context, apiKey string) StatusResult {
	var res StatusResult
	if strings.TrimSpace(apiKey) == "" {
		res.fail(c.invalid(OpCheckStatusByAPIKey, MsgAPIKeyRequired))
		return res
	}

	err := c.do(ctx, request{
		op:     OpCheckStatusByAPIKey,
		method: http.MethodGet,
		url:    c.endpoint("/status/" + url.PathEscape(apiKey)),
	}, &res)
	finish(OpCheckStatusByAPIKey, &res, err)
	return res
}

// CheckTotalBots returns the bot census. When no response is received the
// result carries the offline message and OnlineBotCount 0.
func (c *Client) CheckTotalBots(ctx context.Context) CensusResult {
	var res CensusResult
	err := c.do(ctx, request{
		op:     OpCheckTotalBots,
		method: http.MethodGet,
		url:    c.endpoint(c.censusPath()),
	}, &res)
	finish(OpCheckTotalBots, &res, err)
	if err != nil {
		res.OnlineBotCount = 0
	}
	res.AsOf = c.clock()
	return res
}

// CheckAPIHealth reports whether the census endpoint answers with a 2xx
// body that does not say success=false. All failures report false.
func (c *Client) CheckAPIHealth(ctx context.Context) bool {
	timeout := c.HealthTimeout
	if timeout <= 0 {
		timeout = DefaultHealthTimeout
	}

	var env healthEnvelope
	err := c.do(ctx, request{
		op:      OpCheckAPIHealth,
		method:  http.MethodGet,
		url:     c.endpoint(c.censusPath()),
		timeout: timeout,
	}, &env)
	if err != nil {
		// Non-JSON 2xx bodies still mean the API is up.
		return err.Kind == KindParse
	}
	return env.Success == nil || *env.Success
}

// RemoveBotSession deletes the bot session bound to apiKey
func (c *Client) RemoveBotSession(ctx context.Context, apiKey string) Response {
	var res Response
	if strings.TrimSpace(apiKey) == "" {
		res.fail(c.invalid(OpRemoveBotSession, MsgAPIKeyRequired))
		return res
	}

	err := c.do(ctx, request{
		op:     OpRemoveBotSession,
		method: http.MethodDelete,
		url:    c.endpoint("/remove-bot/" + url.PathEscape(apiKey)),
	}, &res)
	finish(OpRemoveBotSession, &res, err)
	return res
}

// DeleteLimit removes amount from the usage limit of key on the limit host
func (c *Client) DeleteLimit(ctx context.Context, key string, amount int) Response {
	var res Response
	if strings.TrimSpace(key) == "" {
		res.fail(c.invalid(OpDeleteLimit, MsgLimitKeyRequired))
		return res
	}
	if strings.TrimSpace(c.LimitURL) == "" {
		res.fail(c.invalid(OpDeleteLimit, MsgLimitURLMissing))
		return res
	}

	target := fmt.Sprintf("%s/api/deletelimit/%s/%d",
		strings.TrimRight(c.LimitURL, "/"), url.PathEscape(key), amount)
	err := c.do(ctx, request{
		op:     OpDeleteLimit,
		method: http.MethodDelete,
		url:    target,
	}, &res)
	finish(OpDeleteLimit, &res, err)
	return res
}
