package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/muurk/tmcatcher/internal/validators"
)

// Response is the envelope every operation returns. Err is set whenever
// Success is false because of a local, transport or server failure; a 2xx
// envelope with success=false leaves it nil.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (r *Response) envelope() *Response { return r }

func (r *Response) fail(err *Error) {
	r.Success = false
	r.Message = err.Message
	r.Err = err
}

// result is implemented by every operation result through the embedded Response.
type result interface {
	envelope() *Response
}

// BotSession is the structured form of botSessionStatus.
type BotSession struct {
	Active           bool   `json:"active"`
	TelegramPhone    string `json:"telegramPhone"`
	SessionExpiresAt string `json:"sessionExpiresAt"`
}

// BotSessionStatus is a free-text status or a structured session. Exactly
// one of Text or Session is set after decoding a non-null value.
type BotSessionStatus struct {
	Text    string
	Session *BotSession
}

// UnmarshalJSON accepts either a JSON string or an object.
func (b *BotSessionStatus) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &b.Text)
	}
	var s BotSession
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("botSessionStatus: %w", err)
	}
	b.Session = &s
	return nil
}

// MarshalJSON writes the same shape that was decoded.
func (b BotSessionStatus) MarshalJSON() ([]byte, error) {
	if b.Session != nil {
		return json.Marshal(b.Session)
	}
	return json.Marshal(b.Text)
}

// ExpiresAt parses the structured session expiry. It reports false for
// free-text statuses or a missing or unparseable timestamp.
func (b *BotSessionStatus) ExpiresAt(loc *time.Location) (time.Time, bool) {
	if b == nil || b.Session == nil || b.Session.SessionExpiresAt == "" {
		return time.Time{}, false
	}
	t, err := validators.ParseTimestamp(b.Session.SessionExpiresAt, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// StatusResult is returned by the status lookups.
type StatusResult struct {
	Response
	Phone            string                    `json:"phone,omitempty"`
	BotPhone         string                    `json:"botPhone,omitempty"`
	TotalAmount      float64                   `json:"totalAmount,omitempty"`
	ExpiresAt        string                    `json:"expiresAt,omitempty"`
	RemainingTime    *validators.RemainingTime `json:"remainingTime,omitempty"`
	BotSessionStatus *BotSessionStatus         `json:"botSessionStatus,omitempty"`
}

// CensusResult is returned by CheckTotalBots.
type CensusResult struct {
	Response
	OnlineBotCount int       `json:"onlineBotCount"`
	AsOf           time.Time `json:"asOf"`
}

// UnmarshalJSON reads onlineBotCount, falling back to the legacy totalBots.
func (c *CensusResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		Success        bool   `json:"success"`
		Message        string `json:"message"`
		OnlineBotCount *int   `json:"onlineBotCount"`
		TotalBots      *int   `json:"totalBots"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Success = raw.Success
	c.Message = raw.Message
	switch {
	case raw.OnlineBotCount != nil:
		c.OnlineBotCount = *raw.OnlineBotCount
	case raw.TotalBots != nil:
		c.OnlineBotCount = *raw.TotalBots
	}
	return nil
}

// GenerateKeyResult is returned by GenerateAPIKey.
type GenerateKeyResult struct {
	Response
	Keys []string `json:"keys"`
}

// UnmarshalJSON accepts apiKey, key, apiKeys or keys.
func (g *GenerateKeyResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		Success bool     `json:"success"`
		Message string   `json:"message"`
		APIKey  string   `json:"apiKey"`
		Key     string   `json:"key"`
		APIKeys []string `json:"apiKeys"`
		Keys    []string `json:"keys"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	g.Success = raw.Success
	g.Message = raw.Message
	g.Keys = nil
	for _, k := range []string{raw.APIKey, raw.Key} {
		if k != "" {
			g.Keys = append(g.Keys, k)
		}
	}
	g.Keys = append(g.Keys, raw.APIKeys...)
	g.Keys = append(g.Keys, raw.Keys...)
	return nil
}

// healthEnvelope distinguishes a missing success field from success=false.
type healthEnvelope struct {
	Success *bool `json:"success"`
}

// errorBody is decoded from non-2xx responses to pick up the server message.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// loginRequest is the /bot-login body; Code is omitted when initiating.
type loginRequest struct {
	Phone  string `json:"phone"`
	Code   string `json:"code,omitempty"`
	APIKey string `json:"apiKey"`
}

type submitRequest struct {
	Phone  string `json:"phone"`
	APIKey string `json:"apiKey"`
}
