package sms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/washifyapp/driver-backend/pkg/config"
	pkgerrors "github.com/washifyapp/driver-backend/pkg/errors"
)

const (
	defaultBaseURL             = "https://api.twilio.com/2010-04-01"
	responseBodyReadLimit int64 = 1024
)

var (
	errAccountSIDRequired = errors.New("twilio account sid is required")
	errAuthTokenRequired  = errors.New("twilio auth token is required")
	errFromNumberRequired = errors.New("twilio from number is required")
)

// Sender delivers a text message to a single phone number.
type Sender interface {
	Send(ctx context.Context, to string, body string) error
}

// Client wraps the Twilio Messages API used for OTP delivery.
type Client struct {
	httpClient *http.Client
	baseURL    string
	accountSID string
	authToken  string
	from       string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured Twilio base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the Twilio client from configuration.
func NewClient(cfg config.TwilioConfig, opts ...Option) (*Client, error) {
	sid := strings.TrimSpace(cfg.AccountSID)
	if sid == "" {
		return nil, errAccountSIDRequired
	}
	token := strings.TrimSpace(cfg.AuthToken)
	if token == "" {
		return nil, errAuthTokenRequired
	}
	from := strings.TrimSpace(cfg.FromNumber)
	if from == "" {
		return nil, errFromNumberRequired
	}

	client := &Client{
		accountSID: sid,
		authToken:  token,
		from:       from,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}

	return client, nil
}

// Send posts a message to the Twilio Messages endpoint.
func (c *Client) Send(ctx context.Context, to string, body string) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "sms client not configured")
	}
	if strings.TrimSpace(to) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "destination phone number is required")
	}
	if strings.TrimSpace(body) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "message body is required")
	}

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", strings.TrimRight(c.baseURL, "/"), url.PathEscape(c.accountSID))

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.from)
	form.Set("Body", body)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build sms request")
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute sms request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "sms delivery failed")
	}

	var apiResp struct {
		ErrorCode *int `json:"error_code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode sms response")
	}
	if apiResp.ErrorCode != nil {
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("twilio error code %d", *apiResp.ErrorCode))
	}

	return nil
}
