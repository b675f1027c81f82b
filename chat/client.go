// Package chat reads and sends conversation messages and follows a
// conversation live. Requests are authorized by the session's HTTP client.
package chat

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jrsteele09/go-legal-client/api"
	"github.com/jrsteele09/go-legal-client/internal/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	defaultPerPage  = 50
	maxResponseSize = 1 << 20
	maxStreamLine   = 64 << 10
)

type Message = api.ChatMessage

// Page is one page of a conversation, oldest message first.
type Page struct {
	Messages []Message
	Page     int
	PerPage  int
	Total    int
	HasMore  bool
}

// Client calls the chat endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     zerolog.Logger
}

// Option defines a function type to modify the Client instance.
type Option func(*Client)

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRequestTimeout bounds Messages and Send. Streams are not affected.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a Client for the API rooted at baseURL. httpClient must
// add the Authorization header, e.g. session.Controller.HTTPClient, and must
// not set a Timeout if Stream is used.
func NewClient(baseURL string, httpClient *http.Client, options ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("[chat NewClient] base URL is required")
	}
	if httpClient == nil {
		return nil, errors.New("[chat NewClient] http client is required")
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     log.Logger,
	}
	for _, opt := range options {
		opt(c)
	}
	c.logger = c.logger.With().Str("component", "chat").Logger()
	return c, nil
}

// Messages returns one page of a conversation.
func (c *Client) Messages(ctx context.Context, conversationID string, page, perPage int) (*Page, error) {
	if conversationID == "" {
		return nil, errors.New("[chat Messages] conversation ID is required")
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	env, err := c.do(ctx, http.MethodGet, messagesPath(conversationID)+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	var data api.PageData[Message]
	if err := env.DecodeData(&data); err != nil {
		return nil, errors.Wrapf(err, "[chat Messages] decode")
	}
	return &Page{
		Messages: data.Items,
		Page:     data.Page,
		PerPage:  data.PerPage,
		Total:    data.Total,
		HasMore:  data.HasMore(),
	}, nil
}

// Send posts body to a conversation as the signed-in user.
func (c *Client) Send(ctx context.Context, conversationID, body string) (*Message, error) {
	if conversationID == "" {
		return nil, errors.New("[chat Send] conversation ID is required")
	}
	raw, err := json.Marshal(api.SendMessageRequest{Body: body})
	if err != nil {
		return nil, errors.Wrapf(err, "[chat Send] encode")
	}

	env, err := c.do(ctx, http.MethodPost, messagesPath(conversationID), raw)
	if err != nil {
		return nil, err
	}
	var msg Message
	if err := env.DecodeData(&msg); err != nil {
		return nil, errors.Wrapf(err, "[chat Send] decode")
	}
	return &msg, nil
}

// Stream opens a live feed of messages posted to the conversation from now
// on. Cancel ctx or Close the stream to stop it.
func (c *Client) Stream(ctx context.Context, conversationID string) (*Stream, error) {
	if conversationID == "" {
		return nil, errors.New("[chat Stream] conversation ID is required")
	}
	path := "/chats/" + url.PathEscape(conversationID) + "/stream"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "[chat Stream] build request")
	}
	req.Header.Set("Accept", "application/x-ndjson")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "[chat Stream] GET %s", path)
	}
	if err := statusError(resp.StatusCode, path); err != nil {
		resp.Body.Close()
		return nil, err
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 4096), maxStreamLine)
	c.logger.Debug().Str("conversation_id", conversationID).Msg("stream opened")
	return &Stream{body: resp.Body, scanner: scanner}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*api.Envelope, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, errors.Wrapf(err, "[chat] build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "[chat] %s %s", method, path)
	}
	defer resp.Body.Close()

	var env api.Envelope
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&env)
	if err := statusError(resp.StatusCode, path); err != nil {
		if decodeErr == nil && env.Message != "" {
			return nil, fmt.Errorf("%w: %s", err, env.Message)
		}
		return nil, err
	}
	if decodeErr != nil {
		return nil, errors.Wrapf(decodeErr, "[chat] decode %s", path)
	}
	return &env, nil
}

func messagesPath(conversationID string) string {
	return "/chats/" + url.PathEscape(conversationID) + "/messages"
}

func statusError(status int, path string) error {
	switch {
	case status == http.StatusUnauthorized:
		return fmt.Errorf("[chat] %s: %w", path, errors.ErrUnauthorized)
	case status == http.StatusNotFound:
		return fmt.Errorf("[chat] %s: %w", path, errors.ErrNotFound)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return fmt.Errorf("[chat] %s: %w", path, errors.ErrValidation)
	case status < 200 || status > 299:
		return fmt.Errorf("[chat] %s: %w: %d", path, errors.ErrUnexpectedStatus, status)
	}
	return nil
}
