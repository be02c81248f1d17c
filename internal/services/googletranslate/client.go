package googletranslate

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

	"subtrans/internal/language"
)

const (
	defaultBaseURL     = "https://translate.googleapis.com/translate_a/single"
	defaultHTTPTimeout = 15 * time.Second
	maxErrorBody       = 512
)

// Client issues translation requests against the gtx endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithBaseURL overrides the endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// NewClient constructs a client with a 15s request timeout.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("google translate: http %d: %s", e.StatusCode, e.Body)
}

// Translate returns text rendered in target.
func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.New("google translate: text required")
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return "", errors.New("google translate: target language required")
	}
	source = strings.TrimSpace(source)
	if source == "" {
		source = language.Auto
	}

	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("google translate: build url: %w", err)
	}
	query := endpoint.Query()
	query.Set("client", "gtx")
	query.Set("sl", source)
	query.Set("tl", target)
	query.Set("dt", "t")
	query.Set("q", text)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", fmt.Errorf("google translate: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("google translate: http error: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("google translate: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return "", &StatusError{StatusCode: resp.StatusCode, Body: snippet}
	}
	return ParseResponse(body)
}

// ParseResponse joins the translated segments of a gtx response such as
// [[["Bonjour ","Hello ",null,null,10],["le monde","world",null,null,10]],null,"en"].
func ParseResponse(body []byte) (string, error) {
	var root []json.RawMessage
	if err := json.Unmarshal(body, &root); err != nil {
		return "", fmt.Errorf("google translate: decode response: %w", err)
	}
	if len(root) == 0 {
		return "", errors.New("google translate: empty response")
	}
	var segments [][]json.RawMessage
	if err := json.Unmarshal(root[0], &segments); err != nil {
		return "", fmt.Errorf("google translate: decode segments: %w", err)
	}
	var b strings.Builder
	for _, segment := range segments {
		if len(segment) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(segment[0], &part); err != nil {
			continue
		}
		b.WriteString(part)
	}
	translated := strings.TrimSpace(b.String())
	if translated == "" {
		return "", errors.New("google translate: empty translation")
	}
	return translated, nil
}
