package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cvstudio/internal/config"
	"cvstudio/internal/cv"
	"cvstudio/internal/errcode"
)

// Client calls the external LLM gateway that backs the AI endpoints. The
// gateway owns prompts and schemas; this client only ships JSON back and
// forth and maps failures onto the errcode taxonomy.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	maxAttempts int
}

// Error is a gateway failure classified by error code.
type Error struct {
	Code    int
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("ai gateway: %s (status %d, code %d)", e.Message, e.Status, e.Code)
}

// NewClient builds a gateway client from config.
func NewClient(cfg config.AIConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	return &Client{
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		httpClient:  &http.Client{Timeout: timeout},
		maxAttempts: attempts,
	}
}

// ScoreBreakdown rates a CV along the four analysis axes, each 0-100.
type ScoreBreakdown struct {
	Completeness     int `json:"completeness"`
	Quality          int `json:"quality"`
	ATSCompatibility int `json:"atsCompatibility"`
	Impact           int `json:"impact"`
}

// Analysis is the result of a full-CV review.
type Analysis struct {
	Feedback []string       `json:"feedback"`
	Scores   ScoreBreakdown `json:"scores"`
}

// JobMatch compares a CV against a job description.
type JobMatch struct {
	Score           int      `json:"score"`
	MatchedKeywords []string `json:"matchedKeywords"`
	MissingKeywords []string `json:"missingKeywords"`
	Suggestions     []string `json:"suggestions"`
}

// Analyze asks the gateway to review the CV and score it.
func (c *Client) Analyze(ctx context.Context, data cv.CVData) (*Analysis, error) {
	payload := map[string]any{"cv": data}

	var result Analysis
	if err := c.postJSON(ctx, "/v1/analyze", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ImproveText rewrites a free-text fragment. context describes where the text
// lives ("summary", "experience description", ...) so the gateway can pick a
// suitable prompt.
func (c *Client) ImproveText(ctx context.Context, text, textContext string) (string, error) {
	payload := map[string]any{
		"text":    text,
		"context": textContext,
	}

	raw, err := c.postContent(ctx, "/v1/improve", payload)
	if err != nil {
		return "", err
	}
	return raw, nil
}

// MatchJob scores the CV against a job description and reports keyword overlap.
func (c *Client) MatchJob(ctx context.Context, data cv.CVData, jobDescription string) (*JobMatch, error) {
	payload := map[string]any{
		"cv":             data,
		"jobDescription": jobDescription,
	}

	var result JobMatch
	if err := c.postJSON(ctx, "/v1/match", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ExtractFromText parses unstructured text (a pasted résumé, a LinkedIn
// export) into a partial CV. Missing sections come back empty; the caller
// merges the result into the draft.
func (c *Client) ExtractFromText(ctx context.Context, text string) (*cv.CVData, error) {
	payload := map[string]any{"text": text}

	var result cv.CVData
	if err := c.postJSON(ctx, "/v1/extract", payload, &result); err != nil {
		return nil, err
	}
	result.Normalize()
	return &result, nil
}

// gateway envelope: the LLM output is carried as a string so the gateway
// never has to guarantee well-formed JSON from the model.
type contentEnvelope struct {
	Content string `json:"content"`
}

// postJSON posts the payload and unmarshals the enveloped LLM output into out,
// stripping markdown code fences first.
func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	raw, err := c.postContent(ctx, path, payload)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return &Error{
			Code:    errcode.Unknown,
			Message: fmt.Sprintf("decode gateway content: %v", err),
		}
	}
	return nil
}

func (c *Client) postContent(ctx context.Context, path string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.doPostWithRetry(ctx, path, body)
	if err != nil {
		return "", &Error{Code: errcode.Unknown, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", &Error{Code: errcode.Unknown, Message: fmt.Sprintf("read response: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp.StatusCode, respBody)
	}

	var envelope contentEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return "", &Error{
			Code:    errcode.Unknown,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("decode gateway envelope: %v", err),
		}
	}

	return CleanJSONBlock(envelope.Content), nil
}

// doPostWithRetry performs the POST with exponential backoff on transport
// errors and 5xx responses.
func (c *Client) doPostWithRetry(ctx context.Context, path string, body []byte) (*http.Response, error) {
	var lastErr error
	for i := 0; i < c.maxAttempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err == nil {
			if resp.StatusCode < 500 || i == c.maxAttempts-1 {
				return resp, nil
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("gateway returned status %d", resp.StatusCode)
		} else {
			lastErr = err
		}

		if i < c.maxAttempts-1 {
			backoff := time.Duration(1<<i) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

// statusError maps a non-200 gateway status onto the error taxonomy:
// bad input, quota exceeded, or unknown.
func statusError(status int, body []byte) *Error {
	var payload struct {
		Error string `json:"error"`
	}
	message := http.StatusText(status)
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		message = payload.Error
	}

	code := errcode.Unknown
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		code = errcode.Validation
	case status == http.StatusTooManyRequests:
		code = errcode.RateLimit
	}

	return &Error{Code: code, Status: status, Message: message}
}
