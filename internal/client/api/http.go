package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"studypilot/internal/common"
	"studypilot/internal/logging"
)

// HTTPConfig holds configuration for creating an HTTPClient.
type HTTPConfig struct {
	// BaseURL is the backend base address, e.g. "http://localhost:8000".
	BaseURL string
	// HTTPClient is used for all requests. If nil, http.DefaultClient is used.
	HTTPClient *http.Client
	// Tokens supplies the bearer token. May be nil for a client that only
	// performs unauthenticated calls.
	Tokens TokenSource
	// Logger is used for structured logging. If nil, a discard logger is used.
	Logger logging.Logger
}

// HTTPClient is the concrete Client speaking JSON over HTTP.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a backend client bound to the given base URL.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("api: invalid BaseURL %q: %w", cfg.BaseURL, err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewTextLogger(io.Discard, slog.LevelError)
	}

	return &HTTPClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		tokens:     cfg.Tokens,
		logger:     logger,
	}, nil
}

// doRequest performs an HTTP request and returns the response body.
// On 2xx, returns the body. On 4xx/5xx, returns an *Error decoded from the
// backend's error payload. A transport failure wraps ErrUnavailable.
func (c *HTTPClient) doRequest(ctx context.Context, method, path string, requestBody any, query url.Values) ([]byte, error) {
	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("api: failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	contentType := ""
	if requestBody != nil {
		contentType = "application/json"
	}
	return c.doRequestRaw(ctx, method, path, contentType, bodyReader, query)
}

// doRequestRaw performs an HTTP request with a preassembled body (used for
// multipart upload); doRequest funnels into it for the JSON case.
func (c *HTTPClient) doRequestRaw(ctx context.Context, method, path, contentType string, body io.Reader, query url.Values) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("api: failed to create request: %w", err)
	}

	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.logger.Debug(ctx, "api request", "method", method, "path", path)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("api: request %s %s failed: %w: %v", method, path, ErrUnavailable, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("api: failed to read response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	var payload errorPayload
	if jsonErr := json.Unmarshal(responseBody, &payload); jsonErr != nil {
		// Non-JSON error body. Surface the status, not the raw bytes.
		return nil, &Error{StatusCode: response.StatusCode}
	}
	return nil, &Error{StatusCode: response.StatusCode, Message: payload.text()}
}

// decodeEnvelope unmarshals body into v and then checks the success flag
// shared by all non-auth endpoints. A success=false on a 2xx response is
// still a backend failure and carries the payload's error string.
func decodeEnvelope(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("api: failed to parse response: %w", err)
	}
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Success != nil && !*payload.Success {
			return &Error{StatusCode: http.StatusOK, Message: payload.text()}
		}
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (*AuthResult, error) {
	// The password crosses into string form only at the serialization
	// boundary; the heap copy lives for the duration of the call.
	body := map[string]string{"email": email, "password": string(password)}

	responseBody, err := c.doRequest(ctx, http.MethodPost, "/auth/login", body, nil)
	if err != nil {
		return nil, err
	}

	var result AuthResult
	if err := json.Unmarshal(responseBody, &result); err != nil {
		return nil, fmt.Errorf("api: failed to parse login response: %w", err)
	}
	return &result, nil
}

func (c *HTTPClient) Signup(ctx context.Context, name, email string, password []byte) (*AuthResult, error) {
	body := map[string]string{"name": name, "email": email, "password": string(password)}

	responseBody, err := c.doRequest(ctx, http.MethodPost, "/auth/signup", body, nil)
	if err != nil {
		return nil, err
	}

	var result AuthResult
	if err := json.Unmarshal(responseBody, &result); err != nil {
		return nil, fmt.Errorf("api: failed to parse signup response: %w", err)
	}
	return &result, nil
}

func (c *HTTPClient) Dashboard(ctx context.Context) (*DashboardStats, error) {
	responseBody, err := c.doRequest(ctx, http.MethodGet, "/dashboard", nil, nil)
	if err != nil {
		return nil, err
	}

	var response struct {
		Success bool           `json:"success"`
		Stats   DashboardStats `json:"stats"`
	}
	if err := decodeEnvelope(responseBody, &response); err != nil {
		return nil, err
	}
	return &response.Stats, nil
}

func (c *HTTPClient) Status(ctx context.Context) (*InventoryStatus, error) {
	responseBody, err := c.doRequest(ctx, http.MethodGet, "/status", nil, nil)
	if err != nil {
		return nil, err
	}

	var response struct {
		Success bool            `json:"success"`
		Status  InventoryStatus `json:"status"`
	}
	if err := decodeEnvelope(responseBody, &response); err != nil {
		return nil, err
	}
	return &response.Status, nil
}

// UploadFiles sends one multipart request with every file under the "files"
// field. Batches over MaxUploadFiles are rejected before any network call.
func (c *HTTPClient) UploadFiles(ctx context.Context, files []UploadFile) error {
	if len(files) == 0 {
		return common.ErrNoFilesSelected
	}
	if len(files) > MaxUploadFiles {
		return fmt.Errorf("%w: got %d, max %d", common.ErrTooManyFiles, len(files), MaxUploadFiles)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := writer.CreateFormFile("files", f.Name)
		if err != nil {
			return fmt.Errorf("api: failed to assemble upload: %w", err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return fmt.Errorf("api: failed to assemble upload: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("api: failed to assemble upload: %w", err)
	}

	responseBody, err := c.doRequestRaw(ctx, http.MethodPost, "/upload_files", writer.FormDataContentType(), &buf, nil)
	if err != nil {
		return err
	}

	var response struct {
		Success bool `json:"success"`
	}
	return decodeEnvelope(responseBody, &response)
}

func (c *HTTPClient) Ask(ctx context.Context, question string) (*Answer, error) {
	body := map[string]string{"question": question}

	responseBody, err := c.doRequest(ctx, http.MethodPost, "/ask", body, nil)
	if err != nil {
		return nil, err
	}

	var response struct {
		Success bool `json:"success"`
		Answer
	}
	if err := decodeEnvelope(responseBody, &response); err != nil {
		return nil, err
	}
	return &response.Answer, nil
}

func (c *HTTPClient) Summarize(ctx context.Context, topic string) (string, error) {
	body := map[string]string{"topic": topic}

	responseBody, err := c.doRequest(ctx, http.MethodPost, "/summarize", body, nil)
	if err != nil {
		return "", err
	}

	var response struct {
		Success bool   `json:"success"`
		Summary string `json:"summary"`
	}
	if err := decodeEnvelope(responseBody, &response); err != nil {
		return "", err
	}
	return response.Summary, nil
}

func (c *HTTPClient) Quiz(ctx context.Context, topic string, numQuestions int) ([]QuizItem, error) {
	body := map[string]any{"topic": topic, "num_questions": numQuestions}

	responseBody, err := c.doRequest(ctx, http.MethodPost, "/quiz", body, nil)
	if err != nil {
		return nil, err
	}

	var response struct {
		Success bool       `json:"success"`
		Quiz    []QuizItem `json:"quiz"`
	}
	if err := decodeEnvelope(responseBody, &response); err != nil {
		return nil, err
	}
	return response.Quiz, nil
}

func (c *HTTPClient) SubmitQuizResult(ctx context.Context, score, total int, topic string) error {
	body := map[string]any{"score": score, "total": total, "topic": topic}

	responseBody, err := c.doRequest(ctx, http.MethodPost, "/quiz/submit", body, nil)
	if err != nil {
		return err
	}

	var response struct {
		Success bool `json:"success"`
	}
	return decodeEnvelope(responseBody, &response)
}

func (c *HTTPClient) History(ctx context.Context, limit int) ([]HistoryEntry, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	responseBody, err := c.doRequest(ctx, http.MethodGet, "/history", nil, query)
	if err != nil {
		return nil, err
	}

	var response struct {
		Success bool           `json:"success"`
		History []HistoryEntry `json:"history"`
	}
	if err := decodeEnvelope(responseBody, &response); err != nil {
		return nil, err
	}
	return response.History, nil
}
