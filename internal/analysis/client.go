package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTimeout   = 35 * time.Second
	maxErrorBodySize = 64 << 10
)

// ServiceError is a structured failure reported by the analysis service.
// InstallationGuide is only ever populated by the image endpoint, for
// server-side OCR setup problems.
type ServiceError struct {
	StatusCode        int
	Message           string
	InstallationGuide string
}

func (e *ServiceError) Error() string {
	if e.InstallationGuide != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.InstallationGuide)
	}
	return e.Message
}

// Client talks to a PRISM analysis server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the given base URL. A zero timeout falls
// back to the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SubmitText sends a raw message to the text-analysis endpoint and returns
// the normalized result.
func (c *Client) SubmitText(ctx context.Context, message string) (*Result, error) {
	payload, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doAnalysis(req)
}

// SubmitImage uploads image bytes as a multipart form and returns the
// normalized result of analyzing the OCR-extracted text.
func (c *Client) SubmitImage(ctx context.Context, filename string, data []byte) (*Result, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze-image", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.doAnalysis(req)
}

// RecentReports fetches up to limit recent scan summaries, newest first.
func (c *Client) RecentReports(ctx context.Context, limit int) ([]HistoryEntry, error) {
	endpoint := c.baseURL + "/api/recent-reports?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("contact analysis service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return nil, fmt.Errorf("read recent reports: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, serviceError(resp.StatusCode, body)
	}
	var entries []HistoryEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("decode recent reports: %w", err)
	}
	return entries, nil
}

func (c *Client) doAnalysis(req *http.Request) (*Result, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("contact analysis service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read analysis response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, serviceError(resp.StatusCode, body)
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode analysis response: %w", err)
	}
	result.normalize()
	return &result, nil
}

func serviceError(status int, body []byte) error {
	var parsed struct {
		Error             string `json:"error"`
		InstallationGuide string `json:"installation_guide"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Error == "" {
		return fmt.Errorf("analysis failed: service returned status %d", status)
	}
	return &ServiceError{
		StatusCode:        status,
		Message:           parsed.Error,
		InstallationGuide: parsed.InstallationGuide,
	}
}
