// Package restapi implements the client half of the REST transport: a
// multipart/form-data client over the three /api/hide_message,
// /api/extract_message, /api/clear_message endpoints, for the CLI's
// --server rest and --server auto modes.
package restapi

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"
)

// Client drives a running REST server over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a Client against baseURL (e.g. "http://127.0.0.1:8080").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Ping checks that the server is reachable by hitting /api/health.
func (c *Client) Ping() error {
	resp, err := c.http.Get(c.baseURL + "/api/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("restapi: health check returned %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) post(path string, fields map[string]string, fileBytes []byte) (*http.Response, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("restapi: write field %s: %w", k, err)
		}
	}
	part, err := w.CreateFormFile("file", "input.wav")
	if err != nil {
		return nil, fmt.Errorf("restapi: create file part: %w", err)
	}
	if _, err := part.Write(fileBytes); err != nil {
		return nil, fmt.Errorf("restapi: write file part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("restapi: close multipart writer: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("restapi: build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func readBodyOrError(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("restapi: read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("restapi: server returned %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// Hide uploads data and returns the re-encoded stego WAV bytes.
func (c *Client) Hide(data []byte, message, password, format string, lsbDeep int) ([]byte, error) {
	resp, err := c.post("/api/hide_message", map[string]string{
		"message":  message,
		"password": password,
		"format":   format,
		"lsb_deep": strconv.Itoa(lsbDeep),
	}, data)
	if err != nil {
		return nil, err
	}
	return readBodyOrError(resp)
}

// Extract uploads data and returns the recovered message text.
func (c *Client) Extract(data []byte, password, format string, lsbDeep int) (string, error) {
	resp, err := c.post("/api/extract_message", map[string]string{
		"password": password,
		"format":   format,
		"lsb_deep": strconv.Itoa(lsbDeep),
	}, data)
	if err != nil {
		return "", err
	}
	body, err := readBodyOrError(resp)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Clear uploads data and returns the cleaned WAV bytes.
func (c *Client) Clear(data []byte, password, format string, lsbDeep int) ([]byte, error) {
	resp, err := c.post("/api/clear_message", map[string]string{
		"password": password,
		"format":   format,
		"lsb_deep": strconv.Itoa(lsbDeep),
	}, data)
	if err != nil {
		return nil, err
	}
	return readBodyOrError(resp)
}
