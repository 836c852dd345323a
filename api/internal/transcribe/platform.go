package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// PlatformClient fetches pre-computed transcripts for video-platform URLs
// from the dedicated transcript service, skipping the local download +
// whisper pipeline entirely.
type PlatformClient struct {
	Endpoint string
	httpc    *http.Client
}

func NewPlatformClient(endpoint string) *PlatformClient {
	return &PlatformClient{
		Endpoint: endpoint,
		httpc:    &http.Client{Timeout: 60 * time.Second},
	}
}

// WithHTTPClient overrides the internal HTTP client (tests).
func (c *PlatformClient) WithHTTPClient(hc *http.Client) *PlatformClient {
	c.httpc = hc
	return c
}

func (c *PlatformClient) Fetch(ctx context.Context, videoURL string) (string, error) {
	body, err := json.Marshal(map[string]string{"url": videoURL})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("transcript service: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcript service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("transcript service: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out struct {
		Transcript string `json:"transcript"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("transcript service: decode: %w", err)
	}
	if strings.TrimSpace(out.Transcript) == "" {
		return "", fmt.Errorf("transcript service: no transcript returned")
	}
	return out.Transcript, nil
}
