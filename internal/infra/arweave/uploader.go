// internal/infra/arweave/uploader.go
package arweave

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"tokencreator/internal/domain/token"
)

var ErrUploaderNotConfigured = errors.New("arweave: base url not configured")

// HTTPUploader posts metadata JSON to an Irys-style upload service that
// answers {"uri": "..."}.
type HTTPUploader struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

var _ token.MetadataUploader = (*HTTPUploader)(nil)

func NewHTTPUploader(baseURL, apiKey string) *HTTPUploader {
	return &HTTPUploader{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
	}
}

func (u *HTTPUploader) Upload(ctx context.Context, doc token.MetadataDocument) (string, error) {
	if u == nil || u.baseURL == "" {
		return "", ErrUploaderNotConfigured
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("arweave: encode metadata: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+"/upload/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("arweave: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if u.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+u.apiKey)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		log.Printf("[arweave] upload FAILED symbol=%s err=%v", doc.Symbol, err)
		return "", fmt.Errorf("arweave: upload metadata: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[arweave] upload FAILED status=%d body=%s", resp.StatusCode, string(respBody))
		return "", fmt.Errorf("arweave: upload metadata: status=%d", resp.StatusCode)
	}

	var res struct {
		URI string `json:"uri"`
	}
	if err := json.Unmarshal(respBody, &res); err != nil {
		return "", fmt.Errorf("arweave: decode upload response: %w", err)
	}
	if res.URI == "" {
		return "", errors.New("arweave: upload response has empty uri")
	}

	log.Printf("[arweave] uploaded symbol=%s uri=%s", doc.Symbol, res.URI)
	return res.URI, nil
}
