// internal/adapters/out/http/client.go
package httpout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"stockroom/internal/domain/remote"
)

// APIClient talks to the stockroom backend. It implements the outbound
// ports (activeorder.Gateway, submission.Submitter, preferences.Store) as
// pure transport: credential acquisition and status reporting stay in the
// usecase layer.
type APIClient struct {
	baseURL  string
	client   *http.Client
	validate *validator.Validate
	log      *slog.Logger
}

// baseURL example:
// - deployed: https://stockroom-api.internal.example.com
// - local: http://localhost:8000
func NewAPIClient(baseURL string, log *slog.Logger) *APIClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if log == nil {
		log = slog.Default()
	}
	return &APIClient{
		baseURL:  baseURL,
		client:   &http.Client{Timeout: 30 * time.Second},
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

// do issues one authorized JSON exchange. body may be nil; out may be nil
// when the caller only cares about a 2xx.
func (c *APIClient) do(ctx context.Context, method, path, bearer string, body, out any) error {
	if c == nil || c.baseURL == "" {
		return fmt.Errorf("httpout: api client is not configured")
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("httpout: marshal request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("httpout: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("httpout: %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return decodeError(res)
	}

	if out == nil {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 1<<20))
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("httpout: decode response: %w", err)
	}
	return nil
}

// decodeError maps a non-2xx response onto *remote.Error, pulling the
// structured {"detail": ...} body when one is present.
func decodeError(res *http.Response) error {
	rerr := &remote.Error{
		Status:     res.StatusCode,
		StatusText: http.StatusText(res.StatusCode),
	}

	b, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil || len(b) == 0 {
		return rerr
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(b, &payload) == nil {
		rerr.Detail = strings.TrimSpace(payload.Detail)
	}
	return rerr
}
