package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Get performs a single GET against url. When bearer is non-empty it is
// forwarded verbatim as an Authorization header. One attempt only; callers
// own status-code handling and must close the body on success.
func Get(ctx context.Context, client *http.Client, url, bearer string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	return client.Do(req)
}

// ErrorBody drains up to 512 bytes of a failed response body for log
// context and closes it.
func ErrorBody(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	resp.Body.Close()
	return string(body)
}
