package shipper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/emberwatch/emberwatch/pkg/types"
)

// httpSender posts readings to the server's /status endpoint.
type httpSender struct {
	url    string
	client *http.Client
}

func newHTTPSender(serverURL string) *httpSender {
	return &httpSender{
		url:    strings.TrimRight(serverURL, "/") + "/status",
		client: &http.Client{},
	}
}

func (h *httpSender) Send(ctx context.Context, r types.Reading) error {
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal reading: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("post reading: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, string(detail))
	}
	return fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(detail))
}

func (h *httpSender) Close() {
	h.client.CloseIdleConnections()
}
