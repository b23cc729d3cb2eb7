package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ksriramreddy/procurement-ai/config"
)

// ErrGateway reports a transport-level failure reaching the agent service.
var ErrGateway = errors.New("lyzr agent unreachable")

// UpstreamStatusError carries a non-success upstream status so the handler
// can forward it verbatim.
type UpstreamStatusError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("lyzr agent returned status %d: %s", e.StatusCode, e.Body)
}

// LyzrService proxies session-history reads to the LYZR agent API.
type LyzrService struct {
	sessionURL string
	apiKey     string
	httpClient *http.Client
}

func NewLyzrService(cfg *config.LyzrConfig) *LyzrService {
	return &LyzrService{
		sessionURL: cfg.SessionURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SessionHistory fetches the message history of an agent session. The
// upstream signals an empty session with a 500, which is returned as an
// empty list; any other non-success status is surfaced as an
// UpstreamStatusError. Non-list bodies are coerced to an empty list.
func (s *LyzrService) SessionHistory(ctx context.Context, sessionID string) ([]any, error) {
	url := fmt.Sprintf("%s/%s/history", s.sessionURL, sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("x-api-key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	// 500 with "No messages found" means an empty session
	if resp.StatusCode == http.StatusInternalServerError {
		return []any{}, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamStatusError{resp.StatusCode, string(body)}
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse agent response: %w", err)
	}

	list, ok := data.([]any)
	if !ok {
		return []any{}, nil
	}
	return list, nil
}
