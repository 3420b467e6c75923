package match

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"candidate-backend/internal/llm"
	"candidate-backend/internal/shared/telemetry"
)

const retryBaseDelay = 300 * time.Millisecond

// retryingClient retries a single transient transport failure before giving
// up. Anything still failing after the retry degrades to the per-vacancy
// fallback evaluation upstream; it never aborts the batch.
type retryingClient struct {
	base llm.Client
}

func withRetry(base llm.Client) llm.Client {
	if base == nil {
		return nil
	}
	return retryingClient{base: base}
}

func (r retryingClient) Generate(ctx context.Context, input llm.GenerateInput) (string, error) {
	resp, err := r.base.Generate(ctx, input)
	if err == nil || !shouldRetry(err) {
		return resp, err
	}

	telemetry.Info("llm.retry", map[string]any{
		"attempt": 1,
		"error":   err.Error(),
	})
	select {
	case <-time.After(retryBaseDelay):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	return r.base.Generate(ctx, input)
}

func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") {
		return true
	}
	if strings.Contains(msg, "timeout") {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}
