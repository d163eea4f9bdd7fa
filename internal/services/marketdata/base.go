package marketdata

import (
	"context"
	"fmt"
	"time"

	xhttp "Commander/pkg/http"
)

// HTTPProviderBase centralizes client construction and JSON GET handling
// for the upstream data providers.
type HTTPProviderBase struct {
	baseURL string
	apiKey  string
	client  *xhttp.Client
}

func NewHTTPProviderBase(baseURL, apiKey string, timeout time.Duration) *HTTPProviderBase {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPProviderBase{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// GetJSON fetches path under baseURL and decodes the JSON body into dest.
func (b *HTTPProviderBase) GetJSON(ctx context.Context, path string, query map[string][]string, dest interface{}) error {
	if b.client == nil || b.baseURL == "" {
		return fmt.Errorf("provider http client not initialized")
	}
	headers := map[string]string{"Accept": "application/json"}
	if b.apiKey != "" {
		headers["X-Api-Key"] = b.apiKey
	}
	err := b.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         b.baseURL + path,
		Headers:     headers,
		QueryParams: query,
	}, dest)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	return nil
}

// GetJSONWithRetry retries transient failures with linear backoff.
func (b *HTTPProviderBase) GetJSONWithRetry(ctx context.Context, path string, query map[string][]string, dest interface{}, attempts int) error {
	if attempts <= 1 {
		return b.GetJSON(ctx, path, query, dest)
	}
	var err error
	for i := 1; i <= attempts; i++ {
		err = b.GetJSON(ctx, path, query, dest)
		if err == nil {
			return nil
		}
		select {
		case <-time.After(time.Duration(i) * 50 * time.Millisecond):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
