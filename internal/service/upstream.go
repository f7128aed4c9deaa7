package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// newHTTPClient builds the pooled client shared by the upstream callers.
// Deadlines come from the request context, not from the client.
func newHTTPClient() *http.Client {
	httpTransport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  false,
	}
	return &http.Client{Transport: httpTransport}
}

// upstreamResponse is a fully read upstream reply
type upstreamResponse struct {
	StatusCode int
	Body       []byte
}

func (response upstreamResponse) ok() bool {
	return response.StatusCode >= 200 && response.StatusCode < 300
}

// payload decodes the body for use as error details, falling back to the raw text
func (response upstreamResponse) payload() interface{} {
	var decoded interface{}
	if err := json.Unmarshal(response.Body, &decoded); err != nil {
		return string(response.Body)
	}
	return decoded
}

// doUpstream sends request and reads the whole body. Only transport failures are errors;
// non-2xx statuses are returned to the caller to interpret.
func doUpstream(ctx context.Context, httpClient *http.Client, request *http.Request) (upstreamResponse, error) {
	response, err := httpClient.Do(request.WithContext(ctx))
	if err != nil {
		return upstreamResponse{}, fmt.Errorf("failed to make request: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return upstreamResponse{}, fmt.Errorf("failed to read response body: %w", err)
	}

	return upstreamResponse{StatusCode: response.StatusCode, Body: body}, nil
}

// withUpstreamTimeout bounds a single outbound call
func withUpstreamTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
