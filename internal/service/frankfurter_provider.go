package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dalfonso89/auth-currency-gateway/internal/config"
	"github.com/dalfonso89/auth-currency-gateway/internal/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

// FrankfurterProvider implements ExchangeRateProvider against the Frankfurter API
type FrankfurterProvider struct {
	baseURL    string
	timeout    time.Duration
	logger     *logrus.Logger
	httpClient *http.Client

	// caps concurrent outbound calls across all requests
	inFlight *semaphore.Weighted
}

// NewFrankfurterProvider creates a new Frankfurter provider
func NewFrankfurterProvider(configuration *config.Config, logger *logrus.Logger) *FrankfurterProvider {
	maxConcurrent := int64(configuration.MaxConcurrentRequests)
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	return &FrankfurterProvider{
		baseURL:    configuration.FrankfurterBaseURL,
		timeout:    configuration.UpstreamTimeout,
		logger:     logger,
		httpClient: newHTTPClient(),
		inFlight:   semaphore.NewWeighted(maxConcurrent),
	}
}

// GetName returns the provider name
func (provider *FrankfurterProvider) GetName() string {
	return "frankfurter"
}

// GetCurrencies returns the provider's currency list in the provider's own order
func (provider *FrankfurterProvider) GetCurrencies(ctx context.Context) ([]models.CurrencyEntry, error) {
	response, err := provider.get(ctx, provider.baseURL+"/currencies")
	if err != nil {
		return nil, err
	}

	currencies, err := decodeOrderedCurrencies(response.Body)
	if err != nil {
		return nil, &ServiceError{
			Type:    ErrorTypeUpstreamUnavailable,
			Message: "invalid currencies response",
			Cause:   err,
		}
	}
	return currencies, nil
}

// GetLatest converts amount from one currency to another at the latest rate
func (provider *FrankfurterProvider) GetLatest(ctx context.Context, amount float64, from, to string) (models.LatestRates, error) {
	query := url.Values{}
	query.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))
	query.Set("from", from)
	query.Set("to", to)

	response, err := provider.get(ctx, provider.baseURL+"/latest?"+query.Encode())
	if err != nil {
		return models.LatestRates{}, err
	}

	var latest models.LatestRates
	if err := json.Unmarshal(response.Body, &latest); err != nil {
		return models.LatestRates{}, &ServiceError{
			Type:    ErrorTypeUpstreamUnavailable,
			Message: "invalid latest rates response",
			Cause:   fmt.Errorf("failed to parse Frankfurter response: %w", err),
		}
	}
	return latest, nil
}

// get performs a bounded GET and converts non-2xx replies into rejections
func (provider *FrankfurterProvider) get(ctx context.Context, endpoint string) (upstreamResponse, error) {
	callContext, cancel := withUpstreamTimeout(ctx, provider.timeout)
	defer cancel()

	if err := provider.inFlight.Acquire(callContext, 1); err != nil {
		return upstreamResponse{}, classifyTransportError("rate provider busy", err)
	}
	defer provider.inFlight.Release(1)

	request, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return upstreamResponse{}, fmt.Errorf("failed to create request: %w", err)
	}

	provider.logger.Debugf("Fetching %s from provider: %s", request.URL.Path, provider.GetName())
	response, err := doUpstream(callContext, provider.httpClient, request)
	if err != nil {
		return upstreamResponse{}, classifyTransportError("rate provider unreachable", err)
	}

	if !response.ok() {
		return upstreamResponse{}, &ServiceError{
			Type:    ErrorTypeUpstreamRejected,
			Message: fmt.Sprintf("provider returned status %d", response.StatusCode),
			Details: response.payload(),
		}
	}
	return response, nil
}

// decodeOrderedCurrencies reads a JSON object of code -> name keeping key order,
// which a Go map would lose.
func decodeOrderedCurrencies(body []byte) ([]models.CurrencyEntry, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))

	openToken, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	if delimiter, ok := openToken.(json.Delim); !ok || delimiter != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", openToken)
	}

	currencies := []models.CurrencyEntry{}
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		code, ok := keyToken.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key %v", keyToken)
		}

		var name string
		if err := decoder.Decode(&name); err != nil {
			return nil, fmt.Errorf("currency %s: %w", code, err)
		}
		currencies = append(currencies, models.CurrencyEntry{Code: code, Name: name})
	}

	if _, err := decoder.Token(); err != nil {
		return nil, err
	}
	return currencies, nil
}
