package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dalfonso89/auth-currency-gateway/internal/config"
	"github.com/dalfonso89/auth-currency-gateway/internal/models"

	"github.com/sirupsen/logrus"
)

// FirebaseSignInClient calls the Identity Toolkit REST "sign in with password" endpoint
type FirebaseSignInClient struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	logger     *logrus.Logger
	httpClient *http.Client
}

// NewFirebaseSignInClient creates a new sign-in client
func NewFirebaseSignInClient(configuration *config.Config, logger *logrus.Logger) *FirebaseSignInClient {
	return &FirebaseSignInClient{
		baseURL:    configuration.Firebase.SignInBaseURL,
		apiKey:     configuration.Firebase.APIKey,
		timeout:    configuration.UpstreamTimeout,
		logger:     logger,
		httpClient: newHTTPClient(),
	}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

// SignInWithPassword exchanges credentials for ID and refresh tokens
func (client *FirebaseSignInClient) SignInWithPassword(ctx context.Context, email, password string) (models.SignInResult, error) {
	payload, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return models.SignInResult{}, fmt.Errorf("failed to encode sign-in request: %w", err)
	}

	request, err := http.NewRequest(http.MethodPost, client.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return models.SignInResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	callContext, cancel := withUpstreamTimeout(ctx, client.timeout)
	defer cancel()

	response, err := doUpstream(callContext, client.httpClient, request)
	if err != nil {
		return models.SignInResult{}, classifyTransportError("identity provider unreachable", err)
	}

	if !response.ok() {
		client.logger.WithFields(logrus.Fields{
			"status": response.StatusCode,
		}).Debug("Identity provider rejected sign-in")
		return models.SignInResult{}, &ServiceError{
			Type:    ErrorTypeUpstreamRejected,
			Message: fmt.Sprintf("identity provider returned status %d", response.StatusCode),
			Details: response.payload(),
		}
	}

	var result models.SignInResult
	if err := json.Unmarshal(response.Body, &result); err != nil {
		return models.SignInResult{}, &ServiceError{
			Type:    ErrorTypeUpstreamUnavailable,
			Message: "invalid sign-in response",
			Cause:   err,
		}
	}

	return result, nil
}

func (client *FirebaseSignInClient) endpoint() string {
	return fmt.Sprintf("%s/accounts:signInWithPassword?key=%s", client.baseURL, url.QueryEscape(client.apiKey))
}
