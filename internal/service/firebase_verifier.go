package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalfonso89/auth-currency-gateway/internal/config"
	"github.com/dalfonso89/auth-currency-gateway/internal/models"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const firebaseIssuerPrefix = "https://securetoken.google.com/"

// ErrInvalidToken is returned for any token that fails verification
var ErrInvalidToken = errors.New("invalid token")

// FirebaseClaims are the ID token claims the gateway reads
type FirebaseClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// FirebaseTokenVerifier validates Firebase ID tokens (RS256 JWTs signed by securetoken)
type FirebaseTokenVerifier struct {
	projectID string
	keyFunc   jwt.Keyfunc
	jwks      *keyfunc.JWKS
	logger    *logrus.Logger
}

// NewFirebaseTokenVerifier fetches the signing keys and keeps them refreshed in the background
func NewFirebaseTokenVerifier(configuration *config.Config, logger *logrus.Logger) (*FirebaseTokenVerifier, error) {
	jwks, err := keyfunc.Get(configuration.Firebase.JWKSURL, keyfunc.Options{
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  time.Minute,
		RefreshTimeout:    configuration.UpstreamTimeout,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			logger.Errorf("JWKS refresh error: %v", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS: %w", err)
	}

	verifier := NewFirebaseTokenVerifierWithKeyfunc(configuration.Firebase.ProjectID, jwks.Keyfunc, logger)
	verifier.jwks = jwks
	return verifier, nil
}

// NewFirebaseTokenVerifierWithKeyfunc builds a verifier around a caller supplied key source
func NewFirebaseTokenVerifierWithKeyfunc(projectID string, keyFunc jwt.Keyfunc, logger *logrus.Logger) *FirebaseTokenVerifier {
	return &FirebaseTokenVerifier{
		projectID: projectID,
		keyFunc:   keyFunc,
		logger:    logger,
	}
}

// VerifyIDToken checks signature, issuer, audience, expiry and subject
func (verifier *FirebaseTokenVerifier) VerifyIDToken(ctx context.Context, idToken string) (models.AuthenticatedUser, error) {
	claims := &FirebaseClaims{}
	token, err := jwt.ParseWithClaims(idToken, claims, verifier.keyFunc,
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(firebaseIssuerPrefix+verifier.projectID),
		jwt.WithAudience(verifier.projectID),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return models.AuthenticatedUser{}, &ServiceError{Type: ErrorTypeAuth, Message: ErrInvalidToken.Error(), Cause: err}
	}
	if !token.Valid || claims.Subject == "" {
		return models.AuthenticatedUser{}, &ServiceError{Type: ErrorTypeAuth, Message: ErrInvalidToken.Error(), Cause: ErrInvalidToken}
	}

	return models.AuthenticatedUser{UID: claims.Subject, Email: claims.Email}, nil
}

// Stop ends the background key refresh
func (verifier *FirebaseTokenVerifier) Stop() {
	if verifier.jwks != nil {
		verifier.jwks.EndBackground()
	}
}
