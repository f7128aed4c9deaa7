package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dalfonso89/auth-currency-gateway/internal/config"
	"github.com/dalfonso89/auth-currency-gateway/internal/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

var adminScopes = []string{
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/firebase",
}

// FirebaseUserAdmin creates accounts through the Identity Toolkit admin API
// using service account credentials.
type FirebaseUserAdmin struct {
	service *identitytoolkit.Service
	timeout time.Duration
	logger  *logrus.Logger
}

// NewFirebaseUserAdmin creates a user admin client. Credentials come from
// FIREBASE_CREDENTIALS_FILE, then application default credentials. A custom
// admin endpoint without a credentials file is treated as an emulator and
// called unauthenticated.
func NewFirebaseUserAdmin(ctx context.Context, configuration *config.Config, logger *logrus.Logger) (*FirebaseUserAdmin, error) {
	options, err := adminClientOptions(ctx, configuration.Firebase)
	if err != nil {
		return nil, err
	}

	service, err := identitytoolkit.NewService(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity toolkit service: %w", err)
	}

	return &FirebaseUserAdmin{
		service: service,
		timeout: configuration.UpstreamTimeout,
		logger:  logger,
	}, nil
}

func adminClientOptions(ctx context.Context, firebase config.FirebaseConfig) ([]option.ClientOption, error) {
	options := []option.ClientOption{}
	if firebase.AdminEndpoint != "" {
		options = append(options, option.WithEndpoint(firebase.AdminEndpoint))
	}

	switch {
	case firebase.CredentialsFile != "":
		credentialsJSON, err := os.ReadFile(firebase.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read firebase credentials: %w", err)
		}
		credentials, err := google.CredentialsFromJSON(ctx, credentialsJSON, adminScopes...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse firebase credentials: %w", err)
		}
		options = append(options, option.WithCredentials(credentials))
	case firebase.AdminEndpoint != "":
		options = append(options, option.WithoutAuthentication())
	default:
		credentials, err := google.FindDefaultCredentials(ctx, adminScopes...)
		if err != nil {
			return nil, fmt.Errorf("failed to find default credentials: %w", err)
		}
		options = append(options, option.WithCredentials(credentials))
	}

	return options, nil
}

// CreateUser registers a new email/password account
func (admin *FirebaseUserAdmin) CreateUser(ctx context.Context, user models.NewUser) (models.UserRecord, error) {
	callContext, cancel := withUpstreamTimeout(ctx, admin.timeout)
	defer cancel()

	response, err := admin.service.Relyingparty.SignupNewUser(&identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		Email:       user.Email,
		Password:    user.Password,
		DisplayName: user.DisplayName,
	}).Context(callContext).Do()
	if err != nil {
		var apiError *googleapi.Error
		if errors.As(err, &apiError) {
			admin.logger.WithFields(logrus.Fields{
				"status": apiError.Code,
				"reason": apiError.Message,
			}).Debug("Identity provider rejected user creation")
			return models.UserRecord{}, &ServiceError{
				Type:    ErrorTypeUpstreamRejected,
				Message: apiError.Message,
				Cause:   err,
			}
		}
		return models.UserRecord{}, classifyTransportError("identity provider unreachable", err)
	}

	return models.UserRecord{
		UID:         response.LocalId,
		Email:       response.Email,
		DisplayName: response.DisplayName,
	}, nil
}
