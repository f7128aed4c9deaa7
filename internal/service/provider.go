package service

import (
	"context"

	"github.com/dalfonso89/auth-currency-gateway/internal/models"
)

// PasswordAuthenticator mints a session from an email/password pair
type PasswordAuthenticator interface {
	SignInWithPassword(ctx context.Context, email, password string) (models.SignInResult, error)
}

// UserCreator creates accounts at the identity provider
type UserCreator interface {
	CreateUser(ctx context.Context, user models.NewUser) (models.UserRecord, error)
}

// TokenVerifier checks a bearer ID token and returns the identity it carries
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (models.AuthenticatedUser, error)
}

// ExchangeRateProvider defines the calls made to the exchange-rate API
type ExchangeRateProvider interface {
	GetName() string
	GetCurrencies(ctx context.Context) ([]models.CurrencyEntry, error)
	GetLatest(ctx context.Context, amount float64, from, to string) (models.LatestRates, error)
}
