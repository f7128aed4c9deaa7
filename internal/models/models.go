package models

// SignupRequest is the body accepted by POST /signup
type SignupRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"displayName"`
}

// LoginRequest is the body accepted by POST /login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignInResult holds the opaque session credentials minted by the identity provider
type SignInResult struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

// NewUser describes an account to create at the identity provider
type NewUser struct {
	Email       string
	Password    string
	DisplayName string
}

// UserRecord is the account returned by the identity provider after creation
type UserRecord struct {
	UID         string
	Email       string
	DisplayName string
}

// SignupResponse is returned by POST /signup
type SignupResponse struct {
	UID          string  `json:"uid"`
	Email        string  `json:"email"`
	DisplayName  *string `json:"displayName"`
	IDToken      string  `json:"idToken"`
	RefreshToken string  `json:"refreshToken"`
}

// AuthenticatedUser is the decoded identity attached to a request by the auth middleware
type AuthenticatedUser struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
}

// CurrencyEntry is one currency known to the rate provider
type CurrencyEntry struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// LatestRates is the subset of the provider's latest-rate payload the gateway reads.
// Rates values are left undecoded so non-numeric entries can be detected.
type LatestRates struct {
	Amount float64                `json:"amount"`
	Base   string                 `json:"base"`
	Date   string                 `json:"date"`
	Rates  map[string]interface{} `json:"rates"`
}

// ConversionResult is returned by GET /converterMoeda.
// Taxa is nil when the source amount is zero.
type ConversionResult struct {
	De              string   `json:"de"`
	Para            string   `json:"para"`
	Taxa            *float64 `json:"taxa"`
	ValorConvertido float64  `json:"valorConvertido"`
	Date            string   `json:"date"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	OK bool `json:"ok"`
}

// ErrorResponse is the single error body shape of the gateway
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}
