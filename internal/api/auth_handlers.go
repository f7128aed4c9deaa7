package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dalfonso89/auth-currency-gateway/internal/models"
	"github.com/dalfonso89/auth-currency-gateway/internal/service"
)

const (
	msgCredentialsRequired = "email and password required"
	msgCreatedNotSignedIn  = "created but failed to sign in"
	msgInvalidCredentials  = "invalid credentials"
	msgIdentityTimeout     = "identity provider timed out"
	msgSignupFailed        = "signup failed"
	msgLoginFailed         = "login failed"
)

// Signup creates the account, then signs in with the same credentials to mint a session
func (handlers *Handlers) Signup(context *gin.Context) {
	var request models.SignupRequest
	if err := context.ShouldBindJSON(&request); err != nil {
		handlers.writeErrorResponse(context, http.StatusBadRequest, msgCredentialsRequired, nil)
		return
	}

	requestContext := context.Request.Context()

	userRecord, createError := handlers.userCreator.CreateUser(requestContext, models.NewUser{
		Email:       request.Email,
		Password:    request.Password,
		DisplayName: request.DisplayName,
	})
	if createError != nil {
		switch service.TypeOf(createError) {
		case service.ErrorTypeUpstreamTimeout:
			handlers.logServiceError(context, "signup.create", http.StatusGatewayTimeout, createError)
			handlers.writeErrorResponse(context, http.StatusGatewayTimeout, msgIdentityTimeout, nil)
		case service.ErrorTypeUpstreamRejected:
			handlers.logServiceError(context, "signup.create", http.StatusBadRequest, createError)
			handlers.writeErrorResponse(context, http.StatusBadRequest, serviceMessage(createError, msgSignupFailed), nil)
		default:
			handlers.logServiceError(context, "signup.create", http.StatusBadRequest, createError)
			handlers.writeErrorResponse(context, http.StatusBadRequest, createError.Error(), nil)
		}
		return
	}

	tokens, signInError := handlers.authenticator.SignInWithPassword(requestContext, request.Email, request.Password)
	if signInError != nil {
		partialError := &service.ServiceError{
			Type:    service.ErrorTypePartialSuccess,
			Message: msgCreatedNotSignedIn,
			Details: signInDetails(signInError),
			Cause:   signInError,
		}
		handlers.logServiceError(context, "signup.signin", http.StatusInternalServerError, partialError)
		handlers.writeErrorResponse(context, http.StatusInternalServerError, partialError.Message, partialError.Details)
		return
	}

	email := userRecord.Email
	if email == "" {
		email = request.Email
	}
	var displayName *string
	if userRecord.DisplayName != "" {
		displayName = &userRecord.DisplayName
	}

	context.JSON(http.StatusOK, models.SignupResponse{
		UID:          userRecord.UID,
		Email:        email,
		DisplayName:  displayName,
		IDToken:      tokens.IDToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// Login signs in directly against the identity provider
func (handlers *Handlers) Login(context *gin.Context) {
	var request models.LoginRequest
	if err := context.ShouldBindJSON(&request); err != nil {
		handlers.writeErrorResponse(context, http.StatusBadRequest, msgCredentialsRequired, nil)
		return
	}

	tokens, signInError := handlers.authenticator.SignInWithPassword(context.Request.Context(), request.Email, request.Password)
	if signInError != nil {
		switch service.TypeOf(signInError) {
		case service.ErrorTypeUpstreamRejected:
			handlers.logServiceError(context, "login", http.StatusUnauthorized, signInError)
			handlers.writeErrorResponse(context, http.StatusUnauthorized, msgInvalidCredentials, service.DetailsOf(signInError))
		case service.ErrorTypeUpstreamTimeout:
			handlers.logServiceError(context, "login", http.StatusGatewayTimeout, signInError)
			handlers.writeErrorResponse(context, http.StatusGatewayTimeout, msgIdentityTimeout, nil)
		default:
			handlers.logServiceError(context, "login", http.StatusInternalServerError, signInError)
			handlers.writeErrorResponse(context, http.StatusInternalServerError, msgLoginFailed, nil)
		}
		return
	}

	context.JSON(http.StatusOK, tokens)
}

// serviceMessage is the message carried by a ServiceError, or fallback
func serviceMessage(err error, fallback string) string {
	var serviceError *service.ServiceError
	if errors.As(err, &serviceError) && serviceError.Message != "" {
		return serviceError.Message
	}
	return fallback
}

// signInDetails prefers the provider payload and falls back to the error text
func signInDetails(err error) interface{} {
	if details := service.DetailsOf(err); details != nil {
		return details
	}
	return err.Error()
}
