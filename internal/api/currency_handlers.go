package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dalfonso89/auth-currency-gateway/internal/middleware"
	"github.com/dalfonso89/auth-currency-gateway/internal/service"
)

const (
	msgProviderRejected = "exchange rate provider error"
	msgProviderTimeout  = "exchange rate provider timed out"
	msgCurrenciesFailed = "failed to fetch currencies"
	msgConversionFailed = "conversion failed"
)

// GetCurrencyInfo lists the provider's currencies in the order the provider sent them
func (handlers *Handlers) GetCurrencyInfo(context *gin.Context) {
	currencies, err := handlers.ratesProvider.GetCurrencies(context.Request.Context())
	if err != nil {
		handlers.handleServiceError(context, "currencies", msgCurrenciesFailed, err)
		return
	}

	context.JSON(http.StatusOK, currencies)
}

// ConvertCurrency converts valor from de to para
func (handlers *Handlers) ConvertCurrency(context *gin.Context) {
	input, err := service.ParseConversionInput(
		context.Query("valor"),
		context.Query("de"),
		context.Query("para"),
	)
	if err != nil {
		handlers.handleServiceError(context, "convert", msgConversionFailed, err)
		return
	}

	result, err := handlers.conversionService.Convert(context.Request.Context(), input)
	if err != nil {
		handlers.handleServiceError(context, "convert", msgConversionFailed, err)
		return
	}

	handlers.logger.WithFields(logrus.Fields{
		"from":       result.De,
		"to":         result.Para,
		"provider":   handlers.ratesProvider.GetName(),
		"request_id": middleware.GetRequestID(context),
	}).Debug("Conversion served")

	context.JSON(http.StatusOK, result)
}

// handleServiceError maps rate-provider failures to HTTP responses
func (handlers *Handlers) handleServiceError(context *gin.Context, operation, fallbackMessage string, err error) {
	var statusCode int
	var message string

	switch service.TypeOf(err) {
	case service.ErrorTypeValidation, service.ErrorTypeInvalidCurrency:
		statusCode = http.StatusBadRequest
		message = serviceMessage(err, fallbackMessage)
	case service.ErrorTypeUpstreamRejected:
		statusCode = http.StatusBadGateway
		message = msgProviderRejected
	case service.ErrorTypeUpstreamTimeout:
		statusCode = http.StatusGatewayTimeout
		message = msgProviderTimeout
	default:
		statusCode = http.StatusInternalServerError
		message = fallbackMessage
	}

	handlers.logServiceError(context, operation, statusCode, err)

	var details interface{}
	if statusCode == http.StatusBadGateway {
		details = service.DetailsOf(err)
	}
	handlers.writeErrorResponse(context, statusCode, message, details)
}
