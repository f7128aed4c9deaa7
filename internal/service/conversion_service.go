package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/dalfonso89/auth-currency-gateway/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	errMissingConversionInput = errors.New("valor, de and para are required")
	errConversionUnavailable  = errors.New("invalid currency or conversion not available")
)

// ConversionInput is a validated conversion request
type ConversionInput struct {
	Amount float64
	From   string
	To     string
}

// ParseConversionInput validates the raw query values. Currency codes are
// trimmed and upper-cased; the amount must be a finite number.
func ParseConversionInput(rawAmount, rawFrom, rawTo string) (ConversionInput, error) {
	from := strings.ToUpper(strings.TrimSpace(rawFrom))
	to := strings.ToUpper(strings.TrimSpace(rawTo))

	amount, err := strconv.ParseFloat(strings.TrimSpace(rawAmount), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || from == "" || to == "" {
		return ConversionInput{}, &ServiceError{
			Type:    ErrorTypeValidation,
			Message: errMissingConversionInput.Error(),
			Cause:   err,
		}
	}

	return ConversionInput{Amount: amount, From: from, To: to}, nil
}

// ConversionService turns a provider quote into a ConversionResult
type ConversionService struct {
	provider ExchangeRateProvider
	logger   *logrus.Logger
}

// NewConversionService creates a new conversion service
func NewConversionService(provider ExchangeRateProvider, logger *logrus.Logger) *ConversionService {
	return &ConversionService{
		provider: provider,
		logger:   logger,
	}
}

// Convert asks the provider for the converted amount and derives the unit rate
func (conversionService *ConversionService) Convert(ctx context.Context, input ConversionInput) (models.ConversionResult, error) {
	latest, err := conversionService.provider.GetLatest(ctx, input.Amount, input.From, input.To)
	if err != nil {
		return models.ConversionResult{}, err
	}

	convertedValue, ok := latest.Rates[input.To].(float64)
	if !ok {
		conversionService.logger.WithFields(logrus.Fields{
			"from": input.From,
			"to":   input.To,
		}).Warn("Conversion not available in provider response")
		return models.ConversionResult{}, &ServiceError{
			Type:    ErrorTypeInvalidCurrency,
			Message: errConversionUnavailable.Error(),
		}
	}

	return models.ConversionResult{
		De:              input.From,
		Para:            input.To,
		Taxa:            UnitRate(input.Amount, convertedValue),
		ValorConvertido: convertedValue,
		Date:            latest.Date,
	}, nil
}

// UnitRate returns converted/amount, or nil when amount is zero or the
// quotient does not fit in a float64
func UnitRate(amount, converted float64) *float64 {
	if amount == 0 {
		return nil
	}
	rate, _ := decimal.NewFromFloat(converted).Div(decimal.NewFromFloat(amount)).Float64()
	if math.IsInf(rate, 0) || math.IsNaN(rate) {
		return nil
	}
	return &rate
}
