package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversionResult_JSON(t *testing.T) {
	rate := 5.33
	tests := []struct {
		name     string
		result   ConversionResult
		expected string
	}{
		{
			name:     "with rate",
			result:   ConversionResult{De: "USD", Para: "BRL", Taxa: &rate, ValorConvertido: 5.33, Date: "2025-09-19"},
			expected: `{"de":"USD","para":"BRL","taxa":5.33,"valorConvertido":5.33,"date":"2025-09-19"}`,
		},
		{
			name:     "zero amount keeps taxa as null",
			result:   ConversionResult{De: "USD", Para: "BRL", ValorConvertido: 0, Date: "2025-09-19"},
			expected: `{"de":"USD","para":"BRL","taxa":null,"valorConvertido":0,"date":"2025-09-19"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := json.Marshal(tt.result)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(encoded))
		})
	}
}

func TestSignupResponse_DisplayNameNull(t *testing.T) {
	encoded, err := json.Marshal(SignupResponse{UID: "U", Email: "a@b.com", IDToken: "T1", RefreshToken: "T2"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"uid":"U","email":"a@b.com","displayName":null,"idToken":"T1","refreshToken":"T2"}`, string(encoded))
}

func TestErrorResponse_OmitsEmptyDetails(t *testing.T) {
	encoded, err := json.Marshal(ErrorResponse{Error: "missing bearer token"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"missing bearer token"}`, string(encoded))

	encoded, err = json.Marshal(ErrorResponse{Error: "invalid credentials", Details: map[string]string{"message": "INVALID_PASSWORD"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"invalid credentials","details":{"message":"INVALID_PASSWORD"}}`, string(encoded))
}

func TestLatestRates_DecodesMixedRates(t *testing.T) {
	var latest LatestRates
	require.NoError(t, json.Unmarshal([]byte(`{"amount":1.0,"base":"USD","date":"2025-09-19","rates":{"BRL":5.33,"XXX":"n/a"}}`), &latest))

	assert.Equal(t, "USD", latest.Base)
	assert.Equal(t, 5.33, latest.Rates["BRL"])
	assert.Equal(t, "n/a", latest.Rates["XXX"])
}
