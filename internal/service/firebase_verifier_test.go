package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/dalfonso89/auth-currency-gateway/internal/testutils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerifier() *FirebaseTokenVerifier {
	return NewFirebaseTokenVerifierWithKeyfunc(testutils.TestProjectID, testutils.Keyfunc, testutils.MockLogger())
}

func TestFirebaseTokenVerifier_Valid(t *testing.T) {
	verifier := newTestVerifier()

	user, err := verifier.VerifyIDToken(context.Background(), testutils.MintIDToken("test-uid", time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "test-uid", user.UID)
	assert.Equal(t, "test-uid@example.com", user.Email)
}

func TestFirebaseTokenVerifier_Rejects(t *testing.T) {
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	withClaim := func(key string, value interface{}) string {
		claims := testutils.FirebaseClaims("test-uid", time.Hour)
		if value == nil {
			delete(claims, key)
		} else {
			claims[key] = value
		}
		return testutils.MintToken(claims, testutils.SigningKey())
	}

	hmacToken := jwt.NewWithClaims(jwt.SigningMethodHS256, testutils.FirebaseClaims("test-uid", time.Hour))
	hmacToken.Header["kid"] = "test-key"
	hmacSigned, err := hmacToken.SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"expired", testutils.MintIDToken("test-uid", -time.Minute)},
		{"wrong audience", withClaim("aud", "other-project")},
		{"wrong issuer", withClaim("iss", "https://securetoken.google.com/other-project")},
		{"missing expiry", withClaim("exp", nil)},
		{"missing subject", withClaim("sub", nil)},
		{"empty subject", withClaim("sub", "")},
		{"foreign signing key", testutils.MintToken(testutils.FirebaseClaims("test-uid", time.Hour), otherKey)},
		{"hmac algorithm", hmacSigned},
		{"garbage", "not-a-jwt"},
	}

	verifier := newTestVerifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.VerifyIDToken(context.Background(), tt.token)
			require.Error(t, err)
			assert.Equal(t, ErrorTypeAuth, TypeOf(err))
		})
	}
}

func TestFirebaseTokenVerifier_StopWithoutJWKS(t *testing.T) {
	assert.NotPanics(t, newTestVerifier().Stop)
}
