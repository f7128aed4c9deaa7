package testutils

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testKeyID = "test-key"

var (
	signingKeyOnce sync.Once
	signingKey     *rsa.PrivateKey
)

// SigningKey returns a process-wide RSA key for minting test ID tokens
func SigningKey() *rsa.PrivateKey {
	signingKeyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(fmt.Sprintf("generate test key: %v", err))
		}
		signingKey = key
	})
	return signingKey
}

// Keyfunc resolves the test signing key by kid, standing in for a JWKS
func Keyfunc(token *jwt.Token) (interface{}, error) {
	if kid, _ := token.Header["kid"].(string); kid != testKeyID {
		return nil, fmt.Errorf("unknown kid %q", kid)
	}
	return &SigningKey().PublicKey, nil
}

// MintIDToken signs an ID token shaped like Firebase's for uid
func MintIDToken(uid string, expiresIn time.Duration) string {
	return MintToken(FirebaseClaims(uid, expiresIn), SigningKey())
}

// FirebaseClaims builds the standard claim set of a Firebase ID token
func FirebaseClaims(uid string, expiresIn time.Duration) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"iss":   "https://securetoken.google.com/" + TestProjectID,
		"aud":   TestProjectID,
		"sub":   uid,
		"email": uid + "@example.com",
		"iat":   now.Add(-time.Minute).Unix(),
		"exp":   now.Add(expiresIn).Unix(),
	}
}

// MintToken signs claims with key using RS256 and the test kid
func MintToken(claims jwt.MapClaims, key *rsa.PrivateKey) string {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = testKeyID
	signed, err := token.SignedString(key)
	if err != nil {
		panic(fmt.Sprintf("sign test token: %v", err))
	}
	return signed
}
