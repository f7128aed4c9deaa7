package service

import (
	"context"
	"testing"

	"github.com/dalfonso89/auth-currency-gateway/internal/models"
	"github.com/dalfonso89/auth-currency-gateway/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserAdmin(t *testing.T, identityServer *testutils.MockIdentityServer) *FirebaseUserAdmin {
	t.Helper()
	cfg := testutils.MockConfigWithServers(identityServer.URL(), "")
	admin, err := NewFirebaseUserAdmin(context.Background(), cfg, testutils.MockLogger())
	require.NoError(t, err)
	return admin
}

func TestFirebaseUserAdmin_CreateUser(t *testing.T) {
	identityServer := testutils.NewMockIdentityServer("test-api-key")
	defer identityServer.Close()
	admin := newTestUserAdmin(t, identityServer)

	record, err := admin.CreateUser(context.Background(), models.NewUser{
		Email:       "a@b.com",
		Password:    "123456",
		DisplayName: "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserRecord{UID: "uid_a@b.com", Email: "a@b.com", DisplayName: "Ana"}, record)

	// the created account can sign in
	client := NewFirebaseSignInClient(testutils.MockConfigWithServers(identityServer.URL(), ""), testutils.MockLogger())
	_, err = client.SignInWithPassword(context.Background(), "a@b.com", "123456")
	assert.NoError(t, err)
}

func TestFirebaseUserAdmin_CreateUser_Duplicate(t *testing.T) {
	identityServer := testutils.NewMockIdentityServer("test-api-key")
	defer identityServer.Close()
	identityServer.AddUser("U", "a@b.com", "123456")
	admin := newTestUserAdmin(t, identityServer)

	_, err := admin.CreateUser(context.Background(), models.NewUser{Email: "a@b.com", Password: "123456"})
	require.Error(t, err)
	assert.Equal(t, ErrorTypeUpstreamRejected, TypeOf(err))

	var serviceError *ServiceError
	require.ErrorAs(t, err, &serviceError)
	assert.Equal(t, "EMAIL_EXISTS", serviceError.Message)
}

func TestAdminClientOptions(t *testing.T) {
	cfg := testutils.MockConfig()

	cfg.Firebase.CredentialsFile = "/does/not/exist.json"
	_, err := adminClientOptions(context.Background(), cfg.Firebase)
	assert.Error(t, err)

	cfg.Firebase.CredentialsFile = ""
	cfg.Firebase.AdminEndpoint = "http://localhost:9099/"
	options, err := adminClientOptions(context.Background(), cfg.Firebase)
	require.NoError(t, err)
	assert.Len(t, options, 2)
}
