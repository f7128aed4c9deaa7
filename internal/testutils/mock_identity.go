package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// MockIdentityServer emulates the two Identity Toolkit calls the gateway makes:
// the REST password sign-in and the admin signupNewUser call.
type MockIdentityServer struct {
	server *httptest.Server

	mu             sync.Mutex
	apiKey         string
	users          map[string]mockUser
	signInDisabled bool
	lastAPIKey     string
}

type mockUser struct {
	uid         string
	password    string
	displayName string
}

// NewMockIdentityServer creates a server that accepts apiKey for sign-in
func NewMockIdentityServer(apiKey string) *MockIdentityServer {
	mock := &MockIdentityServer{
		apiKey: apiKey,
		users:  make(map[string]mockUser),
	}
	mock.server = httptest.NewServer(http.HandlerFunc(mock.handler))
	return mock
}

// URL returns the base URL of the server
func (m *MockIdentityServer) URL() string {
	return m.server.URL
}

// Close shuts the server down
func (m *MockIdentityServer) Close() {
	m.server.Close()
}

// AddUser registers an existing account
func (m *MockIdentityServer) AddUser(uid, email, password string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[email] = mockUser{uid: uid, password: password}
}

// DisableSignIn makes every sign-in fail while user creation keeps working
func (m *MockIdentityServer) DisableSignIn() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signInDisabled = true
}

// LastAPIKey returns the key query parameter of the last sign-in call
func (m *MockIdentityServer) LastAPIKey() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastAPIKey
}

func (m *MockIdentityServer) handler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeIdentityError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED")
		return
	}

	switch {
	case strings.HasSuffix(r.URL.Path, "accounts:signInWithPassword"):
		m.signIn(w, r)
	case strings.HasSuffix(r.URL.Path, "signupNewUser"):
		m.signUp(w, r)
	default:
		writeIdentityError(w, http.StatusNotFound, "NOT_FOUND")
	}
}

func (m *MockIdentityServer) signIn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email             string `json:"email"`
		Password          string `json:"password"`
		ReturnSecureToken bool   `json:"returnSecureToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeIdentityError(w, http.StatusBadRequest, "INVALID_JSON")
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastAPIKey = r.URL.Query().Get("key")

	if m.lastAPIKey != m.apiKey {
		writeIdentityError(w, http.StatusBadRequest, "API key not valid. Please pass a valid API key.")
		return
	}
	if m.signInDisabled {
		writeIdentityError(w, http.StatusBadRequest, "OPERATION_NOT_ALLOWED")
		return
	}
	user, ok := m.users[body.Email]
	if !ok {
		writeIdentityError(w, http.StatusBadRequest, "EMAIL_NOT_FOUND")
		return
	}
	if user.password != body.Password {
		writeIdentityError(w, http.StatusBadRequest, "INVALID_PASSWORD")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"kind":         "identitytoolkit#VerifyPasswordResponse",
		"localId":      user.uid,
		"email":        body.Email,
		"idToken":      "id-token-" + user.uid,
		"refreshToken": "refresh-token-" + user.uid,
		"expiresIn":    "3600",
		"registered":   true,
	})
}

func (m *MockIdentityServer) signUp(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"displayName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeIdentityError(w, http.StatusBadRequest, "INVALID_JSON")
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[body.Email]; exists {
		writeIdentityError(w, http.StatusBadRequest, "EMAIL_EXISTS")
		return
	}
	if len(body.Password) < 6 {
		writeIdentityError(w, http.StatusBadRequest, "WEAK_PASSWORD : Password should be at least 6 characters")
		return
	}

	uid := "uid_" + body.Email
	m.users[body.Email] = mockUser{uid: uid, password: body.Password, displayName: body.DisplayName}

	response := map[string]interface{}{
		"kind":    "identitytoolkit#SignupNewUserResponse",
		"localId": uid,
		"email":   body.Email,
	}
	if body.DisplayName != "" {
		response["displayName"] = body.DisplayName
	}
	writeJSON(w, http.StatusOK, response)
}

func writeIdentityError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"code":    status,
			"message": message,
			"errors": []map[string]string{
				{"message": message, "domain": "global", "reason": "invalid"},
			},
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
