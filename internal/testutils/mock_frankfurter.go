package testutils

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"time"
)

// MockFrankfurterServer serves canned /currencies and /latest replies
type MockFrankfurterServer struct {
	server *httptest.Server

	mu              sync.Mutex
	currenciesBody  string
	latestBody      string
	status          int
	delay           time.Duration
	lastLatestQuery url.Values
	requestCount    int
}

// NewMockFrankfurterServer creates a server answering like api.frankfurter.app
func NewMockFrankfurterServer() *MockFrankfurterServer {
	mock := &MockFrankfurterServer{
		currenciesBody: `{"USD":"US Dollar","BRL":"Brazilian Real"}`,
		latestBody:     `{"amount":1.0,"base":"USD","date":"2025-09-19","rates":{"BRL":5.33}}`,
		status:         http.StatusOK,
	}
	mock.server = httptest.NewServer(http.HandlerFunc(mock.handler))
	return mock
}

// URL returns the base URL of the server
func (m *MockFrankfurterServer) URL() string {
	return m.server.URL
}

// Close shuts the server down
func (m *MockFrankfurterServer) Close() {
	m.server.Close()
}

// SetCurrencies replaces the raw /currencies body
func (m *MockFrankfurterServer) SetCurrencies(body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currenciesBody = body
}

// SetLatest replaces the raw /latest body
func (m *MockFrankfurterServer) SetLatest(body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latestBody = body
}

// SetStatus makes every endpoint answer with status
func (m *MockFrankfurterServer) SetStatus(status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = status
}

// SetDelay holds every reply for delay
func (m *MockFrankfurterServer) SetDelay(delay time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = delay
}

// LastLatestQuery returns the query string of the most recent /latest call
func (m *MockFrankfurterServer) LastLatestQuery() url.Values {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastLatestQuery
}

// RequestCount returns how many requests were served
func (m *MockFrankfurterServer) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requestCount
}

func (m *MockFrankfurterServer) handler(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.requestCount++
	status, delay := m.status, m.delay
	var body string
	switch r.URL.Path {
	case "/currencies":
		body = m.currenciesBody
	case "/latest":
		body = m.latestBody
		m.lastLatestQuery = r.URL.Query()
	default:
		status, body = http.StatusNotFound, `{"message":"not found"}`
	}
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	if status != http.StatusOK {
		body = `{"message":"upstream failure"}`
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
