package mealbook

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/feastline/mealbook/session"
)

// fakeBackend is an in-process meal service stub. Response codes and bodies are
// settable per test; every request is counted and the interesting parts of the
// last one kept for assertions.
type fakeBackend struct {
	mu sync.Mutex

	loginStatus   int
	loginBody     string
	signupStatus  int
	bookingStatus int
	bookingBody   string
	notifyStatus  int

	loginCalls   int
	signupCalls  int
	mealCalls    int
	bookingCalls int
	notifyCalls  int

	lastLogin   map[string]string
	lastBooking map[string]string
	lastNotify  map[string]string
	lastAuth    string
	lastReqID   string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		loginStatus: http.StatusOK,
		loginBody: `{"jwt":"test-token","name":"Alice","userId":"u1",` +
			`"email":"alice@example.com"}`,
		signupStatus:  http.StatusCreated,
		bookingStatus: http.StatusOK,
		bookingBody:   `{"bookingId":"b1","status":"confirmed","message":"enjoy"}`,
		notifyStatus:  http.StatusOK,
	}
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.loginCalls++
		f.lastLogin = decodeBody(r)
		f.lastReqID = r.Header.Get("X-Request-ID")
		status, body := f.loginStatus, f.loginBody
		f.mu.Unlock()

		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
	mux.HandleFunc("/auth/signup1", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.signupCalls++
		status := f.signupStatus
		f.mu.Unlock()

		w.WriteHeader(status)
	})
	mux.HandleFunc("/api/meals", func(w http.ResponseWriter, r *http.Request) {
		f.bookingHandler(w, r, false)
	})
	mux.HandleFunc("/api/bookings", func(w http.ResponseWriter, r *http.Request) {
		f.bookingHandler(w, r, true)
	})
	mux.HandleFunc("/api/notifications", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.notifyCalls++
		f.lastNotify = decodeBody(r)
		status := f.notifyStatus
		f.mu.Unlock()

		w.WriteHeader(status)
	})
	return mux
}

func (f *fakeBackend) bookingHandler(w http.ResponseWriter, r *http.Request, multiDay bool) {
	f.mu.Lock()
	if multiDay {
		f.bookingCalls++
	} else {
		f.mealCalls++
	}
	f.lastBooking = decodeBody(r)
	f.lastAuth = r.Header.Get("Authorization")
	status, body := f.bookingStatus, f.bookingBody
	f.mu.Unlock()

	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (f *fakeBackend) calls() (login, signup, meal, booking, notify int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loginCalls, f.signupCalls, f.mealCalls, f.bookingCalls, f.notifyCalls
}

func decodeBody(r *http.Request) map[string]string {
	fields := map[string]string{}
	_ = json.NewDecoder(r.Body).Decode(&fields)
	return fields
}

type testHarness struct {
	backend *fakeBackend
	server  *httptest.Server
	store   session.Store
	client  *Client
}

func newTestHarness(t *testing.T, mutate ...func(*Config, *Builder)) *testHarness {
	t.Helper()

	backend := newFakeBackend()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	cfg := DefaultConfig()
	cfg.API.BaseURL = server.URL
	cfg.Metrics.Enabled = true

	store := session.NewMemoryStore()
	builder := New().WithStore(store)

	for _, fn := range mutate {
		fn(&cfg, builder)
	}

	client, err := builder.WithConfig(cfg).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(client.Close)

	return &testHarness{
		backend: backend,
		server:  server,
		store:   store,
		client:  client,
	}
}

// signedTestToken mints an HS256 token carrying the given expiry. The client
// only decodes it, so the signing key is irrelevant.
func signedTestToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: gojwt.NewNumericDate(exp),
	}).SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	return token
}

// assertSessionInvariant checks the all-or-nothing session rule after any
// operation: authenticated implies every field is populated, and not
// authenticated implies every field is empty.
func assertSessionInvariant(t *testing.T, info SessionInfo) {
	t.Helper()

	allSet := info.Token != "" && info.UserID != "" && info.Email != "" && info.DisplayName != ""
	allEmpty := info.Token == "" && info.UserID == "" && info.Email == "" && info.DisplayName == ""

	if info.Authenticated && !allSet {
		t.Fatalf("authenticated session with missing fields: %+v", info)
	}
	if !info.Authenticated && !allEmpty {
		t.Fatalf("unauthenticated session with populated fields: %+v", info)
	}
}
