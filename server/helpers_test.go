package server_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-tribe-client/enrichment"
	"github.com/jrsteele09/go-tribe-client/internal/config"
	"github.com/jrsteele09/go-tribe-client/server"
	"github.com/jrsteele09/go-tribe-client/session"
	"github.com/jrsteele09/go-tribe-client/tribe"
	"github.com/stretchr/testify/require"
)

const (
	testTribeURL   = "http://tribe.test"
	testToken      = "token-1"
	testCookieName = "tribe_session"
)

// fakeRemote stands in for the Tribe API and counts the calls made to it.
type fakeRemote struct {
	mu sync.Mutex

	exchangeErr error
	users       map[string]tribe.UserResult
	genesets    tribe.GenesetsResult
	versions    []tribe.Version
	created     tribe.CreateResult
	createErr   error

	calls       map[string]int
	lastPayload tribe.GenesetPayload
	lastFilters tribe.Filters
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		users: map[string]tribe.UserResult{
			testToken: {Status: tribe.StatusOK, Users: []tribe.User{{ID: 7, Username: "jdoe"}}},
		},
		genesets: tribe.GenesetsResult{Status: tribe.StatusOK, Genesets: []tribe.Geneset{}},
		calls:    map[string]int{},
	}
}

func (f *fakeRemote) called(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeRemote) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeRemote) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeRemote) ExchangeAuthorizationCode(_ context.Context, code string) (string, error) {
	f.called("exchange")
	if f.exchangeErr != nil {
		return "", f.exchangeErr
	}
	return testToken, nil
}

func (f *fakeRemote) UserObject(_ context.Context, token string) tribe.UserResult {
	f.called("user")
	if r, ok := f.users[token]; ok {
		return r
	}
	return tribe.UserResult{Status: tribe.StatusUnavailable, Users: []tribe.User{}}
}

func (f *fakeRemote) AuthCodeURL(state string) string {
	return testTribeURL + "/oauth2/authorize?state=" + state
}

func (f *fakeRemote) BaseURL() string {
	return testTribeURL
}

func (f *fakeRemote) UserGenesets(_ context.Context, _ string, filters tribe.Filters) tribe.GenesetsResult {
	f.called("genesets")
	f.lastFilters = filters
	return f.genesets
}

func (f *fakeRemote) UserVersions(_ context.Context, _ string, _ string) []tribe.Version {
	f.called("versions")
	return f.versions
}

func (f *fakeRemote) CreateGeneset(_ context.Context, _ string, payload tribe.GenesetPayload) (tribe.CreateResult, error) {
	f.called("create")
	f.lastPayload = payload
	return f.created, f.createErr
}

// fakeSnapshots counts loads so tests can assert no file was touched.
type fakeSnapshots struct {
	snapshot enrichment.Snapshot
	err      error
	loads    int
}

func (f *fakeSnapshots) Load(string) (enrichment.Snapshot, error) {
	f.loads++
	return f.snapshot, f.err
}

func testConfig() config.Config {
	return config.Config{
		Env: config.EnvVars{Env: "TEST", AppName: "Tribe Client"},
		Tribe: config.Tribe{
			URL:           testTribeURL,
			ClientID:      "client-id",
			Scope:         "read",
			AccessCodeURL: "http://localhost:8080/tribe/callback",
			CrossRefDB:    "Entrez",
		},
		Session: config.Session{
			Secret:     "test-secret",
			CookieName: testCookieName,
			MaxAge:     time.Hour,
		},
		Cors:    config.Cors{Origins: []string{"http://host.test"}},
		Metrics: config.Metrics{Enabled: true},
	}
}

// brokenStore reads from memory but fails every write.
type brokenStore struct {
	*session.MemoryStore
}

func (brokenStore) Save(context.Context, string, session.Session) error {
	return errors.New("store unavailable")
}

type testServer struct {
	srv    *server.Server
	remote *fakeRemote
	store  *session.MemoryStore
}

func newTestServer(t *testing.T, cfg config.Config, remote *fakeRemote, opts ...server.Option) *testServer {
	t.Helper()
	store := session.NewMemoryStore()
	return newTestServerWithStore(t, cfg, remote, store, store, opts...)
}

func newTestServerWithStore(t *testing.T, cfg config.Config, remote *fakeRemote, store session.Store, mem *session.MemoryStore, opts ...server.Option) *testServer {
	t.Helper()
	manager := session.NewManager(store, remote, cfg.Session.MaxAge)

	srv, err := server.New(cfg, remote, manager, opts...)
	require.NoError(t, err)
	return &testServer{srv: srv, remote: remote, store: mem}
}

func (ts *testServer) do(method, target string, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	ts.srv.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) doWithHeaders(method, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	ts.srv.ServeHTTP(rec, req)
	return rec
}

// login runs the callback and returns the session cookie it set.
func (ts *testServer) login(t *testing.T) *http.Cookie {
	t.Helper()
	rec := ts.do(http.MethodGet, "/tribe/callback?code=abc", "")
	require.Equal(t, http.StatusFound, rec.Code)

	cookie := findCookie(rec, testCookieName)
	require.NotNil(t, cookie)
	require.NotEmpty(t, cookie.Value)
	return cookie
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
