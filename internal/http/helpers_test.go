package http_test

import (
	"bytes"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	api "github.com/nartaykz/travellog/internal/http"
	"github.com/nartaykz/travellog/internal/oauth"
	"github.com/nartaykz/travellog/internal/queue"
	"github.com/nartaykz/travellog/internal/session"
)

type testEnv struct {
	t        *testing.T
	store    *memStore
	sessions *session.MemoryStore
	google   *fakeVerifier
	handler  *api.Handler
	router   *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemStore()
	sessions := session.NewMemory(time.Hour)
	google := &fakeVerifier{tokens: make(map[string]oauth.Identity)}

	h := api.NewHandler(store, sessions, google, queue.NewNoop())
	h.CookieSecure = false
	h.RateLimitPerMin = 1000

	return &testEnv{
		t:        t,
		store:    store,
		sessions: sessions,
		google:   google,
		handler:  h,
		router:   api.NewRouter(h),
	}
}

// do performs one request; cookies carries whatever the client remembered
// from earlier Set-Cookie headers.
func (e *testEnv) do(method, path, body string, cookies []*nethttp.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()
	var req *nethttp.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *nethttp.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == name && ck.MaxAge >= 0 && ck.Value != "" {
			return ck
		}
	}
	return nil
}

// signUp registers a user and returns the session cookie.
func (e *testEnv) signUp(email, password, name string) *nethttp.Cookie {
	e.t.Helper()
	w := e.do("POST", "/emailSignUp",
		`{"email":"`+email+`","password":"`+password+`","name":"`+name+`"}`, nil)
	if w.Code != nethttp.StatusOK {
		e.t.Fatalf("signup code=%d body=%s", w.Code, w.Body.String())
	}
	var resp map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "" {
		e.t.Fatalf("signup error: %s", resp["error"])
	}
	ck := cookieNamed(w, "user_session_id")
	if ck == nil {
		e.t.Fatal("signup did not set a session cookie")
	}
	return ck
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), into); err != nil {
		t.Fatalf("bad json %q: %v", w.Body.String(), err)
	}
}
