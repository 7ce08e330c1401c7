package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pbl/internal/platform/metrics"
	pnet "pbl/internal/platform/net"
	phttp "pbl/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func TestHeaderIdentity(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderUserID, " u1 ")
	req.Header.Set(HeaderUserName, "Asha Rahman")
	req.Header.Set(HeaderUserEmail, "asha@uni.edu")
	req.Header.Set(HeaderUserDepartment, "CSE")
	req.Header.Set(HeaderUserAdmin, "true")

	id, err := HeaderIdentity{}.Identify(req)
	if err != nil {
		t.Fatalf("Identify: %v", err)
	}
	want := pnet.Identity{ID: "u1", Name: "Asha Rahman", Email: "asha@uni.edu", Department: "CSE", Admin: true}
	if id != want {
		t.Fatalf("got %+v", id)
	}

	req.Header.Set(HeaderUserAdmin, "sure")
	if _, err := (HeaderIdentity{}).Identify(req); err == nil {
		t.Fatalf("malformed admin flag accepted")
	}

	anon, err := HeaderIdentity{}.Identify(httptest.NewRequest("GET", "/", nil))
	if err != nil || !anon.Anonymous() {
		t.Fatalf("anonymous = %+v %v", anon, err)
	}
}

func TestIdentifyAndGuards(t *testing.T) {
	var seen pnet.Identity
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = pnet.IdentityFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	cases := []struct {
		name    string
		headers map[string]string
		guard   Middleware
		want    int
	}{
		{"anonymous open", nil, func(h http.Handler) http.Handler { return h }, http.StatusNoContent},
		{"anonymous user route", nil, RequireUser, http.StatusUnauthorized},
		{"student user route", map[string]string{HeaderUserID: "u1"}, RequireUser, http.StatusNoContent},
		{"student admin route", map[string]string{HeaderUserID: "u1", HeaderUserEmail: "s@uni.edu"}, RequireAdmin, http.StatusForbidden},
		{"admin by email", map[string]string{HeaderUserID: "u2", HeaderUserEmail: "admin@uni.edu"}, RequireAdmin, http.StatusNoContent},
		{"admin by flag", map[string]string{HeaderUserID: "u3", HeaderUserAdmin: "1"}, RequireAdmin, http.StatusNoContent},
		{"anonymous admin route", nil, RequireAdmin, http.StatusUnauthorized},
		{"bad admin flag", map[string]string{HeaderUserID: "u4", HeaderUserAdmin: "x"}, RequireUser, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := chain(ok, RequestID(), Identify(HeaderIdentity{}), tc.guard)
			req := httptest.NewRequest("GET", "/", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("status %d, want %d: %s", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
	if seen.ID != "u3" || !seen.Admin {
		t.Fatalf("last identity seen %+v", seen)
	}
}

func TestRecoverJSON(t *testing.T) {
	h := chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("kaboom") }), RequestID(), RecoverJSON)
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "req-p")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError || rec.Header().Get("X-Request-ID") != "req-p" {
		t.Fatalf("status=%d headers=%v", rec.Code, rec.Header())
	}
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Reason != "panic" || env.RequestID != "req-p" || bytes.Contains(rec.Body.Bytes(), []byte("kaboom")) {
		t.Fatalf("envelope leaked or wrong: %s", rec.Body.String())
	}
}

func TestAccessLog_CapturesAndHijacks(t *testing.T) {
	h := AccessLogZerolog(AccessLogOptions{Skip: []string{"/metrics"}})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ws" {
			if _, ok := w.(http.Hijacker); !ok {
				t.Errorf("writer lost Hijacker")
			}
			return
		}
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))
	for _, p := range []string{"/", "/ws", "/metrics"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", p, nil))
		if p == "/" && rec.Code != http.StatusTeapot {
			t.Fatalf("status not passed through: %d", rec.Code)
		}
	}
}

func TestCORS_Preflight(t *testing.T) {
	h := CORS(CORSOptions{AllowedOrigins: []string{"https://pbl.test"}})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/assistant/ask", nil)
	req.Header.Set("Origin", "https://pbl.test")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "X-User-Department")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "https://pbl.test" {
		t.Fatalf("preflight headers: %v", rec.Header())
	}
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.MustNew(reg)

	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/notices/{id}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/notices/42", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/notices/43", nil))

	n, err := testutil.GatherAndCount(reg, "pbl_http_requests_total")
	if err != nil || n != 1 {
		t.Fatalf("series = %d, %v (ids must not become labels)", n, err)
	}

	if Metrics(nil)(http.NotFoundHandler()) == nil {
		t.Fatalf("nil metrics should pass through")
	}
}
