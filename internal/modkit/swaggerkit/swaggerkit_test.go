package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "pbl/internal/platform/net/http"
	"pbl/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func serve(t *testing.T) map[string]any {
	t.Helper()
	rec := httptest.NewRecorder()
	serveDocJSON()(rec, httptest.NewRequest("GET", "/api/docs/doc.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var spec map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return spec
}

func TestServeDocJSON_Normalises(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &docReader, func() string {
		return `{"swagger":"2.0","info":{"title":"PBL","version":"1"},"paths":{"/notices":{"get":{"responses":{"200":{"description":"ok"}}}}}}`
	})
	t.Setenv("API_DOCS_TITLE_SUFFIX", "(staging)")

	spec := serve(t)
	if spec["openapi"] != "3.0.3" || spec["swagger"] != nil {
		t.Fatalf("version not lifted: %v", spec["openapi"])
	}
	if spec["info"].(map[string]any)["title"] != "PBL (staging)" {
		t.Fatalf("title = %v", spec["info"])
	}
	resp := spec["paths"].(map[string]any)["/notices"].(map[string]any)["get"].(map[string]any)["responses"].(map[string]any)
	for _, code := range []string{"200", "400", "500"} {
		if _, ok := resp[code]; !ok {
			t.Fatalf("missing %s response", code)
		}
	}
	schemas := spec["components"].(map[string]any)["schemas"].(map[string]any)
	if _, ok := schemas["ErrorResponse"]; !ok {
		t.Fatalf("ErrorResponse schema missing")
	}
	if servers := spec["servers"].([]any); servers[0].(map[string]any)["url"] != "/api/v1" {
		t.Fatalf("servers = %v", servers)
	}
}

func TestServeDocJSON_Mutators(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &docReader, func() string { return `{"openapi":"3.1.0","paths":{}}` })
	testkit.Swap(t, &mutators, nil)
	Register(nil)
	Register(func(s map[string]any) { s["x-pbl"] = true })

	spec := serve(t)
	if spec["x-pbl"] != true || spec["openapi"] != "3.0.3" {
		t.Fatalf("spec = %v", spec)
	}
}

func TestServeDocJSON_BadDocument(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &docReader, func() string { return "{" })
	rec := httptest.NewRecorder()
	serveDocJSON()(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGeneratedDocParses(t *testing.T) {
	var spec map[string]any
	if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
		t.Fatalf("generated doc is not JSON: %v", err)
	}
	if _, ok := spec["paths"].(map[string]any)["/assistant/ask"]; !ok {
		t.Fatalf("ask route missing from docs")
	}
}

func TestMount(t *testing.T) {
	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	Mount(r, true)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/docs", nil))
	if rec.Code != http.StatusPermanentRedirect {
		t.Fatalf("redirect status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/docs/doc.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("doc.json status = %d", rec.Code)
	}

	off := chi.NewRouter()
	Mount(phttp.AdaptChi(off), false)
	rec = httptest.NewRecorder()
	off.ServeHTTP(rec, httptest.NewRequest("GET", "/api/docs/doc.json", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("disabled mount still serves: %d", rec.Code)
	}
}
