package module

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pbl/internal/modkit"
	phttp "pbl/internal/platform/net/http"
	"pbl/internal/platform/store"
	ptime "pbl/internal/platform/time"

	metahttp "pbl/internal/services/api/meta/http"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCH struct{ err error }

func (f fakeCH) Insert(context.Context, string, [][]any) error             { return nil }
func (f fakeCH) Exec(context.Context, string, ...any) error                { return nil }
func (f fakeCH) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (f fakeCH) Close() error                                              { return nil }
func (f fakeCH) Ping(context.Context) error                                { return f.err }

func serve(t *testing.T, deps modkit.Deps) http.Handler {
	t.Helper()
	mux := chi.NewRouter()
	New(deps).MountRoutes(phttp.AdaptChi(mux))
	return mux
}

func get(t *testing.T, h http.Handler, path string, into any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	env := struct {
		Data any `json:"data"`
	}{Data: into}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
}

func TestHealthAndService(t *testing.T) {
	at := time.Date(2025, 9, 3, 13, 0, 0, 0, time.UTC)
	h := serve(t, modkit.Deps{Clock: ptime.Fixed(at)})

	var hr metahttp.HealthResponse
	get(t, h, "/meta/health", &hr)
	assert.True(t, hr.OK)
	assert.Equal(t, "pbl-api", hr.Service)
	assert.Equal(t, "2025-09-03T13:00:00Z", hr.Now)

	var sr metahttp.ServiceResponse
	get(t, h, "/meta/service", &sr)
	assert.Zero(t, sr.Uptime)
}

func TestReady(t *testing.T) {
	var rr metahttp.ReadyResponse
	get(t, serve(t, modkit.Deps{}), "/meta/ready", &rr)
	assert.Equal(t, "degraded", rr.Status)
	assert.Equal(t, "skipped", rr.Checks[0].Status)

	get(t, serve(t, modkit.Deps{CH: fakeCH{err: errors.New("refused")}}), "/meta/ready", &rr)
	assert.Equal(t, "fail", rr.Status)
	assert.Equal(t, "refused", rr.Checks[1].Error)
}

func TestRules(t *testing.T) {
	var rr metahttp.RulesResponse
	get(t, serve(t, modkit.Deps{}), "/meta/rules", &rr)
	require.NotEmpty(t, rr.Rules)
	assert.Equal(t, "greeting", rr.Rules[0].Intent)
	assert.Contains(t, rr.Rules[0].Keywords, "hello")
	assert.Positive(t, rr.Keywords)
}
