package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/gilded-rose/internal/core/domain"
	"github.com/rl1809/gilded-rose/internal/core/service"
)

type fakeSource struct {
	seeds []domain.Seed
	err   error
}

func (f fakeSource) LoadSeeds(ctx context.Context) ([]domain.Seed, error) {
	return f.seeds, f.err
}

func newTestRouter(source fakeSource) http.Handler {
	svc := service.NewSimulationService(service.Options{MaxDays: 30}, nil)
	return NewRouter(NewHTTPHandler(svc, source, nil), nil)
}

func doRequest(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSimulate_JSON(t *testing.T) {
	router := newTestRouter(fakeSource{})

	rec := doRequest(router, http.MethodPost, "/api/simulate",
		`{"items":[{"name":"Aged Brie","sell_in":1,"quality":48}],"days":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	var sim service.Simulation
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sim))
	require.Len(t, sim.Reports, 3)
	assert.Equal(t, domain.ItemView{Name: "Aged Brie", Category: "aged_cheese", SellIn: -1, Quality: 50}, sim.Final().Items[0])
}

func TestSimulate_Text(t *testing.T) {
	router := newTestRouter(fakeSource{})

	rec := doRequest(router, http.MethodPost, "/api/simulate?format=text",
		`{"items":[{"name":"Sulfuras, Hand of Ragnaros","sell_in":0,"quality":80}],"days":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	want := "-------- day 0 --------\n" +
		"name, sellIn, quality\n" +
		"Sulfuras, Hand of Ragnaros, 0, 80\n" +
		"\n" +
		"-------- day 1 --------\n" +
		"name, sellIn, quality\n" +
		"Sulfuras, Hand of Ragnaros, 0, 80\n" +
		"\n"
	assert.Equal(t, want, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Simulation-ID"))
}

func TestSimulate_BadRequests(t *testing.T) {
	router := newTestRouter(fakeSource{})

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"malformed json", `{"items":`, ""},
		{"unknown field", `{"items":[{"name":"x"}],"weeks":1}`, ""},
		{"no items", `{"items":[],"days":1}`, "items"},
		{"missing name", `{"items":[{"sell_in":1,"quality":1}]}`, "name"},
		{"negative quality", `{"items":[{"name":"x","quality":-1}]}`, "quality"},
		{"sell_in below range", `{"items":[{"name":"Rusty Sword","sell_in":-9223372036854775808,"quality":5}],"days":1}`, "sellin"},
		{"sell_in above range", `{"items":[{"name":"Rusty Sword","sell_in":2147483648,"quality":5}],"days":1}`, "sellin"},
		{"negative days", `{"items":[{"name":"x"}],"days":-2}`, "days"},
		{"too many days", `{"items":[{"name":"x"}],"days":31}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(router, http.MethodPost, "/api/simulate", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorHTTPResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			if tt.field != "" {
				assert.Contains(t, resp.Fields, tt.field)
			}
		})
	}
}

func TestFixture(t *testing.T) {
	router := newTestRouter(fakeSource{seeds: []domain.Seed{
		{Name: domain.EventPassName, SellIn: 11, Quality: 5},
	}})

	rec := doRequest(router, http.MethodGet, "/api/fixture?days=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var sim service.Simulation
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sim))
	assert.Equal(t, 10, sim.Final().Items[0].SellIn)
	assert.Equal(t, 6, sim.Final().Items[0].Quality)

	rec = doRequest(router, http.MethodGet, "/api/fixture?days=soon", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFixture_SourceError(t *testing.T) {
	router := newTestRouter(fakeSource{err: errors.New("connection refused")})

	rec := doRequest(router, http.MethodGet, "/api/fixture", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	router := newTestRouter(fakeSource{})

	rec := doRequest(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = doRequest(router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gildedrose_http_requests_total")
}

func TestMethodNotAllowed(t *testing.T) {
	router := newTestRouter(fakeSource{})

	rec := doRequest(router, http.MethodGet, "/api/simulate", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
