package httpapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/league-standings/internal/domain/standings"
	standingsmock "github.com/riskibarqy/league-standings/internal/mocks/domain/standings"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/riskibarqy/league-standings/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const resultsJSON = `{
	"lastUpdated": "2025-03-01 20:00",
	"matchdays": [
		{"name": "Jornada 1", "matches": [
			{"home": "BJV - Lobos", "away": "BJV - Osos", "score": "-"},
			{"home": "CLT - Rayos", "away": "ROA - Toros", "score": "2-0"},
			{"home": "CLT - Truenos", "away": "ROA - Toros", "score": "aplazado"}
		]}
	]
}`

func newTestRouter(t *testing.T, src standings.Source) http.Handler {
	t.Helper()

	service := usecase.NewStandingsService(src, usecase.StandingsServiceConfig{Rules: standings.DefaultRules()})
	return NewRouter(NewHandler(service, nil), nil, RouterConfig{
		SwaggerEnabled:     true,
		CORSAllowedOrigins: []string{"*"},
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("metrics"))
		}),
	})
}

func newDocumentSource(t *testing.T) *standingsmock.Source {
	t.Helper()

	doc := standings.Document{
		LastUpdated: "2025-03-01 20:00",
		Matchdays: []standings.Matchday{{
			Name: "Jornada 1",
			Matches: []standings.Match{
				{Home: "BJV - Lobos", Away: "BJV - Osos", Score: "-"},
				{Home: "CLT - Rayos", Away: "ROA - Toros", Score: "2-0"},
				{Home: "CLT - Truenos", Away: "ROA - Toros", Score: "aplazado"},
			},
		}},
	}
	src := standingsmock.NewSource(t)
	src.On("Name").Return("file").Maybe()
	src.On("Load", mock.Anything).Return(doc, nil).Maybe()
	return src
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type envelope[T any] struct {
	APIVersion string `json:"apiVersion"`
	Data       T      `json:"data"`
	Error      *struct {
		Code   int    `json:"code"`
		Status string `json:"status"`
	} `json:"error"`
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var out envelope[T]
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHandler_GetStandings(t *testing.T) {
	router := newTestRouter(t, newDocumentSource(t))

	rec := serve(router, http.MethodGet, "/v1/standings", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope[standingsDTO](t, rec)
	assert.Equal(t, "2025-03-01 20:00", body.Data.LastUpdated)
	require.Len(t, body.Data.Items, 5)
	assert.Equal(t, standingRowDTO{Position: 1, Team: "CLT - Rayos", Played: 1, Won: 1, GoalsFor: 2, GoalDiff: 2, Points: 3}, body.Data.Items[0])
	assert.Equal(t, "BJV - Lobos", body.Data.Items[1].Team)
	assert.Equal(t, 1, body.Data.Items[1].Points)
}

func TestHandler_GetStandingsFiltered(t *testing.T) {
	router := newTestRouter(t, newDocumentSource(t))

	rec := serve(router, http.MethodGet, "/v1/standings?participant=roa", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope[standingsDTO](t, rec)
	require.Len(t, body.Data.Items, 1)
	assert.Equal(t, "ROA - Toros", body.Data.Items[0].Team)
	assert.Equal(t, 5, body.Data.Items[0].Position)
}

func TestHandler_GetStandingsInvalidParticipant(t *testing.T) {
	router := newTestRouter(t, newDocumentSource(t))

	for _, target := range []string{"/v1/standings?participant=XYZ", "/v1/standings?participant=b%20j", "/v1/standings?participant=TOOLONGCODE"} {
		rec := serve(router, http.MethodGet, target, "")
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
		body := decodeEnvelope[any](t, rec)
		require.NotNil(t, body.Error, target)
		assert.Equal(t, "INVALID_ARGUMENT", body.Error.Status, target)
	}
}

func TestHandler_GetMatchdays(t *testing.T) {
	router := newTestRouter(t, newDocumentSource(t))

	rec := serve(router, http.MethodGet, "/v1/matchdays", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope[matchdaysDTO](t, rec)
	require.Len(t, body.Data.Items, 1)
	md := body.Data.Items[0]
	assert.Equal(t, "Jornada 1", md.Name)
	assert.Equal(t, 2, md.Computable)
	assert.Equal(t, 3, md.Registered)
	assert.Equal(t, 3, md.Total)
	assert.True(t, md.Matches[0].IsAutoDraw)
	assert.Equal(t, standings.AutoDrawLabel, md.Matches[0].Score)
	assert.True(t, md.Matches[2].IsInvalid)
}

func TestHandler_GetSnapshot(t *testing.T) {
	router := newTestRouter(t, newDocumentSource(t))

	rec := serve(router, http.MethodGet, "/v1/snapshot?participant=BJV", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope[snapshotDTO](t, rec)
	assert.Len(t, body.Data.Standings, 2)
	require.Len(t, body.Data.Matchdays, 1)
	assert.Len(t, body.Data.Matchdays[0].Matches, 1)
}

func TestHandler_GetStandingsText(t *testing.T) {
	router := newTestRouter(t, newDocumentSource(t))

	rec := serve(router, http.MethodGet, "/v1/standings.txt", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "CLT - Rayos")
}

func TestHandler_SourceUnavailable(t *testing.T) {
	src := standingsmock.NewSource(t)
	src.On("Name").Return("http").Maybe()
	src.On("Load", mock.Anything).Return(standings.Document{}, errors.New("dial tcp: refused")).Once()

	rec := serve(newTestRouter(t, src), http.MethodGet, "/v1/standings", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	body := decodeEnvelope[any](t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "UNAVAILABLE", body.Error.Status)
}

func TestHandler_ComputeStandings(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := serve(router, http.MethodPost, "/v1/standings/compute", resultsJSON)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope[snapshotDTO](t, rec)
	assert.Equal(t, "2025-03-01 20:00", body.Data.LastUpdated)
	require.Len(t, body.Data.Standings, 5)
	assert.Equal(t, "CLT - Rayos", body.Data.Standings[0].Team)
}

func TestHandler_ComputeStandingsText(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := serve(router, http.MethodPost, "/v1/standings/compute?format=text&participant=CLT", resultsJSON)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "CLT - Rayos")
	assert.NotContains(t, rec.Body.String(), "BJV - Lobos")
}

func TestHandler_ComputeStandingsRejectsBadInput(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		name   string
		target string
		body   string
	}{
		{name: "malformed json", target: "/v1/standings/compute", body: `{"matchdays": [`},
		{name: "array document", target: "/v1/standings/compute", body: `[]`},
		{name: "unknown format", target: "/v1/standings/compute?format=xml", body: resultsJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, http.MethodPost, tt.target, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandler_SystemRoutes(t *testing.T) {
	router := newTestRouter(t, nil)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, "metrics", serve(router, http.MethodGet, "/metrics", "").Body.String())

	rec := serve(router, http.MethodGet, "/openapi.yaml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/v1/standings/compute")
}

func TestRecoverPanic(t *testing.T) {
	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	service := usecase.NewStandingsService(newDocumentSource(t), usecase.StandingsServiceConfig{Rules: standings.DefaultRules()})
	router := NewRouter(NewHandler(service, nil), nil, RouterConfig{RateLimiter: NewClientRateLimiter(1, 1)})

	first := serve(router, http.MethodGet, "/v1/standings", "")
	require.Equal(t, http.StatusOK, first.Code)

	second := serve(router, http.MethodGet, "/v1/standings", "")
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))

	body := decodeEnvelope[any](t, second)
	require.NotNil(t, body.Error)
	assert.Equal(t, "RESOURCE_EXHAUSTED", body.Error.Status)
}

func TestHandler_RefreshStandings(t *testing.T) {
	first := standings.Document{
		LastUpdated: "2025-03-01 20:00",
		Matchdays: []standings.Matchday{{Name: "Jornada 1", Matches: []standings.Match{
			{Home: "CLT - Rayos", Away: "ROA - Toros", Score: "-"},
		}}},
	}
	second := standings.Document{
		LastUpdated: "2025-03-02 21:30",
		Matchdays: []standings.Matchday{{Name: "Jornada 1", Matches: []standings.Match{
			{Home: "CLT - Rayos", Away: "ROA - Toros", Score: "1-3"},
		}}},
	}
	src := standingsmock.NewSource(t)
	src.On("Name").Return("file").Maybe()
	src.On("Load", mock.Anything).Return(first, nil).Once()
	src.On("Load", mock.Anything).Return(second, nil).Once()

	service := usecase.NewStandingsService(src, usecase.StandingsServiceConfig{
		Rules:        standings.DefaultRules(),
		CacheEnabled: true,
		CacheTTL:     time.Hour,
	})
	router := NewRouter(NewHandler(service, nil), nil, RouterConfig{})

	rec := serve(router, http.MethodGet, "/v1/snapshot", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2025-03-01 20:00", decodeEnvelope[snapshotDTO](t, rec).Data.LastUpdated)

	rec = serve(router, http.MethodGet, "/v1/snapshot", "")
	assert.Equal(t, "2025-03-01 20:00", decodeEnvelope[snapshotDTO](t, rec).Data.LastUpdated)

	rec = serve(router, http.MethodPost, "/v1/standings/refresh", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope[snapshotDTO](t, rec)
	assert.Equal(t, "2025-03-02 21:30", body.Data.LastUpdated)
	require.NotEmpty(t, body.Data.Standings)
	assert.Equal(t, "ROA - Toros", body.Data.Standings[0].Team)

	rec = serve(router, http.MethodGet, "/v1/snapshot", "")
	assert.Equal(t, "2025-03-02 21:30", decodeEnvelope[snapshotDTO](t, rec).Data.LastUpdated)
}

func TestHandler_RefreshStandingsSourceUnavailable(t *testing.T) {
	src := standingsmock.NewSource(t)
	src.On("Name").Return("http").Maybe()
	src.On("Load", mock.Anything).Return(standings.Document{}, errors.New("dial tcp: refused")).Once()

	rec := serve(newTestRouter(t, src), http.MethodPost, "/v1/standings/refresh", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
