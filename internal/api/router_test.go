package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jengzang/trajectory-classifier/internal/config"
	"github.com/jengzang/trajectory-classifier/internal/database"
	"github.com/jengzang/trajectory-classifier/internal/models"
	"github.com/jengzang/trajectory-classifier/internal/repository"
	"github.com/jengzang/trajectory-classifier/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type fixture struct {
	router *gin.Engine
	repo   *repository.TrajectoryRepository
	svc    *service.ClassificationService
}

func newFixture(t *testing.T, secret string, load bool) *fixture {
	t.Helper()
	conn, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "api.db")})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	repo := repository.NewTrajectoryRepository(conn)
	ctx := context.Background()
	require.NoError(t, repo.ImportSet(ctx, models.NewParsedSet(
		[]models.Sample{{X: 0, Y: 0, T: 0}, {X: 10, Y: 0, T: 1}},
		[]models.Sample{{X: 0, Y: 0, T: 0}, {X: 4, Y: 0, T: 1}},
		[]models.Sample{{X: 0, Y: 0, T: 0}, {X: 1, Y: 0, T: 1}},
	)))

	svc := service.NewClassificationService(repo)
	if load {
		require.NoError(t, svc.Reload(ctx))
	}

	cfg := config.Default()
	cfg.JWTSecret = secret
	router, stop := SetupRouter(cfg, svc)
	t.Cleanup(stop)
	return &fixture{router: router, repo: repo, svc: svc}
}

func (f *fixture) do(t *testing.T, method, target, token string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func TestHealth(t *testing.T) {
	f := newFixture(t, "", false)
	code, _ := f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, code)
}

func TestNeighborsEndpoint(t *testing.T) {
	f := newFixture(t, "", true)

	tests := []struct {
		name   string
		target string
		code   int
		want   []int
	}{
		{"length by name", "/api/v1/trajectories/0/neighbors?metric=length", http.StatusOK, []int{2, 1}},
		{"default metric", "/api/v1/trajectories/2/neighbors", http.StatusOK, []int{0, 1}},
		{"speed by code", "/api/v1/trajectories/1/neighbors?metric=2", http.StatusOK, []int{0, 2}},
		{"out of range", "/api/v1/trajectories/3/neighbors", http.StatusNotFound, nil},
		{"negative index", "/api/v1/trajectories/-1/neighbors", http.StatusNotFound, nil},
		{"bad index", "/api/v1/trajectories/abc/neighbors", http.StatusBadRequest, nil},
		{"unknown metric", "/api/v1/trajectories/0/neighbors?metric=heading", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := f.do(t, http.MethodGet, tt.target, "")
			require.Equal(t, tt.code, code)
			if tt.code != http.StatusOK {
				assert.Equal(t, tt.code, env.Code)
				return
			}
			var got models.NeighborsResponse
			require.NoError(t, json.Unmarshal(env.Data, &got))
			assert.Equal(t, tt.want, got.Neighbors)
		})
	}
}

func TestNotLoaded(t *testing.T) {
	f := newFixture(t, "", false)
	code, _ := f.do(t, http.MethodGet, "/api/v1/trajectories", "")
	assert.Equal(t, http.StatusServiceUnavailable, code)

	code, _ = f.do(t, http.MethodPost, "/api/v1/reload", "")
	assert.Equal(t, http.StatusOK, code)

	code, env := f.do(t, http.MethodGet, "/api/v1/trajectories", "")
	require.Equal(t, http.StatusOK, code)
	var list struct {
		Data  []models.TrajectorySummary `json:"data"`
		Count int                        `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 3, list.Count)
	assert.InDelta(t, 4.0, list.Data[1].Length, 1e-9)
}

func TestSummaryEndpoint(t *testing.T) {
	f := newFixture(t, "", true)
	code, env := f.do(t, http.MethodGet, "/api/v1/summary", "")
	require.Equal(t, http.StatusOK, code)

	var sum service.Summary
	require.NoError(t, json.Unmarshal(env.Data, &sum))
	assert.Equal(t, 3, sum.Count)
	assert.Equal(t, 3, sum.Pairs)
	assert.NotEmpty(t, sum.LoadID)

	// the store may run ahead of the loaded engine until the next reload
	require.NoError(t, f.repo.ImportSet(context.Background(), models.NewParsedSet(
		[]models.Sample{{X: 1, Y: 1, T: 1}},
	)))
	code, env = f.do(t, http.MethodGet, "/api/v1/summary", "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &sum))
	assert.Equal(t, 3, sum.Count)
	assert.Equal(t, 1, sum.Stored)
}

func TestDebugRequiresToken(t *testing.T) {
	const secret = "debug-secret"
	f := newFixture(t, secret, true)

	code, _ := f.do(t, http.MethodGet, "/api/v1/debug/classifications", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = f.do(t, http.MethodPost, "/api/v1/reload", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	code, env := f.do(t, http.MethodGet, "/api/v1/debug/classifications", token)
	require.Equal(t, http.StatusOK, code)
	var dump struct {
		Data []struct {
			ID    int `json:"id"`
			Slots map[string][]struct {
				Score      float64 `json:"score"`
				NeighborID int     `json:"neighborId"`
			} `json:"slots"`
		} `json:"data"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &dump))
	require.Equal(t, 3, dump.Count)
	slots := dump.Data[0].Slots["length"]
	require.Len(t, slots, 3)
	assert.Equal(t, 2, slots[0].NeighborID)
	assert.Equal(t, 1, slots[1].NeighborID)
	assert.Equal(t, -1, slots[2].NeighborID)
	assert.Equal(t, -1.0, slots[2].Score)
}

func TestReloadRejectsInvalidStore(t *testing.T) {
	f := newFixture(t, "", true)
	require.NoError(t, f.repo.ImportSet(context.Background(), models.ParsedSet{
		DeclaredCount: 1,
		Trajectories:  []models.ParsedTrajectory{{ID: 0, DeclaredSamples: 4, Samples: []models.Sample{{X: 1, Y: 1, T: 1}}}},
	}))

	code, _ := f.do(t, http.MethodPost, "/api/v1/reload", "")
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, _ = f.do(t, http.MethodGet, "/api/v1/trajectories/0/neighbors", "")
	assert.Equal(t, http.StatusOK, code)
}
