package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/kanso-productivity-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-productivity-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/services"
	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/workers"
)

type fakeDB struct {
	err error
}

func (f fakeDB) PingContext(ctx context.Context) error { return f.err }

type testAPI struct {
	router  *gin.Engine
	records *repository.InMemoryDailyRecordRepository
	streaks *repository.InMemoryStreakRepository
	tokens  *services.TokenService
}

// "Now" is 2025-09-23 09:00 UTC for every API test.
func setupAPI(t *testing.T, db adapterHTTP.Pinger) *testAPI {
	t.Helper()
	return setupAPIWith(t, db, nil)
}

// setupAPIWith lets a test adjust the router dependencies before the router is built.
func setupAPIWith(t *testing.T, db adapterHTTP.Pinger, tweak func(*adapterHTTP.RouterDependencies)) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := domain.Clock{
		Now:      func() time.Time { return time.Date(2025, 9, 23, 9, 0, 0, 0, time.UTC) },
		Location: time.UTC,
	}

	records := repository.NewInMemoryDailyRecordRepository()
	streaks := repository.NewInMemoryStreakRepository()
	worker := workers.NewStreakWorker(records, streaks, clock, nil)
	tokens := services.NewTokenService("api-test-secret", "kanso-test", time.Hour)

	deps := adapterHTTP.RouterDependencies{
		StatsHandler:  adapterHTTP.NewStatsHandler(services.NewStatsService(records, streaks, clock), nil),
		RecordHandler: adapterHTTP.NewRecordHandler(services.NewRecordService(records, worker, clock), nil),
		TokenService:  tokens,
		DB:            db,
		StartTime:     time.Now(),
	}
	if tweak != nil {
		tweak(&deps)
	}
	router := adapterHTTP.NewRouter(deps)

	return &testAPI{router: router, records: records, streaks: streaks, tokens: tokens}
}

func (a *testAPI) do(t *testing.T, userID, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		token, err := a.tokens.GenerateToken(userID)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) seed(t *testing.T, userID, date string, total, completed int) {
	t.Helper()
	rec := domain.NewDailyRecord(userID, date, total, completed, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, a.records.Upsert(context.Background(), rec))
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

var errDBDown = errors.New("db down")
