package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftlog-hr/timeclock-backend-go/internal/domain/timeclock"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/pkg/jwt"
)

const (
	handlerTestSecret     = "test-secret-key-for-jwt"
	handlerTestAccessExp  = "1h"
	handlerTestRefreshExp = "24h"
)

type fakeStampService struct {
	actions []timeclock.StampAction
	status  timeclock.WorkStatus
}

func (f *fakeStampService) Stamp(ctx context.Context, action timeclock.StampAction, workerID string, now time.Time) error {
	switch action {
	case timeclock.ActionBeginShift, timeclock.ActionEndShift, timeclock.ActionBeginBreak, timeclock.ActionEndBreak:
		f.actions = append(f.actions, action)
		return nil
	default:
		return timeclock.ErrUnknownStampAction
	}
}

func (f *fakeStampService) BeginShift(ctx context.Context, workerID string, now time.Time) error {
	return f.Stamp(ctx, timeclock.ActionBeginShift, workerID, now)
}

func (f *fakeStampService) EndShift(ctx context.Context, workerID string, now time.Time) error {
	return f.Stamp(ctx, timeclock.ActionEndShift, workerID, now)
}

func (f *fakeStampService) BeginBreak(ctx context.Context, workerID string, now time.Time) error {
	return f.Stamp(ctx, timeclock.ActionBeginBreak, workerID, now)
}

func (f *fakeStampService) EndBreak(ctx context.Context, workerID string, now time.Time) error {
	return f.Stamp(ctx, timeclock.ActionEndBreak, workerID, now)
}

func (f *fakeStampService) Status(ctx context.Context, workerID string, now time.Time) (timeclock.StatusResponse, error) {
	return timeclock.StatusResponse{WorkerID: workerID, Status: f.status}, nil
}

func newStampTestRouter(svc timeclock.StampService) (*chi.Mux, jwt.Service) {
	jwtService := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp, handlerTestRefreshExp)
	handler := NewStampHandler(svc, time.UTC)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
		r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

		r.Post("/stamps", handler.Stamp)
		r.Post("/shift/begin", handler.BeginShift)
		r.Post("/shift/end", handler.EndShift)
		r.Post("/break/begin", handler.BeginBreak)
		r.Post("/break/end", handler.EndBreak)
		r.Get("/status", handler.Status)
	})
	return r, jwtService
}

func accessToken(t *testing.T, jwtService jwt.Service) string {
	t.Helper()
	token, _, err := jwtService.GenerateAccessToken("w1", "Aoki", "aoki@example.com")
	require.NoError(t, err)
	return token
}

func doRequest(router http.Handler, method, path, token string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestStampEndpoints(t *testing.T) {
	svc := &fakeStampService{status: timeclock.StatusDuring}
	router, jwtService := newStampTestRouter(svc)
	token := accessToken(t, jwtService)

	rec := doRequest(router, http.MethodPost, "/shift/begin", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, http.MethodPost, "/break/begin", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, http.MethodPost, "/break/end", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, http.MethodPost, "/shift/end", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, []timeclock.StampAction{
		timeclock.ActionBeginShift,
		timeclock.ActionBeginBreak,
		timeclock.ActionEndBreak,
		timeclock.ActionEndShift,
	}, svc.actions)

	var res struct {
		Success bool                     `json:"success"`
		Data    timeclock.StatusResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, "w1", res.Data.WorkerID)
	assert.Equal(t, timeclock.StatusDuring, res.Data.Status)
}

func TestStampGenericEndpoint(t *testing.T) {
	svc := &fakeStampService{status: timeclock.StatusBreak}
	router, jwtService := newStampTestRouter(svc)
	token := accessToken(t, jwtService)

	t.Run("valid action", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"action": "begin_break"})
		rec := doRequest(router, http.MethodPost, "/stamps", token, body)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, svc.actions, timeclock.ActionBeginBreak)
	})

	t.Run("unknown action", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"action": "teleport"})
		rec := doRequest(router, http.MethodPost, "/stamps", token, body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/stamps", token, []byte("{"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestStampAuth(t *testing.T) {
	svc := &fakeStampService{status: timeclock.StatusBefore}
	router, jwtService := newStampTestRouter(svc)

	t.Run("missing token", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/shift/begin", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("refresh token rejected as bearer", func(t *testing.T) {
		refresh, _, err := jwtService.GenerateRefreshToken("w1")
		require.NoError(t, err)

		rec := doRequest(router, http.MethodPost, "/shift/begin", refresh, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("access token without worker id rejected", func(t *testing.T) {
		_, token, err := jwtService.JWTAuth().Encode(map[string]interface{}{
			"type": "access",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
		require.NoError(t, err)

		rec := doRequest(router, http.MethodGet, "/status", token, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("status with valid token", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/status", accessToken(t, jwtService), nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	assert.Empty(t, svc.actions)
}
