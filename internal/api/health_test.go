// Copyright (c) 2026 Kasane. All rights reserved.

package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveness_AlwaysOK(t *testing.T) {
	liveness, _ := NewHealthHandlers(HealthDependencies{}, slog.New(slog.DiscardHandler))

	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestReadiness_ReadyWhenDependenciesHealthy(t *testing.T) {
	_, readiness := NewHealthHandlers(HealthDependencies{
		CheckDatabase: func() error { return nil },
		CheckCache:    func() error { return nil },
	}, slog.New(slog.DiscardHandler))

	recorder := httptest.NewRecorder()
	readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Status string `json:"status"`
		Checks []struct {
			Name string `json:"name"`
			IsOK bool   `json:"ok"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "ready", body.Status)
	require.Len(t, body.Checks, 2)
	assert.True(t, body.Checks[0].IsOK)
	assert.True(t, body.Checks[1].IsOK)
}

func TestReadiness_DegradedWhenCacheDown(t *testing.T) {
	_, readiness := NewHealthHandlers(HealthDependencies{
		CheckDatabase: func() error { return nil },
		CheckCache:    func() error { return errors.New("connection refused") },
	}, slog.New(slog.DiscardHandler))

	recorder := httptest.NewRecorder()
	readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	var body struct {
		Status string `json:"status"`
		Checks []struct {
			Name  string `json:"name"`
			IsOK  bool   `json:"ok"`
			Error string `json:"error"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)

	var redisCheck *struct {
		Name  string `json:"name"`
		IsOK  bool   `json:"ok"`
		Error string `json:"error"`
	}
	for i := range body.Checks {
		if body.Checks[i].Name == "redis" {
			redisCheck = &body.Checks[i]
		}
	}
	require.NotNil(t, redisCheck)
	assert.False(t, redisCheck.IsOK)
	assert.Contains(t, redisCheck.Error, "connection refused")
}
