// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/roboresume/services/resume/session"
	"github.com/AleutianAI/roboresume/services/resume/storage"
	"github.com/AleutianAI/roboresume/services/resume/workflow"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	sessions := session.NewManager()
	wf := workflow.NewController(storage.NewMemStore(), sessions, nil, nil)
	router := gin.New()
	SetupRoutes(router, wf, sessions)
	return router
}

func TestSetupRoutes_RegistersWorkflowRoutes(t *testing.T) {
	router := newRouter(t)

	registered := make(map[string]bool)
	for _, r := range router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /health",
		"GET /metrics",
		"GET /",
		"GET /login",
		"GET /logout",
		"GET /addperson",
		"POST /addperson",
		"GET /addeducation",
		"POST /addeducation",
		"GET /addworkexperience",
		"POST /addworkexperience",
		"GET /addskill",
		"POST /addskill",
		"GET /editdetails",
		"GET /startover",
		"GET /delete/:id",
		"GET /update/:id",
		"GET /finalresume",
		"GET /summary/:id",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestUnknownRouteIs404(t *testing.T) {
	router := newRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/definitely-not-a-route", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
