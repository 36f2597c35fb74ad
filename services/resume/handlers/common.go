// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package handlers exposes the resume workflow over HTTP.
//
// Each handler resolves the caller's session token from a cookie, invokes
// the workflow controller, and renders either a named view context (JSON:
// a "view" name plus the values that view needs) or a redirect, mirroring
// the navigation outcomes of the workflow: validation failures redisplay
// the form, recoverable not-found conditions redirect, and persistence
// failures surface as a generic 500.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AleutianAI/roboresume/services/resume/datatypes"
	"github.com/AleutianAI/roboresume/services/resume/storage"
	"github.com/AleutianAI/roboresume/services/resume/workflow"
)

// SessionCookie carries the opaque session token that keys the active
// subject. Minted lazily on the first request that needs one.
const SessionCookie = "roboresume_session"

const sessionCookieMaxAge = 30 * 24 * 60 * 60

// sessionToken returns the request's session token, minting and setting a
// new one when the cookie is absent.
func sessionToken(c *gin.Context) string {
	token, err := c.Cookie(SessionCookie)
	if err == nil && token != "" {
		return token
	}
	token = uuid.NewString()
	c.SetCookie(SessionCookie, token, sessionCookieMaxAge, "/", "", false, true)
	return token
}

// renderError translates workflow errors into navigation outcomes.
//
// NoActiveSubject redirects to the index, the safe landing screen. An
// unexpected not-found redirects to editdetails rather than crashing.
// Anything else is a persistence failure: fatal for this request, no
// retry, generic message.
func renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, workflow.ErrNoActiveSubject):
		c.Redirect(http.StatusFound, "/")
	case errors.Is(err, storage.ErrNotFound):
		slog.Warn("record lookup missed", "path", c.Request.URL.Path, "error", err)
		c.Redirect(http.StatusFound, "/editdetails")
	default:
		slog.Error("request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not complete request"})
	}
}

// displayName renders the name banner shown at the top of each section
// view. The fallback only appears when a section URL is typed in manually
// before personal details exist.
func displayName(subject *datatypes.Subject) string {
	if subject == nil {
		return "Please start by entering personal details"
	}
	return subject.FullName()
}

// HealthCheck reports service liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
