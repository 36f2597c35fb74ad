// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/roboresume/services/resume/datatypes"
	"github.com/AleutianAI/roboresume/services/resume/session"
	"github.com/AleutianAI/roboresume/services/resume/workflow"
)

// Index renders the welcome screen.
func Index(wf *workflow.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		nav, err := wf.NavState(c.Request.Context(), sessionToken(c), "")
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"view": "index", "navState": nav})
	}
}

// Login renders the login screen.
func Login(wf *workflow.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		nav, err := wf.NavState(c.Request.Context(), sessionToken(c), "")
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"view": "login", "navState": nav})
	}
}

// Logout clears the session's active subject and drops the session cookie,
// returning the user to the login screen.
func Logout(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
			sessions.Clear(token)
			c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
			slog.Info("session ended")
		}
		c.JSON(http.StatusOK, gin.H{"view": "login"})
	}
}

// AddPersonGet renders the personal-details form. With no active subject
// the form is blank and submitting it creates the subject; otherwise it is
// pre-filled for editing.
func AddPersonGet(wf *workflow.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := wf.ShowPersonForm(c.Request.Context(), sessionToken(c))
		if err != nil {
			renderError(c, err)
			return
		}
		subject := form.Subject
		if subject == nil {
			subject = &datatypes.Subject{}
		}
		c.JSON(http.StatusOK, gin.H{
			"view":      "addperson",
			"newPerson": subject,
			"navState":  form.Nav,
		})
	}
}

// AddPersonPost handles a personal-details submission. Validation failures
// redisplay the form with field errors and nothing persisted; success
// moves on to the education section, the next logical step.
func AddPersonPost(wf *workflow.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		var submitted datatypes.Subject
		if err := c.BindJSON(&submitted); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		vr := datatypes.Validate(&submitted)
		result, err := wf.SubmitPerson(c.Request.Context(), sessionToken(c), &submitted, vr)
		if err != nil {
			renderError(c, err)
			return
		}

		if result.Outcome == workflow.OutcomeInvalid {
			c.JSON(http.StatusOK, gin.H{
				"view":        "addperson",
				"newPerson":   &submitted,
				"fieldErrors": result.Errors,
				"navState":    result.Nav,
			})
			return
		}

		c.Redirect(http.StatusFound, "/addeducation")
	}
}
