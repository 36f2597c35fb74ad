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
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/roboresume/services/resume/workflow"
)

// FinalResume renders the compiled resume for the active subject. The
// navbar only enables this link once the subject has at least one
// education record and one skill.
func FinalResume(wf *workflow.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := wf.FinalResume(c.Request.Context(), sessionToken(c))
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"view":            "finalresume",
			"person":          view.Subject,
			"edAchievements":  view.Education,
			"workExperiences": view.Work,
			"skills":          view.Skills,
			"navState":        view.Nav,
		})
	}
}

// Summary switches the session's active subject to :id and shows that
// subject's per-section record counts. This is how an existing resume is
// picked up for further editing.
func Summary(wf *workflow.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := wf.Summary(c.Request.Context(), sessionToken(c), c.Param("id"))
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"view":             "summary",
			"numEds":           view.Counts.Education,
			"numWorkExps":      view.Counts.Work,
			"numSkills":        view.Counts.Skills,
			"firstAndLastName": displayName(view.Subject),
			"summaryBarTitle":  view.SummaryBarTitle,
			"navState":         view.Nav,
		})
	}
}
