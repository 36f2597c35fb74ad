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

	"github.com/AleutianAI/roboresume/services/resume/datatypes"
	"github.com/AleutianAI/roboresume/services/resume/workflow"
)

// AddEducationGet renders the add-education form with a fresh record
// attached to the active subject. The submit affordance is disabled at the
// cap so a user who typed the URL in directly cannot add an 11th record
// from the form.
func AddEducationGet(wf *workflow.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := wf.ShowEducationForm(c.Request.Context(), sessionToken(c))
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"view":              "addeducation",
			"newEdAchievement":  form.Record,
			"currentNumRecords": form.Count,
			"disableSubmit":     form.DisableSubmit,
			"firstAndLastName":  displayName(form.Subject),
			"navState":          form.Nav,
		})
	}
}

// AddEducationPost handles an education submission.
//
// The confirmation view always shows the submitted record itself. When the
// pre-write cap check blocked the write the count comes back unchanged and
// disableSubmit is already true, but the record on screen is still the one
// the user typed.
func AddEducationPost(wf *workflow.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rec datatypes.EducationRecord
		if err := c.BindJSON(&rec); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		vr := datatypes.Validate(&rec)
		result, err := wf.SubmitEducation(c.Request.Context(), sessionToken(c), &rec, vr)
		if err != nil {
			renderError(c, err)
			return
		}

		if result.Outcome == workflow.OutcomeInvalid {
			c.JSON(http.StatusOK, gin.H{
				"view":              "addeducation",
				"newEdAchievement":  &rec,
				"fieldErrors":       result.Errors,
				"currentNumRecords": result.Count,
				"disableSubmit":     result.DisableSubmit,
				"firstAndLastName":  displayName(result.Subject),
				"navState":          result.Nav,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"view":                   "addeducationconfirmation",
			"edAchievementJustAdded": &rec,
			"currentNumRecords":      result.Count,
			"disableSubmit":          result.DisableSubmit,
			"firstAndLastName":       displayName(result.Subject),
			"navState":               result.Nav,
		})
	}
}
