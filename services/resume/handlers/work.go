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

// AddWorkGet renders the add-work-experience form. Same flow as
// AddEducationGet with the work cap.
func AddWorkGet(wf *workflow.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := wf.ShowWorkForm(c.Request.Context(), sessionToken(c))
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"view":              "addworkexperience",
			"newWorkExperience": form.Record,
			"currentNumRecords": form.Count,
			"disableSubmit":     form.DisableSubmit,
			"firstAndLastName":  displayName(form.Subject),
			"navState":          form.Nav,
		})
	}
}

// AddWorkPost handles a work experience submission. The confirmation view
// formats an absent end date as "Present" (still employed).
func AddWorkPost(wf *workflow.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rec datatypes.WorkRecord
		if err := c.BindJSON(&rec); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		vr := datatypes.Validate(&rec)
		result, err := wf.SubmitWork(c.Request.Context(), sessionToken(c), &rec, vr)
		if err != nil {
			renderError(c, err)
			return
		}

		if result.Outcome == workflow.OutcomeInvalid {
			c.JSON(http.StatusOK, gin.H{
				"view":              "addworkexperience",
				"newWorkExperience": &rec,
				"fieldErrors":       result.Errors,
				"currentNumRecords": result.Count,
				"disableSubmit":     result.DisableSubmit,
				"firstAndLastName":  displayName(result.Subject),
				"navState":          result.Nav,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"view":                    "addworkexperienceconfirmation",
			"workExperienceJustAdded": &rec,
			"dateEndString":           datatypes.FormatEndDate(rec.DateEnd),
			"currentNumRecords":       result.Count,
			"disableSubmit":           result.DisableSubmit,
			"firstAndLastName":        displayName(result.Subject),
			"navState":                result.Nav,
		})
	}
}
