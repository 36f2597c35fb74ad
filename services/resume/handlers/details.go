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

// EditDetails renders every record of the active subject: personal details
// plus all three child collections, each row editable or deletable.
func EditDetails(wf *workflow.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := wf.EditDetails(c.Request.Context(), sessionToken(c))
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"view":            "editdetails",
			"person":          view.Subject,
			"edAchievements":  view.Education,
			"workExperiences": view.Work,
			"skills":          view.Skills,
			"navState":        view.Nav,
		})
	}
}

// Delete removes one child record and returns to editdetails at the
// record's section anchor. Deleting an id that is already gone (page
// refresh after a delete) is success: the same page is simply redisplayed.
//
// type=person is a bare redirect: cascading subject deletion is not part
// of the workflow contract.
func Delete(wf *workflow.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind, ok := datatypes.ParseSection(c.Query("type"))
		if !ok {
			c.Redirect(http.StatusFound, "/editdetails")
			return
		}
		if kind == datatypes.SectionPerson {
			c.Redirect(http.StatusFound, "/")
			return
		}

		result, err := wf.Delete(c.Request.Context(), sessionToken(c), kind, c.Param("id"))
		if err != nil {
			renderError(c, err)
			return
		}
		c.Redirect(http.StatusFound, "/editdetails#"+result.Anchor)
	}
}

// Update selects a record for editing. type=person switches the session's
// active subject to the record's id; the child types leave the pointer
// alone and edit within the currently active subject.
func Update(wf *workflow.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		token := sessionToken(c)
		id := c.Param("id")

		kind, ok := datatypes.ParseSection(c.Query("type"))
		if !ok {
			c.Redirect(http.StatusFound, "/editdetails")
			return
		}

		switch kind {
		case datatypes.SectionPerson:
			form, err := wf.SelectPersonForEdit(ctx, token, id)
			if err != nil {
				renderError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"view":          "addperson",
				"newPerson":     form.Subject,
				"disableSubmit": false,
				"navState":      form.Nav,
			})

		case datatypes.SectionEducation:
			form, err := wf.SelectEducationForEdit(ctx, token, id)
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

		case datatypes.SectionWork:
			form, err := wf.SelectWorkForEdit(ctx, token, id)
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

		case datatypes.SectionSkill:
			form, err := wf.SelectSkillForEdit(ctx, token, id)
			if err != nil {
				renderError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"view":              "addskill",
				"newSkill":          form.Record,
				"currentNumRecords": form.Count,
				"disableSubmit":     form.DisableSubmit,
				"firstAndLastName":  displayName(form.Subject),
				"navState":          form.Nav,
			})
		}
	}
}

// StartOver wipes all education, work, and skill records for the active
// subject in one atomic operation, then returns to editdetails.
func StartOver(wf *workflow.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := wf.StartOver(c.Request.Context(), sessionToken(c)); err != nil {
			renderError(c, err)
			return
		}
		c.Redirect(http.StatusFound, "/editdetails")
	}
}
