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
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AleutianAI/roboresume/services/resume/handlers"
	"github.com/AleutianAI/roboresume/services/resume/session"
	"github.com/AleutianAI/roboresume/services/resume/workflow"
)

// SetupRoutes registers every workflow route on the router.
//
// The route shape follows the resume workflow: per-section add forms and
// submissions, the editdetails hub with delete/update links, the final
// resume, and the summary screen that switches the active subject.
func SetupRoutes(router *gin.Engine, wf *workflow.Controller, sessions *session.Manager) {
	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/", handlers.Index(wf))
	router.GET("/login", handlers.Login(wf))
	router.GET("/logout", handlers.Logout(sessions))

	router.GET("/addperson", handlers.AddPersonGet(wf))
	router.POST("/addperson", handlers.AddPersonPost(wf))

	router.GET("/addeducation", handlers.AddEducationGet(wf))
	router.POST("/addeducation", handlers.AddEducationPost(wf))

	router.GET("/addworkexperience", handlers.AddWorkGet(wf))
	router.POST("/addworkexperience", handlers.AddWorkPost(wf))

	router.GET("/addskill", handlers.AddSkillGet(wf))
	router.POST("/addskill", handlers.AddSkillPost(wf))

	router.GET("/editdetails", handlers.EditDetails(wf))
	router.GET("/startover", handlers.StartOver(wf))
	router.GET("/delete/:id", handlers.Delete(wf))
	router.GET("/update/:id", handlers.Update(wf))

	router.GET("/finalresume", handlers.FinalResume(wf))
	router.GET("/summary/:id", handlers.Summary(wf))
}
