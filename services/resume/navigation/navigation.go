// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package navigation derives the per-request navigation state snapshot.
//
// NavState is a pure function of (active subject existence, three record
// counts) plus the caller-chosen highlighted section. It is recomputed on
// every request and never cached or persisted: the counts feed the navbar
// badges, and link enablement otherwise depends only on the caps.
package navigation

import (
	"github.com/AleutianAI/roboresume/services/resume/datatypes"
	"github.com/AleutianAI/roboresume/services/resume/policy"
)

// Counts holds the current per-section record counts for the active subject.
type Counts struct {
	Education int64 `json:"education"`
	Work      int64 `json:"work"`
	Skills    int64 `json:"skills"`
}

// Highlight names the navbar link to render as active. Unlike Section it
// also covers the edit-details and final-resume links, which are navigation
// targets but not record sections.
type Highlight string

const (
	HighlightNone        Highlight = ""
	HighlightPerson      Highlight = "person"
	HighlightEducation   Highlight = "education"
	HighlightWork        Highlight = "workexperience"
	HighlightSkill       Highlight = "skill"
	HighlightEditDetails Highlight = "editdetails"
	HighlightFinalResume Highlight = "finalresume"
)

// HighlightFor maps a record section to its navbar highlight.
func HighlightFor(kind datatypes.Section) Highlight {
	switch kind {
	case datatypes.SectionPerson:
		return HighlightPerson
	case datatypes.SectionEducation:
		return HighlightEducation
	case datatypes.SectionWork:
		return HighlightWork
	case datatypes.SectionSkill:
		return HighlightSkill
	}
	return HighlightNone
}

// NavState describes which navbar links are navigable, the badge counts to
// show, and which section is visually highlighted.
//
// Exactly one section is highlighted per build, chosen by the caller's
// context (which screen is being shown). Highlighting is independent of
// enablement: a disabled link may still be the highlighted one when the
// user navigated to the screen directly by URL.
type NavState struct {
	NumEducation int64 `json:"numEducation"`
	NumWork      int64 `json:"numWork"`
	NumSkills    int64 `json:"numSkills"`

	DisableAddEducation bool `json:"disableAddEducation"`
	DisableAddWork      bool `json:"disableAddWork"`
	DisableAddSkill     bool `json:"disableAddSkill"`
	DisableEditDetails  bool `json:"disableEditDetails"`
	DisableFinalResume  bool `json:"disableFinalResume"`

	Highlight Highlight `json:"highlight"`
}

// Build computes the navigation state for one request.
//
// Inputs:
//
//	counts - Current per-section counts, or nil when no subject is active.
//	highlight - The section whose navbar link should be highlighted.
//
// Outputs:
//
//	NavState - With nil counts: every link disabled and all badges zero.
//	Otherwise: add links disabled at their caps, edit-details always
//	enabled, final-resume disabled until the subject has at least one
//	education record and at least one skill.
func Build(counts *Counts, highlight Highlight) NavState {
	if counts == nil {
		return NavState{
			DisableAddEducation: true,
			DisableAddWork:      true,
			DisableAddSkill:     true,
			DisableEditDetails:  true,
			DisableFinalResume:  true,
			Highlight:           highlight,
		}
	}

	return NavState{
		NumEducation:        counts.Education,
		NumWork:             counts.Work,
		NumSkills:           counts.Skills,
		DisableAddEducation: !policy.Allows(datatypes.SectionEducation, counts.Education),
		DisableAddWork:      !policy.Allows(datatypes.SectionWork, counts.Work),
		DisableAddSkill:     !policy.Allows(datatypes.SectionSkill, counts.Skills),
		DisableEditDetails:  false,
		DisableFinalResume:  counts.Skills == 0 || counts.Education == 0,
		Highlight:           highlight,
	}
}
