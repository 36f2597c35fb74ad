// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package policy implements the per-section record cap policy.
//
// Caps are soft UX guards, not hard data invariants: the workflow checks
// Allows once pre-render (to disable the submit affordance) and once more
// immediately before the write (to reject late or duplicate submissions,
// e.g. a refreshed confirmation page re-posting the form). The two checks
// are deliberately independent because the count can change between them.
package policy

import "github.com/AleutianAI/roboresume/services/resume/datatypes"

const (
	// EducationCap is the maximum number of education records per subject.
	EducationCap = 10

	// WorkCap is the maximum number of work experience records per subject.
	WorkCap = 10

	// SkillCap is the maximum number of skill records per subject.
	SkillCap = 20
)

// Cap returns the record cap for a child section. The personal-details
// section is uncapped and returns 0.
func Cap(kind datatypes.Section) int64 {
	switch kind {
	case datatypes.SectionEducation:
		return EducationCap
	case datatypes.SectionWork:
		return WorkCap
	case datatypes.SectionSkill:
		return SkillCap
	}
	return 0
}

// Allows reports whether one more record of the given kind may be written
// for a subject that currently has count records. Pure, no side effects.
func Allows(kind datatypes.Section, count int64) bool {
	cap := Cap(kind)
	if cap == 0 {
		return true
	}
	return count < cap
}
