// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package datatypes provides the domain data structures for the resume
// service: the Subject (the person whose resume is being built), the three
// child record kinds (education, work experience, skills), the navigation
// state snapshot, and request validation built on go-playground/validator.
package datatypes

// Section identifies one resume section. The string values double as the
// `type` query parameter on the /delete and /update routes.
type Section string

const (
	// SectionPerson is the personal-details section. It is uncapped and
	// singular: one Subject per session, switched via select-for-edit.
	SectionPerson Section = "person"

	// SectionEducation is the education section (capped at 10 records).
	SectionEducation Section = "ed"

	// SectionWork is the work-experience section (capped at 10 records).
	SectionWork Section = "workexp"

	// SectionSkill is the skills section (capped at 20 records).
	SectionSkill Section = "skill"
)

// ParseSection maps a `type` query parameter to a Section.
//
// Outputs:
//
//	Section - The matching section.
//	bool - false if the value names no known section.
func ParseSection(s string) (Section, bool) {
	switch Section(s) {
	case SectionPerson, SectionEducation, SectionWork, SectionSkill:
		return Section(s), true
	}
	return "", false
}

// Anchor returns the editdetails page fragment for a child section, used to
// keep the user scrolled to the section they just deleted from.
func (s Section) Anchor() string {
	switch s {
	case SectionEducation:
		return "education"
	case SectionWork:
		return "workexperiences"
	case SectionSkill:
		return "skills"
	}
	return ""
}
