// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package datatypes

import (
	"fmt"
	"time"
)

// Subject is the person whose resume is being built.
//
// A Subject owns its child records only in the sense of a lookup relation:
// children are stored independently keyed by (subject id, record id) and
// "the Subject's records" is always a store query, never an in-memory
// collection that has to be kept in sync with the store.
type Subject struct {
	// ID is a UUID v4 assigned on first save.
	ID string `json:"id"`

	NameFirst string `json:"nameFirst" validate:"required,max=50"`
	NameLast  string `json:"nameLast" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email,max=100"`
}

// FullName returns the display name shown at the top of each section view.
func (s *Subject) FullName() string {
	return s.NameFirst + " " + s.NameLast
}

// EducationRecord is one education achievement belonging to a Subject.
type EducationRecord struct {
	ID        string `json:"id"`
	SubjectID string `json:"subjectId"`

	School         string `json:"school" validate:"required,max=100"`
	Major          string `json:"major" validate:"required,max=100"`
	DegreeEarned   string `json:"degreeEarned" validate:"required,max=100"`
	GraduationYear int    `json:"graduationYear" validate:"required,gradyear"`
}

// WorkRecord is one work experience belonging to a Subject.
//
// DateEnd is optional: a nil end date means "currently employed" and is
// rendered as "Present" on the confirmation and final resume views.
type WorkRecord struct {
	ID        string `json:"id"`
	SubjectID string `json:"subjectId"`

	Company   string     `json:"company" validate:"required,max=100"`
	JobTitle  string     `json:"jobTitle" validate:"required,max=100"`
	DateStart time.Time  `json:"dateStart" validate:"required"`
	DateEnd   *time.Time `json:"dateEnd,omitempty"`

	Duties string `json:"duties" validate:"max=500"`
}

// SkillRecord is one skill belonging to a Subject.
type SkillRecord struct {
	ID        string `json:"id"`
	SubjectID string `json:"subjectId"`

	Name   string `json:"name" validate:"required,max=50"`
	Rating string `json:"rating" validate:"required,oneof=basic intermediate advanced expert"`
}

// FormatEndDate renders a work record end date for display. A nil end date
// means the position is still held.
func FormatEndDate(t *time.Time) string {
	if t == nil {
		return "Present"
	}
	return FormatDate(*t)
}

// FormatDate renders a date as "Jan 2, 2006" for the confirmation and final
// resume views.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s %d, %d", t.Month().String()[:3], t.Day(), t.Year())
}
