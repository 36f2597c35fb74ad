// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package workflow

import (
	"github.com/AleutianAI/roboresume/services/resume/datatypes"
	"github.com/AleutianAI/roboresume/services/resume/navigation"
)

// SubmitOutcome reports how a section submission resolved.
//
// CapBlocked is the explicit result of the pre-write cap check: the write
// was skipped, no error. The HTTP boundary still renders the confirmation
// view from the in-memory submitted record, so that confirmation is stale;
// making the variant explicit lets the boundary change that decision
// without touching the workflow.
type SubmitOutcome string

const (
	OutcomeInvalid    SubmitOutcome = "invalid"
	OutcomePersisted  SubmitOutcome = "persisted"
	OutcomeCapBlocked SubmitOutcome = "cap_blocked"
)

// PersonForm is the context for the personal-details form. A nil Subject
// means no subject is active yet and the form is a blank create form.
type PersonForm struct {
	Subject *datatypes.Subject
	Nav     navigation.NavState
}

// PersonSubmitResult is the outcome of a personal-details submission.
// Subject is the stored subject on success (with its assigned id).
type PersonSubmitResult struct {
	Outcome SubmitOutcome
	Subject *datatypes.Subject
	Errors  []datatypes.FieldError
	Nav     navigation.NavState
}

// EducationForm is the context for the add/edit education form.
type EducationForm struct {
	Subject       *datatypes.Subject
	Record        *datatypes.EducationRecord
	Count         int64
	DisableSubmit bool
	Nav           navigation.NavState
}

// WorkForm is the context for the add/edit work experience form.
type WorkForm struct {
	Subject       *datatypes.Subject
	Record        *datatypes.WorkRecord
	Count         int64
	DisableSubmit bool
	Nav           navigation.NavState
}

// SkillForm is the context for the add/edit skill form.
type SkillForm struct {
	Subject       *datatypes.Subject
	Record        *datatypes.SkillRecord
	Count         int64
	DisableSubmit bool
	Nav           navigation.NavState
}

// SubmitResult is the outcome of a child-section submission.
//
// Count and DisableSubmit are re-read after the write, so a cap-blocked
// submission reports the unchanged count. The boundary holds the submitted
// record itself and shows it on the confirmation view regardless of
// Outcome.
type SubmitResult struct {
	Outcome       SubmitOutcome
	Subject       *datatypes.Subject
	Count         int64
	DisableSubmit bool
	Errors        []datatypes.FieldError
	Nav           navigation.NavState
}

// DeleteResult is the outcome of an idempotent child delete. Anchor is the
// editdetails fragment to scroll back to.
type DeleteResult struct {
	Outcome DeleteOutcome
	Anchor  string
}

// DetailsView is the context for the editdetails and finalresume views:
// the subject plus all three child collections, read fresh from the store.
type DetailsView struct {
	Subject   *datatypes.Subject
	Education []datatypes.EducationRecord
	Work      []datatypes.WorkRecord
	Skills    []datatypes.SkillRecord
	Nav       navigation.NavState
}

// SummaryView is the context for the per-subject summary screen shown when
// a subject is selected from a listing.
type SummaryView struct {
	Subject         *datatypes.Subject
	Counts          navigation.Counts
	SummaryBarTitle string
	Nav             navigation.NavState
}
