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
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/roboresume/services/resume/datatypes"
	"github.com/AleutianAI/roboresume/services/resume/navigation"
	"github.com/AleutianAI/roboresume/services/resume/policy"
	"github.com/AleutianAI/roboresume/services/resume/session"
	"github.com/AleutianAI/roboresume/services/resume/storage"
)

const testToken = "tok-1"

func newTestController(t *testing.T) (*Controller, storage.Store, *session.Manager) {
	t.Helper()
	store := storage.NewMemStore()
	sessions := session.NewManager()
	wf := NewController(store, sessions, nil, nil)
	return wf, store, sessions
}

// createSubject submits valid personal details on the token, which creates
// the subject and points the session at it.
func createSubject(t *testing.T, wf *Controller, token, first, last string) *datatypes.Subject {
	t.Helper()
	subj := &datatypes.Subject{
		NameFirst: first,
		NameLast:  last,
		Email:     fmt.Sprintf("%s@x.io", first),
	}
	res, err := wf.SubmitPerson(context.Background(), token, subj, datatypes.Validate(subj))
	require.NoError(t, err)
	require.Equal(t, OutcomePersisted, res.Outcome)
	require.NotEmpty(t, res.Subject.ID)
	return res.Subject
}

func validEducation() *datatypes.EducationRecord {
	return &datatypes.EducationRecord{
		School:         "Cambridge",
		Major:          "Mathematics",
		DegreeEarned:   "BA",
		GraduationYear: 1985,
	}
}

func validSkill() *datatypes.SkillRecord {
	return &datatypes.SkillRecord{Name: "Analysis", Rating: "expert"}
}

// ----- Session pointer and active subject -----

func TestChildFormWithoutActiveSubject(t *testing.T) {
	wf, _, _ := newTestController(t)

	_, err := wf.ShowEducationForm(context.Background(), testToken)
	assert.ErrorIs(t, err, ErrNoActiveSubject)

	_, err = wf.ShowWorkForm(context.Background(), testToken)
	assert.ErrorIs(t, err, ErrNoActiveSubject)

	_, err = wf.ShowSkillForm(context.Background(), testToken)
	assert.ErrorIs(t, err, ErrNoActiveSubject)
}

func TestPersonFormWithoutActiveSubjectIsBlank(t *testing.T) {
	wf, _, _ := newTestController(t)

	form, err := wf.ShowPersonForm(context.Background(), testToken)
	require.NoError(t, err)
	assert.Nil(t, form.Subject)
	assert.True(t, form.Nav.DisableAddEducation)
	assert.True(t, form.Nav.DisableEditDetails)
}

func TestStalePointerToDeletedSubject(t *testing.T) {
	wf, store, _ := newTestController(t)
	ctx := context.Background()
	subj := createSubject(t, wf, testToken, "Ada", "Lovelace")

	require.NoError(t, store.Subjects().DeleteByID(ctx, subj.ID))

	// The pointer still holds the id, but the subject is gone; child
	// operations treat that exactly like no pointer at all.
	_, err := wf.ShowEducationForm(ctx, testToken)
	assert.ErrorIs(t, err, ErrNoActiveSubject)

	form, err := wf.ShowPersonForm(ctx, testToken)
	require.NoError(t, err)
	assert.Nil(t, form.Subject)
}

func TestSubmitPersonCreatesAndBindsSession(t *testing.T) {
	wf, store, sessions := newTestController(t)
	ctx := context.Background()

	subj := createSubject(t, wf, testToken, "Ada", "Lovelace")

	id, ok := sessions.Get(testToken)
	require.True(t, ok)
	assert.Equal(t, subj.ID, id)

	stored, err := store.Subjects().FindByID(ctx, subj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", stored.NameFirst)
}

func TestSubmitPersonUpdatesActiveSubjectInPlace(t *testing.T) {
	wf, store, _ := newTestController(t)
	ctx := context.Background()
	subj := createSubject(t, wf, testToken, "Ada", "Lovelace")

	rec := validEducation()
	_, err := wf.SubmitEducation(ctx, testToken, rec, datatypes.Validate(rec))
	require.NoError(t, err)

	update := &datatypes.Subject{NameFirst: "Augusta", NameLast: "King", Email: "augusta@x.io"}
	res, err := wf.SubmitPerson(ctx, testToken, update, datatypes.Validate(update))
	require.NoError(t, err)
	require.Equal(t, OutcomePersisted, res.Outcome)

	// Same identity, new details, child records intact.
	assert.Equal(t, subj.ID, res.Subject.ID)
	assert.Equal(t, "Augusta", res.Subject.NameFirst)
	n, err := store.Education().CountForSubject(ctx, subj.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSubmitPersonInvalidRedisplays(t *testing.T) {
	wf, _, sessions := newTestController(t)

	bad := &datatypes.Subject{NameFirst: "Ada"} // missing last name and email
	res, err := wf.SubmitPerson(context.Background(), testToken, bad, datatypes.Validate(bad))
	require.NoError(t, err)
	assert.Equal(t, OutcomeInvalid, res.Outcome)
	assert.NotEmpty(t, res.Errors)

	// Nothing was created or bound.
	_, ok := sessions.Get(testToken)
	assert.False(t, ok)
}

func TestSelectPersonForEditSwitchesSession(t *testing.T) {
	wf, _, sessions := newTestController(t)
	ctx := context.Background()

	createSubject(t, wf, testToken, "Ada", "Lovelace")
	rec := validEducation()
	_, err := wf.SubmitEducation(ctx, testToken, rec, datatypes.Validate(rec))
	require.NoError(t, err)

	grace := createSubject(t, wf, "tok-2", "Grace", "Hopper")

	form, err := wf.SelectPersonForEdit(ctx, testToken, grace.ID)
	require.NoError(t, err)
	assert.Equal(t, grace.ID, form.Subject.ID)

	id, ok := sessions.Get(testToken)
	require.True(t, ok)
	assert.Equal(t, grace.ID, id)

	// Subsequent child forms now belong to the new subject: Ada's
	// education record does not show up in Grace's count.
	eduForm, err := wf.ShowEducationForm(ctx, testToken)
	require.NoError(t, err)
	assert.Equal(t, grace.ID, eduForm.Subject.ID)
	assert.Zero(t, eduForm.Count)
}

func TestSelectPersonForEditUnknownID(t *testing.T) {
	wf, _, _ := newTestController(t)
	_, err := wf.SelectPersonForEdit(context.Background(), testToken, "nope")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

// ----- Child submissions and caps -----

func TestSubmitEducationPersists(t *testing.T) {
	wf, store, _ := newTestController(t)
	ctx := context.Background()
	subj := createSubject(t, wf, testToken, "Ada", "Lovelace")

	rec := validEducation()
	res, err := wf.SubmitEducation(ctx, testToken, rec, datatypes.Validate(rec))
	require.NoError(t, err)
	assert.Equal(t, OutcomePersisted, res.Outcome)
	assert.Equal(t, int64(1), res.Count)
	assert.False(t, res.DisableSubmit)
	assert.NotEmpty(t, rec.ID, "submitted record carries the stored id")
	assert.Equal(t, subj.ID, rec.SubjectID)

	n, err := store.Education().CountForSubject(ctx, subj.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSubmitEducationInvalidSkipsWrite(t *testing.T) {
	wf, store, _ := newTestController(t)
	ctx := context.Background()
	subj := createSubject(t, wf, testToken, "Ada", "Lovelace")

	bad := &datatypes.EducationRecord{School: "Cambridge"} // missing the rest
	res, err := wf.SubmitEducation(ctx, testToken, bad, datatypes.Validate(bad))
	require.NoError(t, err)
	assert.Equal(t, OutcomeInvalid, res.Outcome)
	assert.NotEmpty(t, res.Errors)
	assert.Zero(t, res.Count)

	n, err := store.Education().CountForSubject(ctx, subj.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

// The cap check is read-then-write without serialization: two submits
// racing at cap-1 can both pass and land one record over the cap. The caps
// are soft UX guards, so this suite only asserts sequential behavior.
func TestEducationCapSaturation(t *testing.T) {
	wf, store, _ := newTestController(t)
	ctx := context.Background()
	subj := createSubject(t, wf, testToken, "Ada", "Lovelace")

	cap := policy.Cap(datatypes.SectionEducation)
	for i := int64(0); i < cap; i++ {
		rec := validEducation()
		res, err := wf.SubmitEducation(ctx, testToken, rec, datatypes.Validate(rec))
		require.NoError(t, err)
		require.Equal(t, OutcomePersisted, res.Outcome)
	}

	// At the cap the form comes back with submit disabled.
	form, err := wf.ShowEducationForm(ctx, testToken)
	require.NoError(t, err)
	assert.Equal(t, cap, form.Count)
	assert.True(t, form.DisableSubmit)
	assert.True(t, form.Nav.DisableAddEducation)

	// A submission past the cap is skipped without error, the count holds,
	// and the record keeps no stored id: the confirmation the boundary
	// renders from it is stale, showing data that was never persisted.
	extra := validEducation()
	res, err := wf.SubmitEducation(ctx, testToken, extra, datatypes.Validate(extra))
	require.NoError(t, err)
	assert.Equal(t, OutcomeCapBlocked, res.Outcome)
	assert.Equal(t, cap, res.Count)
	assert.True(t, res.DisableSubmit)
	assert.Empty(t, extra.ID)

	n, err := store.Education().CountForSubject(ctx, subj.ID)
	require.NoError(t, err)
	assert.Equal(t, cap, n)
}

func TestSkillCapIsTwenty(t *testing.T) {
	wf, _, _ := newTestController(t)
	ctx := context.Background()
	createSubject(t, wf, testToken, "Ada", "Lovelace")

	cap := policy.Cap(datatypes.SectionSkill)
	require.Equal(t, int64(20), cap)
	for i := int64(0); i < cap; i++ {
		rec := validSkill()
		res, err := wf.SubmitSkill(ctx, testToken, rec, datatypes.Validate(rec))
		require.NoError(t, err)
		require.Equal(t, OutcomePersisted, res.Outcome)
	}

	rec := validSkill()
	res, err := wf.SubmitSkill(ctx, testToken, rec, datatypes.Validate(rec))
	require.NoError(t, err)
	assert.Equal(t, OutcomeCapBlocked, res.Outcome)
}

func TestSubmitWorkOpenEnded(t *testing.T) {
	wf, store, _ := newTestController(t)
	ctx := context.Background()
	subj := createSubject(t, wf, testToken, "Ada", "Lovelace")

	rec := &datatypes.WorkRecord{
		Company:   "Analytical Engines Ltd",
		JobTitle:  "Programmer",
		DateStart: time.Date(1843, time.July, 1, 0, 0, 0, 0, time.UTC),
	}
	res, err := wf.SubmitWork(ctx, testToken, rec, datatypes.Validate(rec))
	require.NoError(t, err)
	assert.Equal(t, OutcomePersisted, res.Outcome)

	stored, err := store.Work().FindByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.DateEnd)
	assert.Equal(t, subj.ID, stored.SubjectID)
}

// ----- Select for edit -----

func TestSelectEducationForEdit(t *testing.T) {
	wf, _, _ := newTestController(t)
	ctx := context.Background()
	createSubject(t, wf, testToken, "Ada", "Lovelace")

	rec := validEducation()
	_, err := wf.SubmitEducation(ctx, testToken, rec, datatypes.Validate(rec))
	require.NoError(t, err)

	form, err := wf.SelectEducationForEdit(ctx, testToken, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, form.Record.ID)
	assert.Equal(t, "Cambridge", form.Record.School)
	assert.False(t, form.DisableSubmit)
}

func TestSelectEducationForEditUnknownID(t *testing.T) {
	wf, _, _ := newTestController(t)
	createSubject(t, wf, testToken, "Ada", "Lovelace")

	_, err := wf.SelectEducationForEdit(context.Background(), testToken, "nope")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

// Editing an existing record resubmits it under its stored id, so the count
// does not grow and the edit is allowed even at the cap.
func TestResubmitExistingRecordAtCap(t *testing.T) {
	wf, store, _ := newTestController(t)
	ctx := context.Background()
	createSubject(t, wf, testToken, "Ada", "Lovelace")

	cap := policy.Cap(datatypes.SectionSkill)
	var first *datatypes.SkillRecord
	for i := int64(0); i < cap; i++ {
		rec := validSkill()
		_, err := wf.SubmitSkill(ctx, testToken, rec, datatypes.Validate(rec))
		require.NoError(t, err)
		if first == nil {
			first = rec
		}
	}

	// The cap check runs on the pre-write count, so a resubmission of an
	// existing record at the cap is blocked too, even though the edit form
	// never disables its submit button.
	first.Rating = "basic"
	res, err := wf.SubmitSkill(ctx, testToken, first, datatypes.Validate(first))
	require.NoError(t, err)
	assert.Equal(t, OutcomeCapBlocked, res.Outcome)

	stored, err := store.Skills().FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "expert", stored.Rating)
}

// ----- Delete -----

func TestDeleteRemovesRecordAndReturnsAnchor(t *testing.T) {
	wf, store, _ := newTestController(t)
	ctx := context.Background()
	createSubject(t, wf, testToken, "Ada", "Lovelace")

	rec := validEducation()
	_, err := wf.SubmitEducation(ctx, testToken, rec, datatypes.Validate(rec))
	require.NoError(t, err)

	res, err := wf.Delete(ctx, testToken, datatypes.SectionEducation, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, DeleteOutcomeDeleted, res.Outcome)
	assert.Equal(t, "education", res.Anchor)

	_, err = store.Education().FindByID(ctx, rec.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	wf, _, _ := newTestController(t)
	ctx := context.Background()
	createSubject(t, wf, testToken, "Ada", "Lovelace")

	rec := validSkill()
	_, err := wf.SubmitSkill(ctx, testToken, rec, datatypes.Validate(rec))
	require.NoError(t, err)

	before, err := wf.NavState(ctx, testToken, navigation.HighlightNone)
	require.NoError(t, err)

	res, err := wf.Delete(ctx, testToken, datatypes.SectionSkill, "never-existed")
	require.NoError(t, err)
	assert.Equal(t, DeleteOutcomeAlreadyGone, res.Outcome)
	assert.Equal(t, "skills", res.Anchor)

	// Deleting a missing id changes nothing observable.
	after, err := wf.NavState(ctx, testToken, navigation.HighlightNone)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDeletePersonIsRejected(t *testing.T) {
	wf, _, _ := newTestController(t)
	createSubject(t, wf, testToken, "Ada", "Lovelace")

	_, err := wf.Delete(context.Background(), testToken, datatypes.SectionPerson, "any")
	assert.Error(t, err)
}

// ----- StartOver -----

func TestStartOverClearsAllSections(t *testing.T) {
	wf, store, _ := newTestController(t)
	ctx := context.Background()
	subj := createSubject(t, wf, testToken, "Ada", "Lovelace")

	edu := validEducation()
	_, err := wf.SubmitEducation(ctx, testToken, edu, datatypes.Validate(edu))
	require.NoError(t, err)
	work := &datatypes.WorkRecord{
		Company: "Initrode", JobTitle: "Analyst",
		DateStart: time.Date(2019, time.May, 1, 0, 0, 0, 0, time.UTC),
	}
	_, err = wf.SubmitWork(ctx, testToken, work, datatypes.Validate(work))
	require.NoError(t, err)
	skill := validSkill()
	_, err = wf.SubmitSkill(ctx, testToken, skill, datatypes.Validate(skill))
	require.NoError(t, err)

	require.NoError(t, wf.StartOver(ctx, testToken))

	view, err := wf.EditDetails(ctx, testToken)
	require.NoError(t, err)
	assert.Empty(t, view.Education)
	assert.Empty(t, view.Work)
	assert.Empty(t, view.Skills)
	assert.Equal(t, subj.ID, view.Subject.ID)

	// The subject itself and the session pointer survive.
	nav, err := wf.NavState(ctx, testToken, navigation.HighlightNone)
	require.NoError(t, err)
	assert.False(t, nav.DisableAddEducation)
	assert.True(t, nav.DisableFinalResume)

	n, err := store.Skills().CountForSubject(ctx, subj.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStartOverWithoutActiveSubject(t *testing.T) {
	wf, _, _ := newTestController(t)
	err := wf.StartOver(context.Background(), testToken)
	assert.ErrorIs(t, err, ErrNoActiveSubject)
}

// ----- Navigation transitions -----

func TestFinalResumeEnablesWithEducationAndSkill(t *testing.T) {
	wf, _, _ := newTestController(t)
	ctx := context.Background()
	createSubject(t, wf, testToken, "Ada", "Lovelace")

	nav, err := wf.NavState(ctx, testToken, navigation.HighlightNone)
	require.NoError(t, err)
	assert.True(t, nav.DisableFinalResume)

	edu := validEducation()
	_, err = wf.SubmitEducation(ctx, testToken, edu, datatypes.Validate(edu))
	require.NoError(t, err)

	nav, err = wf.NavState(ctx, testToken, navigation.HighlightNone)
	require.NoError(t, err)
	assert.True(t, nav.DisableFinalResume, "education alone is not enough")

	skill := validSkill()
	_, err = wf.SubmitSkill(ctx, testToken, skill, datatypes.Validate(skill))
	require.NoError(t, err)

	nav, err = wf.NavState(ctx, testToken, navigation.HighlightNone)
	require.NoError(t, err)
	assert.False(t, nav.DisableFinalResume)

	// Deleting the only skill flips it back off. NavState is derived per
	// call, never cached.
	_, err = wf.Delete(ctx, testToken, datatypes.SectionSkill, skill.ID)
	require.NoError(t, err)
	nav, err = wf.NavState(ctx, testToken, navigation.HighlightNone)
	require.NoError(t, err)
	assert.True(t, nav.DisableFinalResume)
}

// ----- Read-only views -----

func TestEditDetailsView(t *testing.T) {
	wf, _, _ := newTestController(t)
	ctx := context.Background()
	subj := createSubject(t, wf, testToken, "Ada", "Lovelace")

	edu := validEducation()
	_, err := wf.SubmitEducation(ctx, testToken, edu, datatypes.Validate(edu))
	require.NoError(t, err)

	view, err := wf.EditDetails(ctx, testToken)
	require.NoError(t, err)
	assert.Equal(t, subj.ID, view.Subject.ID)
	require.Len(t, view.Education, 1)
	assert.Equal(t, "Cambridge", view.Education[0].School)
	assert.Equal(t, navigation.HighlightEditDetails, view.Nav.Highlight)
}

func TestFinalResumeWithoutActiveSubject(t *testing.T) {
	wf, _, _ := newTestController(t)
	_, err := wf.FinalResume(context.Background(), testToken)
	assert.ErrorIs(t, err, ErrNoActiveSubject)
}

func TestSummarySwitchesSessionAndCounts(t *testing.T) {
	wf, _, sessions := newTestController(t)
	ctx := context.Background()

	ada := createSubject(t, wf, "tok-ada", "Ada", "Lovelace")
	edu := validEducation()
	_, err := wf.SubmitEducation(ctx, "tok-ada", edu, datatypes.Validate(edu))
	require.NoError(t, err)

	// A different session opens Ada's summary; its pointer moves to her.
	view, err := wf.Summary(ctx, testToken, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, ada.ID, view.Subject.ID)
	assert.Equal(t, int64(1), view.Counts.Education)
	assert.Zero(t, view.Counts.Skills)
	assert.Equal(t, fmt.Sprintf("Student: Ada Lovelace - ID: %s", ada.ID), view.SummaryBarTitle)

	id, ok := sessions.Get(testToken)
	require.True(t, ok)
	assert.Equal(t, ada.ID, id)
}

func TestSummaryUnknownSubject(t *testing.T) {
	wf, _, _ := newTestController(t)
	_, err := wf.Summary(context.Background(), testToken, "nope")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
