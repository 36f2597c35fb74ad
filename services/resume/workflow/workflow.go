// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package workflow implements the section workflow controller: the
// add/edit/submit/delete flow for each resume section, driven by the
// session's active subject.
//
// Every operation begins by resolving the active subject through the
// session manager. Child-section operations fail with ErrNoActiveSubject
// when the pointer is absent or points at a deleted subject; the
// personal-details operations instead offer a blank create form, because
// submitting personal details is how a subject comes into existence.
//
// The cap check before a child write and the cap check that disables the
// form affordance are independent reads of the count. Two near-simultaneous
// submits at cap-1 can therefore both pass the pre-write check; the caps
// are soft UX guards, not hard data invariants, and the workflow does not
// serialize requests to close that window.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AleutianAI/roboresume/services/resume/datatypes"
	"github.com/AleutianAI/roboresume/services/resume/navigation"
	"github.com/AleutianAI/roboresume/services/resume/observability"
	"github.com/AleutianAI/roboresume/services/resume/policy"
	"github.com/AleutianAI/roboresume/services/resume/session"
	"github.com/AleutianAI/roboresume/services/resume/storage"
)

// ErrNoActiveSubject means a child-section operation was invoked with no
// session pointer value resolvable to an existing subject. The boundary
// redirects to a safe landing screen; it is never a crash.
var ErrNoActiveSubject = errors.New("no active subject in session")

// Controller orchestrates the per-section workflows against the entity
// store, the session manager, and the cap policy.
type Controller struct {
	store    storage.Store
	sessions *session.Manager
	metrics  *observability.Metrics
	logger   *slog.Logger
	rec      reconciler
}

// NewController wires a workflow controller. metrics may be nil.
func NewController(store storage.Store, sessions *session.Manager, metrics *observability.Metrics, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		store:    store,
		sessions: sessions,
		metrics:  metrics,
		logger:   logger,
		rec:      reconciler{logger: logger},
	}
}

// activeSubject resolves the session's active subject. A missing pointer
// and a pointer to a deleted subject are the same condition.
func (c *Controller) activeSubject(ctx context.Context, token string) (*datatypes.Subject, error) {
	id, ok := c.sessions.Get(token)
	if !ok {
		return nil, ErrNoActiveSubject
	}
	subj, err := c.store.Subjects().FindByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoActiveSubject
	}
	if err != nil {
		return nil, fmt.Errorf("resolve active subject: %w", err)
	}
	return subj, nil
}

// countFor reads the current record count of one child kind.
func (c *Controller) countFor(ctx context.Context, kind datatypes.Section, subjectID string) (int64, error) {
	switch kind {
	case datatypes.SectionEducation:
		return c.store.Education().CountForSubject(ctx, subjectID)
	case datatypes.SectionWork:
		return c.store.Work().CountForSubject(ctx, subjectID)
	case datatypes.SectionSkill:
		return c.store.Skills().CountForSubject(ctx, subjectID)
	}
	return 0, fmt.Errorf("no record count for section %q", kind)
}

// countsFor reads all three child counts for the navbar badges.
func (c *Controller) countsFor(ctx context.Context, subjectID string) (*navigation.Counts, error) {
	edu, err := c.store.Education().CountForSubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	work, err := c.store.Work().CountForSubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	skills, err := c.store.Skills().CountForSubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return &navigation.Counts{Education: edu, Work: work, Skills: skills}, nil
}

// navFor recomputes the navigation state for a resolved subject.
func (c *Controller) navFor(ctx context.Context, subject *datatypes.Subject, highlight navigation.Highlight) (navigation.NavState, error) {
	if subject == nil {
		return navigation.Build(nil, highlight), nil
	}
	counts, err := c.countsFor(ctx, subject.ID)
	if err != nil {
		return navigation.NavState{}, fmt.Errorf("navigation counts: %w", err)
	}
	return navigation.Build(counts, highlight), nil
}

// NavState derives the navigation state for the session, for views that
// have no other workflow work to do (index, login). Recomputed on every
// call, never cached.
func (c *Controller) NavState(ctx context.Context, token string, highlight navigation.Highlight) (navigation.NavState, error) {
	subject, err := c.activeSubject(ctx, token)
	if errors.Is(err, ErrNoActiveSubject) {
		return navigation.Build(nil, highlight), nil
	}
	if err != nil {
		return navigation.NavState{}, err
	}
	return c.navFor(ctx, subject, highlight)
}

// -----------------------------------------------------------------------------
// Personal details
// -----------------------------------------------------------------------------

// ShowPersonForm returns the personal-details form context. Unlike the
// child sections, an unresolvable subject is not an error here: the form
// comes back blank and submitting it creates the subject.
func (c *Controller) ShowPersonForm(ctx context.Context, token string) (*PersonForm, error) {
	subject, err := c.activeSubject(ctx, token)
	if err != nil && !errors.Is(err, ErrNoActiveSubject) {
		return nil, err
	}
	nav, err := c.navFor(ctx, subject, navigation.HighlightPerson)
	if err != nil {
		return nil, err
	}
	return &PersonForm{Subject: subject, Nav: nav}, nil
}

// SubmitPerson handles a personal-details submission.
//
// With an active subject the stored subject is re-read and only its
// editable fields are updated from the form, so child records keyed under
// its id are untouched. With no active subject the submission creates the
// subject and points the session at it.
func (c *Controller) SubmitPerson(ctx context.Context, token string, submitted *datatypes.Subject, vr datatypes.ValidationResult) (*PersonSubmitResult, error) {
	subject, err := c.activeSubject(ctx, token)
	if err != nil && !errors.Is(err, ErrNoActiveSubject) {
		return nil, err
	}

	if !vr.Valid {
		nav, err := c.navFor(ctx, subject, navigation.HighlightPerson)
		if err != nil {
			return nil, err
		}
		c.metrics.RecordSubmit(string(datatypes.SectionPerson), string(OutcomeInvalid))
		return &PersonSubmitResult{
			Outcome: OutcomeInvalid,
			Subject: subject,
			Errors:  vr.FieldErrors,
			Nav:     nav,
		}, nil
	}

	var toSave datatypes.Subject
	if subject != nil {
		toSave = *subject
		toSave.NameFirst = submitted.NameFirst
		toSave.NameLast = submitted.NameLast
		toSave.Email = submitted.Email
	} else {
		toSave = *submitted
		toSave.ID = ""
	}

	stored, err := c.store.Subjects().Save(ctx, &toSave)
	if err != nil {
		return nil, fmt.Errorf("save subject: %w", err)
	}
	if subject == nil {
		c.sessions.Set(token, stored.ID)
		c.logger.Info("created subject", "subject_id", stored.ID)
	}

	nav, err := c.navFor(ctx, stored, navigation.HighlightPerson)
	if err != nil {
		return nil, err
	}
	c.metrics.RecordSubmit(string(datatypes.SectionPerson), string(OutcomePersisted))
	return &PersonSubmitResult{Outcome: OutcomePersisted, Subject: stored, Nav: nav}, nil
}

// SelectPersonForEdit switches the session's active subject to id and
// returns the personal-details form pre-filled with that subject. This is
// the one select-for-edit that moves the session pointer: picking a person
// is how "edit a record of the active subject" differs from "switch to a
// different subject entirely".
func (c *Controller) SelectPersonForEdit(ctx context.Context, token, id string) (*PersonForm, error) {
	subject, err := c.store.Subjects().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("select subject %s for edit: %w", id, err)
	}
	c.sessions.Set(token, subject.ID)
	c.metrics.RecordSessionSwitch()
	c.logger.Info("switched active subject", "subject_id", subject.ID)

	nav, err := c.navFor(ctx, subject, navigation.HighlightPerson)
	if err != nil {
		return nil, err
	}
	return &PersonForm{Subject: subject, Nav: nav}, nil
}

// -----------------------------------------------------------------------------
// Child sections: add forms
// -----------------------------------------------------------------------------

// ShowEducationForm returns the add-education form context with a fresh
// unsaved record pre-attached to the active subject.
func (c *Controller) ShowEducationForm(ctx context.Context, token string) (*EducationForm, error) {
	subject, count, nav, err := c.childFormParts(ctx, token, datatypes.SectionEducation)
	if err != nil {
		return nil, err
	}
	return &EducationForm{
		Subject:       subject,
		Record:        &datatypes.EducationRecord{SubjectID: subject.ID},
		Count:         count,
		DisableSubmit: !policy.Allows(datatypes.SectionEducation, count),
		Nav:           nav,
	}, nil
}

// ShowWorkForm returns the add-work-experience form context.
func (c *Controller) ShowWorkForm(ctx context.Context, token string) (*WorkForm, error) {
	subject, count, nav, err := c.childFormParts(ctx, token, datatypes.SectionWork)
	if err != nil {
		return nil, err
	}
	return &WorkForm{
		Subject:       subject,
		Record:        &datatypes.WorkRecord{SubjectID: subject.ID},
		Count:         count,
		DisableSubmit: !policy.Allows(datatypes.SectionWork, count),
		Nav:           nav,
	}, nil
}

// ShowSkillForm returns the add-skill form context.
func (c *Controller) ShowSkillForm(ctx context.Context, token string) (*SkillForm, error) {
	subject, count, nav, err := c.childFormParts(ctx, token, datatypes.SectionSkill)
	if err != nil {
		return nil, err
	}
	return &SkillForm{
		Subject:       subject,
		Record:        &datatypes.SkillRecord{SubjectID: subject.ID},
		Count:         count,
		DisableSubmit: !policy.Allows(datatypes.SectionSkill, count),
		Nav:           nav,
	}, nil
}

func (c *Controller) childFormParts(ctx context.Context, token string, kind datatypes.Section) (*datatypes.Subject, int64, navigation.NavState, error) {
	subject, err := c.activeSubject(ctx, token)
	if err != nil {
		return nil, 0, navigation.NavState{}, err
	}
	count, err := c.countFor(ctx, kind, subject.ID)
	if err != nil {
		return nil, 0, navigation.NavState{}, err
	}
	nav, err := c.navFor(ctx, subject, navigation.HighlightFor(kind))
	if err != nil {
		return nil, 0, navigation.NavState{}, err
	}
	return subject, count, nav, nil
}

// -----------------------------------------------------------------------------
// Child sections: submissions
// -----------------------------------------------------------------------------

// SubmitEducation handles an education submission for the active subject.
func (c *Controller) SubmitEducation(ctx context.Context, token string, rec *datatypes.EducationRecord, vr datatypes.ValidationResult) (*SubmitResult, error) {
	return c.submitChild(ctx, token, datatypes.SectionEducation, vr,
		func(subjectID string) { rec.SubjectID = subjectID },
		func(ctx context.Context) error {
			stored, err := c.store.Education().Save(ctx, rec)
			if err == nil {
				*rec = *stored
			}
			return err
		})
}

// SubmitWork handles a work experience submission for the active subject.
func (c *Controller) SubmitWork(ctx context.Context, token string, rec *datatypes.WorkRecord, vr datatypes.ValidationResult) (*SubmitResult, error) {
	return c.submitChild(ctx, token, datatypes.SectionWork, vr,
		func(subjectID string) { rec.SubjectID = subjectID },
		func(ctx context.Context) error {
			stored, err := c.store.Work().Save(ctx, rec)
			if err == nil {
				*rec = *stored
			}
			return err
		})
}

// SubmitSkill handles a skill submission for the active subject.
func (c *Controller) SubmitSkill(ctx context.Context, token string, rec *datatypes.SkillRecord, vr datatypes.ValidationResult) (*SubmitResult, error) {
	return c.submitChild(ctx, token, datatypes.SectionSkill, vr,
		func(subjectID string) { rec.SubjectID = subjectID },
		func(ctx context.Context) error {
			stored, err := c.store.Skills().Save(ctx, rec)
			if err == nil {
				*rec = *stored
			}
			return err
		})
}

// submitChild is the shared submission path for the three child kinds.
//
// The count is read immediately before the write and re-read after it, so
// a submission past the cap (a refreshed confirmation page bypassing the
// disabled form) is skipped without error and reports the unchanged count.
func (c *Controller) submitChild(
	ctx context.Context,
	token string,
	kind datatypes.Section,
	vr datatypes.ValidationResult,
	attach func(subjectID string),
	save func(ctx context.Context) error,
) (*SubmitResult, error) {
	subject, err := c.activeSubject(ctx, token)
	if err != nil {
		return nil, err
	}

	count, err := c.countFor(ctx, kind, subject.ID)
	if err != nil {
		return nil, err
	}

	if !vr.Valid {
		nav, err := c.navFor(ctx, subject, navigation.HighlightFor(kind))
		if err != nil {
			return nil, err
		}
		c.metrics.RecordSubmit(string(kind), string(OutcomeInvalid))
		return &SubmitResult{
			Outcome:       OutcomeInvalid,
			Subject:       subject,
			Count:         count,
			DisableSubmit: !policy.Allows(kind, count),
			Errors:        vr.FieldErrors,
			Nav:           nav,
		}, nil
	}

	attach(subject.ID)

	outcome := OutcomeCapBlocked
	if policy.Allows(kind, count) {
		if err := save(ctx); err != nil {
			return nil, fmt.Errorf("save %s record: %w", kind, err)
		}
		outcome = OutcomePersisted
	} else {
		c.logger.Info("submission blocked at section cap",
			"section", string(kind), "subject_id", subject.ID, "count", count)
	}

	count, err = c.countFor(ctx, kind, subject.ID)
	if err != nil {
		return nil, err
	}
	nav, err := c.navFor(ctx, subject, navigation.HighlightFor(kind))
	if err != nil {
		return nil, err
	}
	c.metrics.RecordSubmit(string(kind), string(outcome))
	return &SubmitResult{
		Outcome:       outcome,
		Subject:       subject,
		Count:         count,
		DisableSubmit: !policy.Allows(kind, count),
		Nav:           nav,
	}, nil
}

// -----------------------------------------------------------------------------
// Child sections: select for edit
// -----------------------------------------------------------------------------

// SelectEducationForEdit loads an education record for editing. The session
// pointer is not touched: the subject comes from the currently active
// pointer, not from the record's back-reference.
func (c *Controller) SelectEducationForEdit(ctx context.Context, token, id string) (*EducationForm, error) {
	rec, err := c.store.Education().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("select education record %s for edit: %w", id, err)
	}
	subject, count, nav, err := c.childFormParts(ctx, token, datatypes.SectionEducation)
	if err != nil {
		return nil, err
	}
	// Editing an existing record never hits the cap, so the submit button
	// is always live here.
	return &EducationForm{Subject: subject, Record: rec, Count: count, DisableSubmit: false, Nav: nav}, nil
}

// SelectWorkForEdit loads a work experience record for editing.
func (c *Controller) SelectWorkForEdit(ctx context.Context, token, id string) (*WorkForm, error) {
	rec, err := c.store.Work().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("select work record %s for edit: %w", id, err)
	}
	subject, count, nav, err := c.childFormParts(ctx, token, datatypes.SectionWork)
	if err != nil {
		return nil, err
	}
	return &WorkForm{Subject: subject, Record: rec, Count: count, DisableSubmit: false, Nav: nav}, nil
}

// SelectSkillForEdit loads a skill record for editing.
func (c *Controller) SelectSkillForEdit(ctx context.Context, token, id string) (*SkillForm, error) {
	rec, err := c.store.Skills().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("select skill record %s for edit: %w", id, err)
	}
	subject, count, nav, err := c.childFormParts(ctx, token, datatypes.SectionSkill)
	if err != nil {
		return nil, err
	}
	return &SkillForm{Subject: subject, Record: rec, Count: count, DisableSubmit: false, Nav: nav}, nil
}

// -----------------------------------------------------------------------------
// Delete / reset
// -----------------------------------------------------------------------------

// Delete removes a child record by id, idempotently: deleting an id that is
// already gone (duplicate request, browser back plus resubmit) succeeds.
// The caller returns to the editdetails view at the section's anchor
// regardless of outcome.
func (c *Controller) Delete(ctx context.Context, token string, kind datatypes.Section, id string) (*DeleteResult, error) {
	if _, err := c.activeSubject(ctx, token); err != nil {
		return nil, err
	}

	var store deleter
	switch kind {
	case datatypes.SectionEducation:
		store = c.store.Education()
	case datatypes.SectionWork:
		store = c.store.Work()
	case datatypes.SectionSkill:
		store = c.store.Skills()
	default:
		return nil, fmt.Errorf("cannot delete records of section %q", kind)
	}

	outcome, err := c.rec.delete(ctx, kind, id, store)
	if err != nil {
		return nil, fmt.Errorf("delete %s record %s: %w", kind, id, err)
	}
	c.metrics.RecordDelete(string(kind), string(outcome))
	return &DeleteResult{Outcome: outcome, Anchor: kind.Anchor()}, nil
}

// StartOver clears all three child sections for the active subject in one
// atomic store operation; a failure leaves every record in place.
func (c *Controller) StartOver(ctx context.Context, token string) error {
	subject, err := c.activeSubject(ctx, token)
	if err != nil {
		return err
	}
	if err := c.store.ResetSections(ctx, subject.ID); err != nil {
		return fmt.Errorf("start over for subject %s: %w", subject.ID, err)
	}
	c.metrics.RecordSectionReset()
	c.logger.Info("cleared all sections", "subject_id", subject.ID)
	return nil
}

// -----------------------------------------------------------------------------
// Read-only views
// -----------------------------------------------------------------------------

// EditDetails returns the full edit-details context: the subject and all
// three child collections, read fresh from the store.
func (c *Controller) EditDetails(ctx context.Context, token string) (*DetailsView, error) {
	return c.detailsView(ctx, token, navigation.HighlightEditDetails)
}

// FinalResume returns the compiled final resume context.
func (c *Controller) FinalResume(ctx context.Context, token string) (*DetailsView, error) {
	return c.detailsView(ctx, token, navigation.HighlightFinalResume)
}

func (c *Controller) detailsView(ctx context.Context, token string, highlight navigation.Highlight) (*DetailsView, error) {
	subject, err := c.activeSubject(ctx, token)
	if err != nil {
		return nil, err
	}
	edu, err := c.store.Education().FindAllForSubject(ctx, subject.ID)
	if err != nil {
		return nil, err
	}
	work, err := c.store.Work().FindAllForSubject(ctx, subject.ID)
	if err != nil {
		return nil, err
	}
	skills, err := c.store.Skills().FindAllForSubject(ctx, subject.ID)
	if err != nil {
		return nil, err
	}
	nav, err := c.navFor(ctx, subject, highlight)
	if err != nil {
		return nil, err
	}
	return &DetailsView{
		Subject:   subject,
		Education: edu,
		Work:      work,
		Skills:    skills,
		Nav:       nav,
	}, nil
}

// Summary switches the session's active subject to id and returns the
// per-section counts for the summary screen.
func (c *Controller) Summary(ctx context.Context, token, id string) (*SummaryView, error) {
	subject, err := c.store.Subjects().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("summary for subject %s: %w", id, err)
	}
	c.sessions.Set(token, subject.ID)
	c.metrics.RecordSessionSwitch()

	counts, err := c.countsFor(ctx, subject.ID)
	if err != nil {
		return nil, err
	}
	nav := navigation.Build(counts, navigation.HighlightNone)
	return &SummaryView{
		Subject:         subject,
		Counts:          *counts,
		SummaryBarTitle: fmt.Sprintf("Student: %s %s - ID: %s", subject.NameFirst, subject.NameLast, subject.ID),
		Nav:             nav,
	}, nil
}
