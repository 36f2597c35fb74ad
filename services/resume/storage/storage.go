// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package storage defines the entity store consumed by the resume workflow
// and provides two implementations: an embedded BadgerDB store for the
// running service and an in-memory store for tests.
//
// Child records are stored arena-style, keyed by (subject id, record id).
// "The subject's records" is always a query against the store; there is no
// in-memory owned collection that has to be reconciled with the store on
// delete.
package storage

import (
	"context"
	"errors"

	"github.com/AleutianAI/roboresume/services/resume/datatypes"
)

// ErrNotFound is returned by FindByID and DeleteByID when no record with
// the given id exists. Callers performing idempotent deletes check for it
// with errors.Is and treat it as success.
var ErrNotFound = errors.New("record not found")

// SubjectStore persists Subjects.
type SubjectStore interface {
	// FindByID returns the subject or ErrNotFound.
	FindByID(ctx context.Context, id string) (*datatypes.Subject, error)

	// Save inserts the subject when its ID is empty (assigning a new one)
	// and updates it otherwise. Returns the stored subject.
	Save(ctx context.Context, s *datatypes.Subject) (*datatypes.Subject, error)

	// DeleteByID removes the subject or returns ErrNotFound.
	//
	// Cascading cleanup of child records is deliberately not part of this
	// contract; the workflow never deletes subjects.
	DeleteByID(ctx context.Context, id string) error
}

// EducationStore persists education records for subjects.
type EducationStore interface {
	FindByID(ctx context.Context, id string) (*datatypes.EducationRecord, error)
	FindAllForSubject(ctx context.Context, subjectID string) ([]datatypes.EducationRecord, error)
	CountForSubject(ctx context.Context, subjectID string) (int64, error)
	Save(ctx context.Context, r *datatypes.EducationRecord) (*datatypes.EducationRecord, error)
	DeleteByID(ctx context.Context, id string) error
}

// WorkStore persists work experience records for subjects.
type WorkStore interface {
	FindByID(ctx context.Context, id string) (*datatypes.WorkRecord, error)
	FindAllForSubject(ctx context.Context, subjectID string) ([]datatypes.WorkRecord, error)
	CountForSubject(ctx context.Context, subjectID string) (int64, error)
	Save(ctx context.Context, r *datatypes.WorkRecord) (*datatypes.WorkRecord, error)
	DeleteByID(ctx context.Context, id string) error
}

// SkillStore persists skill records for subjects.
type SkillStore interface {
	FindByID(ctx context.Context, id string) (*datatypes.SkillRecord, error)
	FindAllForSubject(ctx context.Context, subjectID string) ([]datatypes.SkillRecord, error)
	CountForSubject(ctx context.Context, subjectID string) (int64, error)
	Save(ctx context.Context, r *datatypes.SkillRecord) (*datatypes.SkillRecord, error)
	DeleteByID(ctx context.Context, id string) error
}

// Store bundles the per-kind repositories plus the one cross-kind
// operation, ResetSections, which must be atomic with respect to partial
// failure: either all three child kinds are cleared or the call fails with
// no partial clearing visible to subsequent reads.
type Store interface {
	Subjects() SubjectStore
	Education() EducationStore
	Work() WorkStore
	Skills() SkillStore

	// ResetSections removes every education, work, and skill record
	// belonging to the subject in one logical operation.
	ResetSections(ctx context.Context, subjectID string) error
}
