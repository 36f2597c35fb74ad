// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/AleutianAI/roboresume/services/resume/datatypes"
)

// MemStore is an in-memory Store used by unit tests and by the service in
// ephemeral mode. A single mutex covers all four kinds so ResetSections is
// atomic by construction.
type MemStore struct {
	mu       sync.RWMutex
	subjects map[string]datatypes.Subject
	edu      map[string]datatypes.EducationRecord
	work     map[string]datatypes.WorkRecord
	skills   map[string]datatypes.SkillRecord
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		subjects: make(map[string]datatypes.Subject),
		edu:      make(map[string]datatypes.EducationRecord),
		work:     make(map[string]datatypes.WorkRecord),
		skills:   make(map[string]datatypes.SkillRecord),
	}
}

// Subjects returns the subject repository view.
func (m *MemStore) Subjects() SubjectStore { return (*memSubjects)(m) }

// Education returns the education repository view.
func (m *MemStore) Education() EducationStore { return (*memEducation)(m) }

// Work returns the work experience repository view.
func (m *MemStore) Work() WorkStore { return (*memWork)(m) }

// Skills returns the skill repository view.
func (m *MemStore) Skills() SkillStore { return (*memSkills)(m) }

// ResetSections removes all child records for the subject under one lock,
// so no reader can observe a partially cleared state.
func (m *MemStore) ResetSections(_ context.Context, subjectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.edu {
		if r.SubjectID == subjectID {
			delete(m.edu, id)
		}
	}
	for id, r := range m.work {
		if r.SubjectID == subjectID {
			delete(m.work, id)
		}
	}
	for id, r := range m.skills {
		if r.SubjectID == subjectID {
			delete(m.skills, id)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------
// Subjects
// -----------------------------------------------------------------------------

type memSubjects MemStore

func (m *memSubjects) FindByID(_ context.Context, id string) (*datatypes.Subject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.subjects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *memSubjects) Save(_ context.Context, s *datatypes.Subject) (*datatypes.Subject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *s
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	m.subjects[stored.ID] = stored
	return &stored, nil
}

func (m *memSubjects) DeleteByID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subjects[id]; !ok {
		return ErrNotFound
	}
	delete(m.subjects, id)
	return nil
}

// -----------------------------------------------------------------------------
// Education
// -----------------------------------------------------------------------------

type memEducation MemStore

func (m *memEducation) FindByID(_ context.Context, id string) (*datatypes.EducationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.edu[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (m *memEducation) FindAllForSubject(_ context.Context, subjectID string) ([]datatypes.EducationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []datatypes.EducationRecord
	for _, r := range m.edu {
		if r.SubjectID == subjectID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memEducation) CountForSubject(_ context.Context, subjectID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, r := range m.edu {
		if r.SubjectID == subjectID {
			n++
		}
	}
	return n, nil
}

func (m *memEducation) Save(_ context.Context, r *datatypes.EducationRecord) (*datatypes.EducationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *r
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	m.edu[stored.ID] = stored
	return &stored, nil
}

func (m *memEducation) DeleteByID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.edu[id]; !ok {
		return ErrNotFound
	}
	delete(m.edu, id)
	return nil
}

// -----------------------------------------------------------------------------
// Work
// -----------------------------------------------------------------------------

type memWork MemStore

func (m *memWork) FindByID(_ context.Context, id string) (*datatypes.WorkRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.work[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (m *memWork) FindAllForSubject(_ context.Context, subjectID string) ([]datatypes.WorkRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []datatypes.WorkRecord
	for _, r := range m.work {
		if r.SubjectID == subjectID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memWork) CountForSubject(_ context.Context, subjectID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, r := range m.work {
		if r.SubjectID == subjectID {
			n++
		}
	}
	return n, nil
}

func (m *memWork) Save(_ context.Context, r *datatypes.WorkRecord) (*datatypes.WorkRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *r
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	m.work[stored.ID] = stored
	return &stored, nil
}

func (m *memWork) DeleteByID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.work[id]; !ok {
		return ErrNotFound
	}
	delete(m.work, id)
	return nil
}

// -----------------------------------------------------------------------------
// Skills
// -----------------------------------------------------------------------------

type memSkills MemStore

func (m *memSkills) FindByID(_ context.Context, id string) (*datatypes.SkillRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.skills[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (m *memSkills) FindAllForSubject(_ context.Context, subjectID string) ([]datatypes.SkillRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []datatypes.SkillRecord
	for _, r := range m.skills {
		if r.SubjectID == subjectID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memSkills) CountForSubject(_ context.Context, subjectID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, r := range m.skills {
		if r.SubjectID == subjectID {
			n++
		}
	}
	return n, nil
}

func (m *memSkills) Save(_ context.Context, r *datatypes.SkillRecord) (*datatypes.SkillRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *r
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	m.skills[stored.ID] = stored
	return &stored, nil
}

func (m *memSkills) DeleteByID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.skills[id]; !ok {
		return ErrNotFound
	}
	delete(m.skills, id)
	return nil
}
