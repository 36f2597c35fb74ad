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
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/AleutianAI/roboresume/services/resume/datatypes"
)

// Key layout:
//
//	subject/<id>                      -> Subject JSON
//	rec/<kind>/<subjectID>/<recID>    -> child record JSON
//	idx/<kind>/<recID>                -> subjectID
//
// The primary child key is the (subjectID, recID) arena index, so
// FindAllForSubject and CountForSubject are prefix scans. The idx entry
// resolves a bare record id to its subject for FindByID and DeleteByID.
// Primary and index entries are always written and deleted in the same
// transaction.
const (
	subjectKeyPrefix = "subject/"
	recordKeyPrefix  = "rec/"
	indexKeyPrefix   = "idx/"
)

func subjectKey(id string) []byte {
	return []byte(subjectKeyPrefix + id)
}

func recordKey(kind datatypes.Section, subjectID, id string) []byte {
	return []byte(recordKeyPrefix + string(kind) + "/" + subjectID + "/" + id)
}

func recordPrefix(kind datatypes.Section, subjectID string) []byte {
	return []byte(recordKeyPrefix + string(kind) + "/" + subjectID + "/")
}

func indexKey(kind datatypes.Section, id string) []byte {
	return []byte(indexKeyPrefix + string(kind) + "/" + id)
}

// BadgerStore is the Store implementation backed by an embedded BadgerDB.
type BadgerStore struct {
	db     *badger.DB
	edu    *childStore[datatypes.EducationRecord]
	work   *childStore[datatypes.WorkRecord]
	skills *childStore[datatypes.SkillRecord]
}

// NewBadgerStore wraps an opened BadgerDB in the entity store contract.
// The caller owns the database handle and closes it on shutdown.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{
		db: db,
		edu: &childStore[datatypes.EducationRecord]{
			db:   db,
			kind: datatypes.SectionEducation,
			id:   func(r *datatypes.EducationRecord) string { return r.ID },
			setID: func(r *datatypes.EducationRecord, id string) {
				r.ID = id
			},
			subjectID: func(r *datatypes.EducationRecord) string { return r.SubjectID },
		},
		work: &childStore[datatypes.WorkRecord]{
			db:   db,
			kind: datatypes.SectionWork,
			id:   func(r *datatypes.WorkRecord) string { return r.ID },
			setID: func(r *datatypes.WorkRecord, id string) {
				r.ID = id
			},
			subjectID: func(r *datatypes.WorkRecord) string { return r.SubjectID },
		},
		skills: &childStore[datatypes.SkillRecord]{
			db:   db,
			kind: datatypes.SectionSkill,
			id:   func(r *datatypes.SkillRecord) string { return r.ID },
			setID: func(r *datatypes.SkillRecord, id string) {
				r.ID = id
			},
			subjectID: func(r *datatypes.SkillRecord) string { return r.SubjectID },
		},
	}
}

// Subjects returns the subject repository view.
func (s *BadgerStore) Subjects() SubjectStore { return &badgerSubjects{db: s.db} }

// Education returns the education repository view.
func (s *BadgerStore) Education() EducationStore { return s.edu }

// Work returns the work experience repository view.
func (s *BadgerStore) Work() WorkStore { return s.work }

// Skills returns the skill repository view.
func (s *BadgerStore) Skills() SkillStore { return s.skills }

// ResetSections deletes every child record of every kind for the subject in
// a single transaction, so a failure leaves all records in place and a
// success leaves none.
func (s *BadgerStore) ResetSections(_ context.Context, subjectID string) error {
	kinds := []datatypes.Section{
		datatypes.SectionEducation,
		datatypes.SectionWork,
		datatypes.SectionSkill,
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		for _, kind := range kinds {
			prefix := recordPrefix(kind, subjectID)
			opts := badger.DefaultIteratorOptions
			opts.PrefetchValues = false
			it := txn.NewIterator(opts)

			var keys [][]byte
			var recIDs []string
			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				key := it.Item().KeyCopy(nil)
				keys = append(keys, key)
				recIDs = append(recIDs, string(key[len(prefix):]))
			}
			it.Close()

			for i, key := range keys {
				if err := txn.Delete(key); err != nil {
					return err
				}
				if err := txn.Delete(indexKey(kind, recIDs[i])); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reset sections for subject %s: %w", subjectID, err)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Subjects
// -----------------------------------------------------------------------------

type badgerSubjects struct {
	db *badger.DB
}

func (s *badgerSubjects) FindByID(_ context.Context, id string) (*datatypes.Subject, error) {
	var subj datatypes.Subject
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(subjectKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &subj)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find subject %s: %w", id, err)
	}
	return &subj, nil
}

func (s *badgerSubjects) Save(_ context.Context, subj *datatypes.Subject) (*datatypes.Subject, error) {
	stored := *subj
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	payload, err := json.Marshal(&stored)
	if err != nil {
		return nil, fmt.Errorf("marshal subject: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(subjectKey(stored.ID), payload)
	})
	if err != nil {
		return nil, fmt.Errorf("save subject %s: %w", stored.ID, err)
	}
	return &stored, nil
}

func (s *badgerSubjects) DeleteByID(_ context.Context, id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(subjectKey(id)); err != nil {
			return err
		}
		return txn.Delete(subjectKey(id))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete subject %s: %w", id, err)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Child records (generic over the three kinds)
// -----------------------------------------------------------------------------

// childStore implements the per-kind repository contract for one child
// record type. Generic instantiation keeps the three kinds on one code path
// while the Store accessors still return the concrete interfaces.
type childStore[T any] struct {
	db        *badger.DB
	kind      datatypes.Section
	id        func(*T) string
	setID     func(*T, string)
	subjectID func(*T) string
}

func (c *childStore[T]) FindByID(_ context.Context, id string) (*T, error) {
	var rec T
	err := c.db.View(func(txn *badger.Txn) error {
		subjectID, err := c.lookupSubject(txn, id)
		if err != nil {
			return err
		}
		item, err := txn.Get(recordKey(c.kind, subjectID, id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s record %s: %w", c.kind, id, err)
	}
	return &rec, nil
}

func (c *childStore[T]) FindAllForSubject(_ context.Context, subjectID string) ([]T, error) {
	var out []T
	err := c.db.View(func(txn *badger.Txn) error {
		prefix := recordPrefix(c.kind, subjectID)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec T
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s records for subject %s: %w", c.kind, subjectID, err)
	}
	return out, nil
}

func (c *childStore[T]) CountForSubject(_ context.Context, subjectID string) (int64, error) {
	var n int64
	err := c.db.View(func(txn *badger.Txn) error {
		prefix := recordPrefix(c.kind, subjectID)
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count %s records for subject %s: %w", c.kind, subjectID, err)
	}
	return n, nil
}

func (c *childStore[T]) Save(_ context.Context, rec *T) (*T, error) {
	stored := *rec
	if c.id(&stored) == "" {
		c.setID(&stored, uuid.NewString())
	}
	subjectID := c.subjectID(&stored)
	if subjectID == "" {
		return nil, fmt.Errorf("save %s record: missing subject id", c.kind)
	}
	payload, err := json.Marshal(&stored)
	if err != nil {
		return nil, fmt.Errorf("marshal %s record: %w", c.kind, err)
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(recordKey(c.kind, subjectID, c.id(&stored)), payload); err != nil {
			return err
		}
		return txn.Set(indexKey(c.kind, c.id(&stored)), []byte(subjectID))
	})
	if err != nil {
		return nil, fmt.Errorf("save %s record %s: %w", c.kind, c.id(&stored), err)
	}
	return &stored, nil
}

func (c *childStore[T]) DeleteByID(_ context.Context, id string) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		subjectID, err := c.lookupSubject(txn, id)
		if err != nil {
			return err
		}
		if err := txn.Delete(recordKey(c.kind, subjectID, id)); err != nil {
			return err
		}
		return txn.Delete(indexKey(c.kind, id))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete %s record %s: %w", c.kind, id, err)
	}
	return nil
}

// lookupSubject resolves a bare record id to its owning subject id via the
// idx entry.
func (c *childStore[T]) lookupSubject(txn *badger.Txn, id string) (string, error) {
	item, err := txn.Get(indexKey(c.kind, id))
	if err != nil {
		return "", err
	}
	var subjectID string
	err = item.Value(func(val []byte) error {
		subjectID = string(val)
		return nil
	})
	return subjectID, err
}
