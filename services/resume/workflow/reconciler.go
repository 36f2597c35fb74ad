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
	"errors"
	"log/slog"

	"github.com/AleutianAI/roboresume/services/resume/datatypes"
	"github.com/AleutianAI/roboresume/services/resume/storage"
)

// DeleteOutcome reports how a delete request resolved.
type DeleteOutcome string

const (
	// DeleteOutcomeDeleted means the record existed and was removed.
	DeleteOutcomeDeleted DeleteOutcome = "deleted"

	// DeleteOutcomeAlreadyGone means the record was already absent, e.g. a
	// duplicate request from a page refresh or browser back plus resubmit.
	// Idempotent: treated as success by every caller.
	DeleteOutcomeAlreadyGone DeleteOutcome = "already_gone"
)

// deleter is the slice of the store contract the reconciler needs.
type deleter interface {
	DeleteByID(ctx context.Context, id string) error
}

// reconciler removes child records with idempotent semantics.
//
// Store deletion is authoritative: a record that was already absent is
// success (the explicit NotFound result is checked, not caught), while a
// real store failure propagates so the caller never reports a delete that
// did not happen. Child records live only in the store, keyed by
// (subject id, record id), so there is no second in-memory collection to
// fall out of sync with.
type reconciler struct {
	logger *slog.Logger
}

// delete removes the record with the given id from the store.
//
// Outputs:
//
//	DeleteOutcome - Deleted or AlreadyGone. Only meaningful on nil error.
//	error - Non-nil only for real store failures.
func (r *reconciler) delete(ctx context.Context, kind datatypes.Section, id string, store deleter) (DeleteOutcome, error) {
	err := store.DeleteByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		r.logger.Info("delete target already gone", "section", string(kind), "id", id)
		return DeleteOutcomeAlreadyGone, nil
	}
	if err != nil {
		return "", err
	}
	return DeleteOutcomeDeleted, nil
}
