// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package session tracks which subject is active in each user session.
//
// The pointer is keyed by an opaque session token (minted at the HTTP
// boundary and carried in a cookie), so two browsers editing different
// subjects do not stomp on each other's active subject. Within one session
// the semantics are last-write-wins: selecting a subject for edit, or
// creating a new one, moves the pointer, and every subsequent workflow
// operation in that session resolves through it.
package session

import "sync"

// Manager holds the active-subject pointer for every live session.
//
// Thread-safe. An absent entry is a valid state and means "no subject
// selected yet"; callers treat a pointer that resolves to a deleted subject
// identically to an absent one.
type Manager struct {
	mu     sync.RWMutex
	active map[string]string // session token -> subject id
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{active: make(map[string]string)}
}

// Get returns the active subject id for a session token.
//
// Outputs:
//
//	string - The subject id, empty when no subject is selected.
//	bool - false when the session has no active subject.
func (m *Manager) Get(token string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.active[token]
	return id, ok
}

// Set makes subjectID the active subject for a session token.
func (m *Manager) Set(token, subjectID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active[token] = subjectID
}

// Clear drops the session's active subject. Called on logout. Clearing an
// unknown token is a no-op.
func (m *Manager) Clear(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, token)
}
