// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AleutianAI/roboresume/services/resume/datatypes"
)

func TestBuild_NoActiveSubject(t *testing.T) {
	nav := Build(nil, HighlightPerson)

	assert.True(t, nav.DisableAddEducation)
	assert.True(t, nav.DisableAddWork)
	assert.True(t, nav.DisableAddSkill)
	assert.True(t, nav.DisableEditDetails)
	assert.True(t, nav.DisableFinalResume)
	assert.Zero(t, nav.NumEducation)
	assert.Zero(t, nav.NumWork)
	assert.Zero(t, nav.NumSkills)
	assert.Equal(t, HighlightPerson, nav.Highlight)
}

func TestBuild_ZeroRecords(t *testing.T) {
	nav := Build(&Counts{}, HighlightEducation)

	// A subject exists, so every add link and edit-details is live. The
	// final resume needs at least one education record and one skill.
	assert.False(t, nav.DisableAddEducation)
	assert.False(t, nav.DisableAddWork)
	assert.False(t, nav.DisableAddSkill)
	assert.False(t, nav.DisableEditDetails)
	assert.True(t, nav.DisableFinalResume)
}

func TestBuild_BadgeCounts(t *testing.T) {
	nav := Build(&Counts{Education: 3, Work: 1, Skills: 7}, HighlightSkill)

	assert.Equal(t, int64(3), nav.NumEducation)
	assert.Equal(t, int64(1), nav.NumWork)
	assert.Equal(t, int64(7), nav.NumSkills)
}

func TestBuild_AddLinksDisableAtCaps(t *testing.T) {
	nav := Build(&Counts{Education: 10, Work: 9, Skills: 20}, HighlightEditDetails)

	assert.True(t, nav.DisableAddEducation)
	assert.False(t, nav.DisableAddWork)
	assert.True(t, nav.DisableAddSkill)
	assert.False(t, nav.DisableEditDetails)
}

func TestBuild_FinalResumeEnablement(t *testing.T) {
	tests := []struct {
		name    string
		counts  Counts
		disable bool
	}{
		{"no records", Counts{}, true},
		{"education only", Counts{Education: 1}, true},
		{"skill only", Counts{Skills: 1}, true},
		{"education and skill", Counts{Education: 1, Skills: 1}, false},
		{"work count irrelevant when zero", Counts{Education: 1, Skills: 1, Work: 0}, false},
		{"work count irrelevant when high", Counts{Education: 1, Skills: 1, Work: 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav := Build(&tt.counts, HighlightFinalResume)
			assert.Equal(t, tt.disable, nav.DisableFinalResume)
		})
	}
}

// A disabled link may still be the highlighted one: highlighting follows
// the screen being shown, not enablement.
func TestBuild_HighlightIndependentOfEnablement(t *testing.T) {
	nav := Build(&Counts{Education: 10}, HighlightEducation)

	assert.True(t, nav.DisableAddEducation)
	assert.Equal(t, HighlightEducation, nav.Highlight)
}

func TestHighlightFor(t *testing.T) {
	assert.Equal(t, HighlightPerson, HighlightFor(datatypes.SectionPerson))
	assert.Equal(t, HighlightEducation, HighlightFor(datatypes.SectionEducation))
	assert.Equal(t, HighlightWork, HighlightFor(datatypes.SectionWork))
	assert.Equal(t, HighlightSkill, HighlightFor(datatypes.SectionSkill))
	assert.Equal(t, HighlightNone, HighlightFor(datatypes.Section("bogus")))
}
