// Copyright 2025 Vantage Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package access

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-vantage/vantage/pkg/statemachine"
)

func TestCheckProjectTransition(t *testing.T) {
	admin := Identity{UserId: "a1", Role: RoleAdmin}
	company := Identity{UserId: "m1", Role: RoleCompany, CompanyId: "c1"}

	tests := []struct {
		name     string
		identity Identity
		from     statemachine.ProjectStatus
		to       statemachine.ProjectStatus
		wantErr  bool
	}{
		{
			name:     "planning to in progress",
			identity: company,
			from:     statemachine.ProjectPlanning,
			to:       statemachine.ProjectInProgress,
		},
		{
			name:     "in progress to completed",
			identity: company,
			from:     statemachine.ProjectInProgress,
			to:       statemachine.ProjectCompleted,
		},
		{
			name:     "planning straight to completed is illegal",
			identity: company,
			from:     statemachine.ProjectPlanning,
			to:       statemachine.ProjectCompleted,
			wantErr:  true,
		},
		{
			name:     "completed is terminal for company",
			identity: company,
			from:     statemachine.ProjectCompleted,
			to:       statemachine.ProjectPlanning,
			wantErr:  true,
		},
		{
			name:     "admin reopens completed",
			identity: admin,
			from:     statemachine.ProjectCompleted,
			to:       statemachine.ProjectPlanning,
		},
		{
			name:     "same status is a no-op",
			identity: company,
			from:     statemachine.ProjectTesting,
			to:       statemachine.ProjectTesting,
		},
		{
			name:     "unknown target status",
			identity: admin,
			from:     statemachine.ProjectPlanning,
			to:       statemachine.ProjectStatus("Archived"),
			wantErr:  true,
		},
		{
			name:     "unknown source status",
			identity: admin,
			from:     statemachine.ProjectStatus(""),
			to:       statemachine.ProjectPlanning,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckProjectTransition(tt.identity, tt.from, tt.to)
			if tt.wantErr {
				require.Error(t, err)
				var te *TransitionError
				require.True(t, errors.As(err, &te))
				assert.Equal(t, string(tt.from), te.From)
				assert.Equal(t, string(tt.to), te.To)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestApplyProjectTransition(t *testing.T) {
	t.Run("entering completed forces progress to 100", func(t *testing.T) {
		p := mkProject("p1", "c1", "")
		p.Status = string(statemachine.ProjectInProgress)
		p.Progress = 60

		ApplyProjectTransition(&p, statemachine.ProjectInProgress, statemachine.ProjectCompleted)
		assert.Equal(t, string(statemachine.ProjectCompleted), p.Status)
		assert.Equal(t, 100, p.Progress)
	})

	t.Run("leaving completed keeps progress untouched", func(t *testing.T) {
		p := mkProject("p1", "c1", "")
		p.Status = string(statemachine.ProjectCompleted)
		p.Progress = 100

		ApplyProjectTransition(&p, statemachine.ProjectCompleted, statemachine.ProjectPlanning)
		assert.Equal(t, string(statemachine.ProjectPlanning), p.Status)
		assert.Equal(t, 100, p.Progress)
	})

	t.Run("leaving planning initializes empty phase", func(t *testing.T) {
		p := mkProject("p1", "c1", "")
		p.Phase = ""

		ApplyProjectTransition(&p, statemachine.ProjectPlanning, statemachine.ProjectInProgress)
		assert.Equal(t, DefaultPhase, p.Phase)
	})

	t.Run("existing phase is preserved", func(t *testing.T) {
		p := mkProject("p1", "c1", "")
		p.Phase = "Discovery"

		ApplyProjectTransition(&p, statemachine.ProjectPlanning, statemachine.ProjectInProgress)
		assert.Equal(t, "Discovery", p.Phase)
	})
}

func TestNextProjectStatuses(t *testing.T) {
	company := Identity{UserId: "m1", Role: RoleCompany, CompanyId: "c1"}
	admin := Identity{UserId: "a1", Role: RoleAdmin}

	next := NextProjectStatuses(company, statemachine.ProjectCompleted)
	assert.Empty(t, next)

	next = NextProjectStatuses(admin, statemachine.ProjectCompleted)
	assert.Len(t, next, 4)
	assert.NotContains(t, next, statemachine.ProjectCompleted)

	next = NextProjectStatuses(company, statemachine.ProjectPlanning)
	assert.ElementsMatch(t, []statemachine.ProjectStatus{
		statemachine.ProjectInProgress,
		statemachine.ProjectOnHold,
	}, next)
}
