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

package statemachine

import "testing"

func TestProjectStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   ProjectStatus
		expected bool
	}{
		{ProjectPlanning, false},
		{ProjectInProgress, false},
		{ProjectTesting, false},
		{ProjectOnHold, false},
		{ProjectCompleted, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.expected {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestProjectStatus_IsValid(t *testing.T) {
	if !ProjectPlanning.IsValid() {
		t.Error("Planning should be valid")
	}
	if ProjectStatus("Archived").IsValid() {
		t.Error("Archived should not be valid")
	}
}

func TestProjectStateMachineGraph(t *testing.T) {
	sm := NewProjectStateMachine()

	allowed := []struct {
		from, to ProjectStatus
	}{
		{ProjectPlanning, ProjectInProgress},
		{ProjectPlanning, ProjectOnHold},
		{ProjectInProgress, ProjectTesting},
		{ProjectInProgress, ProjectOnHold},
		{ProjectInProgress, ProjectCompleted},
		{ProjectTesting, ProjectInProgress},
		{ProjectTesting, ProjectCompleted},
		{ProjectTesting, ProjectOnHold},
		{ProjectOnHold, ProjectPlanning},
		{ProjectOnHold, ProjectInProgress},
	}
	for _, tr := range allowed {
		if !sm.CanTransition(tr.from, tr.to) {
			t.Errorf("expected %s -> %s to be allowed", tr.from, tr.to)
		}
	}

	denied := []struct {
		from, to ProjectStatus
	}{
		{ProjectPlanning, ProjectTesting},
		{ProjectPlanning, ProjectCompleted},
		{ProjectCompleted, ProjectPlanning},
		{ProjectCompleted, ProjectInProgress},
		{ProjectOnHold, ProjectCompleted},
	}
	for _, tr := range denied {
		if sm.CanTransition(tr.from, tr.to) {
			t.Errorf("expected %s -> %s to be denied", tr.from, tr.to)
		}
	}
}

func TestIssueStateMachineReopen(t *testing.T) {
	sm := NewIssueStateMachine()

	if !sm.CanTransition(IssueClosed, IssueOpen) {
		t.Error("closed issue should be reopenable")
	}
	if sm.CanTransition(IssueClosed, IssueResolved) {
		t.Error("Closed -> Resolved should be denied")
	}
}
