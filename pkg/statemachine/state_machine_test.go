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

import (
	"errors"
	"testing"
)

func TestStateMachineTransit(t *testing.T) {
	sm := NewWithState("a")
	sm.Allow("a", "b").Allow("b", "c")

	if err := sm.Transit("b"); err != nil {
		t.Fatalf("Transit(a->b) failed: %v", err)
	}
	if sm.Current() != "b" {
		t.Errorf("Current() = %v, want b", sm.Current())
	}

	if err := sm.Transit("a"); err == nil {
		t.Error("expected error for undeclared transition b->a")
	}
}

func TestStateMachineCanTransition(t *testing.T) {
	sm := New[string]()
	sm.Allow("a", "b", "c")

	tests := []struct {
		from, to string
		expected bool
	}{
		{"a", "b", true},
		{"a", "c", true},
		{"a", "a", false},
		{"b", "a", false},
		{"x", "y", false},
	}

	for _, tt := range tests {
		if got := sm.CanTransition(tt.from, tt.to); got != tt.expected {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.expected)
		}
	}
}

func TestStateMachineOnEnterHook(t *testing.T) {
	sm := NewWithState("a")
	sm.Allow("a", "b")

	var entered string
	sm.OnEnter("b", func(state string) error {
		entered = state
		return nil
	})

	if err := sm.Transit("b"); err != nil {
		t.Fatalf("Transit failed: %v", err)
	}
	if entered != "b" {
		t.Errorf("hook not fired, entered = %q", entered)
	}
}

func TestStateMachineHookError(t *testing.T) {
	sm := NewWithState("a")
	sm.Allow("a", "b")

	wantErr := errors.New("hook failed")
	sm.OnEnter("b", func(state string) error {
		return wantErr
	})

	if err := sm.Transit("b"); !errors.Is(err, wantErr) {
		t.Errorf("Transit error = %v, want %v", err, wantErr)
	}
}

func TestStateMachineReset(t *testing.T) {
	sm := NewWithState("a")
	sm.Allow("a", "b")

	_ = sm.Transit("b")
	sm.Reset()
	if sm.Current() != "a" {
		t.Errorf("Current() after Reset = %v, want a", sm.Current())
	}
}
