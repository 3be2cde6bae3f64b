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

// IssueStatus 工单状态
type IssueStatus string

const (
	IssueOpen       IssueStatus = "Open"
	IssueInProgress IssueStatus = "In Progress"
	IssueResolved   IssueStatus = "Resolved"
	IssueClosed     IssueStatus = "Closed"
)

// IsValid 判断是否为已知状态
func (is IssueStatus) IsValid() bool {
	switch is {
	case IssueOpen, IssueInProgress, IssueResolved, IssueClosed:
		return true
	}
	return false
}

// IsClosed 判断工单是否已关闭
func (is IssueStatus) IsClosed() bool {
	return is == IssueClosed
}

// NewIssueStateMachine 创建工单状态机
func NewIssueStateMachine() *StateMachine[IssueStatus] {
	sm := NewWithState(IssueOpen)

	sm.Allow(IssueOpen, IssueInProgress, IssueResolved, IssueClosed).
		Allow(IssueInProgress, IssueResolved, IssueClosed, IssueOpen).
		Allow(IssueResolved, IssueClosed, IssueOpen). // 允许重新打开
		Allow(IssueClosed, IssueOpen)

	return sm
}
