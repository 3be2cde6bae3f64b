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

// ProjectStatus 项目状态（看板列）
type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "Planning"
	ProjectInProgress ProjectStatus = "In Progress"
	ProjectTesting    ProjectStatus = "Testing"
	ProjectCompleted  ProjectStatus = "Completed"
	ProjectOnHold     ProjectStatus = "On Hold"
)

// IsValid 判断是否为已知状态
func (ps ProjectStatus) IsValid() bool {
	switch ps {
	case ProjectPlanning, ProjectInProgress, ProjectTesting, ProjectCompleted, ProjectOnHold:
		return true
	}
	return false
}

// IsTerminal 判断是否为终止状态
// Completed 为终止状态，仅管理员可以重新打开
func (ps ProjectStatus) IsTerminal() bool {
	return ps == ProjectCompleted
}

// NewProjectStateMachine 创建项目状态机
func NewProjectStateMachine() *StateMachine[ProjectStatus] {
	sm := NewWithState(ProjectPlanning)

	// 状态转移规则
	sm.Allow(ProjectPlanning, ProjectInProgress, ProjectOnHold).
		Allow(ProjectInProgress, ProjectTesting, ProjectOnHold, ProjectCompleted).
		Allow(ProjectTesting, ProjectInProgress, ProjectCompleted, ProjectOnHold).
		Allow(ProjectOnHold, ProjectPlanning, ProjectInProgress)
	// Completed 不声明任何出边

	return sm
}
