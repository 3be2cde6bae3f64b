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

/**
 * @time: 2025/3/14 19:50
 * @file: transition.go
 * @description: project status transition rules and bookkeeping side effects
 */

import (
	"github.com/go-vantage/vantage/internal/engine/model"
	"github.com/go-vantage/vantage/pkg/statemachine"
)

// 项目状态转移图全局只读，判定时不修改内部状态
var projectGraph = statemachine.NewProjectStateMachine()

// DefaultPhase 离开 Planning 后 phase 字段为空时的初始值
const DefaultPhase = "Execution"

// CheckProjectTransition 校验状态转移是否合法
// 管理员可覆盖转移图（包括重新打开 Completed），其余角色走图校验
func CheckProjectTransition(id Identity, from, to statemachine.ProjectStatus) error {
	if !from.IsValid() {
		return &TransitionError{From: string(from), To: string(to)}
	}
	if !to.IsValid() {
		return &TransitionError{From: string(from), To: string(to)}
	}
	if from == to {
		// 拖回原列视为空操作
		return nil
	}
	if id.IsAdmin() {
		return nil
	}
	if !projectGraph.CanTransition(from, to) {
		return &TransitionError{From: string(from), To: string(to)}
	}
	return nil
}

// NextProjectStatuses 当前状态的合法后继，供看板渲染可拖拽列
func NextProjectStatuses(id Identity, from statemachine.ProjectStatus) []statemachine.ProjectStatus {
	if id.IsAdmin() {
		all := []statemachine.ProjectStatus{
			statemachine.ProjectPlanning,
			statemachine.ProjectInProgress,
			statemachine.ProjectTesting,
			statemachine.ProjectCompleted,
			statemachine.ProjectOnHold,
		}
		out := make([]statemachine.ProjectStatus, 0, len(all)-1)
		for _, s := range all {
			if s != from {
				out = append(out, s)
			}
		}
		return out
	}
	return projectGraph.ValidNextStates(from)
}

// ApplyProjectTransition 落盘前应用转移的附带字段变更
// 进入 Completed 进度强制 100；离开 Planning 初始化 phase
// 离开 Completed 不回退进度
func ApplyProjectTransition(p *model.Project, from, to statemachine.ProjectStatus) {
	p.Status = string(to)
	if to == statemachine.ProjectCompleted {
		p.Progress = 100
	}
	if from == statemachine.ProjectPlanning && to != statemachine.ProjectPlanning && p.Phase == "" {
		p.Phase = DefaultPhase
	}
}
