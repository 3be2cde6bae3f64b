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

package model

// ProjectHistory 项目历史快照表，仅作为审计留痕，业务逻辑不读取
type ProjectHistory struct {
	BaseModel
	HistoryId  string `gorm:"column:history_id;not null;uniqueIndex" json:"historyId"`
	ProjectId  string `gorm:"column:project_id;not null;index" json:"projectId"`
	OperatorId string `gorm:"column:operator_id;not null" json:"operatorId"`
	Action     string `gorm:"column:action;not null;type:varchar(64)" json:"action"` // create/update/move_status/delete
	FromStatus string `gorm:"column:from_status;type:varchar(32)" json:"fromStatus"`
	ToStatus   string `gorm:"column:to_status;type:varchar(32)" json:"toStatus"`
	Detail     string `gorm:"column:detail;type:text" json:"detail"`
}

func (ProjectHistory) TableName() string {
	return "t_project_history"
}

// HistoryAction 历史动作枚举
const (
	HistoryActionCreate     = "create"
	HistoryActionUpdate     = "update"
	HistoryActionMoveStatus = "move_status"
	HistoryActionDelete     = "delete"
)
