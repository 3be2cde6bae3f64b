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

import (
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"
)

// Project 项目表
type Project struct {
	BaseModel
	ProjectId   string         `gorm:"column:project_id;not null;uniqueIndex" json:"projectId"`
	CompanyId   string         `gorm:"column:company_id;not null;index" json:"companyId"` // 所属企业ID
	ClientId    string         `gorm:"column:client_id;index" json:"clientId"`            // 客户账号ID，可为空
	Name        string         `gorm:"column:name;not null" json:"name"`
	Description string         `gorm:"column:description" json:"description"`
	Status      string         `gorm:"column:status;not null;type:varchar(32);index" json:"status"`  // Planning/In Progress/Testing/Completed/On Hold
	Priority    string         `gorm:"column:priority;not null;type:varchar(32)" json:"priority"`    // Low/Medium/High/Critical
	Phase       string         `gorm:"column:phase" json:"phase"`                                    // 当前阶段，进入开发后初始化
	Progress    int            `gorm:"column:progress;not null;default:0" json:"progress"`           // 0-100
	Budget      float64        `gorm:"column:budget;not null;default:0" json:"budget"`               // 预算
	Spent       float64        `gorm:"column:spent;not null;default:0" json:"spent"`                 // 已花费
	AssignedTo  datatypes.JSON `gorm:"column:assigned_to;type:json" json:"assignedTo"`               // 指派的团队成员ID数组
	StartDate   *time.Time     `gorm:"column:start_date" json:"startDate"`
	EndDate     *time.Time     `gorm:"column:end_date" json:"endDate"`
	CreatedBy   string         `gorm:"column:created_by" json:"createdBy"` // 创建者用户ID
}

func (Project) TableName() string {
	return "t_project"
}

// ProjectPriority 优先级枚举
const (
	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

// AssignedMemberIds 解析指派成员ID列表
func (p *Project) AssignedMemberIds() []string {
	if len(p.AssignedTo) == 0 {
		return nil
	}
	var ids []string
	if err := sonic.Unmarshal(p.AssignedTo, &ids); err != nil {
		return nil
	}
	return ids
}

// SetAssignedMemberIds 序列化指派成员ID列表
func (p *Project) SetAssignedMemberIds(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := sonic.Marshal(ids)
	if err != nil {
		return err
	}
	p.AssignedTo = data
	return nil
}

// CreateProjectReq request for creating project
type CreateProjectReq struct {
	Name        string     `json:"name" validate:"required,min=2,max=128"`
	Description string     `json:"description"`
	ClientId    string     `json:"clientId"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=Low Medium High Critical"`
	Budget      float64    `json:"budget" validate:"gte=0"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	AssignedTo  []string   `json:"assignedTo"`
	// CompanyId 仅管理员可指定，企业账号强制为自己的企业
	CompanyId string `json:"companyId"`
}

// UpdateProjectReq request for updating project
type UpdateProjectReq struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,min=2,max=128"`
	Description *string    `json:"description,omitempty"`
	ClientId    *string    `json:"clientId,omitempty"`
	Priority    *string    `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High Critical"`
	Phase       *string    `json:"phase,omitempty"`
	Progress    *int       `json:"progress,omitempty" validate:"omitempty,gte=0,lte=100"`
	Budget      *float64   `json:"budget,omitempty" validate:"omitempty,gte=0"`
	Spent       *float64   `json:"spent,omitempty" validate:"omitempty,gte=0"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	AssignedTo  []string   `json:"assignedTo,omitempty"`
}

// MoveProjectStatusReq 看板拖拽移动项目状态
type MoveProjectStatusReq struct {
	Status string `json:"status" validate:"required"`
}

// ProjectQueryReq 查询项目列表
type ProjectQueryReq struct {
	Name     string `query:"name"`
	Status   string `query:"status"`
	Priority string `query:"priority"`
	Page     int    `query:"page"`
	PageSize int    `query:"pageSize"`
}
