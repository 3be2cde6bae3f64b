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

// TeamMember 团队成员表
// 成员所属项目不落库，由项目的指派列表派生（单一数据源）
type TeamMember struct {
	BaseModel
	MemberId  string `gorm:"column:member_id;not null;uniqueIndex" json:"memberId"`
	CompanyId string `gorm:"column:company_id;not null;index" json:"companyId"`
	UserId    string `gorm:"column:user_id;index" json:"userId"` // 关联的平台账号ID，可为空
	Name      string `gorm:"column:name;not null" json:"name"`
	Email     string `gorm:"column:email" json:"email"`
	RoleLabel string `gorm:"column:role_label" json:"roleLabel"`                       // 自由文本职位
	Status    string `gorm:"column:status;not null;type:varchar(16)" json:"status"`    // Active/Inactive

	// Projects 由项目指派列表派生，只在读取时填充
	Projects []string `gorm:"-" json:"projects,omitempty"`
}

func (TeamMember) TableName() string {
	return "t_team_member"
}

// TeamMemberStatus 成员状态枚举
const (
	MemberActive   = "Active"
	MemberInactive = "Inactive"
)

// CreateMemberReq request for creating team member
type CreateMemberReq struct {
	Name      string `json:"name" validate:"required,min=2,max=64"`
	Email     string `json:"email" validate:"omitempty,email"`
	RoleLabel string `json:"roleLabel"`
	UserId    string `json:"userId"`
	// CompanyId 仅管理员可指定
	CompanyId string `json:"companyId"`
}

// UpdateMemberReq request for updating team member
type UpdateMemberReq struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=2,max=64"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	RoleLabel *string `json:"roleLabel,omitempty"`
	UserId    *string `json:"userId,omitempty"`
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=Active Inactive"`
}
