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
 * @time: 2025/3/13 21:30
 * @file: guard.go
 * @description: mutation guard, decides whether a write is permitted
 */

import (
	"github.com/go-vantage/vantage/internal/engine/model"
)

// Operation 写操作种类
type Operation string

const (
	OpCreate     Operation = "create"
	OpUpdate     Operation = "update"
	OpDelete     Operation = "delete"
	OpMoveStatus Operation = "move_status"
	OpComment    Operation = "comment"
)

// CanCreateProject 创建项目：企业与管理员允许，客户拒绝
// 企业账号的 companyId 由调用方强制为其本企业，不信任请求体
func CanCreateProject(id Identity, companyId string) Decision {
	switch id.Role {
	case RoleAdmin:
		return Allow()
	case RoleCompany:
		if companyId != "" && companyId != id.CompanyId {
			return Deny(ReasonOutOfScope, "company %s cannot create a project for company %s", id.CompanyId, companyId)
		}
		return Allow()
	case RoleClient:
		return Deny(ReasonRoleForbidden, "role client cannot create projects")
	}
	return Deny(ReasonRoleForbidden, "unknown role %q", id.Role)
}

// CanMutateProject 项目写操作判定
// 客户永远不能直接修改或删除项目，能力检查先于范围检查
func CanMutateProject(id Identity, p *model.Project, op Operation) Decision {
	if p == nil {
		return Deny(ReasonUnknownEntity, "project not found")
	}
	switch id.Role {
	case RoleAdmin:
		return Allow()
	case RoleCompany:
		if op == OpDelete {
			// 企业可删除本企业项目
			if !ProjectVisible(id, p) {
				return Deny(ReasonOutOfScope, "project %s does not belong to company %s", p.ProjectId, id.CompanyId)
			}
			return Allow()
		}
		if !ProjectVisible(id, p) {
			return Deny(ReasonOutOfScope, "project %s does not belong to company %s", p.ProjectId, id.CompanyId)
		}
		return Allow()
	case RoleClient:
		return Deny(ReasonRoleForbidden, "role client cannot %s projects", op)
	}
	return Deny(ReasonRoleForbidden, "unknown role %q", id.Role)
}

// CanCreateIssue 创建工单：任何能看到目标项目的身份都可以提交
func CanCreateIssue(id Identity, p *model.Project) Decision {
	if p == nil {
		return Deny(ReasonUnknownEntity, "project not found")
	}
	if !id.Role.Valid() {
		return Deny(ReasonRoleForbidden, "unknown role %q", id.Role)
	}
	if !ProjectVisible(id, p) {
		return Deny(ReasonOutOfScope, "project %s is not visible to user %s", p.ProjectId, id.UserId)
	}
	return Allow()
}

// CanMutateIssue 工单写操作判定
// 客户可以评论可见工单，但不能改状态、改字段或删除
func CanMutateIssue(id Identity, issue *model.Issue, p *model.Project, op Operation) Decision {
	if issue == nil {
		return Deny(ReasonUnknownEntity, "issue not found")
	}
	if op == OpComment {
		return canCommentIssue(id, issue, p)
	}
	switch id.Role {
	case RoleAdmin:
		return Allow()
	case RoleCompany:
		if p == nil {
			return Deny(ReasonUnknownEntity, "project %s not found for issue %s", issue.ProjectId, issue.IssueId)
		}
		if !ProjectVisible(id, p) {
			return Deny(ReasonOutOfScope, "issue %s does not belong to company %s", issue.IssueId, id.CompanyId)
		}
		return Allow()
	case RoleClient:
		return Deny(ReasonRoleForbidden, "role client cannot %s issues", op)
	}
	return Deny(ReasonRoleForbidden, "unknown role %q", id.Role)
}

func canCommentIssue(id Identity, issue *model.Issue, p *model.Project) Decision {
	if id.IsAdmin() {
		return Allow()
	}
	// 创建者始终可以评论自己提交的工单
	if id.Role == RoleClient && issue.CreatedBy == id.UserId {
		return Allow()
	}
	if p == nil {
		return Deny(ReasonUnknownEntity, "project %s not found for issue %s", issue.ProjectId, issue.IssueId)
	}
	if !ProjectVisible(id, p) {
		return Deny(ReasonOutOfScope, "issue %s is not visible to user %s", issue.IssueId, id.UserId)
	}
	return Allow()
}

// CanMutateTeamMember 团队成员增删改：企业限本企业，管理员不限，客户拒绝
func CanMutateTeamMember(id Identity, m *model.TeamMember, op Operation) Decision {
	if m == nil {
		return Deny(ReasonUnknownEntity, "team member not found")
	}
	switch id.Role {
	case RoleAdmin:
		return Allow()
	case RoleCompany:
		if m.CompanyId == "" || m.CompanyId != id.CompanyId {
			return Deny(ReasonOutOfScope, "member %s does not belong to company %s", m.MemberId, id.CompanyId)
		}
		return Allow()
	case RoleClient:
		return Deny(ReasonRoleForbidden, "role client cannot %s team members", op)
	}
	return Deny(ReasonRoleForbidden, "unknown role %q", id.Role)
}

// CanManageCompany 企业与套餐管理仅平台管理员可用
func CanManageCompany(id Identity) Decision {
	caps, err := PermissionsFor(id.Role)
	if err != nil {
		return Deny(ReasonRoleForbidden, "unknown role %q", id.Role)
	}
	if !caps.Has(CapManage) {
		return Deny(ReasonRoleForbidden, "role %s cannot manage companies", id.Role)
	}
	return Allow()
}
