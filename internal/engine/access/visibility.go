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
 * @time: 2025/3/13 20:05
 * @file: visibility.go
 * @description: pure visibility filters for projects, issues and team members
 */

import (
	"github.com/go-vantage/vantage/internal/engine/model"
)

// ProjectVisible 单个项目对身份是否可见
// 无归属企业的项目仅管理员可见，不向其他角色泄露
func ProjectVisible(id Identity, p *model.Project) bool {
	if id.IsAdmin() {
		return true
	}
	switch id.Role {
	case RoleCompany:
		return p.CompanyId != "" && p.CompanyId == id.CompanyId
	case RoleClient:
		return p.ClientId != "" && p.ClientId == id.UserId
	}
	return false
}

// VisibleProjects 过滤出身份可见的项目集合，保持输入顺序
func VisibleProjects(id Identity, projects []model.Project) []model.Project {
	if id.IsAdmin() {
		return projects
	}
	out := make([]model.Project, 0, len(projects))
	for i := range projects {
		if ProjectVisible(id, &projects[i]) {
			out = append(out, projects[i])
		}
	}
	return out
}

// VisibleIssues 过滤出身份可见的工单集合
// 客户规则为并集：项目可见 或 本人创建，客户始终能看到自己提交的工单
func VisibleIssues(id Identity, issues []model.Issue, projects []model.Project) []model.Issue {
	if id.IsAdmin() {
		return issues
	}

	visible := make(map[string]struct{})
	for i := range projects {
		if ProjectVisible(id, &projects[i]) {
			visible[projects[i].ProjectId] = struct{}{}
		}
	}

	out := make([]model.Issue, 0, len(issues))
	for i := range issues {
		issue := &issues[i]
		if _, ok := visible[issue.ProjectId]; ok {
			out = append(out, *issue)
			continue
		}
		if id.Role == RoleClient && issue.CreatedBy == id.UserId {
			out = append(out, *issue)
		}
	}
	return out
}

// VisibleTeamMembers 过滤出身份可见的团队成员
// 管理员看全部，企业看本企业名册，客户只看可见项目里被指派的成员
func VisibleTeamMembers(id Identity, members []model.TeamMember, projects []model.Project) []model.TeamMember {
	if id.IsAdmin() {
		return members
	}

	switch id.Role {
	case RoleCompany:
		out := make([]model.TeamMember, 0, len(members))
		for i := range members {
			if members[i].CompanyId != "" && members[i].CompanyId == id.CompanyId {
				out = append(out, members[i])
			}
		}
		return out
	case RoleClient:
		assigned := make(map[string]struct{})
		for i := range projects {
			if !ProjectVisible(id, &projects[i]) {
				continue
			}
			for _, mid := range projects[i].AssignedMemberIds() {
				assigned[mid] = struct{}{}
			}
		}
		out := make([]model.TeamMember, 0, len(members))
		for i := range members {
			if _, ok := assigned[members[i].MemberId]; ok {
				out = append(out, members[i])
			}
		}
		return out
	}
	return []model.TeamMember{}
}
