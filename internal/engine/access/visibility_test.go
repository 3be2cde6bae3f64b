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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-vantage/vantage/internal/engine/model"
)

func mkProject(projectId, companyId, clientId string) model.Project {
	return model.Project{
		ProjectId: projectId,
		CompanyId: companyId,
		ClientId:  clientId,
		Status:    "Planning",
	}
}

func projectIds(projects []model.Project) []string {
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ProjectId)
	}
	return ids
}

func issueIds(issues []model.Issue) []string {
	ids := make([]string, 0, len(issues))
	for _, i := range issues {
		ids = append(ids, i.IssueId)
	}
	return ids
}

func TestVisibleProjects(t *testing.T) {
	projects := []model.Project{
		mkProject("p1", "c1", "u9"),
		mkProject("p2", "c1", ""),
		mkProject("p3", "c2", "u9"),
		mkProject("p4", "", ""), // 无归属企业
	}

	tests := []struct {
		name     string
		identity Identity
		want     []string
	}{
		{
			name:     "admin sees everything order preserving",
			identity: Identity{UserId: "a1", Role: RoleAdmin},
			want:     []string{"p1", "p2", "p3", "p4"},
		},
		{
			name:     "company sees own company only",
			identity: Identity{UserId: "m1", Role: RoleCompany, CompanyId: "c1"},
			want:     []string{"p1", "p2"},
		},
		{
			name:     "other company sees its own only",
			identity: Identity{UserId: "m2", Role: RoleCompany, CompanyId: "c2"},
			want:     []string{"p3"},
		},
		{
			name:     "client sees projects referencing them",
			identity: Identity{UserId: "u9", Role: RoleClient},
			want:     []string{"p1", "p3"},
		},
		{
			name:     "client with no projects sees nothing",
			identity: Identity{UserId: "u5", Role: RoleClient},
			want:     []string{},
		},
		{
			name:     "unknown role sees nothing",
			identity: Identity{UserId: "x", Role: Role("root")},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleProjects(tt.identity, projects)
			assert.Equal(t, tt.want, projectIds(got))
		})
	}
}

func TestVisibleProjects_NullScopeAdminOnly(t *testing.T) {
	projects := []model.Project{mkProject("p4", "", "")}

	admin := Identity{UserId: "a1", Role: RoleAdmin}
	company := Identity{UserId: "m1", Role: RoleCompany, CompanyId: ""}
	client := Identity{UserId: "u1", Role: RoleClient}

	assert.Len(t, VisibleProjects(admin, projects), 1)
	// companyId 为空的企业身份不能借空值匹配到无归属项目
	assert.Empty(t, VisibleProjects(company, projects))
	assert.Empty(t, VisibleProjects(client, projects))
}

func TestVisibleProjects_Idempotent(t *testing.T) {
	projects := []model.Project{
		mkProject("p1", "c1", ""),
		mkProject("p2", "c2", ""),
	}
	identity := Identity{UserId: "m1", Role: RoleCompany, CompanyId: "c1"}

	first := VisibleProjects(identity, projects)
	second := VisibleProjects(identity, projects)
	assert.Equal(t, first, second)
	// 输入不被修改
	assert.Equal(t, []string{"p1", "p2"}, projectIds(projects))
}

func TestVisibleIssues(t *testing.T) {
	projects := []model.Project{
		mkProject("p1", "c1", "u9"),
		mkProject("p2", "c2", ""),
	}
	issues := []model.Issue{
		{IssueId: "i1", ProjectId: "p1", CreatedBy: "u9"},
		{IssueId: "i2", ProjectId: "p1", CreatedBy: "m1"},
		{IssueId: "i3", ProjectId: "p2", CreatedBy: "u9"}, // 项目不可见但创建者为 u9
		{IssueId: "i4", ProjectId: "p2", CreatedBy: "m2"},
		{IssueId: "i5", ProjectId: "", CreatedBy: "u9"}, // 无项目引用
	}

	tests := []struct {
		name     string
		identity Identity
		want     []string
	}{
		{
			name:     "admin sees all issues",
			identity: Identity{UserId: "a1", Role: RoleAdmin},
			want:     []string{"i1", "i2", "i3", "i4", "i5"},
		},
		{
			name:     "company sees issues of own projects",
			identity: Identity{UserId: "m1", Role: RoleCompany, CompanyId: "c1"},
			want:     []string{"i1", "i2"},
		},
		{
			// 并集规则：项目可见 或 本人创建
			name:     "client union of project scope and own issues",
			identity: Identity{UserId: "u9", Role: RoleClient},
			want:     []string{"i1", "i2", "i3", "i5"},
		},
		{
			name:     "stranger client sees nothing",
			identity: Identity{UserId: "u5", Role: RoleClient},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleIssues(tt.identity, issues, projects)
			assert.Equal(t, tt.want, issueIds(got))
		})
	}
}

func TestVisibleTeamMembers(t *testing.T) {
	p1 := mkProject("p1", "c1", "u9")
	require.NoError(t, p1.SetAssignedMemberIds([]string{"tm1", "tm2"}))
	p2 := mkProject("p2", "c2", "")
	require.NoError(t, p2.SetAssignedMemberIds([]string{"tm3"}))
	projects := []model.Project{p1, p2}

	members := []model.TeamMember{
		{MemberId: "tm1", CompanyId: "c1", UserId: "w1"},
		{MemberId: "tm2", CompanyId: "c1"},
		{MemberId: "tm3", CompanyId: "c2", UserId: "w3"},
		{MemberId: "tm4", CompanyId: ""},
	}

	admin := Identity{UserId: "a1", Role: RoleAdmin}
	company := Identity{UserId: "m1", Role: RoleCompany, CompanyId: "c1"}
	client := Identity{UserId: "u9", Role: RoleClient}

	assert.Len(t, VisibleTeamMembers(admin, members, projects), 4)

	got := VisibleTeamMembers(company, members, projects)
	require.Len(t, got, 2)
	assert.Equal(t, "tm1", got[0].MemberId)
	assert.Equal(t, "tm2", got[1].MemberId)

	// 客户只能看到可见项目中被指派的成员
	got = VisibleTeamMembers(client, members, projects)
	require.Len(t, got, 2)
	assert.Equal(t, "tm1", got[0].MemberId)
	assert.Equal(t, "tm2", got[1].MemberId)
}
