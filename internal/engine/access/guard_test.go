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

	"github.com/go-vantage/vantage/internal/engine/model"
)

func TestCanCreateProject(t *testing.T) {
	tests := []struct {
		name       string
		identity   Identity
		companyId  string
		allowed    bool
		wantReason Reason
	}{
		{
			name:      "admin creates for any company",
			identity:  Identity{UserId: "a1", Role: RoleAdmin},
			companyId: "c7",
			allowed:   true,
		},
		{
			name:      "company creates for itself",
			identity:  Identity{UserId: "m1", Role: RoleCompany, CompanyId: "c1"},
			companyId: "c1",
			allowed:   true,
		},
		{
			name:       "company cannot create for another company",
			identity:   Identity{UserId: "m1", Role: RoleCompany, CompanyId: "c1"},
			companyId:  "c2",
			allowed:    false,
			wantReason: ReasonOutOfScope,
		},
		{
			name:       "client never creates projects",
			identity:   Identity{UserId: "u9", Role: RoleClient},
			companyId:  "c1",
			allowed:    false,
			wantReason: ReasonRoleForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanCreateProject(tt.identity, tt.companyId)
			assert.Equal(t, tt.allowed, d.Allowed)
			if !tt.allowed {
				assert.Equal(t, tt.wantReason, d.Reason)
				assert.NotEmpty(t, d.Detail)
			}
		})
	}
}

func TestCanMutateProject(t *testing.T) {
	p1 := mkProject("p1", "c1", "u9")
	p2 := mkProject("p2", "c2", "")

	tests := []struct {
		name       string
		identity   Identity
		project    *model.Project
		op         Operation
		allowed    bool
		wantReason Reason
	}{
		{
			name:     "admin updates anything",
			identity: Identity{UserId: "a1", Role: RoleAdmin},
			project:  &p2,
			op:       OpUpdate,
			allowed:  true,
		},
		{
			name:     "company updates own project",
			identity: Identity{UserId: "m1", Role: RoleCompany, CompanyId: "c1"},
			project:  &p1,
			op:       OpUpdate,
			allowed:  true,
		},
		{
			name:       "company cannot update foreign project",
			identity:   Identity{UserId: "m1", Role: RoleCompany, CompanyId: "c1"},
			project:    &p2,
			op:         OpUpdate,
			allowed:    false,
			wantReason: ReasonOutOfScope,
		},
		{
			name:     "company deletes own project",
			identity: Identity{UserId: "m1", Role: RoleCompany, CompanyId: "c1"},
			project:  &p1,
			op:       OpDelete,
			allowed:  true,
		},
		{
			// 即便项目引用该客户，更新仍被角色拒绝
			name:       "client cannot update own referenced project",
			identity:   Identity{UserId: "u9", Role: RoleClient},
			project:    &p1,
			op:         OpUpdate,
			allowed:    false,
			wantReason: ReasonRoleForbidden,
		},
		{
			name:       "client delete is always RoleForbidden",
			identity:   Identity{UserId: "u9", Role: RoleClient},
			project:    &p2,
			op:         OpDelete,
			allowed:    false,
			wantReason: ReasonRoleForbidden,
		},
		{
			name:       "nil project is UnknownEntity",
			identity:   Identity{UserId: "a1", Role: RoleAdmin},
			project:    nil,
			op:         OpUpdate,
			allowed:    false,
			wantReason: ReasonUnknownEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanMutateProject(tt.identity, tt.project, tt.op)
			assert.Equal(t, tt.allowed, d.Allowed)
			if !tt.allowed {
				assert.Equal(t, tt.wantReason, d.Reason)
				assert.NotEmpty(t, d.Detail)
			}
		})
	}
}

func TestCanCreateIssue(t *testing.T) {
	own := mkProject("p1", "c1", "u9")
	foreign := mkProject("p3", "c2", "")

	tests := []struct {
		name       string
		identity   Identity
		project    *model.Project
		allowed    bool
		wantReason Reason
	}{
		{
			name:     "company files against own project",
			identity: Identity{UserId: "m1", Role: RoleCompany, CompanyId: "c1"},
			project:  &own,
			allowed:  true,
		},
		{
			name:       "company against foreign project is OutOfScope",
			identity:   Identity{UserId: "m1", Role: RoleCompany, CompanyId: "c1"},
			project:    &foreign,
			allowed:    false,
			wantReason: ReasonOutOfScope,
		},
		{
			name:     "client files against their project",
			identity: Identity{UserId: "u9", Role: RoleClient},
			project:  &own,
			allowed:  true,
		},
		{
			name:       "client against unrelated project is OutOfScope",
			identity:   Identity{UserId: "u9", Role: RoleClient},
			project:    &foreign,
			allowed:    false,
			wantReason: ReasonOutOfScope,
		},
		{
			name:     "admin files anywhere",
			identity: Identity{UserId: "a1", Role: RoleAdmin},
			project:  &foreign,
			allowed:  true,
		},
		{
			name:       "missing project is UnknownEntity",
			identity:   Identity{UserId: "m1", Role: RoleCompany, CompanyId: "c1"},
			project:    nil,
			allowed:    false,
			wantReason: ReasonUnknownEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanCreateIssue(tt.identity, tt.project)
			assert.Equal(t, tt.allowed, d.Allowed, d.String())
			if !tt.allowed {
				assert.Equal(t, tt.wantReason, d.Reason)
			}
		})
	}
}

func TestCanMutateIssue(t *testing.T) {
	p1 := mkProject("p1", "c1", "u9")
	issue := model.Issue{IssueId: "i1", ProjectId: "p1", CreatedBy: "u9", Status: "Open"}

	company := Identity{UserId: "m1", Role: RoleCompany, CompanyId: "c1"}
	otherCompany := Identity{UserId: "m2", Role: RoleCompany, CompanyId: "c2"}
	client := Identity{UserId: "u9", Role: RoleClient}

	d := CanMutateIssue(company, &issue, &p1, OpMoveStatus)
	assert.True(t, d.Allowed)

	d = CanMutateIssue(otherCompany, &issue, &p1, OpMoveStatus)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonOutOfScope, d.Reason)

	// 客户可以评论但不能改状态
	d = CanMutateIssue(client, &issue, &p1, OpMoveStatus)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonRoleForbidden, d.Reason)

	d = CanMutateIssue(client, &issue, &p1, OpComment)
	assert.True(t, d.Allowed)

	// 项目引用改走后创建者仍可评论
	moved := mkProject("p9", "c2", "")
	d = CanMutateIssue(client, &issue, &moved, OpComment)
	assert.True(t, d.Allowed)
}

func TestCanMutateTeamMember(t *testing.T) {
	m := model.TeamMember{MemberId: "tm1", CompanyId: "c1"}

	tests := []struct {
		name       string
		identity   Identity
		member     *model.TeamMember
		allowed    bool
		wantReason Reason
	}{
		{
			name:     "admin manages any roster",
			identity: Identity{UserId: "a1", Role: RoleAdmin},
			member:   &m,
			allowed:  true,
		},
		{
			name:     "company manages own roster",
			identity: Identity{UserId: "m1", Role: RoleCompany, CompanyId: "c1"},
			member:   &m,
			allowed:  true,
		},
		{
			name:       "company cannot manage foreign roster",
			identity:   Identity{UserId: "m2", Role: RoleCompany, CompanyId: "c2"},
			member:     &m,
			allowed:    false,
			wantReason: ReasonOutOfScope,
		},
		{
			name:       "client cannot manage members",
			identity:   Identity{UserId: "u9", Role: RoleClient},
			member:     &m,
			allowed:    false,
			wantReason: ReasonRoleForbidden,
		},
		{
			name:       "missing member is UnknownEntity",
			identity:   Identity{UserId: "a1", Role: RoleAdmin},
			member:     nil,
			allowed:    false,
			wantReason: ReasonUnknownEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanMutateTeamMember(tt.identity, tt.member, OpUpdate)
			assert.Equal(t, tt.allowed, d.Allowed)
			if !tt.allowed {
				assert.Equal(t, tt.wantReason, d.Reason)
			}
		})
	}
}

func TestCanManageCompany(t *testing.T) {
	assert.True(t, CanManageCompany(Identity{UserId: "a1", Role: RoleAdmin}).Allowed)
	assert.False(t, CanManageCompany(Identity{UserId: "m1", Role: RoleCompany, CompanyId: "c1"}).Allowed)
	assert.False(t, CanManageCompany(Identity{UserId: "u9", Role: RoleClient}).Allowed)
}
