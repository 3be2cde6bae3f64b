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

func TestOnIssueStatusChanged(t *testing.T) {
	issue := &model.Issue{IssueId: "i1", Title: "login broken", CreatedBy: "u9"}
	company := Identity{UserId: "m1", Role: RoleCompany, CompanyId: "c1"}
	creator := Identity{UserId: "u9", Role: RoleClient}

	drafts := OnIssueStatusChanged(issue, company, "Open", "In Progress")
	require.Len(t, drafts, 1)
	assert.Equal(t, "u9", drafts[0].RecipientId)
	assert.Equal(t, model.NotifyIssueStatus, drafts[0].Type)
	assert.Contains(t, drafts[0].Message, "login broken")
	assert.Contains(t, drafts[0].Message, "Open")
	assert.Contains(t, drafts[0].Message, "In Progress")

	// 创建者本人操作不通知自己
	assert.Empty(t, OnIssueStatusChanged(issue, creator, "Open", "Resolved"))

	// 状态未变化不触发
	assert.Empty(t, OnIssueStatusChanged(issue, company, "Open", "Open"))

	assert.Empty(t, OnIssueStatusChanged(nil, company, "Open", "Closed"))
}

func TestOnProjectAssigned(t *testing.T) {
	p := &model.Project{ProjectId: "p1", Name: "Website Redesign"}
	members := []model.TeamMember{
		{MemberId: "tm1", CompanyId: "c1", UserId: "w1"},
		{MemberId: "tm2", CompanyId: "c1"}, // 无关联账号
		{MemberId: "tm3", CompanyId: "c1", UserId: "w3"},
	}

	drafts := OnProjectAssigned(p, []string{"tm1", "tm2", "tm3"}, members)
	require.Len(t, drafts, 2)
	assert.Equal(t, "w1", drafts[0].RecipientId)
	assert.Equal(t, "w3", drafts[1].RecipientId)
	assert.Equal(t, model.NotifyProjectAssigned, drafts[0].Type)
	assert.Contains(t, drafts[0].Message, "Website Redesign")

	// 未知成员ID跳过
	assert.Empty(t, OnProjectAssigned(p, []string{"tm9"}, members))
	assert.Empty(t, OnProjectAssigned(p, nil, members))
}

func TestAddedMemberIds(t *testing.T) {
	tests := []struct {
		name   string
		before []string
		after  []string
		want   []string
	}{
		{name: "new members", before: []string{"a"}, after: []string{"a", "b", "c"}, want: []string{"b", "c"}},
		{name: "no change", before: []string{"a", "b"}, after: []string{"a", "b"}, want: nil},
		{name: "removal only", before: []string{"a", "b"}, after: []string{"a"}, want: nil},
		{name: "from empty", before: nil, after: []string{"x"}, want: []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddedMemberIds(tt.before, tt.after))
		})
	}
}
