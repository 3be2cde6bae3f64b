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
	"fmt"

	"github.com/go-vantage/vantage/internal/engine/model"
)

// Draft 待创建的通知，由通知服务落盘并投递
// 该层只做决策，投递失败不会影响底层变更
type Draft struct {
	RecipientId string `json:"recipientId"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	Type        string `json:"type"`
}

// OnIssueStatusChanged 工单状态变化时通知工单创建者
// 创建者本人触发的变更不通知自己
func OnIssueStatusChanged(issue *model.Issue, actor Identity, from, to string) []Draft {
	if issue == nil || from == to {
		return nil
	}
	if issue.CreatedBy == "" || issue.CreatedBy == actor.UserId {
		return nil
	}
	return []Draft{{
		RecipientId: issue.CreatedBy,
		Title:       "Issue status updated",
		Message:     fmt.Sprintf("Issue %q moved from %s to %s", issue.Title, from, to),
		Type:        model.NotifyIssueStatus,
	}}
}

// OnProjectAssigned 项目新指派成员时通知其关联账号
// addedMemberIds 为本次新增的成员，不含原有成员；没有关联账号的成员跳过
func OnProjectAssigned(p *model.Project, addedMemberIds []string, members []model.TeamMember) []Draft {
	if p == nil || len(addedMemberIds) == 0 {
		return nil
	}
	linked := make(map[string]string, len(members))
	for i := range members {
		if members[i].UserId != "" {
			linked[members[i].MemberId] = members[i].UserId
		}
	}
	var drafts []Draft
	seen := make(map[string]struct{})
	for _, mid := range addedMemberIds {
		userId, ok := linked[mid]
		if !ok {
			continue
		}
		if _, dup := seen[userId]; dup {
			continue
		}
		seen[userId] = struct{}{}
		drafts = append(drafts, Draft{
			RecipientId: userId,
			Title:       "Assigned to project",
			Message:     fmt.Sprintf("You have been assigned to project %q", p.Name),
			Type:        model.NotifyProjectAssigned,
		})
	}
	return drafts
}

// AddedMemberIds 比较新旧指派列表，返回新增的成员ID
func AddedMemberIds(before, after []string) []string {
	old := make(map[string]struct{}, len(before))
	for _, id := range before {
		old[id] = struct{}{}
	}
	var added []string
	for _, id := range after {
		if _, ok := old[id]; !ok {
			added = append(added, id)
		}
	}
	return added
}
