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

// Issue 工单表
type Issue struct {
	BaseModel
	IssueId     string `gorm:"column:issue_id;not null;uniqueIndex" json:"issueId"`
	ProjectId   string `gorm:"column:project_id;not null;index" json:"projectId"`
	Title       string `gorm:"column:title;not null" json:"title"`
	Description string `gorm:"column:description" json:"description"`
	Status      string `gorm:"column:status;not null;type:varchar(32);index" json:"status"` // Open/In Progress/Resolved/Closed
	Priority    string `gorm:"column:priority;not null;type:varchar(32)" json:"priority"`   // Low/Medium/High/Critical
	CreatedBy   string `gorm:"column:created_by;not null;index" json:"createdBy"`           // 创建者用户ID
	AssigneeId  string `gorm:"column:assignee_id;index" json:"assigneeId"`                  // 指派的团队成员ID，可为空
}

func (Issue) TableName() string {
	return "t_issue"
}

// IssueComment 工单评论表（追加写，不可修改删除）
type IssueComment struct {
	BaseModel
	CommentId string `gorm:"column:comment_id;not null;uniqueIndex" json:"commentId"`
	IssueId   string `gorm:"column:issue_id;not null;index" json:"issueId"`
	AuthorId  string `gorm:"column:author_id;not null" json:"authorId"`
	Content   string `gorm:"column:content;not null;type:text" json:"content"`
}

func (IssueComment) TableName() string {
	return "t_issue_comment"
}

// CreateIssueReq request for creating issue
type CreateIssueReq struct {
	ProjectId   string `json:"projectId" validate:"required"`
	Title       string `json:"title" validate:"required,min=2,max=256"`
	Description string `json:"description"`
	Priority    string `json:"priority" validate:"omitempty,oneof=Low Medium High Critical"`
}

// UpdateIssueReq request for updating issue
type UpdateIssueReq struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=2,max=256"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High Critical"`
	AssigneeId  *string `json:"assigneeId,omitempty"`
}

// MoveIssueStatusReq 修改工单状态
type MoveIssueStatusReq struct {
	Status string `json:"status" validate:"required"`
}

// AddCommentReq 追加工单评论
type AddCommentReq struct {
	Content string `json:"content" validate:"required,min=1,max=4096"`
}

// IssueQueryReq 查询工单列表
type IssueQueryReq struct {
	ProjectId string `query:"projectId"`
	Status    string `query:"status"`
	Priority  string `query:"priority"`
	Page      int    `query:"page"`
	PageSize  int    `query:"pageSize"`
}
