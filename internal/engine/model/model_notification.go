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

// Notification 通知表
// 由变更触发器创建，仅允许翻转已读标记，永不删除
type Notification struct {
	BaseModel
	NotificationId string `gorm:"column:notification_id;not null;uniqueIndex" json:"notificationId"`
	RecipientId    string `gorm:"column:recipient_id;not null;index" json:"recipientId"` // 接收者用户ID
	Title          string `gorm:"column:title;not null" json:"title"`
	Message        string `gorm:"column:message;type:text" json:"message"`
	Type           string `gorm:"column:type;not null;type:varchar(32)" json:"type"` // issue_status/project_assigned
	IsRead         int    `gorm:"column:is_read;not null;default:0" json:"isRead"`   // 0: unread, 1: read
}

func (Notification) TableName() string {
	return "t_notification"
}

// NotificationType 通知类型枚举
const (
	NotifyIssueStatus     = "issue_status"
	NotifyProjectAssigned = "project_assigned"
)

// NotificationQueryReq 查询通知列表
type NotificationQueryReq struct {
	OnlyUnread bool `query:"onlyUnread"`
	Page       int  `query:"page"`
	PageSize   int  `query:"pageSize"`
}
