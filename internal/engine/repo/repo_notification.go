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

package repo

import (
	"github.com/go-vantage/vantage/internal/engine/model"
	"github.com/go-vantage/vantage/pkg/database"
)

type INotificationRepository interface {
	AddNotifications(ns []model.Notification) error
	GetNotificationByNotificationId(notificationId string) (*model.Notification, error)
	ListByRecipient(recipientId string, unreadOnly bool, offset, pageSize int) ([]model.Notification, int64, error)
	CountUnread(recipientId string) (int64, error)
	MarkRead(notificationId string) error
	MarkAllRead(recipientId string) error
}

type NotificationRepo struct {
	db                database.DB
	notificationModel *model.Notification
}

func NewNotificationRepo(db database.DB) INotificationRepository {
	return &NotificationRepo{
		db:                db,
		notificationModel: &model.Notification{},
	}
}

// AddNotifications 批量写入，通知只创建和翻已读标记，从不删除
func (nr *NotificationRepo) AddNotifications(ns []model.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return nr.db.DB().Create(&ns).Error
}

func (nr *NotificationRepo) GetNotificationByNotificationId(notificationId string) (*model.Notification, error) {
	n := &model.Notification{}
	err := nr.db.DB().Table(nr.notificationModel.TableName()).
		Where("notification_id = ?", notificationId).First(n).Error
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (nr *NotificationRepo) ListByRecipient(recipientId string, unreadOnly bool, offset, pageSize int) ([]model.Notification, int64, error) {
	var (
		ns    []model.Notification
		count int64
	)
	tx := nr.db.DB().Table(nr.notificationModel.TableName()).
		Where("recipient_id = ?", recipientId)
	if unreadOnly {
		tx = tx.Where("is_read = ?", 0)
	}
	if err := tx.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := tx.Order("id DESC").Offset(offset).Limit(pageSize).Find(&ns).Error
	return ns, count, err
}

func (nr *NotificationRepo) CountUnread(recipientId string) (int64, error) {
	var count int64
	err := nr.db.DB().Table(nr.notificationModel.TableName()).
		Where("recipient_id = ? AND is_read = ?", recipientId, 0).
		Count(&count).Error
	return count, err
}

func (nr *NotificationRepo) MarkRead(notificationId string) error {
	return nr.db.DB().Table(nr.notificationModel.TableName()).
		Where("notification_id = ?", notificationId).
		Update("is_read", 1).Error
}

func (nr *NotificationRepo) MarkAllRead(recipientId string) error {
	return nr.db.DB().Table(nr.notificationModel.TableName()).
		Where("recipient_id = ? AND is_read = ?", recipientId, 0).
		Update("is_read", 1).Error
}
