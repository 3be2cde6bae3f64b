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

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-vantage/vantage/internal/engine/access"
	"github.com/go-vantage/vantage/internal/engine/model"
	"github.com/go-vantage/vantage/internal/engine/repo"
	"github.com/go-vantage/vantage/internal/pkg/notify"
	"github.com/go-vantage/vantage/internal/pkg/queue"
	"github.com/go-vantage/vantage/pkg/cache"
	"github.com/go-vantage/vantage/pkg/id"
	"github.com/go-vantage/vantage/pkg/log"
	"github.com/go-vantage/vantage/pkg/metrics"
)

const unreadCountTTL = 30 * time.Second

type NotificationService struct {
	notificationRepo repo.INotificationRepository
	companyRepo      repo.ICompanyRepository
	taskQueue        *queue.TaskQueue
	webhook          *notify.WebhookChannel
	local            *cache.LocalCache
}

func NewNotificationService(
	notificationRepo repo.INotificationRepository,
	companyRepo repo.ICompanyRepository,
	taskQueue *queue.TaskQueue,
	local *cache.LocalCache,
) *NotificationService {
	s := &NotificationService{
		notificationRepo: notificationRepo,
		companyRepo:      companyRepo,
		taskQueue:        taskQueue,
		webhook:          notify.NewWebhookChannel(),
		local:            local,
	}
	if taskQueue != nil {
		taskQueue.RegisterHandlerFunc(queue.TaskTypeNotifyDeliver, s.HandleDeliver)
	}
	return s
}

// Dispatch 落盘通知并入队投递
// 通知只是附带效果，任何失败都不回滚也不打断上游变更
func (s *NotificationService) Dispatch(drafts []access.Draft, companyId string) {
	if len(drafts) == 0 {
		return
	}

	// 企业配置了回调地址时同时外呼
	webhookUrl := ""
	if companyId != "" && s.companyRepo != nil {
		if company, err := s.companyRepo.GetCompanyByCompanyId(companyId); err == nil {
			webhookUrl = company.NotifyWebhookUrl
		}
	}

	ns := make([]model.Notification, 0, len(drafts))
	for _, d := range drafts {
		ns = append(ns, model.Notification{
			NotificationId: id.GetULID(),
			RecipientId:    d.RecipientId,
			Title:          d.Title,
			Message:        d.Message,
			Type:           d.Type,
			IsRead:         0,
		})
	}
	if err := s.notificationRepo.AddNotifications(ns); err != nil {
		log.Errorw("persist notifications failed", "count", len(ns), "error", err)
		return
	}

	for i := range ns {
		s.invalidateUnreadCount(ns[i].RecipientId)
		if s.taskQueue == nil {
			continue
		}
		payload := &queue.NotifyPayload{
			NotificationId: ns[i].NotificationId,
			RecipientId:    ns[i].RecipientId,
			Title:          ns[i].Title,
			Message:        ns[i].Message,
			Type:           ns[i].Type,
			WebhookUrl:     webhookUrl,
			RetryCount:     3,
			Timeout:        30,
		}
		if err := s.taskQueue.Enqueue(payload, queue.Default); err != nil {
			log.Errorw("enqueue notification failed",
				"notificationId", ns[i].NotificationId, "error", err)
		}
	}
}

// HandleDeliver 队列侧投递处理器
func (s *NotificationService) HandleDeliver(ctx context.Context, payload *queue.NotifyPayload) error {
	// 无回调地址时仅站内信，落盘即完成
	if payload.WebhookUrl == "" {
		metrics.NotificationDelivered.WithLabelValues("inapp").Inc()
		return nil
	}

	msg := &notify.Message{
		RecipientId: payload.RecipientId,
		Title:       payload.Title,
		Message:     payload.Message,
		Type:        payload.Type,
	}
	if err := s.webhook.Send(ctx, payload.WebhookUrl, msg); err != nil {
		metrics.NotificationFailed.WithLabelValues("webhook").Inc()
		log.Errorw("webhook delivery failed",
			"notificationId", payload.NotificationId, "error", err)
		return err
	}
	metrics.NotificationDelivered.WithLabelValues("webhook").Inc()
	return nil
}

// ListNotifications 查询本人通知
func (s *NotificationService) ListNotifications(actor access.Identity, query *model.NotificationQueryReq) ([]model.Notification, int64, error) {
	page, pageSize := normalizePage(query.Page, query.PageSize)
	return s.notificationRepo.ListByRecipient(actor.UserId, query.OnlyUnread, (page-1)*pageSize, pageSize)
}

// CountUnread 未读数，本地缓存 30 秒
func (s *NotificationService) CountUnread(actor access.Identity) (int64, error) {
	key := "notify:unread:" + actor.UserId
	if s.local != nil {
		var cached int64
		if s.local.Get(key, &cached) {
			return cached, nil
		}
	}
	count, err := s.notificationRepo.CountUnread(actor.UserId)
	if err != nil {
		return 0, err
	}
	if s.local != nil {
		if err := s.local.Set(key, count, unreadCountTTL); err != nil {
			log.Warnw("cache unread count failed", "userId", actor.UserId, "error", err)
		}
	}
	return count, nil
}

// MarkRead 只有接收者本人可以翻转已读标记
func (s *NotificationService) MarkRead(actor access.Identity, notificationId string) error {
	n, err := s.notificationRepo.GetNotificationByNotificationId(notificationId)
	if err != nil {
		return fmt.Errorf("query notification failed: %w", err)
	}
	if n.RecipientId != actor.UserId {
		return errors.New("notification does not belong to current user")
	}
	if err := s.notificationRepo.MarkRead(notificationId); err != nil {
		return err
	}
	s.invalidateUnreadCount(actor.UserId)
	return nil
}

// MarkAllRead 全部标记已读
func (s *NotificationService) MarkAllRead(actor access.Identity) error {
	if err := s.notificationRepo.MarkAllRead(actor.UserId); err != nil {
		return err
	}
	s.invalidateUnreadCount(actor.UserId)
	return nil
}

func (s *NotificationService) invalidateUnreadCount(userId string) {
	if s.local != nil {
		s.local.Del("notify:unread:" + userId)
	}
}
