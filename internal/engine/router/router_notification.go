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

package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-vantage/vantage/internal/engine/consts"
	"github.com/go-vantage/vantage/internal/engine/model"
	"github.com/go-vantage/vantage/pkg/http"
)

/**
 * @time: 2025/3/16 14:32
 * @file: router_notification.go
 * @description: notification router
 */

func (rt *Router) notificationRouter(r fiber.Router, auth fiber.Handler) {
	notifyGroup := r.Group("/notification", auth)
	{
		notifyGroup.Get("/list", rt.listNotifications)
		notifyGroup.Get("/unreadCount", rt.unreadCount)
		notifyGroup.Post("/:notificationId/read", rt.markRead)
		notifyGroup.Post("/readAll", rt.markAllRead)
	}
}

func (rt *Router) listNotifications(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	var query model.NotificationQueryReq
	if err := c.QueryParser(&query); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}

	notifications, total, err := rt.notificationService.ListNotifications(actor, &query)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, fiber.Map{"list": notifications, "total": total})
	return nil
}

func (rt *Router) unreadCount(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	count, err := rt.notificationService.CountUnread(actor)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, fiber.Map{"count": count})
	return nil
}

func (rt *Router) markRead(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	notificationId := c.Params("notificationId")
	if notificationId == "" {
		return http.WithRepErrMsg(c, http.NotificationIdIsEmpty.Code, http.NotificationIdIsEmpty.Msg, c.Path())
	}

	if err := rt.notificationService.MarkRead(actor, notificationId); err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.OPERATION, "")
	return nil
}

func (rt *Router) markAllRead(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	if err := rt.notificationService.MarkAllRead(actor); err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.OPERATION, "")
	return nil
}
