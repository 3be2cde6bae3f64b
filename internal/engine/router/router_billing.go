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
	"github.com/go-vantage/vantage/pkg/validate"
)

/**
 * @time: 2025/3/16 15:10
 * @file: router_billing.go
 * @description: billing router
 */

func (rt *Router) billingRouter(r fiber.Router, auth fiber.Handler) {
	billingGroup := r.Group("/billing")
	{
		// Stripe 回调靠签名校验，不走登录认证
		billingGroup.Post("/webhook", rt.stripeWebhook)

		billingGroup.Get("/plans", auth, rt.listPlans)
		billingGroup.Get("/subscription", auth, rt.getSubscription)
		billingGroup.Get("/invoices", auth, rt.listInvoices)
		billingGroup.Post("/checkout", auth, rt.createCheckout)
	}
}

func (rt *Router) listPlans(c *fiber.Ctx) error {
	plans, err := rt.billingService.ListPlans()
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, plans)
	return nil
}

func (rt *Router) getSubscription(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	companyId := c.Query("companyId", actor.CompanyId)
	if companyId == "" {
		return http.WithRepErrMsg(c, http.CompanyIdIsEmpty.Code, http.CompanyIdIsEmpty.Msg, c.Path())
	}

	sub, err := rt.billingService.GetSubscription(actor, companyId)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, sub)
	return nil
}

func (rt *Router) listInvoices(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	companyId := c.Query("companyId", actor.CompanyId)
	if companyId == "" {
		return http.WithRepErrMsg(c, http.CompanyIdIsEmpty.Code, http.CompanyIdIsEmpty.Msg, c.Path())
	}
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)

	invoices, total, err := rt.billingService.ListInvoices(actor, companyId, page, pageSize)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, fiber.Map{"list": invoices, "total": total})
	return nil
}

func (rt *Router) createCheckout(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	var req model.CheckoutReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}
	if err := validate.Struct(&req); err != nil {
		return http.WithRepErrMsg(c, http.BadRequest.Code, err.Error(), c.Path())
	}

	url, err := rt.billingService.CreateCheckoutSession(actor, &req)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, fiber.Map{"checkoutUrl": url})
	return nil
}

func (rt *Router) stripeWebhook(c *fiber.Ctx) error {
	signature := c.Get("Stripe-Signature")
	if signature == "" {
		return http.WithRepErrMsg(c, http.BadRequest.Code, "missing stripe signature", c.Path())
	}

	if err := rt.billingService.HandleWebhook(c.Body(), signature); err != nil {
		return http.WithRepErrMsg(c, http.BadRequest.Code, err.Error(), c.Path())
	}

	c.Locals(consts.OPERATION, "")
	return nil
}
