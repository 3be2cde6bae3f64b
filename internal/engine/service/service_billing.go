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
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/webhook"
	"gorm.io/gorm"

	"github.com/go-vantage/vantage/internal/engine/access"
	"github.com/go-vantage/vantage/internal/engine/model"
	"github.com/go-vantage/vantage/internal/engine/repo"
	"github.com/go-vantage/vantage/pkg/id"
	"github.com/go-vantage/vantage/pkg/log"
)

// Billing stripe 配置
type Billing struct {
	SecretKey     string
	WebhookSecret string
	Enabled       bool
}

type BillingService struct {
	billingRepo repo.IBillingRepository
	companyRepo repo.ICompanyRepository
	conf        Billing
}

func NewBillingService(billingRepo repo.IBillingRepository, companyRepo repo.ICompanyRepository, conf Billing) *BillingService {
	if conf.SecretKey != "" {
		stripe.Key = conf.SecretKey
	}
	return &BillingService{
		billingRepo: billingRepo,
		companyRepo: companyRepo,
		conf:        conf,
	}
}

// ListPlans 套餐列表，所有已登录角色可见
func (s *BillingService) ListPlans() ([]model.Plan, error) {
	return s.billingRepo.ListPlans()
}

// GetSubscription 企业当前订阅：企业看本企业，管理员任意
func (s *BillingService) GetSubscription(actor access.Identity, companyId string) (*model.Subscription, error) {
	if !actor.IsAdmin() {
		if actor.Role != access.RoleCompany || actor.CompanyId != companyId {
			return nil, access.Deny(access.ReasonOutOfScope, "subscription of company %s is not visible", companyId).Err()
		}
	}
	sub, err := s.billingRepo.GetSubscriptionByCompanyId(companyId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // 未订阅，走免费额度
		}
		return nil, fmt.Errorf("query subscription failed: %w", err)
	}
	return sub, nil
}

// ListInvoices 企业账单列表
func (s *BillingService) ListInvoices(actor access.Identity, companyId string, page, pageSize int) ([]model.Invoice, int64, error) {
	if !actor.IsAdmin() {
		if actor.Role != access.RoleCompany || actor.CompanyId != companyId {
			return nil, 0, access.Deny(access.ReasonOutOfScope, "invoices of company %s are not visible", companyId).Err()
		}
	}
	page, pageSize = normalizePage(page, pageSize)
	return s.billingRepo.ListInvoicesByCompany(companyId, (page-1)*pageSize, pageSize)
}

// CreateCheckoutSession 创建 Stripe 结账会话，仅企业账号为本企业发起
func (s *BillingService) CreateCheckoutSession(actor access.Identity, req *model.CheckoutReq) (string, error) {
	if !s.conf.Enabled {
		return "", errors.New("billing is not enabled")
	}
	if actor.Role != access.RoleCompany {
		return "", access.Deny(access.ReasonRoleForbidden, "role %s cannot subscribe", actor.Role).Err()
	}

	plan, err := s.billingRepo.GetPlanByPlanId(req.PlanId)
	if err != nil {
		return "", errors.New("plan not found")
	}
	if plan.StripePriceId == "" {
		return "", errors.New("plan has no stripe price configured")
	}

	company, err := s.companyRepo.GetCompanyByCompanyId(actor.CompanyId)
	if err != nil {
		return "", fmt.Errorf("query company failed: %w", err)
	}

	// 首次订阅先在 Stripe 建客户
	customerId := company.StripeCustomerId
	if customerId == "" {
		params := &stripe.CustomerParams{
			Email: stripe.String(company.Email),
			Name:  stripe.String(company.Name),
		}
		params.AddMetadata("companyId", company.CompanyId)
		cust, err := customer.New(params)
		if err != nil {
			log.Errorw("create stripe customer failed", "companyId", company.CompanyId, "error", err)
			return "", fmt.Errorf("create stripe customer failed: %w", err)
		}
		customerId = cust.ID
		if err := s.companyRepo.SetStripeCustomerId(company.CompanyId, customerId); err != nil {
			return "", fmt.Errorf("save stripe customer failed: %w", err)
		}
	}

	params := &stripe.CheckoutSessionParams{
		Customer:   stripe.String(customerId),
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL: stripe.String(req.SuccessUrl),
		CancelURL:  stripe.String(req.CancelUrl),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(plan.StripePriceId),
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.AddMetadata("companyId", company.CompanyId)
	params.AddMetadata("planId", plan.PlanId)

	sess, err := session.New(params)
	if err != nil {
		log.Errorw("create checkout session failed", "companyId", company.CompanyId, "error", err)
		return "", fmt.Errorf("create checkout session failed: %w", err)
	}
	return sess.URL, nil
}

// HandleWebhook 处理 Stripe 回调，签名校验带时钟漂移容忍
func (s *BillingService) HandleWebhook(payload []byte, signature string) error {
	event, err := webhook.ConstructEventWithTolerance(payload, signature, s.conf.WebhookSecret, 5*time.Minute)
	if err != nil {
		return fmt.Errorf("verify webhook signature: %w", err)
	}

	log.Infow("stripe webhook received", "eventId", event.ID, "type", event.Type)

	switch string(event.Type) {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := sonic.Unmarshal(event.Data.Raw, &sess); err != nil {
			return fmt.Errorf("unmarshal checkout session: %w", err)
		}
		return s.handleCheckoutCompleted(&sess)
	case "customer.subscription.updated", "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := sonic.Unmarshal(event.Data.Raw, &sub); err != nil {
			return fmt.Errorf("unmarshal subscription: %w", err)
		}
		return s.handleSubscriptionChanged(&sub)
	case "invoice.payment_succeeded", "invoice.payment_failed":
		var inv stripe.Invoice
		if err := sonic.Unmarshal(event.Data.Raw, &inv); err != nil {
			return fmt.Errorf("unmarshal invoice: %w", err)
		}
		return s.handleInvoice(&inv, string(event.Type) == "invoice.payment_succeeded")
	default:
		// 其余事件忽略
		return nil
	}
}

func (s *BillingService) handleCheckoutCompleted(sess *stripe.CheckoutSession) error {
	companyId := sess.Metadata["companyId"]
	planId := sess.Metadata["planId"]
	if companyId == "" || planId == "" {
		return errors.New("checkout session missing metadata")
	}

	sub := &model.Subscription{
		SubscriptionId: id.GetUUID(),
		CompanyId:      companyId,
		PlanId:         planId,
		Status:         model.SubscriptionActive,
	}
	if sess.Subscription != nil {
		sub.StripeSubscriptionId = sess.Subscription.ID
	}
	if err := s.billingRepo.UpsertSubscription(sub); err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}
	log.Infow("subscription activated", "companyId", companyId, "planId", planId)
	return nil
}

func (s *BillingService) handleSubscriptionChanged(stripeSub *stripe.Subscription) error {
	sub, err := s.billingRepo.GetSubscriptionByStripeId(stripeSub.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warnw("unknown stripe subscription", "stripeSubscriptionId", stripeSub.ID)
			return nil
		}
		return fmt.Errorf("query subscription: %w", err)
	}

	status := model.SubscriptionActive
	switch stripeSub.Status {
	case stripe.SubscriptionStatusPastDue, stripe.SubscriptionStatusUnpaid:
		status = model.SubscriptionPastDue
	case stripe.SubscriptionStatusCanceled, stripe.SubscriptionStatusIncompleteExpired:
		status = model.SubscriptionCanceled
	}

	periodEnd := time.Unix(stripeSub.CurrentPeriodEnd, 0)
	sub.Status = status
	sub.CurrentPeriodEnd = &periodEnd
	return s.billingRepo.UpsertSubscription(sub)
}

func (s *BillingService) handleInvoice(stripeInv *stripe.Invoice, paid bool) error {
	// 幂等：同一张 Stripe 账单只落一次
	if existing, err := s.billingRepo.GetInvoiceByStripeId(stripeInv.ID); err == nil {
		status := model.InvoiceFailed
		if paid {
			status = model.InvoicePaid
		}
		return s.billingRepo.UpdateInvoiceStatus(existing.InvoiceId, status)
	}

	company, err := s.companyRepo.GetCompanyByStripeCustomerId(stripeInv.Customer.ID)
	if err != nil {
		log.Warnw("invoice for unknown customer", "stripeCustomerId", stripeInv.Customer.ID)
		return nil
	}

	inv := &model.Invoice{
		InvoiceId:       id.GetUUID(),
		Number:          id.ShortId(),
		CompanyId:       company.CompanyId,
		Amount:          int(stripeInv.AmountDue),
		Currency:        string(stripeInv.Currency),
		Status:          model.InvoicePending,
		StripeInvoiceId: stripeInv.ID,
	}
	if paid {
		inv.Status = model.InvoicePaid
		now := time.Now()
		inv.PaidAt = &now
	} else {
		inv.Status = model.InvoiceFailed
	}
	if sub, err := s.billingRepo.GetSubscriptionByCompanyId(company.CompanyId); err == nil {
		inv.SubscriptionId = sub.SubscriptionId
	}
	return s.billingRepo.AddInvoice(inv)
}

// ExpireOverdueSubscriptions 定时任务：计费周期已过的活跃订阅标记为 past_due
func (s *BillingService) ExpireOverdueSubscriptions() {
	subs, err := s.billingRepo.ListExpiredActiveSubscriptions(time.Now())
	if err != nil {
		log.Errorw("list expired subscriptions failed", "error", err)
		return
	}
	for i := range subs {
		if err := s.billingRepo.UpdateSubscriptionStatus(subs[i].SubscriptionId, model.SubscriptionPastDue); err != nil {
			log.Errorw("mark subscription past_due failed", "subscriptionId", subs[i].SubscriptionId, "error", err)
			continue
		}
		log.Infow("subscription marked past_due", "subscriptionId", subs[i].SubscriptionId, "companyId", subs[i].CompanyId)
	}
}

// 账单在 pending 停留超过该时长视为逾期
const invoiceOverdueAfter = 14 * 24 * time.Hour

// MarkOverdueInvoices 定时任务：长期未支付的账单标记为 failed
func (s *BillingService) MarkOverdueInvoices() {
	invoices, err := s.billingRepo.ListPendingInvoicesBefore(time.Now().Add(-invoiceOverdueAfter))
	if err != nil {
		log.Errorw("list pending invoices failed", "error", err)
		return
	}
	for i := range invoices {
		if err := s.billingRepo.UpdateInvoiceStatus(invoices[i].InvoiceId, model.InvoiceFailed); err != nil {
			log.Errorw("mark invoice overdue failed", "invoiceId", invoices[i].InvoiceId, "error", err)
			continue
		}
		log.Infow("invoice marked failed after overdue period", "invoiceId", invoices[i].InvoiceId, "companyId", invoices[i].CompanyId)
	}
}

// SeedDefaultPlans 初始化默认套餐，CLI 使用
func (s *BillingService) SeedDefaultPlans() error {
	plans := []model.Plan{
		{PlanId: id.GetUUID(), Name: "free", Description: "Free tier", Price: 0, Interval: "monthly", MaxProjects: 3, MaxMembers: 5, IsEnabled: 1},
		{PlanId: id.GetUUID(), Name: "starter", Description: "For small teams", Price: 2900, Interval: "monthly", MaxProjects: 20, MaxMembers: 25, IsEnabled: 1},
		{PlanId: id.GetUUID(), Name: "business", Description: "For growing companies", Price: 9900, Interval: "monthly", MaxProjects: 100, MaxMembers: 100, IsEnabled: 1},
	}
	for i := range plans {
		if err := s.billingRepo.SavePlan(&plans[i]); err != nil {
			return fmt.Errorf("seed plan %s: %w", plans[i].Name, err)
		}
	}
	return nil
}
