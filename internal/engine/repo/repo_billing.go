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
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/go-vantage/vantage/internal/engine/model"
	"github.com/go-vantage/vantage/pkg/database"
)

type IBillingRepository interface {
	ListPlans() ([]model.Plan, error)
	GetPlanByPlanId(planId string) (*model.Plan, error)
	GetPlanByName(name string) (*model.Plan, error)
	SavePlan(p *model.Plan) error

	GetSubscriptionByCompanyId(companyId string) (*model.Subscription, error)
	GetSubscriptionByStripeId(stripeSubscriptionId string) (*model.Subscription, error)
	UpsertSubscription(s *model.Subscription) error
	UpdateSubscriptionStatus(subscriptionId, status string) error
	ListExpiredActiveSubscriptions(before time.Time) ([]model.Subscription, error)

	AddInvoice(inv *model.Invoice) error
	GetInvoiceByStripeId(stripeInvoiceId string) (*model.Invoice, error)
	UpdateInvoiceStatus(invoiceId, status string) error
	ListInvoicesByCompany(companyId string, offset, pageSize int) ([]model.Invoice, int64, error)
	ListPendingInvoicesBefore(before time.Time) ([]model.Invoice, error)
}

type BillingRepo struct {
	db database.DB
}

func NewBillingRepo(db database.DB) IBillingRepository {
	return &BillingRepo{db: db}
}

func (br *BillingRepo) ListPlans() ([]model.Plan, error) {
	var plans []model.Plan
	err := br.db.DB().Table((&model.Plan{}).TableName()).
		Where("is_enabled = ?", 1).
		Order("price ASC").Find(&plans).Error
	return plans, err
}

func (br *BillingRepo) GetPlanByPlanId(planId string) (*model.Plan, error) {
	p := &model.Plan{}
	err := br.db.DB().Table(p.TableName()).
		Where("plan_id = ?", planId).First(p).Error
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (br *BillingRepo) GetPlanByName(name string) (*model.Plan, error) {
	p := &model.Plan{}
	err := br.db.DB().Table(p.TableName()).
		Where("name = ?", name).First(p).Error
	if err != nil {
		return nil, err
	}
	return p, nil
}

// SavePlan 按名称建或改，种子套餐用
func (br *BillingRepo) SavePlan(p *model.Plan) error {
	existing := &model.Plan{}
	err := br.db.DB().Table(p.TableName()).
		Where("name = ?", p.Name).First(existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return br.db.DB().Create(p).Error
	}
	if err != nil {
		return err
	}
	return br.db.DB().Table(p.TableName()).
		Where("name = ?", p.Name).
		Omit("plan_id", "created_at").
		Updates(p).Error
}

func (br *BillingRepo) GetSubscriptionByCompanyId(companyId string) (*model.Subscription, error) {
	s := &model.Subscription{}
	err := br.db.DB().Table(s.TableName()).
		Where("company_id = ?", companyId).
		Order("id DESC").First(s).Error
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (br *BillingRepo) GetSubscriptionByStripeId(stripeSubscriptionId string) (*model.Subscription, error) {
	s := &model.Subscription{}
	err := br.db.DB().Table(s.TableName()).
		Where("stripe_subscription_id = ?", stripeSubscriptionId).First(s).Error
	if err != nil {
		return nil, err
	}
	return s, nil
}

// UpsertSubscription 以 stripe_subscription_id 为准写入或更新
func (br *BillingRepo) UpsertSubscription(s *model.Subscription) error {
	existing := &model.Subscription{}
	err := br.db.DB().Table(s.TableName()).
		Where("stripe_subscription_id = ?", s.StripeSubscriptionId).First(existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return br.db.DB().Create(s).Error
	}
	if err != nil {
		return err
	}
	return br.db.DB().Table(s.TableName()).
		Where("stripe_subscription_id = ?", s.StripeSubscriptionId).
		Omit("subscription_id", "created_at").
		Updates(s).Error
}

func (br *BillingRepo) UpdateSubscriptionStatus(subscriptionId, status string) error {
	return br.db.DB().Table((&model.Subscription{}).TableName()).
		Where("subscription_id = ?", subscriptionId).
		Update("status", status).Error
}

// ListExpiredActiveSubscriptions 活跃但计费周期已过期的订阅
func (br *BillingRepo) ListExpiredActiveSubscriptions(before time.Time) ([]model.Subscription, error) {
	var subs []model.Subscription
	err := br.db.DB().Table((&model.Subscription{}).TableName()).
		Where("status = ?", model.SubscriptionActive).
		Where("current_period_end IS NOT NULL AND current_period_end < ?", before).
		Find(&subs).Error
	return subs, err
}

func (br *BillingRepo) AddInvoice(inv *model.Invoice) error {
	return br.db.DB().Create(inv).Error
}

func (br *BillingRepo) GetInvoiceByStripeId(stripeInvoiceId string) (*model.Invoice, error) {
	inv := &model.Invoice{}
	err := br.db.DB().Table(inv.TableName()).
		Where("stripe_invoice_id = ?", stripeInvoiceId).First(inv).Error
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (br *BillingRepo) UpdateInvoiceStatus(invoiceId, status string) error {
	return br.db.DB().Table((&model.Invoice{}).TableName()).
		Where("invoice_id = ?", invoiceId).
		Update("status", status).Error
}

func (br *BillingRepo) ListInvoicesByCompany(companyId string, offset, pageSize int) ([]model.Invoice, int64, error) {
	var (
		invoices []model.Invoice
		count    int64
	)
	tx := br.db.DB().Table((&model.Invoice{}).TableName()).
		Where("company_id = ?", companyId)
	if err := tx.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := tx.Order("id DESC").Offset(offset).Limit(pageSize).Find(&invoices).Error
	return invoices, count, err
}

func (br *BillingRepo) ListPendingInvoicesBefore(before time.Time) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := br.db.DB().Table((&model.Invoice{}).TableName()).
		Where("status = ? AND created_at < ?", model.InvoicePending, before).
		Find(&invoices).Error
	return invoices, err
}
