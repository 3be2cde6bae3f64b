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

import "time"

// Plan 订阅套餐表
type Plan struct {
	BaseModel
	PlanId        string `gorm:"column:plan_id;not null;uniqueIndex" json:"planId"`
	Name          string `gorm:"column:name;not null;uniqueIndex" json:"name"` // free/starter/business/enterprise
	Description   string `gorm:"column:description" json:"description"`
	Price         int    `gorm:"column:price;not null" json:"price"` // 单位：美分
	Currency      string `gorm:"column:currency;not null;default:USD" json:"currency"`
	Interval      string `gorm:"column:interval;not null;default:monthly" json:"interval"` // monthly/yearly
	StripePriceId string `gorm:"column:stripe_price_id" json:"stripePriceId"`
	MaxProjects   int    `gorm:"column:max_projects;not null;default:5" json:"maxProjects"`
	MaxMembers    int    `gorm:"column:max_members;not null;default:10" json:"maxMembers"`
	IsEnabled     int    `gorm:"column:is_enabled;not null;default:1" json:"isEnabled"`
}

func (Plan) TableName() string {
	return "t_plan"
}

// Subscription 企业订阅表
type Subscription struct {
	BaseModel
	SubscriptionId       string     `gorm:"column:subscription_id;not null;uniqueIndex" json:"subscriptionId"`
	CompanyId            string     `gorm:"column:company_id;not null;index" json:"companyId"`
	PlanId               string     `gorm:"column:plan_id;not null" json:"planId"`
	Status               string     `gorm:"column:status;not null;type:varchar(32);index" json:"status"` // active/past_due/canceled
	StripeSubscriptionId string     `gorm:"column:stripe_subscription_id;index" json:"-"`
	CurrentPeriodEnd     *time.Time `gorm:"column:current_period_end" json:"currentPeriodEnd"`
}

func (Subscription) TableName() string {
	return "t_subscription"
}

// SubscriptionStatus 订阅状态枚举
const (
	SubscriptionActive   = "active"
	SubscriptionPastDue  = "past_due"
	SubscriptionCanceled = "canceled"
)

// Invoice 账单表
type Invoice struct {
	BaseModel
	InvoiceId       string     `gorm:"column:invoice_id;not null;uniqueIndex" json:"invoiceId"`
	Number          string     `gorm:"column:number;uniqueIndex" json:"number"` // 对外展示的账单号
	CompanyId       string     `gorm:"column:company_id;not null;index" json:"companyId"`
	SubscriptionId  string     `gorm:"column:subscription_id;index" json:"subscriptionId"`
	Amount          int        `gorm:"column:amount;not null" json:"amount"` // 单位：美分
	Currency        string     `gorm:"column:currency;not null;default:USD" json:"currency"`
	Status          string     `gorm:"column:status;not null;type:varchar(32)" json:"status"` // pending/paid/failed
	StripeInvoiceId string     `gorm:"column:stripe_invoice_id;index" json:"-"`
	PaidAt          *time.Time `gorm:"column:paid_at" json:"paidAt"`
}

func (Invoice) TableName() string {
	return "t_invoice"
}

// InvoiceStatus 账单状态枚举
const (
	InvoicePending = "pending"
	InvoicePaid    = "paid"
	InvoiceFailed  = "failed"
)

// CheckoutReq 创建支付会话请求
type CheckoutReq struct {
	PlanId     string `json:"planId" validate:"required"`
	SuccessUrl string `json:"successUrl" validate:"required,url"`
	CancelUrl  string `json:"cancelUrl" validate:"required,url"`
}
