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

// Company 企业表
type Company struct {
	BaseModel
	CompanyId        string `gorm:"column:company_id;not null;uniqueIndex" json:"companyId"`
	Name             string `gorm:"column:name;not null;uniqueIndex" json:"name"`
	DisplayName      string `gorm:"column:display_name" json:"displayName"`
	Email            string `gorm:"column:email" json:"email"`
	Phone            string `gorm:"column:phone" json:"phone"`
	Website          string `gorm:"column:website" json:"website"`
	Logo             string `gorm:"column:logo" json:"logo"`
	NotifyWebhookUrl string `gorm:"column:notify_webhook_url" json:"notifyWebhookUrl"` // 通知回调地址，可为空
	StripeCustomerId string `gorm:"column:stripe_customer_id;index" json:"-"`
	IsEnabled        int    `gorm:"column:is_enabled;not null;default:1" json:"isEnabled"` // 0: disabled, 1: enabled
}

func (Company) TableName() string {
	return "t_company"
}

// UpdateCompanyReq 更新企业资料
type UpdateCompanyReq struct {
	DisplayName      *string `json:"displayName,omitempty"`
	Email            *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone            *string `json:"phone,omitempty"`
	Website          *string `json:"website,omitempty" validate:"omitempty,url"`
	Logo             *string `json:"logo,omitempty"`
	NotifyWebhookUrl *string `json:"notifyWebhookUrl,omitempty" validate:"omitempty,url"`
}

// CompanyQueryReq 平台管理员查询企业列表
type CompanyQueryReq struct {
	Name      string `query:"name"`
	IsEnabled *int   `query:"isEnabled"`
	Page      int    `query:"page"`
	PageSize  int    `query:"pageSize"`
}
