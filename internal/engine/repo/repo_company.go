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

type ICompanyRepository interface {
	AddCompany(c *model.Company) error
	GetCompanyByCompanyId(companyId string) (*model.Company, error)
	GetCompanyByStripeCustomerId(customerId string) (*model.Company, error)
	UpdateCompany(companyId string, c *model.Company) error
	SetStripeCustomerId(companyId, customerId string) error
	SetEnabled(companyId string, enabled int) error
	ListCompanies(offset, pageSize int) ([]model.Company, int64, error)
}

type CompanyRepo struct {
	db           database.DB
	companyModel *model.Company
}

func NewCompanyRepo(db database.DB) ICompanyRepository {
	return &CompanyRepo{
		db:           db,
		companyModel: &model.Company{},
	}
}

func (cr *CompanyRepo) AddCompany(c *model.Company) error {
	return cr.db.DB().Create(c).Error
}

func (cr *CompanyRepo) GetCompanyByCompanyId(companyId string) (*model.Company, error) {
	c := &model.Company{}
	err := cr.db.DB().Table(cr.companyModel.TableName()).
		Where("company_id = ?", companyId).First(c).Error
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (cr *CompanyRepo) GetCompanyByStripeCustomerId(customerId string) (*model.Company, error) {
	c := &model.Company{}
	err := cr.db.DB().Table(cr.companyModel.TableName()).
		Where("stripe_customer_id = ?", customerId).First(c).Error
	if err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCompany 更新企业信息（company_id, stripe_customer_id, created_at 不可更新）
func (cr *CompanyRepo) UpdateCompany(companyId string, c *model.Company) error {
	return cr.db.DB().Table(cr.companyModel.TableName()).
		Where("company_id = ?", companyId).
		Omit("company_id", "stripe_customer_id", "created_at").
		Updates(c).Error
}

func (cr *CompanyRepo) SetStripeCustomerId(companyId, customerId string) error {
	return cr.db.DB().Table(cr.companyModel.TableName()).
		Where("company_id = ?", companyId).
		Update("stripe_customer_id", customerId).Error
}

func (cr *CompanyRepo) SetEnabled(companyId string, enabled int) error {
	return cr.db.DB().Table(cr.companyModel.TableName()).
		Where("company_id = ?", companyId).
		Update("is_enabled", enabled).Error
}

func (cr *CompanyRepo) ListCompanies(offset, pageSize int) ([]model.Company, int64, error) {
	var (
		companies []model.Company
		count     int64
	)
	tx := cr.db.DB().Table(cr.companyModel.TableName())
	if err := tx.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := tx.Order("id ASC").Offset(offset).Limit(pageSize).Find(&companies).Error
	return companies, count, err
}
