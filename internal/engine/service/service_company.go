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

	"gorm.io/gorm"

	"github.com/go-vantage/vantage/internal/engine/access"
	"github.com/go-vantage/vantage/internal/engine/model"
	"github.com/go-vantage/vantage/internal/engine/repo"
	"github.com/go-vantage/vantage/pkg/log"
)

type CompanyService struct {
	companyRepo repo.ICompanyRepository
}

func NewCompanyService(companyRepo repo.ICompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// GetCompany 企业详情：企业看本企业，管理员任意
func (s *CompanyService) GetCompany(actor access.Identity, companyId string) (*model.Company, error) {
	if !actor.IsAdmin() {
		if actor.Role != access.RoleCompany || actor.CompanyId != companyId {
			return nil, access.Deny(access.ReasonOutOfScope, "company %s is not visible", companyId).Err()
		}
	}
	company, err := s.companyRepo.GetCompanyByCompanyId(companyId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.Deny(access.ReasonUnknownEntity, "company %s not found", companyId).Err()
		}
		return nil, fmt.Errorf("query company failed: %w", err)
	}
	return company, nil
}

// ListCompanies 企业列表，仅管理员
func (s *CompanyService) ListCompanies(actor access.Identity, query *model.CompanyQueryReq) ([]model.Company, int64, error) {
	if err := deny(access.CanManageCompany(actor)); err != nil {
		return nil, 0, err
	}
	page, pageSize := normalizePage(query.Page, query.PageSize)
	return s.companyRepo.ListCompanies((page-1)*pageSize, pageSize)
}

// UpdateCompany 更新企业资料：企业改本企业，管理员任意
func (s *CompanyService) UpdateCompany(actor access.Identity, companyId string, req *model.UpdateCompanyReq) (*model.Company, error) {
	if !actor.IsAdmin() {
		if actor.Role != access.RoleCompany || actor.CompanyId != companyId {
			return nil, access.Deny(access.ReasonOutOfScope, "company %s is not editable", companyId).Err()
		}
	}

	update := &model.Company{}
	if req.DisplayName != nil {
		update.DisplayName = *req.DisplayName
	}
	if req.Email != nil {
		update.Email = *req.Email
	}
	if req.Phone != nil {
		update.Phone = *req.Phone
	}
	if req.Website != nil {
		update.Website = *req.Website
	}
	if req.Logo != nil {
		update.Logo = *req.Logo
	}
	if req.NotifyWebhookUrl != nil {
		update.NotifyWebhookUrl = *req.NotifyWebhookUrl
	}

	if err := s.companyRepo.UpdateCompany(companyId, update); err != nil {
		log.Errorw("update company failed", "companyId", companyId, "error", err)
		return nil, fmt.Errorf("update company failed: %w", err)
	}
	return s.companyRepo.GetCompanyByCompanyId(companyId)
}

// SetCompanyEnabled 平台管理员启停企业
func (s *CompanyService) SetCompanyEnabled(actor access.Identity, companyId string, enabled int) error {
	if err := deny(access.CanManageCompany(actor)); err != nil {
		return err
	}
	if err := s.companyRepo.SetEnabled(companyId, enabled); err != nil {
		log.Errorw("set company enabled failed", "companyId", companyId, "error", err)
		return fmt.Errorf("set company enabled failed: %w", err)
	}
	return nil
}
