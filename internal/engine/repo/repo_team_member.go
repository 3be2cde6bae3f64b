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

type ITeamMemberRepository interface {
	AddMember(m *model.TeamMember) error
	GetMemberByMemberId(memberId string) (*model.TeamMember, error)
	UpdateMember(memberId string, m *model.TeamMember) error
	DeleteMember(memberId string) error
	ListMembersByCompany(companyId string) ([]model.TeamMember, error)
	ListAllMembers() ([]model.TeamMember, error)
	CountMembersByCompany(companyId string) (int64, error)
}

type TeamMemberRepo struct {
	db          database.DB
	memberModel *model.TeamMember
}

func NewTeamMemberRepo(db database.DB) ITeamMemberRepository {
	return &TeamMemberRepo{
		db:          db,
		memberModel: &model.TeamMember{},
	}
}

func (mr *TeamMemberRepo) AddMember(m *model.TeamMember) error {
	return mr.db.DB().Create(m).Error
}

func (mr *TeamMemberRepo) GetMemberByMemberId(memberId string) (*model.TeamMember, error) {
	m := &model.TeamMember{}
	err := mr.db.DB().Table(mr.memberModel.TableName()).
		Where("member_id = ?", memberId).First(m).Error
	if err != nil {
		return nil, err
	}
	return m, nil
}

// UpdateMember 更新成员信息（member_id, company_id, created_at 不可更新）
func (mr *TeamMemberRepo) UpdateMember(memberId string, m *model.TeamMember) error {
	return mr.db.DB().Table(mr.memberModel.TableName()).
		Where("member_id = ?", memberId).
		Omit("member_id", "company_id", "created_at").
		Updates(m).Error
}

func (mr *TeamMemberRepo) DeleteMember(memberId string) error {
	return mr.db.DB().Where("member_id = ?", memberId).
		Delete(&model.TeamMember{}).Error
}

func (mr *TeamMemberRepo) ListMembersByCompany(companyId string) ([]model.TeamMember, error) {
	var members []model.TeamMember
	err := mr.db.DB().Table(mr.memberModel.TableName()).
		Where("company_id = ?", companyId).
		Order("id ASC").Find(&members).Error
	return members, err
}

func (mr *TeamMemberRepo) ListAllMembers() ([]model.TeamMember, error) {
	var members []model.TeamMember
	err := mr.db.DB().Table(mr.memberModel.TableName()).
		Order("id ASC").Find(&members).Error
	return members, err
}

func (mr *TeamMemberRepo) CountMembersByCompany(companyId string) (int64, error) {
	var count int64
	err := mr.db.DB().Table(mr.memberModel.TableName()).
		Where("company_id = ?", companyId).Count(&count).Error
	return count, err
}
