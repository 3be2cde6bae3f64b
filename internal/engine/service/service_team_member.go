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
	"github.com/go-vantage/vantage/pkg/id"
	"github.com/go-vantage/vantage/pkg/log"
)

type TeamMemberService struct {
	memberRepo  repo.ITeamMemberRepository
	projectRepo repo.IProjectRepository
}

func NewTeamMemberService(memberRepo repo.ITeamMemberRepository, projectRepo repo.IProjectRepository) *TeamMemberService {
	return &TeamMemberService{
		memberRepo:  memberRepo,
		projectRepo: projectRepo,
	}
}

// CreateMember 创建团队成员
func (s *TeamMemberService) CreateMember(actor access.Identity, req *model.CreateMemberReq) (*model.TeamMember, error) {
	companyId := req.CompanyId
	if actor.Role == access.RoleCompany {
		companyId = actor.CompanyId
	}
	if companyId == "" {
		return nil, errors.New("company id cannot be empty")
	}

	probe := &model.TeamMember{CompanyId: companyId}
	if err := deny(access.CanMutateTeamMember(actor, probe, access.OpCreate)); err != nil {
		return nil, err
	}

	member := &model.TeamMember{
		MemberId:  id.GetUUID(),
		CompanyId: companyId,
		UserId:    req.UserId,
		Name:      req.Name,
		Email:     req.Email,
		RoleLabel: req.RoleLabel,
		Status:    model.MemberActive,
	}
	if err := s.memberRepo.AddMember(member); err != nil {
		log.Errorw("create member failed", "companyId", companyId, "error", err)
		return nil, fmt.Errorf("create member failed: %w", err)
	}
	return member, nil
}

// GetMember 按ID查询成员
func (s *TeamMemberService) GetMember(actor access.Identity, memberId string) (*model.TeamMember, error) {
	member, err := s.memberRepo.GetMemberByMemberId(memberId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.Deny(access.ReasonUnknownEntity, "member %s not found", memberId).Err()
		}
		return nil, fmt.Errorf("query member failed: %w", err)
	}

	visible := access.VisibleTeamMembers(actor, []model.TeamMember{*member}, s.projectsFor(actor))
	if len(visible) == 0 {
		return nil, access.Deny(access.ReasonOutOfScope, "member %s is not visible", memberId).Err()
	}

	s.fillDerivedProjects(member)
	return member, nil
}

// ListMembers 角色过滤后的成员名册，派生每个成员的所属项目
func (s *TeamMemberService) ListMembers(actor access.Identity) ([]model.TeamMember, error) {
	var (
		members []model.TeamMember
		err     error
	)
	switch actor.Role {
	case access.RoleAdmin:
		members, err = s.memberRepo.ListAllMembers()
	case access.RoleCompany:
		members, err = s.memberRepo.ListMembersByCompany(actor.CompanyId)
	case access.RoleClient:
		members, err = s.memberRepo.ListAllMembers()
	default:
		return nil, &access.InvalidRoleError{Role: string(actor.Role)}
	}
	if err != nil {
		return nil, fmt.Errorf("query members failed: %w", err)
	}

	projects := s.projectsFor(actor)
	members = access.VisibleTeamMembers(actor, members, projects)

	// 成员所属项目由项目指派列表派生，不落库
	s.fillDerivedProjectsBatch(members)
	return members, nil
}

// UpdateMember 更新成员资料
func (s *TeamMemberService) UpdateMember(actor access.Identity, memberId string, req *model.UpdateMemberReq) (*model.TeamMember, error) {
	member, err := s.memberRepo.GetMemberByMemberId(memberId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.Deny(access.ReasonUnknownEntity, "member %s not found", memberId).Err()
		}
		return nil, fmt.Errorf("query member failed: %w", err)
	}

	if err := deny(access.CanMutateTeamMember(actor, member, access.OpUpdate)); err != nil {
		return nil, err
	}

	update := &model.TeamMember{}
	if req.Name != nil {
		update.Name = *req.Name
	}
	if req.Email != nil {
		update.Email = *req.Email
	}
	if req.RoleLabel != nil {
		update.RoleLabel = *req.RoleLabel
	}
	if req.UserId != nil {
		update.UserId = *req.UserId
	}
	if req.Status != nil {
		update.Status = *req.Status
	}

	if err := s.memberRepo.UpdateMember(memberId, update); err != nil {
		log.Errorw("update member failed", "memberId", memberId, "error", err)
		return nil, fmt.Errorf("update member failed: %w", err)
	}
	return s.memberRepo.GetMemberByMemberId(memberId)
}

// DeleteMember 删除成员
func (s *TeamMemberService) DeleteMember(actor access.Identity, memberId string) error {
	member, err := s.memberRepo.GetMemberByMemberId(memberId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return access.Deny(access.ReasonUnknownEntity, "member %s not found", memberId).Err()
		}
		return fmt.Errorf("query member failed: %w", err)
	}

	if err := deny(access.CanMutateTeamMember(actor, member, access.OpDelete)); err != nil {
		return err
	}

	if err := s.memberRepo.DeleteMember(memberId); err != nil {
		log.Errorw("delete member failed", "memberId", memberId, "error", err)
		return fmt.Errorf("delete member failed: %w", err)
	}
	return nil
}

// projectsFor 可见性判定所需的项目候选集，失败时返回空集而不是放行
func (s *TeamMemberService) projectsFor(actor access.Identity) []model.Project {
	if actor.IsAdmin() {
		return nil
	}
	var (
		projects []model.Project
		err      error
	)
	switch actor.Role {
	case access.RoleCompany:
		projects, err = s.projectRepo.ListProjectsByCompany(actor.CompanyId)
	case access.RoleClient:
		projects, err = s.projectRepo.ListProjectsByClient(actor.UserId)
	}
	if err != nil {
		log.Warnw("list projects for member visibility failed", "userId", actor.UserId, "error", err)
		return nil
	}
	return projects
}

func (s *TeamMemberService) fillDerivedProjects(member *model.TeamMember) {
	projects, err := s.projectRepo.ListProjectsByCompany(member.CompanyId)
	if err != nil {
		log.Warnw("derive member projects failed", "memberId", member.MemberId, "error", err)
		return
	}
	for i := range projects {
		for _, mid := range projects[i].AssignedMemberIds() {
			if mid == member.MemberId {
				member.Projects = append(member.Projects, projects[i].ProjectId)
				break
			}
		}
	}
}

func (s *TeamMemberService) fillDerivedProjectsBatch(members []model.TeamMember) {
	byCompany := make(map[string][]model.Project)
	for i := range members {
		companyId := members[i].CompanyId
		projects, ok := byCompany[companyId]
		if !ok {
			var err error
			projects, err = s.projectRepo.ListProjectsByCompany(companyId)
			if err != nil {
				log.Warnw("derive member projects failed", "companyId", companyId, "error", err)
				projects = nil
			}
			byCompany[companyId] = projects
		}
		for j := range projects {
			for _, mid := range projects[j].AssignedMemberIds() {
				if mid == members[i].MemberId {
					members[i].Projects = append(members[i].Projects, projects[j].ProjectId)
					break
				}
			}
		}
	}
}
