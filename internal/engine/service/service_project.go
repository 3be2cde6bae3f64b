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
	"github.com/go-vantage/vantage/pkg/metrics"
	"github.com/go-vantage/vantage/pkg/statemachine"
)

type ProjectService struct {
	projectRepo  repo.IProjectRepository
	memberRepo   repo.ITeamMemberRepository
	userRepo     repo.IUserRepository
	billingRepo  repo.IBillingRepository
	notification *NotificationService
}

func NewProjectService(
	projectRepo repo.IProjectRepository,
	memberRepo repo.ITeamMemberRepository,
	userRepo repo.IUserRepository,
	billingRepo repo.IBillingRepository,
	notification *NotificationService,
) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		memberRepo:   memberRepo,
		userRepo:     userRepo,
		billingRepo:  billingRepo,
		notification: notification,
	}
}

// CreateProject 创建项目
func (s *ProjectService) CreateProject(actor access.Identity, req *model.CreateProjectReq) (*model.Project, error) {
	// 1. 确定归属企业：企业账号强制本企业，管理员按请求指定
	companyId := req.CompanyId
	if actor.Role == access.RoleCompany {
		companyId = actor.CompanyId
	}
	if companyId == "" {
		return nil, errors.New("company id cannot be empty")
	}

	// 2. 授权
	if err := deny(access.CanCreateProject(actor, companyId)); err != nil {
		return nil, err
	}

	// 3. 客户引用必须指向 client 角色账号
	if req.ClientId != "" {
		client, err := s.userRepo.GetUserByUserId(req.ClientId)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("client reference does not exist")
			}
			return nil, fmt.Errorf("query client failed: %w", err)
		}
		if client.Role != string(access.RoleClient) {
			return nil, errors.New("client reference must be a client account")
		}
	}

	// 4. 套餐限额
	if err := s.checkProjectQuota(companyId); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	project := &model.Project{
		ProjectId:   id.GetUUID(),
		CompanyId:   companyId,
		ClientId:    req.ClientId,
		Name:        req.Name,
		Description: req.Description,
		Status:      string(statemachine.ProjectPlanning),
		Priority:    priority,
		Progress:    0,
		Budget:      req.Budget,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedBy:   actor.UserId,
	}
	if err := project.SetAssignedMemberIds(req.AssignedTo); err != nil {
		return nil, fmt.Errorf("encode assigned members failed: %w", err)
	}

	if err := s.projectRepo.AddProject(project); err != nil {
		log.Errorw("create project failed", "name", req.Name, "error", err)
		return nil, fmt.Errorf("create project failed: %w", err)
	}

	s.recordHistory(project.ProjectId, actor.UserId, model.HistoryActionCreate, "", "", "project created")

	// 5. 新指派成员通知
	if len(req.AssignedTo) > 0 {
		s.notifyAssigned(project, nil, req.AssignedTo)
	}

	return project, nil
}

// GetProject 按ID查询，不可见的项目一律报范围错误
func (s *ProjectService) GetProject(actor access.Identity, projectId string) (*model.Project, error) {
	project, err := s.projectRepo.GetProjectByProjectId(projectId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.Deny(access.ReasonUnknownEntity, "project %s not found", projectId).Err()
		}
		return nil, fmt.Errorf("query project failed: %w", err)
	}
	if !access.ProjectVisible(actor, project) {
		return nil, access.Deny(access.ReasonOutOfScope, "project %s is not visible", projectId).Err()
	}
	return project, nil
}

// NextStatuses 项目当前可进入的状态列表
func (s *ProjectService) NextStatuses(actor access.Identity, projectId string) ([]string, error) {
	project, err := s.GetProject(actor, projectId)
	if err != nil {
		return nil, err
	}
	next := access.NextProjectStatuses(actor, statemachine.ProjectStatus(project.Status))
	statuses := make([]string, 0, len(next))
	for _, st := range next {
		statuses = append(statuses, string(st))
	}
	return statuses, nil
}

// ListProjects 角色过滤后的项目列表
// 仓储先按角色取粗集，再经可见性过滤兜底
func (s *ProjectService) ListProjects(actor access.Identity, query *model.ProjectQueryReq) ([]model.Project, error) {
	var (
		projects []model.Project
		err      error
	)
	switch actor.Role {
	case access.RoleAdmin:
		projects, err = s.projectRepo.ListProjects(query)
	case access.RoleCompany:
		projects, err = s.projectRepo.ListProjectsByCompany(actor.CompanyId)
	case access.RoleClient:
		projects, err = s.projectRepo.ListProjectsByClient(actor.UserId)
	default:
		return nil, &access.InvalidRoleError{Role: string(actor.Role)}
	}
	if err != nil {
		return nil, fmt.Errorf("query projects failed: %w", err)
	}
	return access.VisibleProjects(actor, projects), nil
}

// UpdateProject 更新项目字段，状态变更走 MoveProjectStatus
func (s *ProjectService) UpdateProject(actor access.Identity, projectId string, req *model.UpdateProjectReq) (*model.Project, error) {
	project, err := s.projectRepo.GetProjectByProjectId(projectId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.Deny(access.ReasonUnknownEntity, "project %s not found", projectId).Err()
		}
		return nil, fmt.Errorf("query project failed: %w", err)
	}

	if err := deny(access.CanMutateProject(actor, project, access.OpUpdate)); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.ClientId != nil {
		if *req.ClientId != "" {
			client, err := s.userRepo.GetUserByUserId(*req.ClientId)
			if err != nil {
				return nil, errors.New("client reference does not exist")
			}
			if client.Role != string(access.RoleClient) {
				return nil, errors.New("client reference must be a client account")
			}
		}
		fields["client_id"] = *req.ClientId
	}
	if req.Priority != nil {
		fields["priority"] = *req.Priority
	}
	if req.Phase != nil {
		fields["phase"] = *req.Phase
	}
	if req.Progress != nil {
		fields["progress"] = *req.Progress
	}
	if req.Budget != nil {
		fields["budget"] = *req.Budget
	}
	if req.Spent != nil {
		fields["spent"] = *req.Spent
	}
	if req.StartDate != nil {
		fields["start_date"] = req.StartDate
	}
	if req.EndDate != nil {
		fields["end_date"] = req.EndDate
	}

	var addedMembers []string
	if req.AssignedTo != nil {
		before := project.AssignedMemberIds()
		addedMembers = access.AddedMemberIds(before, req.AssignedTo)
		updated := &model.Project{}
		if err := updated.SetAssignedMemberIds(req.AssignedTo); err != nil {
			return nil, fmt.Errorf("encode assigned members failed: %w", err)
		}
		fields["assigned_to"] = updated.AssignedTo
	}

	if len(fields) == 0 {
		return project, nil
	}

	if err := s.projectRepo.UpdateProject(projectId, fields); err != nil {
		log.Errorw("update project failed", "projectId", projectId, "error", err)
		return nil, fmt.Errorf("update project failed: %w", err)
	}

	s.recordHistory(projectId, actor.UserId, model.HistoryActionUpdate, "", "", "project updated")

	if len(addedMembers) > 0 {
		s.notifyAssigned(project, nil, addedMembers)
	}

	return s.projectRepo.GetProjectByProjectId(projectId)
}

// MoveProjectStatus 看板拖拽移动状态
func (s *ProjectService) MoveProjectStatus(actor access.Identity, projectId string, req *model.MoveProjectStatusReq) (*model.Project, error) {
	project, err := s.projectRepo.GetProjectByProjectId(projectId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.Deny(access.ReasonUnknownEntity, "project %s not found", projectId).Err()
		}
		return nil, fmt.Errorf("query project failed: %w", err)
	}

	if err := deny(access.CanMutateProject(actor, project, access.OpMoveStatus)); err != nil {
		return nil, err
	}

	from := statemachine.ProjectStatus(project.Status)
	to := statemachine.ProjectStatus(req.Status)
	if err := access.CheckProjectTransition(actor, from, to); err != nil {
		metrics.StatusTransitionRejected.Inc()
		return nil, err
	}
	if from == to {
		return project, nil
	}

	access.ApplyProjectTransition(project, from, to)

	fields := map[string]any{
		"status":   project.Status,
		"progress": project.Progress,
		"phase":    project.Phase,
	}
	if err := s.projectRepo.UpdateProject(projectId, fields); err != nil {
		log.Errorw("move project status failed", "projectId", projectId, "error", err)
		return nil, fmt.Errorf("move project status failed: %w", err)
	}

	s.recordHistory(projectId, actor.UserId, model.HistoryActionMoveStatus, string(from), string(to), "")

	return project, nil
}

// DeleteProject 级联删除项目与其工单评论
func (s *ProjectService) DeleteProject(actor access.Identity, projectId string) error {
	project, err := s.projectRepo.GetProjectByProjectId(projectId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return access.Deny(access.ReasonUnknownEntity, "project %s not found", projectId).Err()
		}
		return fmt.Errorf("query project failed: %w", err)
	}

	if err := deny(access.CanMutateProject(actor, project, access.OpDelete)); err != nil {
		return err
	}

	if err := s.projectRepo.DeleteProjectCascade(projectId); err != nil {
		log.Errorw("delete project failed", "projectId", projectId, "error", err)
		return fmt.Errorf("delete project failed: %w", err)
	}

	s.recordHistory(projectId, actor.UserId, model.HistoryActionDelete, project.Status, "", "project deleted")
	return nil
}

// checkProjectQuota 套餐项目数限额
func (s *ProjectService) checkProjectQuota(companyId string) error {
	if s.billingRepo == nil {
		return nil
	}
	sub, err := s.billingRepo.GetSubscriptionByCompanyId(companyId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 未订阅走免费额度
			return s.checkQuotaAgainstPlan(companyId, "free")
		}
		return fmt.Errorf("query subscription failed: %w", err)
	}
	if sub.Status != model.SubscriptionActive {
		return s.checkQuotaAgainstPlan(companyId, "free")
	}
	plan, err := s.billingRepo.GetPlanByPlanId(sub.PlanId)
	if err != nil {
		log.Warnw("query plan failed, skipping quota check", "planId", sub.PlanId, "error", err)
		return nil
	}
	return s.enforceProjectLimit(companyId, plan.MaxProjects)
}

func (s *ProjectService) checkQuotaAgainstPlan(companyId, planName string) error {
	plan, err := s.billingRepo.GetPlanByName(planName)
	if err != nil {
		// 套餐表未初始化时不拦截
		return nil
	}
	return s.enforceProjectLimit(companyId, plan.MaxProjects)
}

func (s *ProjectService) enforceProjectLimit(companyId string, limit int) error {
	if limit <= 0 {
		return nil
	}
	count, err := s.projectRepo.CountProjectsByCompany(companyId)
	if err != nil {
		return fmt.Errorf("count projects failed: %w", err)
	}
	if count >= int64(limit) {
		return fmt.Errorf("project limit (%d) reached for current plan", limit)
	}
	return nil
}

// notifyAssigned 新指派成员通知，失败不影响主流程
func (s *ProjectService) notifyAssigned(project *model.Project, before, after []string) {
	if s.notification == nil {
		return
	}
	added := after
	if before != nil {
		added = access.AddedMemberIds(before, after)
	}
	if len(added) == 0 {
		return
	}
	members, err := s.memberRepo.ListMembersByCompany(project.CompanyId)
	if err != nil {
		log.Warnw("list members for notification failed", "companyId", project.CompanyId, "error", err)
		return
	}
	drafts := access.OnProjectAssigned(project, added, members)
	s.notification.Dispatch(drafts, project.CompanyId)
}

func (s *ProjectService) recordHistory(projectId, operatorId, action, fromStatus, toStatus, detail string) {
	h := &model.ProjectHistory{
		HistoryId:  id.GetULID(),
		ProjectId:  projectId,
		OperatorId: operatorId,
		Action:     action,
		FromStatus: fromStatus,
		ToStatus:   toStatus,
		Detail:     detail,
	}
	if err := s.projectRepo.AddHistory(h); err != nil {
		log.Warnw("record project history failed", "projectId", projectId, "error", err)
	}
}
