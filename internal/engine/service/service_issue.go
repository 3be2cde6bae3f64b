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
	"github.com/go-vantage/vantage/pkg/statemachine"
)

type IssueService struct {
	issueRepo    repo.IIssueRepository
	projectRepo  repo.IProjectRepository
	notification *NotificationService
}

func NewIssueService(
	issueRepo repo.IIssueRepository,
	projectRepo repo.IProjectRepository,
	notification *NotificationService,
) *IssueService {
	return &IssueService{
		issueRepo:    issueRepo,
		projectRepo:  projectRepo,
		notification: notification,
	}
}

// CreateIssue 创建工单，能看到项目即可提交
func (s *IssueService) CreateIssue(actor access.Identity, req *model.CreateIssueReq) (*model.Issue, error) {
	project, err := s.projectRepo.GetProjectByProjectId(req.ProjectId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, deny(access.Deny(access.ReasonUnknownEntity, "project %s not found", req.ProjectId))
		}
		return nil, fmt.Errorf("query project failed: %w", err)
	}

	if err := deny(access.CanCreateIssue(actor, project)); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	issue := &model.Issue{
		IssueId:     id.GetUUID(),
		ProjectId:   req.ProjectId,
		Title:       req.Title,
		Description: req.Description,
		Status:      string(statemachine.IssueOpen),
		Priority:    priority,
		CreatedBy:   actor.UserId,
	}
	if err := s.issueRepo.AddIssue(issue); err != nil {
		log.Errorw("create issue failed", "projectId", req.ProjectId, "error", err)
		return nil, fmt.Errorf("create issue failed: %w", err)
	}
	return issue, nil
}

// GetIssue 按ID查询工单，可见性按并集规则
func (s *IssueService) GetIssue(actor access.Identity, issueId string) (*model.Issue, error) {
	issue, err := s.issueRepo.GetIssueByIssueId(issueId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.Deny(access.ReasonUnknownEntity, "issue %s not found", issueId).Err()
		}
		return nil, fmt.Errorf("query issue failed: %w", err)
	}
	if !s.issueVisible(actor, issue) {
		return nil, access.Deny(access.ReasonOutOfScope, "issue %s is not visible", issueId).Err()
	}
	return issue, nil
}

// ListIssues 角色过滤后的工单列表
func (s *IssueService) ListIssues(actor access.Identity, query *model.IssueQueryReq) ([]model.Issue, error) {
	issues, err := s.issueRepo.ListIssues(query)
	if err != nil {
		return nil, fmt.Errorf("query issues failed: %w", err)
	}
	projects, err := s.scopedProjects(actor)
	if err != nil {
		return nil, err
	}
	return access.VisibleIssues(actor, issues, projects), nil
}

// UpdateIssue 修改工单字段，客户不可用
func (s *IssueService) UpdateIssue(actor access.Identity, issueId string, req *model.UpdateIssueReq) (*model.Issue, error) {
	issue, project, err := s.loadIssueWithProject(issueId)
	if err != nil {
		return nil, err
	}

	if err := deny(access.CanMutateIssue(actor, issue, project, access.OpUpdate)); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Priority != nil {
		fields["priority"] = *req.Priority
	}
	if req.AssigneeId != nil {
		fields["assignee_id"] = *req.AssigneeId
	}
	if len(fields) == 0 {
		return issue, nil
	}

	if err := s.issueRepo.UpdateIssue(issueId, fields); err != nil {
		log.Errorw("update issue failed", "issueId", issueId, "error", err)
		return nil, fmt.Errorf("update issue failed: %w", err)
	}
	return s.issueRepo.GetIssueByIssueId(issueId)
}

// MoveIssueStatus 修改工单状态并通知创建者
func (s *IssueService) MoveIssueStatus(actor access.Identity, issueId string, req *model.MoveIssueStatusReq) (*model.Issue, error) {
	issue, project, err := s.loadIssueWithProject(issueId)
	if err != nil {
		return nil, err
	}

	if err := deny(access.CanMutateIssue(actor, issue, project, access.OpMoveStatus)); err != nil {
		return nil, err
	}

	from := statemachine.IssueStatus(issue.Status)
	to := statemachine.IssueStatus(req.Status)
	if !to.IsValid() {
		return nil, &access.TransitionError{From: issue.Status, To: req.Status}
	}
	if from == to {
		return issue, nil
	}

	if err := s.issueRepo.UpdateIssue(issueId, map[string]any{"status": string(to)}); err != nil {
		log.Errorw("move issue status failed", "issueId", issueId, "error", err)
		return nil, fmt.Errorf("move issue status failed: %w", err)
	}

	// 通知工单创建者，失败不回滚
	if s.notification != nil {
		drafts := access.OnIssueStatusChanged(issue, actor, string(from), string(to))
		companyId := ""
		if project != nil {
			companyId = project.CompanyId
		}
		s.notification.Dispatch(drafts, companyId)
	}

	issue.Status = string(to)
	return issue, nil
}

// AddComment 评论线程只追加
func (s *IssueService) AddComment(actor access.Identity, issueId string, req *model.AddCommentReq) (*model.IssueComment, error) {
	issue, project, err := s.loadIssueWithProject(issueId)
	if err != nil {
		return nil, err
	}

	if err := deny(access.CanMutateIssue(actor, issue, project, access.OpComment)); err != nil {
		return nil, err
	}

	comment := &model.IssueComment{
		CommentId: id.GetUUID(),
		IssueId:   issueId,
		AuthorId:  actor.UserId,
		Content:   req.Content,
	}
	if err := s.issueRepo.AddComment(comment); err != nil {
		log.Errorw("add comment failed", "issueId", issueId, "error", err)
		return nil, fmt.Errorf("add comment failed: %w", err)
	}
	return comment, nil
}

// ListComments 按时间升序返回评论
func (s *IssueService) ListComments(actor access.Identity, issueId string) ([]model.IssueComment, error) {
	if _, err := s.GetIssue(actor, issueId); err != nil {
		return nil, err
	}
	return s.issueRepo.ListComments(issueId)
}

// loadIssueWithProject 取工单与其项目，项目缺失时返回 nil project 由守卫判定
func (s *IssueService) loadIssueWithProject(issueId string) (*model.Issue, *model.Project, error) {
	issue, err := s.issueRepo.GetIssueByIssueId(issueId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, access.Deny(access.ReasonUnknownEntity, "issue %s not found", issueId).Err()
		}
		return nil, nil, fmt.Errorf("query issue failed: %w", err)
	}
	project, err := s.projectRepo.GetProjectByProjectId(issue.ProjectId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return issue, nil, nil
		}
		return nil, nil, fmt.Errorf("query project failed: %w", err)
	}
	return issue, project, nil
}

// issueVisible 单工单可见性，与列表过滤同一规则
func (s *IssueService) issueVisible(actor access.Identity, issue *model.Issue) bool {
	if actor.IsAdmin() {
		return true
	}
	if actor.Role == access.RoleClient && issue.CreatedBy == actor.UserId {
		return true
	}
	project, err := s.projectRepo.GetProjectByProjectId(issue.ProjectId)
	if err != nil {
		return false
	}
	return access.ProjectVisible(actor, project)
}

// scopedProjects 角色对应的项目候选集
func (s *IssueService) scopedProjects(actor access.Identity) ([]model.Project, error) {
	switch actor.Role {
	case access.RoleAdmin:
		return nil, nil // 管理员不需要项目集
	case access.RoleCompany:
		return s.projectRepo.ListProjectsByCompany(actor.CompanyId)
	case access.RoleClient:
		return s.projectRepo.ListProjectsByClient(actor.UserId)
	}
	return nil, &access.InvalidRoleError{Role: string(actor.Role)}
}
