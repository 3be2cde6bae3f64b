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

type IIssueRepository interface {
	AddIssue(i *model.Issue) error
	GetIssueByIssueId(issueId string) (*model.Issue, error)
	UpdateIssue(issueId string, fields map[string]any) error
	ListIssues(query *model.IssueQueryReq) ([]model.Issue, error)
	AddComment(c *model.IssueComment) error
	ListComments(issueId string) ([]model.IssueComment, error)
}

type IssueRepo struct {
	db         database.DB
	issueModel *model.Issue
}

func NewIssueRepo(db database.DB) IIssueRepository {
	return &IssueRepo{
		db:         db,
		issueModel: &model.Issue{},
	}
}

func (ir *IssueRepo) AddIssue(i *model.Issue) error {
	return ir.db.DB().Create(i).Error
}

func (ir *IssueRepo) GetIssueByIssueId(issueId string) (*model.Issue, error) {
	i := &model.Issue{}
	err := ir.db.DB().Table(ir.issueModel.TableName()).
		Where("issue_id = ?", issueId).First(i).Error
	if err != nil {
		return nil, err
	}
	return i, nil
}

// UpdateIssue 按字段更新，issue_id, project_id, created_by, created_at 不可更新
func (ir *IssueRepo) UpdateIssue(issueId string, fields map[string]any) error {
	delete(fields, "issue_id")
	delete(fields, "project_id")
	delete(fields, "created_by")
	delete(fields, "created_at")
	return ir.db.DB().Table(ir.issueModel.TableName()).
		Where("issue_id = ?", issueId).
		Updates(fields).Error
}

// ListIssues 粗粒度查询，角色可见性由上层过滤
func (ir *IssueRepo) ListIssues(query *model.IssueQueryReq) ([]model.Issue, error) {
	tx := ir.db.DB().Table(ir.issueModel.TableName())
	if query != nil {
		if query.ProjectId != "" {
			tx = tx.Where("project_id = ?", query.ProjectId)
		}
		if query.Status != "" {
			tx = tx.Where("status = ?", query.Status)
		}
		if query.Priority != "" {
			tx = tx.Where("priority = ?", query.Priority)
		}
	}
	var issues []model.Issue
	err := tx.Order("id ASC").Find(&issues).Error
	return issues, err
}

// AddComment 评论只追加，不提供修改删除
func (ir *IssueRepo) AddComment(c *model.IssueComment) error {
	return ir.db.DB().Create(c).Error
}

// ListComments 按创建时间升序返回评论线程
func (ir *IssueRepo) ListComments(issueId string) ([]model.IssueComment, error) {
	var comments []model.IssueComment
	err := ir.db.DB().Table((&model.IssueComment{}).TableName()).
		Where("issue_id = ?", issueId).
		Order("id ASC").Find(&comments).Error
	return comments, err
}
