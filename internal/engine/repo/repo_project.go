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
	"gorm.io/gorm"

	"github.com/go-vantage/vantage/internal/engine/model"
	"github.com/go-vantage/vantage/pkg/database"
)

type IProjectRepository interface {
	AddProject(p *model.Project) error
	GetProjectByProjectId(projectId string) (*model.Project, error)
	UpdateProject(projectId string, fields map[string]any) error
	DeleteProjectCascade(projectId string) error
	ListProjects(query *model.ProjectQueryReq) ([]model.Project, error)
	ListProjectsByCompany(companyId string) ([]model.Project, error)
	ListProjectsByClient(clientId string) ([]model.Project, error)
	CountProjectsByCompany(companyId string) (int64, error)
	AddHistory(h *model.ProjectHistory) error
}

type ProjectRepo struct {
	db           database.DB
	projectModel *model.Project
}

func NewProjectRepo(db database.DB) IProjectRepository {
	return &ProjectRepo{
		db:           db,
		projectModel: &model.Project{},
	}
}

func (pr *ProjectRepo) AddProject(p *model.Project) error {
	return pr.db.DB().Create(p).Error
}

func (pr *ProjectRepo) GetProjectByProjectId(projectId string) (*model.Project, error) {
	p := &model.Project{}
	err := pr.db.DB().Table(pr.projectModel.TableName()).
		Where("project_id = ?", projectId).First(p).Error
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProject 按字段更新，project_id, company_id, created_at 不可更新
func (pr *ProjectRepo) UpdateProject(projectId string, fields map[string]any) error {
	delete(fields, "project_id")
	delete(fields, "company_id")
	delete(fields, "created_at")
	return pr.db.DB().Table(pr.projectModel.TableName()).
		Where("project_id = ?", projectId).
		Updates(fields).Error
}

// DeleteProjectCascade 删除项目及其工单、评论，单事务内完成，不留孤儿工单
func (pr *ProjectRepo) DeleteProjectCascade(projectId string) error {
	return pr.db.DB().Transaction(func(tx *gorm.DB) error {
		var issueIds []string
		if err := tx.Table((&model.Issue{}).TableName()).
			Where("project_id = ?", projectId).
			Pluck("issue_id", &issueIds).Error; err != nil {
			return err
		}
		if len(issueIds) > 0 {
			if err := tx.Where("issue_id IN ?", issueIds).
				Delete(&model.IssueComment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", projectId).
				Delete(&model.Issue{}).Error; err != nil {
				return err
			}
		}
		return tx.Where("project_id = ?", projectId).
			Delete(&model.Project{}).Error
	})
}

// ListProjects 粗粒度查询，角色可见性由上层过滤
func (pr *ProjectRepo) ListProjects(query *model.ProjectQueryReq) ([]model.Project, error) {
	tx := pr.db.DB().Table(pr.projectModel.TableName())
	if query != nil {
		if query.Name != "" {
			tx = tx.Where("name LIKE ?", "%"+query.Name+"%")
		}
		if query.Status != "" {
			tx = tx.Where("status = ?", query.Status)
		}
		if query.Priority != "" {
			tx = tx.Where("priority = ?", query.Priority)
		}
	}
	var projects []model.Project
	err := tx.Order("id ASC").Find(&projects).Error
	return projects, err
}

func (pr *ProjectRepo) ListProjectsByCompany(companyId string) ([]model.Project, error) {
	var projects []model.Project
	err := pr.db.DB().Table(pr.projectModel.TableName()).
		Where("company_id = ?", companyId).
		Order("id ASC").Find(&projects).Error
	return projects, err
}

func (pr *ProjectRepo) ListProjectsByClient(clientId string) ([]model.Project, error) {
	var projects []model.Project
	err := pr.db.DB().Table(pr.projectModel.TableName()).
		Where("client_id = ?", clientId).
		Order("id ASC").Find(&projects).Error
	return projects, err
}

func (pr *ProjectRepo) CountProjectsByCompany(companyId string) (int64, error) {
	var count int64
	err := pr.db.DB().Table(pr.projectModel.TableName()).
		Where("company_id = ?", companyId).Count(&count).Error
	return count, err
}

// AddHistory 追加项目历史记录，仅留痕
func (pr *ProjectRepo) AddHistory(h *model.ProjectHistory) error {
	return pr.db.DB().Create(h).Error
}
