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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/go-vantage/vantage/internal/engine/access"
	"github.com/go-vantage/vantage/internal/engine/model"
)

// ---- in-memory fakes ----

type fakeProjectRepo struct {
	projects map[string]*model.Project
	updates  map[string]map[string]any
	history  []model.ProjectHistory
	deleted  []string
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{
		projects: make(map[string]*model.Project),
		updates:  make(map[string]map[string]any),
	}
}

func (f *fakeProjectRepo) AddProject(p *model.Project) error {
	cp := *p
	f.projects[p.ProjectId] = &cp
	return nil
}

func (f *fakeProjectRepo) GetProjectByProjectId(projectId string) (*model.Project, error) {
	p, ok := f.projects[projectId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProjectRepo) UpdateProject(projectId string, fields map[string]any) error {
	p, ok := f.projects[projectId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.updates[projectId] = fields
	if v, ok := fields["status"]; ok {
		p.Status = v.(string)
	}
	if v, ok := fields["progress"]; ok {
		p.Progress = v.(int)
	}
	if v, ok := fields["phase"]; ok {
		p.Phase = v.(string)
	}
	return nil
}

func (f *fakeProjectRepo) DeleteProjectCascade(projectId string) error {
	delete(f.projects, projectId)
	f.deleted = append(f.deleted, projectId)
	return nil
}

func (f *fakeProjectRepo) ListProjects(query *model.ProjectQueryReq) ([]model.Project, error) {
	out := make([]model.Project, 0, len(f.projects))
	for _, p := range f.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProjectRepo) ListProjectsByCompany(companyId string) ([]model.Project, error) {
	var out []model.Project
	for _, p := range f.projects {
		if p.CompanyId == companyId {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) ListProjectsByClient(clientId string) ([]model.Project, error) {
	var out []model.Project
	for _, p := range f.projects {
		if p.ClientId == clientId {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) CountProjectsByCompany(companyId string) (int64, error) {
	var n int64
	for _, p := range f.projects {
		if p.CompanyId == companyId {
			n++
		}
	}
	return n, nil
}

func (f *fakeProjectRepo) AddHistory(h *model.ProjectHistory) error {
	f.history = append(f.history, *h)
	return nil
}

type fakeMemberRepo struct {
	members map[string]*model.TeamMember
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[string]*model.TeamMember)}
}

func (f *fakeMemberRepo) AddMember(m *model.TeamMember) error {
	cp := *m
	f.members[m.MemberId] = &cp
	return nil
}

func (f *fakeMemberRepo) GetMemberByMemberId(memberId string) (*model.TeamMember, error) {
	m, ok := f.members[memberId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMemberRepo) UpdateMember(memberId string, m *model.TeamMember) error { return nil }
func (f *fakeMemberRepo) DeleteMember(memberId string) error                      { return nil }

func (f *fakeMemberRepo) ListMembersByCompany(companyId string) ([]model.TeamMember, error) {
	var out []model.TeamMember
	for _, m := range f.members {
		if m.CompanyId == companyId {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMemberRepo) ListAllMembers() ([]model.TeamMember, error) {
	var out []model.TeamMember
	for _, m := range f.members {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeMemberRepo) CountMembersByCompany(companyId string) (int64, error) {
	var n int64
	for _, m := range f.members {
		if m.CompanyId == companyId {
			n++
		}
	}
	return n, nil
}

type fakeUserRepo struct {
	users    map[string]*model.User
	sessions map[string]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    make(map[string]*model.User),
		sessions: make(map[string]string),
	}
}

func (f *fakeUserRepo) AddUser(u *model.User) error {
	cp := *u
	f.users[u.UserId] = &cp
	return nil
}

func (f *fakeUserRepo) GetUserByUserId(userId string) (*model.User, error) {
	u, ok := f.users[userId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByUsername(username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UpdateUser(userId string, u *model.User) error { return nil }
func (f *fakeUserRepo) UpdateLastLogin(userId string) error           { return nil }
func (f *fakeUserRepo) ResetPassword(userId, hash string) error       { return nil }

func (f *fakeUserRepo) ListUsersByUserIds(userIds []string) ([]model.User, error) {
	var out []model.User
	for _, uid := range userIds {
		if u, ok := f.users[uid]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) SetToken(userId, refreshToken string, expire time.Duration) error {
	f.sessions[userId] = refreshToken
	return nil
}

func (f *fakeUserRepo) GetToken(userId string) (string, error) {
	token, ok := f.sessions[userId]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	return token, nil
}

func (f *fakeUserRepo) DelToken(userId string) error {
	delete(f.sessions, userId)
	return nil
}

type fakeBillingRepo struct {
	plans map[string]*model.Plan // by name
	subs  map[string]*model.Subscription
}

func newFakeBillingRepo() *fakeBillingRepo {
	return &fakeBillingRepo{
		plans: make(map[string]*model.Plan),
		subs:  make(map[string]*model.Subscription),
	}
}

func (f *fakeBillingRepo) ListPlans() ([]model.Plan, error) {
	var out []model.Plan
	for _, p := range f.plans {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeBillingRepo) GetPlanByPlanId(planId string) (*model.Plan, error) {
	for _, p := range f.plans {
		if p.PlanId == planId {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBillingRepo) GetPlanByName(name string) (*model.Plan, error) {
	p, ok := f.plans[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeBillingRepo) SavePlan(p *model.Plan) error {
	cp := *p
	f.plans[p.Name] = &cp
	return nil
}

func (f *fakeBillingRepo) GetSubscriptionByCompanyId(companyId string) (*model.Subscription, error) {
	s, ok := f.subs[companyId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeBillingRepo) GetSubscriptionByStripeId(stripeSubscriptionId string) (*model.Subscription, error) {
	for _, s := range f.subs {
		if s.StripeSubscriptionId == stripeSubscriptionId {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBillingRepo) UpsertSubscription(s *model.Subscription) error {
	cp := *s
	f.subs[s.CompanyId] = &cp
	return nil
}

func (f *fakeBillingRepo) UpdateSubscriptionStatus(subscriptionId, status string) error {
	for _, s := range f.subs {
		if s.SubscriptionId == subscriptionId {
			s.Status = status
		}
	}
	return nil
}

func (f *fakeBillingRepo) ListExpiredActiveSubscriptions(before time.Time) ([]model.Subscription, error) {
	var out []model.Subscription
	for _, s := range f.subs {
		if s.Status == model.SubscriptionActive && s.CurrentPeriodEnd != nil && s.CurrentPeriodEnd.Before(before) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeBillingRepo) AddInvoice(inv *model.Invoice) error { return nil }
func (f *fakeBillingRepo) GetInvoiceByStripeId(stripeInvoiceId string) (*model.Invoice, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeBillingRepo) UpdateInvoiceStatus(invoiceId, status string) error { return nil }
func (f *fakeBillingRepo) ListPendingInvoicesBefore(before time.Time) ([]model.Invoice, error) {
	return nil, nil
}
func (f *fakeBillingRepo) ListInvoicesByCompany(companyId string, offset, pageSize int) ([]model.Invoice, int64, error) {
	return nil, 0, nil
}

type fakeNotificationRepo struct {
	added []model.Notification
}

func (f *fakeNotificationRepo) AddNotifications(ns []model.Notification) error {
	f.added = append(f.added, ns...)
	return nil
}

func (f *fakeNotificationRepo) GetNotificationByNotificationId(notificationId string) (*model.Notification, error) {
	for i := range f.added {
		if f.added[i].NotificationId == notificationId {
			cp := f.added[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepo) ListByRecipient(recipientId string, unreadOnly bool, offset, pageSize int) ([]model.Notification, int64, error) {
	var out []model.Notification
	for i := range f.added {
		if f.added[i].RecipientId == recipientId {
			out = append(out, f.added[i])
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotificationRepo) CountUnread(recipientId string) (int64, error) {
	var n int64
	for i := range f.added {
		if f.added[i].RecipientId == recipientId && f.added[i].IsRead == 0 {
			n++
		}
	}
	return n, nil
}

func (f *fakeNotificationRepo) MarkRead(notificationId string) error { return nil }
func (f *fakeNotificationRepo) MarkAllRead(recipientId string) error { return nil }

type fakeCompanyRepo struct {
	companies map[string]*model.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[string]*model.Company)}
}

func (f *fakeCompanyRepo) AddCompany(c *model.Company) error {
	cp := *c
	f.companies[c.CompanyId] = &cp
	return nil
}

func (f *fakeCompanyRepo) GetCompanyByCompanyId(companyId string) (*model.Company, error) {
	c, ok := f.companies[companyId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCompanyRepo) GetCompanyByStripeCustomerId(customerId string) (*model.Company, error) {
	for _, c := range f.companies {
		if c.StripeCustomerId == customerId {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompanyRepo) UpdateCompany(companyId string, c *model.Company) error { return nil }
func (f *fakeCompanyRepo) SetStripeCustomerId(companyId, customerId string) error { return nil }
func (f *fakeCompanyRepo) SetEnabled(companyId string, enabled int) error         { return nil }
func (f *fakeCompanyRepo) ListCompanies(offset, pageSize int) ([]model.Company, int64, error) {
	return nil, 0, nil
}

// ---- fixtures ----

type projectFixture struct {
	svc         *ProjectService
	projectRepo *fakeProjectRepo
	billingRepo *fakeBillingRepo
	notifyRepo  *fakeNotificationRepo
}

func newProjectFixture() *projectFixture {
	projectRepo := newFakeProjectRepo()
	memberRepo := newFakeMemberRepo()
	userRepo := newFakeUserRepo()
	billingRepo := newFakeBillingRepo()
	notifyRepo := &fakeNotificationRepo{}
	notification := NewNotificationService(notifyRepo, newFakeCompanyRepo(), nil, nil)
	return &projectFixture{
		svc:         NewProjectService(projectRepo, memberRepo, userRepo, billingRepo, notification),
		projectRepo: projectRepo,
		billingRepo: billingRepo,
		notifyRepo:  notifyRepo,
	}
}

var (
	companyActor = access.Identity{UserId: "u-company", Role: access.RoleCompany, CompanyId: "c1"}
	adminActor   = access.Identity{UserId: "u-admin", Role: access.RoleAdmin}
	clientActor  = access.Identity{UserId: "u-client", Role: access.RoleClient}
)

func seedProject(f *projectFixture, projectId, companyId, clientId, status string) {
	_ = f.projectRepo.AddProject(&model.Project{
		ProjectId: projectId,
		CompanyId: companyId,
		ClientId:  clientId,
		Status:    status,
		Priority:  model.PriorityMedium,
	})
}

// ---- tests ----

func TestCreateProjectScopesCompany(t *testing.T) {
	f := newProjectFixture()

	project, err := f.svc.CreateProject(companyActor, &model.CreateProjectReq{
		Name:      "Website relaunch",
		CompanyId: "c-other", // 企业账号不可为别家建项目，应被覆盖
	})
	require.NoError(t, err)
	assert.Equal(t, "c1", project.CompanyId)
	assert.Equal(t, "Planning", project.Status)
	assert.Equal(t, 0, project.Progress)
	require.Len(t, f.projectRepo.history, 1)
	assert.Equal(t, model.HistoryActionCreate, f.projectRepo.history[0].Action)
}

func TestCreateProjectClientForbidden(t *testing.T) {
	f := newProjectFixture()

	_, err := f.svc.CreateProject(clientActor, &model.CreateProjectReq{
		Name:      "Not allowed",
		CompanyId: "c1",
	})
	require.Error(t, err)
	var denied *access.DeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, access.ReasonRoleForbidden, denied.Decision.Reason)
}

func TestCreateProjectQuotaEnforced(t *testing.T) {
	f := newProjectFixture()
	_ = f.billingRepo.SavePlan(&model.Plan{PlanId: "p-free", Name: "free", MaxProjects: 1})
	seedProject(f, "p1", "c1", "", "Planning")

	_, err := f.svc.CreateProject(companyActor, &model.CreateProjectReq{Name: "Second"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project limit")
}

func TestCreateProjectQuotaUsesActivePlan(t *testing.T) {
	f := newProjectFixture()
	_ = f.billingRepo.SavePlan(&model.Plan{PlanId: "p-free", Name: "free", MaxProjects: 1})
	_ = f.billingRepo.SavePlan(&model.Plan{PlanId: "p-biz", Name: "business", MaxProjects: 100})
	_ = f.billingRepo.UpsertSubscription(&model.Subscription{
		SubscriptionId: "s1",
		CompanyId:      "c1",
		PlanId:         "p-biz",
		Status:         model.SubscriptionActive,
	})
	seedProject(f, "p1", "c1", "", "Planning")

	_, err := f.svc.CreateProject(companyActor, &model.CreateProjectReq{Name: "Second"})
	require.NoError(t, err)
}

func TestMoveProjectStatusValidTransition(t *testing.T) {
	f := newProjectFixture()
	seedProject(f, "p1", "c1", "", "Planning")

	project, err := f.svc.MoveProjectStatus(companyActor, "p1", &model.MoveProjectStatusReq{Status: "In Progress"})
	require.NoError(t, err)
	assert.Equal(t, "In Progress", project.Status)
	// 离开 Planning 时初始化阶段
	assert.Equal(t, "Execution", project.Phase)
	require.Len(t, f.projectRepo.history, 1)
	assert.Equal(t, model.HistoryActionMoveStatus, f.projectRepo.history[0].Action)
	assert.Equal(t, "Planning", f.projectRepo.history[0].FromStatus)
}

func TestMoveProjectStatusIllegalTransition(t *testing.T) {
	f := newProjectFixture()
	seedProject(f, "p1", "c1", "", "Planning")

	_, err := f.svc.MoveProjectStatus(companyActor, "p1", &model.MoveProjectStatusReq{Status: "Completed"})
	require.Error(t, err)
	var te *access.TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "Planning", te.From)
	assert.Equal(t, "Completed", te.To)
}

func TestMoveProjectStatusCompletedSetsProgress(t *testing.T) {
	f := newProjectFixture()
	seedProject(f, "p1", "c1", "", "In Progress")

	project, err := f.svc.MoveProjectStatus(companyActor, "p1", &model.MoveProjectStatusReq{Status: "Completed"})
	require.NoError(t, err)
	assert.Equal(t, "Completed", project.Status)
	assert.Equal(t, 100, project.Progress)
}

func TestMoveProjectStatusCompletedTerminalForCompany(t *testing.T) {
	f := newProjectFixture()
	seedProject(f, "p1", "c1", "", "Completed")

	_, err := f.svc.MoveProjectStatus(companyActor, "p1", &model.MoveProjectStatusReq{Status: "In Progress"})
	require.Error(t, err)
	var te *access.TransitionError
	require.True(t, errors.As(err, &te))
}

func TestMoveProjectStatusAdminOverride(t *testing.T) {
	f := newProjectFixture()
	seedProject(f, "p1", "c1", "", "Completed")
	f.projectRepo.projects["p1"].Progress = 100

	project, err := f.svc.MoveProjectStatus(adminActor, "p1", &model.MoveProjectStatusReq{Status: "In Progress"})
	require.NoError(t, err)
	assert.Equal(t, "In Progress", project.Status)
	// 离开 Completed 不回滚进度
	assert.Equal(t, 100, project.Progress)
}

func TestMoveProjectStatusSameStatusNoop(t *testing.T) {
	f := newProjectFixture()
	seedProject(f, "p1", "c1", "", "Planning")

	project, err := f.svc.MoveProjectStatus(companyActor, "p1", &model.MoveProjectStatusReq{Status: "Planning"})
	require.NoError(t, err)
	assert.Equal(t, "Planning", project.Status)
	assert.Empty(t, f.projectRepo.updates)
	assert.Empty(t, f.projectRepo.history)
}

func TestMoveProjectStatusClientForbidden(t *testing.T) {
	f := newProjectFixture()
	// 客户自己的项目也不能改状态
	seedProject(f, "p1", "c1", "u-client", "Planning")

	_, err := f.svc.MoveProjectStatus(clientActor, "p1", &model.MoveProjectStatusReq{Status: "In Progress"})
	require.Error(t, err)
	var denied *access.DeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, access.ReasonRoleForbidden, denied.Decision.Reason)
}

func TestMoveProjectStatusOtherCompanyOutOfScope(t *testing.T) {
	f := newProjectFixture()
	seedProject(f, "p1", "c2", "", "Planning")

	_, err := f.svc.MoveProjectStatus(companyActor, "p1", &model.MoveProjectStatusReq{Status: "In Progress"})
	require.Error(t, err)
	var denied *access.DeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, access.ReasonOutOfScope, denied.Decision.Reason)
}

func TestDeleteProjectCompanyOwnScope(t *testing.T) {
	f := newFixtureWithTwoCompanies()

	// 企业只能删本企业项目
	err := f.svc.DeleteProject(companyActor, "p2")
	require.Error(t, err)
	var denied *access.DeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, access.ReasonOutOfScope, denied.Decision.Reason)

	err = f.svc.DeleteProject(companyActor, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, f.projectRepo.deleted)
	require.NotEmpty(t, f.projectRepo.history)
	assert.Equal(t, model.HistoryActionDelete, f.projectRepo.history[len(f.projectRepo.history)-1].Action)
}

func TestDeleteProjectClientForbidden(t *testing.T) {
	f := newProjectFixture()
	seedProject(f, "p1", "c1", "u-client", "Planning")

	err := f.svc.DeleteProject(clientActor, "p1")
	require.Error(t, err)
	var denied *access.DeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, access.ReasonRoleForbidden, denied.Decision.Reason)
}

func newFixtureWithTwoCompanies() *projectFixture {
	f := newProjectFixture()
	seedProject(f, "p1", "c1", "", "Planning")
	seedProject(f, "p2", "c2", "", "Planning")
	return f
}

func TestGetProjectVisibility(t *testing.T) {
	f := newProjectFixture()
	seedProject(f, "p1", "c1", "u-client", "Planning")
	seedProject(f, "p2", "c2", "", "Planning")

	// 客户能看到自己的项目
	project, err := f.svc.GetProject(clientActor, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", project.ProjectId)

	// 但看不到别的项目
	_, err = f.svc.GetProject(clientActor, "p2")
	require.Error(t, err)
	var denied *access.DeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, access.ReasonOutOfScope, denied.Decision.Reason)

	// 不存在的项目报未知实体
	_, err = f.svc.GetProject(adminActor, "missing")
	require.Error(t, err)
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, access.ReasonUnknownEntity, denied.Decision.Reason)
}

func TestNextStatusesPerRole(t *testing.T) {
	f := newProjectFixture()
	seedProject(f, "p1", "c1", "", "Completed")

	// 图上 Completed 是终态
	statuses, err := f.svc.NextStatuses(companyActor, "p1")
	require.NoError(t, err)
	assert.Empty(t, statuses)

	// 管理员可任意改道
	statuses, err = f.svc.NextStatuses(adminActor, "p1")
	require.NoError(t, err)
	assert.Len(t, statuses, 4)
}

func TestListProjectsScoped(t *testing.T) {
	f := newProjectFixture()
	seedProject(f, "p1", "c1", "", "Planning")
	seedProject(f, "p2", "c2", "", "Planning")
	seedProject(f, "p3", "c1", "u-client", "Planning")

	projects, err := f.svc.ListProjects(companyActor, &model.ProjectQueryReq{})
	require.NoError(t, err)
	assert.Len(t, projects, 2)

	projects, err = f.svc.ListProjects(clientActor, &model.ProjectQueryReq{})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "p3", projects[0].ProjectId)

	projects, err = f.svc.ListProjects(adminActor, &model.ProjectQueryReq{})
	require.NoError(t, err)
	assert.Len(t, projects, 3)
}
