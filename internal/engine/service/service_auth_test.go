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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/go-vantage/vantage/internal/engine/access"
	"github.com/go-vantage/vantage/internal/engine/model"
	"github.com/go-vantage/vantage/pkg/http"
)

func newAuthFixture() (*AuthService, *fakeUserRepo, *fakeCompanyRepo) {
	userRepo := newFakeUserRepo()
	companyRepo := newFakeCompanyRepo()
	svc := NewAuthService(userRepo, companyRepo, http.Auth{
		SecretKey:     "test-secret",
		AccessExpire:  30,
		RefreshExpire: 10080,
	})
	return svc, userRepo, companyRepo
}

func seedUser(userRepo *fakeUserRepo, userId, username, password, role, companyId string) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	_ = userRepo.AddUser(&model.User{
		UserId:    userId,
		Username:  username,
		Password:  string(hash),
		Role:      role,
		CompanyId: companyId,
		IsEnabled: 1,
	})
}

func TestRegisterCreatesCompanyAndAccount(t *testing.T) {
	svc, userRepo, companyRepo := newAuthFixture()

	err := svc.Register(&model.RegisterReq{
		Username:    "acme-admin",
		Password:    "secret-pass-1",
		Email:       "ops@acme.test",
		CompanyName: "Acme",
	})
	require.NoError(t, err)
	require.Len(t, companyRepo.companies, 1)

	user, err := userRepo.GetUserByUsername("acme-admin")
	require.NoError(t, err)
	assert.Equal(t, string(access.RoleCompany), user.Role)
	assert.NotEmpty(t, user.CompanyId)
	// 密码只存散列
	assert.NotEqual(t, "secret-pass-1", user.Password)

	// 用户名重复直接拒绝
	err = svc.Register(&model.RegisterReq{
		Username:    "acme-admin",
		Password:    "secret-pass-1",
		Email:       "other@acme.test",
		CompanyName: "Acme Two",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username already exists")
}

func TestLoginWritesSession(t *testing.T) {
	svc, userRepo, _ := newAuthFixture()
	seedUser(userRepo, "u1", "alice", "secret-pass-1", string(access.RoleCompany), "c1")

	resp, err := svc.Login(&model.LoginReq{Username: "alice", Password: "secret-pass-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	// 会话里存的就是下发的 refresh token
	assert.Equal(t, resp.RefreshToken, userRepo.sessions["u1"])

	_, err = svc.Login(&model.LoginReq{Username: "alice", Password: "wrong"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incorrect username or password")
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, userRepo, _ := newAuthFixture()
	seedUser(userRepo, "u1", "alice", "secret-pass-1", string(access.RoleCompany), "c1")
	userRepo.users["u1"].IsEnabled = 0

	_, err := svc.Login(&model.LoginReq{Username: "alice", Password: "secret-pass-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "account is disabled")
}

// 刷新会轮换会话令牌，轮换后的令牌必须能继续刷新
func TestRefreshRotatesSession(t *testing.T) {
	svc, userRepo, _ := newAuthFixture()
	seedUser(userRepo, "u1", "alice", "secret-pass-1", string(access.RoleCompany), "c1")

	resp, err := svc.Login(&model.LoginReq{Username: "alice", Password: "secret-pass-1"})
	require.NoError(t, err)

	tokens, err := svc.Refresh("u1", resp.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, tokens["accessToken"])
	require.NotEmpty(t, tokens["refreshToken"])
	// 会话必须跟着换成新下发的 refresh token，否则下一次刷新会被拒
	assert.Equal(t, tokens["refreshToken"], userRepo.sessions["u1"])

	tokens2, err := svc.Refresh("u1", tokens["refreshToken"])
	require.NoError(t, err)
	assert.NotEmpty(t, tokens2["refreshToken"])
	assert.Equal(t, tokens2["refreshToken"], userRepo.sessions["u1"])
}

func TestRefreshRejectsStaleToken(t *testing.T) {
	svc, userRepo, _ := newAuthFixture()
	seedUser(userRepo, "u1", "alice", "secret-pass-1", string(access.RoleCompany), "c1")

	_, err := svc.Login(&model.LoginReq{Username: "alice", Password: "secret-pass-1"})
	require.NoError(t, err)

	_, err = svc.Refresh("u1", "not-the-stored-token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid refresh token")
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc, userRepo, _ := newAuthFixture()
	seedUser(userRepo, "u1", "alice", "secret-pass-1", string(access.RoleCompany), "c1")

	resp, err := svc.Login(&model.LoginReq{Username: "alice", Password: "secret-pass-1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout("u1"))
	_, ok := userRepo.sessions["u1"]
	assert.False(t, ok)

	_, err = svc.Refresh("u1", resp.RefreshToken)
	require.Error(t, err)
}

func TestResolveIdentityCompanyScope(t *testing.T) {
	svc, userRepo, _ := newAuthFixture()
	seedUser(userRepo, "u1", "alice", "secret-pass-1", string(access.RoleCompany), "c1")
	seedUser(userRepo, "u2", "bob", "secret-pass-1", string(access.RoleClient), "")

	identity, err := svc.ResolveIdentity("u1")
	require.NoError(t, err)
	assert.Equal(t, access.RoleCompany, identity.Role)
	assert.Equal(t, "c1", identity.CompanyId)

	// 客户身份不携带企业归属
	identity, err = svc.ResolveIdentity("u2")
	require.NoError(t, err)
	assert.Equal(t, access.RoleClient, identity.Role)
	assert.Empty(t, identity.CompanyId)
}
