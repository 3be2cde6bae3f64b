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
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/go-vantage/vantage/internal/engine/access"
	"github.com/go-vantage/vantage/internal/engine/model"
	"github.com/go-vantage/vantage/internal/engine/repo"
	"github.com/go-vantage/vantage/pkg/http"
	"github.com/go-vantage/vantage/pkg/http/jwt"
	"github.com/go-vantage/vantage/pkg/id"
	"github.com/go-vantage/vantage/pkg/log"
)

type AuthService struct {
	userRepo    repo.IUserRepository
	companyRepo repo.ICompanyRepository
	authConf    http.Auth
}

func NewAuthService(userRepo repo.IUserRepository, companyRepo repo.ICompanyRepository, authConf http.Auth) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		authConf:    authConf,
	}
}

// LoginResp 登录响应
type LoginResp struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	UserInfo     *model.UserInfo `json:"userInfo"`
}

// Register 企业注册，创建企业与企业账号
func (s *AuthService) Register(req *model.RegisterReq) error {
	// 1. 用户名与邮箱去重
	if _, err := s.userRepo.GetUserByUsername(req.Username); err == nil {
		return errors.New("username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check username failed: %w", err)
	}
	if _, err := s.userRepo.GetUserByEmail(req.Email); err == nil {
		return errors.New("email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check email failed: %w", err)
	}

	// 2. 创建企业
	company := &model.Company{
		CompanyId:   id.GetUUID(),
		Name:        req.CompanyName,
		DisplayName: req.CompanyName,
		Email:       req.Email,
		IsEnabled:   1,
	}
	if err := s.companyRepo.AddCompany(company); err != nil {
		log.Errorw("create company failed", "name", req.CompanyName, "error", err)
		return fmt.Errorf("create company failed: %w", err)
	}

	// 3. 创建企业账号
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password failed: %w", err)
	}
	user := &model.User{
		UserId:    id.GetUUID(),
		Username:  req.Username,
		Password:  string(hash),
		Email:     req.Email,
		Role:      string(access.RoleCompany),
		CompanyId: company.CompanyId,
		IsEnabled: 1,
	}
	if err := s.userRepo.AddUser(user); err != nil {
		log.Errorw("create company user failed", "username", req.Username, "error", err)
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

// Login 登录，签发 access/refresh 令牌并写入会话
func (s *AuthService) Login(req *model.LoginReq) (*LoginResp, error) {
	user, err := s.userRepo.GetUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("incorrect username or password")
		}
		return nil, fmt.Errorf("query user failed: %w", err)
	}
	if user.IsEnabled == 0 {
		return nil, errors.New("account is disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("incorrect username or password")
	}

	aToken, rToken, err := jwt.GenToken(user.UserId, user.Role,
		[]byte(s.authConf.SecretKey), s.authConf.AccessExpire, s.authConf.RefreshExpire)
	if err != nil {
		return nil, fmt.Errorf("generate token failed: %w", err)
	}

	// 会话有效期跟随 refresh token
	if err := s.userRepo.SetToken(user.UserId, rToken, s.authConf.RefreshExpire*time.Minute); err != nil {
		log.Errorw("set session failed", "userId", user.UserId, "error", err)
		return nil, fmt.Errorf("set session failed: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(user.UserId); err != nil {
		log.Warnw("update last login failed", "userId", user.UserId, "error", err)
	}

	return &LoginResp{
		AccessToken:  aToken,
		RefreshToken: rToken,
		UserInfo: &model.UserInfo{
			UserId:    user.UserId,
			Username:  user.Username,
			Email:     user.Email,
			Avatar:    user.Avatar,
			Role:      user.Role,
			CompanyId: user.CompanyId,
		},
	}, nil
}

// Logout 删除会话使令牌失效
func (s *AuthService) Logout(userId string) error {
	return s.userRepo.DelToken(userId)
}

// Refresh 用 refresh token 换新令牌对
func (s *AuthService) Refresh(userId, rToken string) (map[string]string, error) {
	stored, err := s.userRepo.GetToken(userId)
	if err != nil || stored != rToken {
		return nil, errors.New("invalid refresh token")
	}

	user, err := s.userRepo.GetUserByUserId(userId)
	if err != nil {
		return nil, fmt.Errorf("query user failed: %w", err)
	}

	tokens, err := jwt.RefreshToken(s.authConf.SecretKey,
		s.authConf.AccessExpire, s.authConf.RefreshExpire, user.UserId, user.Role, rToken)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetToken(user.UserId, tokens["refreshToken"], s.authConf.RefreshExpire*time.Minute); err != nil {
		return nil, fmt.Errorf("set session failed: %w", err)
	}
	return tokens, nil
}

// InviteClient 企业邀请客户账号，客户不持有企业归属
func (s *AuthService) InviteClient(actor access.Identity, req *model.InviteClientReq) (*model.User, error) {
	if actor.Role != access.RoleAdmin && actor.Role != access.RoleCompany {
		return nil, errors.New("only company or admin accounts can invite clients")
	}

	if _, err := s.userRepo.GetUserByUsername(req.Username); err == nil {
		return nil, errors.New("username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username failed: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		UserId:    id.GetUUID(),
		Username:  req.Username,
		Password:  string(hash),
		Email:     req.Email,
		Role:      string(access.RoleClient),
		IsEnabled: 1,
	}
	if err := s.userRepo.AddUser(user); err != nil {
		log.Errorw("create client user failed", "username", req.Username, "error", err)
		return nil, fmt.Errorf("create user failed: %w", err)
	}
	return user, nil
}

// GetUserInfo 当前登录用户资料
func (s *AuthService) GetUserInfo(userId string) (*model.UserInfo, error) {
	user, err := s.userRepo.GetUserByUserId(userId)
	if err != nil {
		return nil, fmt.Errorf("query user failed: %w", err)
	}
	return &model.UserInfo{
		UserId:    user.UserId,
		Username:  user.Username,
		Email:     user.Email,
		Avatar:    user.Avatar,
		Role:      user.Role,
		CompanyId: user.CompanyId,
	}, nil
}

// UpdateUser 更新本人资料，身份字段不可改
func (s *AuthService) UpdateUser(userId string, req *model.UpdateUserReq) error {
	user, err := s.userRepo.GetUserByUserId(userId)
	if err != nil {
		return fmt.Errorf("query user failed: %w", err)
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	return s.userRepo.UpdateUser(userId, user)
}

// ResolveIdentity 每次请求从数据库取最新身份，不用令牌里的旧快照
func (s *AuthService) ResolveIdentity(userId string) (access.Identity, error) {
	user, err := s.userRepo.GetUserByUserId(userId)
	if err != nil {
		return access.Identity{}, fmt.Errorf("query user failed: %w", err)
	}
	role, err := access.ParseRole(user.Role)
	if err != nil {
		return access.Identity{}, err
	}
	identity := access.Identity{UserId: user.UserId, Role: role}
	if role == access.RoleCompany {
		identity.CompanyId = user.CompanyId
	}
	return identity, nil
}
