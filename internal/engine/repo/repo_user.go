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
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/go-vantage/vantage/internal/engine/consts"
	"github.com/go-vantage/vantage/internal/engine/model"
	"github.com/go-vantage/vantage/pkg/database"
)

type IUserRepository interface {
	AddUser(u *model.User) error
	GetUserByUserId(userId string) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	UpdateUser(userId string, u *model.User) error
	UpdateLastLogin(userId string) error
	ResetPassword(userId, passwordHash string) error
	ListUsersByUserIds(userIds []string) ([]model.User, error)

	SetToken(userId, refreshToken string, expire time.Duration) error
	GetToken(userId string) (string, error)
	DelToken(userId string) error
}

type UserRepo struct {
	db        database.DB
	rdb       *redis.Client
	userModel *model.User
}

func NewUserRepo(db database.DB, rdb *redis.Client) IUserRepository {
	return &UserRepo{
		db:        db,
		rdb:       rdb,
		userModel: &model.User{},
	}
}

func (ur *UserRepo) AddUser(u *model.User) error {
	return ur.db.DB().Create(u).Error
}

func (ur *UserRepo) GetUserByUserId(userId string) (*model.User, error) {
	u := &model.User{}
	err := ur.db.DB().Table(ur.userModel.TableName()).
		Where("user_id = ?", userId).First(u).Error
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (ur *UserRepo) GetUserByEmail(email string) (*model.User, error) {
	u := &model.User{}
	err := ur.db.DB().Table(ur.userModel.TableName()).
		Where("email = ?", email).First(u).Error
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (ur *UserRepo) GetUserByUsername(username string) (*model.User, error) {
	u := &model.User{}
	err := ur.db.DB().Table(ur.userModel.TableName()).
		Where("username = ?", username).First(u).Error
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateUser 更新用户信息（user_id, username, password, role, created_at 不可更新）
func (ur *UserRepo) UpdateUser(userId string, u *model.User) error {
	return ur.db.DB().Table(ur.userModel.TableName()).
		Where("user_id = ?", userId).
		Omit("user_id", "username", "password", "role", "created_at").
		Updates(u).Error
}

func (ur *UserRepo) UpdateLastLogin(userId string) error {
	now := time.Now()
	return ur.db.DB().Table(ur.userModel.TableName()).
		Where("user_id = ?", userId).
		Update("last_login", &now).Error
}

func (ur *UserRepo) ResetPassword(userId, passwordHash string) error {
	return ur.db.DB().Table(ur.userModel.TableName()).
		Where("user_id = ?", userId).
		Update("password", passwordHash).Error
}

// ListUsersByUserIds 批量查询用户，客户列表由项目的 client_id 派生后查询
func (ur *UserRepo) ListUsersByUserIds(userIds []string) ([]model.User, error) {
	if len(userIds) == 0 {
		return nil, nil
	}
	var users []model.User
	err := ur.db.DB().Table(ur.userModel.TableName()).
		Where("user_id IN ?", userIds).
		Order("id ASC").Find(&users).Error
	return users, err
}

// SetToken 登录成功后写入会话，value 为 refresh token
func (ur *UserRepo) SetToken(userId, refreshToken string, expire time.Duration) error {
	key := consts.UserSessionKey + userId
	return ur.rdb.Set(context.Background(), key, refreshToken, expire).Err()
}

func (ur *UserRepo) GetToken(userId string) (string, error) {
	key := consts.UserSessionKey + userId
	return ur.rdb.Get(context.Background(), key).Result()
}

func (ur *UserRepo) DelToken(userId string) error {
	key := consts.UserSessionKey + userId
	return ur.rdb.Del(context.Background(), key).Err()
}
