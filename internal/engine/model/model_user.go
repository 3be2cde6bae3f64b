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

package model

// User 用户表（平台账号：管理员、企业账号、客户账号）
type User struct {
	BaseModel
	UserId    string `gorm:"column:user_id;not null;uniqueIndex" json:"userId"`
	Username  string `gorm:"column:username;not null;uniqueIndex" json:"username"`
	Password  string `gorm:"column:password;not null" json:"-"` // bcrypt 哈希
	Email     string `gorm:"column:email;uniqueIndex" json:"email"`
	Phone     string `gorm:"column:phone" json:"phone"`
	Avatar    string `gorm:"column:avatar" json:"avatar"`
	Role      string `gorm:"column:role;not null;type:varchar(32);index" json:"role"`  // admin/company/client
	CompanyId string `gorm:"column:company_id;index" json:"companyId"`                 // company 角色必填，client/admin 为空
	IsEnabled int    `gorm:"column:is_enabled;not null;default:1" json:"isEnabled"`    // 0: disabled, 1: enabled
	LastLogin int64  `gorm:"column:last_login" json:"lastLogin"`
}

func (User) TableName() string {
	return "t_user"
}

// RegisterReq 企业注册请求，注册即创建企业与企业账号
type RegisterReq struct {
	Username    string `json:"username" validate:"required,min=3,max=64"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	Email       string `json:"email" validate:"required,email"`
	CompanyName string `json:"companyName" validate:"required,min=2,max=128"`
}

// LoginReq 登录请求
type LoginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// InviteClientReq 企业邀请客户账号
type InviteClientReq struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Email    string `json:"email" validate:"required,email"`
}

// UpdateUserReq 更新用户资料
type UpdateUserReq struct {
	Email  *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone  *string `json:"phone,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// UserInfo 登录后返回的用户信息
type UserInfo struct {
	UserId    string `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
	Role      string `json:"role"`
	CompanyId string `json:"companyId,omitempty"`
}
