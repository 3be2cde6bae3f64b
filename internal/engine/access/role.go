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

package access

/**
 * @time: 2025/3/12 21:40
 * @file: role.go
 * @description: role registry, the closed role set and its capability mapping
 */

// Role 平台角色，封闭集合
type Role string

const (
	RoleAdmin   Role = "admin"   // 平台管理员，跨企业
	RoleCompany Role = "company" // 企业账号，限本企业范围
	RoleClient  Role = "client"  // 客户账号，限关联项目范围
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCompany, RoleClient:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole converts a raw role string into a Role.
// Unknown strings fail with ErrInvalidRole.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", &InvalidRoleError{Role: s}
	}
	return r, nil
}

// Capability 原子权限令牌
type Capability string

const (
	CapRead       Capability = "read"
	CapWrite      Capability = "write"
	CapDelete     Capability = "delete"
	CapManage     Capability = "manage"      // 跨企业管理（仅管理员）
	CapManageTeam Capability = "manage-team" // 团队成员管理
)

// CapabilitySet is the set of capabilities a role grants.
type CapabilitySet map[Capability]struct{}

// Has reports whether the set contains the capability.
func (cs CapabilitySet) Has(c Capability) bool {
	_, ok := cs[c]
	return ok
}

func newCapabilitySet(caps ...Capability) CapabilitySet {
	cs := make(CapabilitySet, len(caps))
	for _, c := range caps {
		cs[c] = struct{}{}
	}
	return cs
}

// 静态角色权限表，不支持运行时授权
var rolePermissions = map[Role]CapabilitySet{
	RoleAdmin:   newCapabilitySet(CapRead, CapWrite, CapDelete, CapManage),
	RoleCompany: newCapabilitySet(CapRead, CapWrite, CapManageTeam),
	RoleClient:  newCapabilitySet(CapRead),
}

// PermissionsFor returns the capability set granted by the role.
// The mapping is fixed; changing roles always re-derives from it.
func PermissionsFor(role Role) (CapabilitySet, error) {
	cs, ok := rolePermissions[role]
	if !ok {
		return nil, &InvalidRoleError{Role: string(role)}
	}
	return cs, nil
}

// Identity 请求发起者的身份快照
// CompanyId 仅企业账号持有，客户账号通过 Project.ClientId 关联项目
type Identity struct {
	UserId    string `json:"userId"`
	Role      Role   `json:"role"`
	CompanyId string `json:"companyId,omitempty"`
}

// IsAdmin reports whether the identity holds the admin role.
func (id Identity) IsAdmin() bool {
	return id.Role == RoleAdmin
}
