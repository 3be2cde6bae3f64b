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

import "fmt"

// Reason 拒绝原因，永远不返回裸布尔
type Reason string

const (
	// ReasonOutOfScope 实体不在请求者的角色范围内
	ReasonOutOfScope Reason = "OutOfScope"
	// ReasonRoleForbidden 角色本身没有该能力，与范围无关
	ReasonRoleForbidden Reason = "RoleForbidden"
	// ReasonUnknownEntity 引用的实体在给定集合中不存在
	ReasonUnknownEntity Reason = "UnknownEntity"
)

// Decision 授权判定结果
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  Reason `json:"reason,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Allow returns a positive decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a negative decision with a reason and a human readable detail.
func Deny(reason Reason, format string, args ...any) Decision {
	return Decision{
		Allowed: false,
		Reason:  reason,
		Detail:  fmt.Sprintf(format, args...),
	}
}

// String renders the decision as a single sentence for user facing errors.
func (d Decision) String() string {
	if d.Allowed {
		return "allowed"
	}
	return fmt.Sprintf("denied (%s): %s", d.Reason, d.Detail)
}

// Err converts a denial into an error, nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &DeniedError{Decision: d}
}

// DeniedError 把拒绝结果作为 error 向上传递，调用方据此渲染错误
type DeniedError struct {
	Decision Decision
}

func (e *DeniedError) Error() string {
	return e.Decision.String()
}

// InvalidRoleError 未知角色
type InvalidRoleError struct {
	Role string
}

func (e *InvalidRoleError) Error() string {
	return fmt.Sprintf("invalid role: %q", e.Role)
}

// TransitionError 非法状态转移，带上当前状态与目标状态
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal status transition: %q -> %q", e.From, e.To)
}
