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

package http

import (
	"github.com/gofiber/fiber/v2"
)

type ResponseErr struct {
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
	ErrMsg any    `json:"err,omitempty"`
	Path   string `json:"path,omitempty"`
}

// WithRepErr 返回错误信息，包含错误详情
func WithRepErr(c *fiber.Ctx, code int, errMsg string, path string) error {
	return c.JSON(ResponseErr{
		Code:   code,
		Msg:    Failed.Msg,
		ErrMsg: errMsg,
		Path:   path,
	})
}

// WithRepErrMsg 返回错误信息，仅包含错误码和消息
func WithRepErrMsg(c *fiber.Ctx, code int, msg string, path string) error {
	return c.JSON(ResponseErr{
		Code: code,
		Msg:  msg,
		Path: path,
	})
}
