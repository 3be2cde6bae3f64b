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

package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-vantage/vantage/internal/engine/consts"
	"github.com/go-vantage/vantage/internal/engine/model"
	"github.com/go-vantage/vantage/internal/engine/tool"
	"github.com/go-vantage/vantage/pkg/http"
	"github.com/go-vantage/vantage/pkg/validate"
)

/**
 * @time: 2025/3/16 10:15
 * @file: router_auth.go
 * @description: user auth router
 */

func (rt *Router) authRouter(r fiber.Router, auth fiber.Handler) {
	userGroup := r.Group("/user")
	{
		userGroup.Post("/register", rt.register)
		userGroup.Post("/login", rt.login)

		userGroup.Post("/logout", auth, rt.logout)
		userGroup.Get("/refresh", auth, rt.refresh)
		userGroup.Post("/invite", auth, rt.inviteClient)
		userGroup.Get("/getUserInfo", auth, rt.getUserInfo)
		userGroup.Post("/revise", auth, rt.updateUser)
	}
}

func (rt *Router) register(c *fiber.Ctx) error {
	var req model.RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}
	if err := validate.Struct(&req); err != nil {
		return http.WithRepErrMsg(c, http.BadRequest.Code, err.Error(), c.Path())
	}

	if err := rt.authService.Register(&req); err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.OPERATION, "")
	return nil
}

func (rt *Router) login(c *fiber.Ctx) error {
	var req model.LoginReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}
	if req.Username == "" || req.Password == "" {
		return http.WithRepErrMsg(c, http.UsernameArePasswordIsRequired.Code, http.UsernameArePasswordIsRequired.Msg, c.Path())
	}

	resp, err := rt.authService.Login(&req)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, resp)
	return nil
}

func (rt *Router) logout(c *fiber.Ctx) error {
	claims, err := tool.ClaimsFromCtx(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	if err := rt.authService.Logout(claims.UserId); err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.OPERATION, "")
	return nil
}

func (rt *Router) refresh(c *fiber.Ctx) error {
	claims, err := tool.ClaimsFromCtx(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}
	rToken := c.Query("refreshToken")
	if rToken == "" {
		return http.WithRepErrMsg(c, http.TokenBeEmpty.Code, http.TokenBeEmpty.Msg, c.Path())
	}

	token, err := rt.authService.Refresh(claims.UserId, rToken)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, token)
	return nil
}

func (rt *Router) inviteClient(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	var req model.InviteClientReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}
	if err := validate.Struct(&req); err != nil {
		return http.WithRepErrMsg(c, http.BadRequest.Code, err.Error(), c.Path())
	}

	user, err := rt.authService.InviteClient(actor, &req)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, user)
	return nil
}

func (rt *Router) getUserInfo(c *fiber.Ctx) error {
	claims, err := tool.ClaimsFromCtx(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	info, err := rt.authService.GetUserInfo(claims.UserId)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, info)
	return nil
}

func (rt *Router) updateUser(c *fiber.Ctx) error {
	claims, err := tool.ClaimsFromCtx(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	var req model.UpdateUserReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}
	if err := validate.Struct(&req); err != nil {
		return http.WithRepErrMsg(c, http.BadRequest.Code, err.Error(), c.Path())
	}

	if err := rt.authService.UpdateUser(claims.UserId, &req); err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.OPERATION, "")
	return nil
}
