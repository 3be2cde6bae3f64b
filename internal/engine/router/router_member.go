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
	"github.com/go-vantage/vantage/pkg/http"
	"github.com/go-vantage/vantage/pkg/validate"
)

/**
 * @time: 2025/3/16 13:27
 * @file: router_member.go
 * @description: team member router
 */

func (rt *Router) memberRouter(r fiber.Router, auth fiber.Handler) {
	memberGroup := r.Group("/member", auth)
	{
		memberGroup.Post("/add", rt.addMember)
		memberGroup.Get("/list", rt.listMembers)
		memberGroup.Get("/:memberId", rt.getMember)
		memberGroup.Post("/:memberId/revise", rt.updateMember)
		memberGroup.Post("/:memberId/delete", rt.deleteMember)
	}
}

func (rt *Router) addMember(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	var req model.CreateMemberReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}
	if err := validate.Struct(&req); err != nil {
		return http.WithRepErrMsg(c, http.BadRequest.Code, err.Error(), c.Path())
	}

	member, err := rt.memberService.CreateMember(actor, &req)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, member)
	return nil
}

func (rt *Router) getMember(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	memberId := c.Params("memberId")
	if memberId == "" {
		return http.WithRepErrMsg(c, http.MemberIdIsEmpty.Code, http.MemberIdIsEmpty.Msg, c.Path())
	}

	member, err := rt.memberService.GetMember(actor, memberId)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, member)
	return nil
}

func (rt *Router) listMembers(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	members, err := rt.memberService.ListMembers(actor)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, members)
	return nil
}

func (rt *Router) updateMember(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	memberId := c.Params("memberId")
	if memberId == "" {
		return http.WithRepErrMsg(c, http.MemberIdIsEmpty.Code, http.MemberIdIsEmpty.Msg, c.Path())
	}

	var req model.UpdateMemberReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}
	if err := validate.Struct(&req); err != nil {
		return http.WithRepErrMsg(c, http.BadRequest.Code, err.Error(), c.Path())
	}

	member, err := rt.memberService.UpdateMember(actor, memberId, &req)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, member)
	return nil
}

func (rt *Router) deleteMember(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	memberId := c.Params("memberId")
	if memberId == "" {
		return http.WithRepErrMsg(c, http.MemberIdIsEmpty.Code, http.MemberIdIsEmpty.Msg, c.Path())
	}

	if err := rt.memberService.DeleteMember(actor, memberId); err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.OPERATION, "")
	return nil
}
