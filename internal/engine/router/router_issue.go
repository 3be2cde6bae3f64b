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
 * @time: 2025/3/16 11:40
 * @file: router_issue.go
 * @description: issue router
 */

func (rt *Router) issueRouter(r fiber.Router, auth fiber.Handler) {
	issueGroup := r.Group("/issue", auth)
	{
		issueGroup.Post("/add", rt.addIssue)
		issueGroup.Get("/list", rt.listIssues)
		issueGroup.Get("/:issueId", rt.getIssue)
		issueGroup.Post("/:issueId/revise", rt.updateIssue)
		issueGroup.Post("/:issueId/moveStatus", rt.moveIssueStatus)
		issueGroup.Post("/:issueId/comment", rt.addComment)
		issueGroup.Get("/:issueId/comments", rt.listComments)
	}
}

func (rt *Router) addIssue(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	var req model.CreateIssueReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}
	if err := validate.Struct(&req); err != nil {
		return http.WithRepErrMsg(c, http.BadRequest.Code, err.Error(), c.Path())
	}

	issue, err := rt.issueService.CreateIssue(actor, &req)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, issue)
	return nil
}

func (rt *Router) getIssue(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	issueId := c.Params("issueId")
	if issueId == "" {
		return http.WithRepErrMsg(c, http.IssueIdIsEmpty.Code, http.IssueIdIsEmpty.Msg, c.Path())
	}

	issue, err := rt.issueService.GetIssue(actor, issueId)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, issue)
	return nil
}

func (rt *Router) listIssues(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	var query model.IssueQueryReq
	if err := c.QueryParser(&query); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}

	issues, err := rt.issueService.ListIssues(actor, &query)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, issues)
	return nil
}

func (rt *Router) updateIssue(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	issueId := c.Params("issueId")
	if issueId == "" {
		return http.WithRepErrMsg(c, http.IssueIdIsEmpty.Code, http.IssueIdIsEmpty.Msg, c.Path())
	}

	var req model.UpdateIssueReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}
	if err := validate.Struct(&req); err != nil {
		return http.WithRepErrMsg(c, http.BadRequest.Code, err.Error(), c.Path())
	}

	issue, err := rt.issueService.UpdateIssue(actor, issueId, &req)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, issue)
	return nil
}

func (rt *Router) moveIssueStatus(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	issueId := c.Params("issueId")
	if issueId == "" {
		return http.WithRepErrMsg(c, http.IssueIdIsEmpty.Code, http.IssueIdIsEmpty.Msg, c.Path())
	}

	var req model.MoveIssueStatusReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}
	if err := validate.Struct(&req); err != nil {
		return http.WithRepErrMsg(c, http.BadRequest.Code, err.Error(), c.Path())
	}

	issue, err := rt.issueService.MoveIssueStatus(actor, issueId, &req)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, issue)
	return nil
}

func (rt *Router) addComment(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	issueId := c.Params("issueId")
	if issueId == "" {
		return http.WithRepErrMsg(c, http.IssueIdIsEmpty.Code, http.IssueIdIsEmpty.Msg, c.Path())
	}

	var req model.AddCommentReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}
	if err := validate.Struct(&req); err != nil {
		return http.WithRepErrMsg(c, http.BadRequest.Code, err.Error(), c.Path())
	}

	comment, err := rt.issueService.AddComment(actor, issueId, &req)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, comment)
	return nil
}

func (rt *Router) listComments(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	issueId := c.Params("issueId")
	if issueId == "" {
		return http.WithRepErrMsg(c, http.IssueIdIsEmpty.Code, http.IssueIdIsEmpty.Msg, c.Path())
	}

	comments, err := rt.issueService.ListComments(actor, issueId)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, comments)
	return nil
}
