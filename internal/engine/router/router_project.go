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
 * @time: 2025/3/16 11:02
 * @file: router_project.go
 * @description: project router
 */

func (rt *Router) projectRouter(r fiber.Router, auth fiber.Handler) {
	projectGroup := r.Group("/project", auth)
	{
		projectGroup.Post("/add", rt.addProject)
		projectGroup.Get("/list", rt.listProjects)
		projectGroup.Get("/:projectId", rt.getProject)
		projectGroup.Post("/:projectId/revise", rt.updateProject)
		projectGroup.Post("/:projectId/moveStatus", rt.moveProjectStatus)
		projectGroup.Get("/:projectId/nextStatuses", rt.nextProjectStatuses)
		projectGroup.Post("/:projectId/delete", rt.deleteProject)
	}
}

func (rt *Router) addProject(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	var req model.CreateProjectReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}
	if err := validate.Struct(&req); err != nil {
		return http.WithRepErrMsg(c, http.BadRequest.Code, err.Error(), c.Path())
	}

	project, err := rt.projectService.CreateProject(actor, &req)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, project)
	return nil
}

func (rt *Router) getProject(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	projectId := c.Params("projectId")
	if projectId == "" {
		return http.WithRepErrMsg(c, http.ProjectIdIsEmpty.Code, http.ProjectIdIsEmpty.Msg, c.Path())
	}

	project, err := rt.projectService.GetProject(actor, projectId)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, project)
	return nil
}

func (rt *Router) listProjects(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	var query model.ProjectQueryReq
	if err := c.QueryParser(&query); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}

	projects, err := rt.projectService.ListProjects(actor, &query)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, projects)
	return nil
}

func (rt *Router) updateProject(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	projectId := c.Params("projectId")
	if projectId == "" {
		return http.WithRepErrMsg(c, http.ProjectIdIsEmpty.Code, http.ProjectIdIsEmpty.Msg, c.Path())
	}

	var req model.UpdateProjectReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}
	if err := validate.Struct(&req); err != nil {
		return http.WithRepErrMsg(c, http.BadRequest.Code, err.Error(), c.Path())
	}

	project, err := rt.projectService.UpdateProject(actor, projectId, &req)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, project)
	return nil
}

func (rt *Router) moveProjectStatus(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	projectId := c.Params("projectId")
	if projectId == "" {
		return http.WithRepErrMsg(c, http.ProjectIdIsEmpty.Code, http.ProjectIdIsEmpty.Msg, c.Path())
	}

	var req model.MoveProjectStatusReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}
	if err := validate.Struct(&req); err != nil {
		return http.WithRepErrMsg(c, http.BadRequest.Code, err.Error(), c.Path())
	}

	project, err := rt.projectService.MoveProjectStatus(actor, projectId, &req)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, project)
	return nil
}

func (rt *Router) nextProjectStatuses(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	projectId := c.Params("projectId")
	if projectId == "" {
		return http.WithRepErrMsg(c, http.ProjectIdIsEmpty.Code, http.ProjectIdIsEmpty.Msg, c.Path())
	}

	statuses, err := rt.projectService.NextStatuses(actor, projectId)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, statuses)
	return nil
}

func (rt *Router) deleteProject(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	projectId := c.Params("projectId")
	if projectId == "" {
		return http.WithRepErrMsg(c, http.ProjectIdIsEmpty.Code, http.ProjectIdIsEmpty.Msg, c.Path())
	}

	if err := rt.projectService.DeleteProject(actor, projectId); err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.OPERATION, "")
	return nil
}
