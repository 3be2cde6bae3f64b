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
 * @time: 2025/3/16 14:05
 * @file: router_company.go
 * @description: company router
 */

func (rt *Router) companyRouter(r fiber.Router, auth fiber.Handler) {
	companyGroup := r.Group("/company", auth)
	{
		companyGroup.Get("/list", rt.listCompanies)
		companyGroup.Get("/:companyId", rt.getCompany)
		companyGroup.Post("/:companyId/revise", rt.updateCompany)
		companyGroup.Post("/:companyId/enable", rt.setCompanyEnabled)
	}
}

func (rt *Router) getCompany(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	companyId := c.Params("companyId")
	if companyId == "" {
		return http.WithRepErrMsg(c, http.CompanyIdIsEmpty.Code, http.CompanyIdIsEmpty.Msg, c.Path())
	}

	company, err := rt.companyService.GetCompany(actor, companyId)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, company)
	return nil
}

func (rt *Router) listCompanies(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	var query model.CompanyQueryReq
	if err := c.QueryParser(&query); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}

	companies, total, err := rt.companyService.ListCompanies(actor, &query)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, fiber.Map{"list": companies, "total": total})
	return nil
}

func (rt *Router) updateCompany(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	companyId := c.Params("companyId")
	if companyId == "" {
		return http.WithRepErrMsg(c, http.CompanyIdIsEmpty.Code, http.CompanyIdIsEmpty.Msg, c.Path())
	}

	var req model.UpdateCompanyReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}
	if err := validate.Struct(&req); err != nil {
		return http.WithRepErrMsg(c, http.BadRequest.Code, err.Error(), c.Path())
	}

	company, err := rt.companyService.UpdateCompany(actor, companyId, &req)
	if err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.DETAIL, company)
	return nil
}

func (rt *Router) setCompanyEnabled(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	companyId := c.Params("companyId")
	if companyId == "" {
		return http.WithRepErrMsg(c, http.CompanyIdIsEmpty.Code, http.CompanyIdIsEmpty.Msg, c.Path())
	}

	enabled := c.QueryInt("enabled", 1)
	if err := rt.companyService.SetCompanyEnabled(actor, companyId, enabled); err != nil {
		return repErr(c, err)
	}

	c.Locals(consts.OPERATION, "")
	return nil
}
