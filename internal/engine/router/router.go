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
	"errors"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/go-vantage/vantage/internal/engine/access"
	"github.com/go-vantage/vantage/internal/engine/service"
	"github.com/go-vantage/vantage/internal/engine/tool"
	"github.com/go-vantage/vantage/pkg/ctx"
	httpx "github.com/go-vantage/vantage/pkg/http"
	"github.com/go-vantage/vantage/pkg/http/middleware"
	"github.com/go-vantage/vantage/pkg/version"
)

/**
 * @time: 2025/3/16 10:02
 * @file: router.go
 * @description: setup router
 */

type Router struct {
	Http *httpx.Http
	Ctx  *ctx.Context

	authService         *service.AuthService
	companyService      *service.CompanyService
	projectService      *service.ProjectService
	issueService        *service.IssueService
	memberService       *service.TeamMemberService
	notificationService *service.NotificationService
	billingService      *service.BillingService
}

func NewRouter(
	httpConf *httpx.Http,
	appCtx *ctx.Context,
	authService *service.AuthService,
	companyService *service.CompanyService,
	projectService *service.ProjectService,
	issueService *service.IssueService,
	memberService *service.TeamMemberService,
	notificationService *service.NotificationService,
	billingService *service.BillingService,
) *Router {
	return &Router{
		Http:                httpConf,
		Ctx:                 appCtx,
		authService:         authService,
		companyService:      companyService,
		projectService:      projectService,
		issueService:        issueService,
		memberService:       memberService,
		notificationService: notificationService,
		billingService:      billingService,
	}
}

func (rt *Router) Router() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Vantage",
		ReadTimeout:  time.Duration(rt.Http.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(rt.Http.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(rt.Http.IdleTimeout) * time.Second,
	})

	app.Use(middleware.ExceptionMiddleware)
	app.Use(middleware.CorsMiddleware())
	if rt.Http.AccessLog {
		app.Use(middleware.AccessLogMiddleware(rt.Http))
	}
	app.Use(middleware.UnifiedResponseMiddleware())

	if rt.Http.PProf {
		app.Use(pprof.New())
	}
	if rt.Http.ExposeMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})

	auth := middleware.AuthorizationMiddleware(rt.Http.Auth.SecretKey, rt.Ctx.GetRedis())

	api := app.Group(rt.Http.ContextPath)
	{
		rt.authRouter(api, auth)
		rt.companyRouter(api, auth)
		rt.projectRouter(api, auth)
		rt.issueRouter(api, auth)
		rt.memberRouter(api, auth)
		rt.notificationRouter(api, auth)
		rt.billingRouter(api, auth)
	}

	// 必须在所有路由注册之后
	app.Use(func(c *fiber.Ctx) error {
		return httpx.WithRepErrMsg(c, fiber.StatusNotFound, "request path not found", c.Path())
	})

	return app
}

// actor 从认证中间件写入的 claims 取 userId，再查库拿最新角色与企业归属
func (rt *Router) actor(c *fiber.Ctx) (access.Identity, error) {
	claims, err := tool.ClaimsFromCtx(c)
	if err != nil {
		return access.Identity{}, err
	}
	return rt.authService.ResolveIdentity(claims.UserId)
}

// repErr 业务错误到响应码的映射
func repErr(c *fiber.Ctx, err error) error {
	var denied *access.DeniedError
	if errors.As(err, &denied) {
		switch denied.Decision.Reason {
		case access.ReasonRoleForbidden:
			return httpx.WithRepErrMsg(c, httpx.PermissionDenied.Code, err.Error(), c.Path())
		case access.ReasonUnknownEntity:
			return httpx.WithRepErrMsg(c, httpx.NotFound.Code, err.Error(), c.Path())
		default:
			return httpx.WithRepErrMsg(c, httpx.Forbidden.Code, err.Error(), c.Path())
		}
	}

	var transition *access.TransitionError
	if errors.As(err, &transition) {
		return httpx.WithRepErrMsg(c, httpx.IllegalStatusTransition.Code, err.Error(), c.Path())
	}

	var invalidRole *access.InvalidRoleError
	if errors.As(err, &invalidRole) {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, err.Error(), c.Path())
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httpx.WithRepErrMsg(c, httpx.NotFound.Code, httpx.NotFound.Msg, c.Path())
	}

	return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
}
