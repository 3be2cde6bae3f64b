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

package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

var (
	allowMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	// Authorization 携带 Bearer 令牌，Stripe-Signature 仅回调路由用
	allowHeaders  = "Origin, X-Requested-With, Content-Type, Accept, Authorization, Stripe-Signature"
	exposeHeaders = "Content-Length, Content-Type"
)

// CorsMiddleware 跨域中间件
// 鉴权走 Authorization 头而非 cookie，不需要 credentials
func CorsMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  allowMethods,
		AllowHeaders:  allowHeaders,
		ExposeHeaders: exposeHeaders,
	})
}
