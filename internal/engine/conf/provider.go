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

package conf

import (
	"github.com/google/wire"

	"github.com/go-vantage/vantage/internal/engine/service"
	"github.com/go-vantage/vantage/pkg/cache"
	"github.com/go-vantage/vantage/pkg/database"
	"github.com/go-vantage/vantage/pkg/http"
	"github.com/go-vantage/vantage/pkg/log"
)

// ProviderSet 提供配置层相关的依赖
var ProviderSet = wire.NewSet(
	ProvideConf,
	ProvideHttpConfig,
	ProvideAuthConfig,
	ProvideLogConfig,
	ProvideDatabaseConfig,
	ProvideRedisConfig,
	ProvideLocalCacheConfig,
	ProvideBillingConfig,
)

// ProvideConf 提供应用配置
func ProvideConf(configPath string) *AppConfig {
	return NewConf(configPath)
}

// ProvideHttpConfig 提供 HTTP 配置
func ProvideHttpConfig(appConf *AppConfig) *http.Http {
	return &appConf.Http
}

// ProvideAuthConfig 提供认证配置
func ProvideAuthConfig(appConf *AppConfig) http.Auth {
	return appConf.Http.Auth
}

// ProvideLogConfig 提供日志配置
func ProvideLogConfig(appConf *AppConfig) *log.Conf {
	return &appConf.Log
}

// ProvideDatabaseConfig 提供数据库配置
func ProvideDatabaseConfig(appConf *AppConfig) database.Database {
	return appConf.Database
}

// ProvideRedisConfig 提供 Redis 配置
func ProvideRedisConfig(appConf *AppConfig) cache.Redis {
	return appConf.Redis
}

// ProvideLocalCacheConfig 提供本地缓存配置
func ProvideLocalCacheConfig(appConf *AppConfig) cache.LocalCacheConfig {
	return appConf.LocalCache
}

// ProvideBillingConfig 提供计费配置
func ProvideBillingConfig(appConf *AppConfig) service.Billing {
	return service.Billing{
		SecretKey:     appConf.Billing.SecretKey,
		WebhookSecret: appConf.Billing.WebhookSecret,
		Enabled:       appConf.Billing.Enabled,
	}
}
