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

package bootstrap

import (
	"context"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/go-vantage/vantage/internal/engine/conf"
	"github.com/go-vantage/vantage/internal/pkg/queue"
	"github.com/go-vantage/vantage/pkg/cache"
	"github.com/go-vantage/vantage/pkg/ctx"
	"github.com/go-vantage/vantage/pkg/database"
	"github.com/go-vantage/vantage/pkg/log"
)

// ProviderSet 提供基础设施相关的依赖
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideDB,
	ProvideGormDB,
	ProvideRedis,
	ProvideCtx,
	ProvideLocalCache,
	ProvideTaskQueue,
	NewApp,
)

// ProvideLogger 初始化全局日志并返回 zap 实例
func ProvideLogger(logConf *log.Conf) (*zap.Logger, error) {
	return log.NewLog(logConf)
}

// ProvideDB 连接 MySQL 并迁移注册过的表
func ProvideDB(dbConf database.Database, logger *zap.Logger) (*gorm.DB, error) {
	db, err := database.NewDatabase(dbConf, logger)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ProvideGormDB(db *gorm.DB) database.DB {
	return database.NewGormDB(db)
}

func ProvideRedis(redisConf cache.Redis) (*redis.Client, error) {
	return cache.NewRedis(redisConf)
}

func ProvideCtx(db *gorm.DB, rdb *redis.Client, logger *zap.Logger) *ctx.Context {
	return ctx.NewContext(context.Background(), db, rdb, logger.Sugar())
}

func ProvideLocalCache(localConf cache.LocalCacheConfig) *cache.LocalCache {
	return cache.NewLocalCache(localConf)
}

// ProvideTaskQueue 通知投递队列，复用业务 Redis 连接
func ProvideTaskQueue(appConf *conf.AppConfig, rdb *redis.Client) (*queue.TaskQueue, error) {
	return queue.NewTaskQueue(&queue.Config{
		RedisClient:     rdb,
		Concurrency:     appConf.Queue.Concurrency,
		StrictPriority:  appConf.Queue.StrictPriority,
		DefaultQueue:    appConf.Queue.DefaultQueue,
		LogLevel:        appConf.Queue.LogLevel,
		ShutdownTimeout: appConf.Queue.ShutdownTimeout,
	})
}
