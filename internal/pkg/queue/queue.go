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

package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/go-vantage/vantage/pkg/log"
)

// TaskQueue 基于 asynq 的通知投递队列
type TaskQueue struct {
	client   *asynq.Client
	server   *asynq.Server
	mux      *asynq.ServeMux
	config   *Config
	handlers map[string]TaskHandler
	redisOpt asynq.RedisConnOpt
}

// Config queue 配置
type Config struct {
	RedisClient     redis.UniversalClient // 复用已有的 Redis 客户端
	Concurrency     int                   // 并发处理数
	StrictPriority  bool                  // 是否严格优先级
	Queues          map[string]int        // 队列名 -> 优先级权重
	DefaultQueue    string                // 默认队列名称
	LogLevel        string                // debug, info, warn, error
	ShutdownTimeout int                   // 关闭超时时间（秒）
}

// NotifyPayload 通知投递任务负载
type NotifyPayload struct {
	NotificationId string `json:"notification_id"`
	RecipientId    string `json:"recipient_id"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	Type           string `json:"type"`
	WebhookUrl     string `json:"webhook_url,omitempty"` // 企业外呼地址，可为空
	RetryCount     int    `json:"retry_count"`
	Timeout        int    `json:"timeout"` // 单位：秒
}

// TaskHandler 任务处理器接口
type TaskHandler interface {
	HandleTask(ctx context.Context, payload *NotifyPayload) error
}

// TaskHandlerFunc 任务处理器函数类型
type TaskHandlerFunc func(ctx context.Context, payload *NotifyPayload) error

func (f TaskHandlerFunc) HandleTask(ctx context.Context, payload *NotifyPayload) error {
	return f(ctx, payload)
}

// 任务类型常量
const (
	TaskTypeNotifyDeliver = "notification:deliver" // 通知投递
)

// 队列名称常量
const (
	Critical = "critical" // 关键队列（优先级最高）
	Default  = "default"  // 默认队列
	Low      = "low"      // 低优先级队列
)

func defaultQueues() map[string]int {
	return map[string]int{
		Critical: 6,
		Default:  3,
		Low:      1,
	}
}

// NewTaskQueue 创建通知投递队列
func NewTaskQueue(cfg *Config) (*TaskQueue, error) {
	if cfg == nil {
		return nil, fmt.Errorf("queue config is required")
	}
	if cfg.RedisClient == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	redisOpt := &redisConnOptWrapper{client: cfg.RedisClient}

	client := asynq.NewClient(redisOpt)

	queues := cfg.Queues
	if len(queues) == 0 {
		queues = defaultQueues()
	}

	var logLevel asynq.LogLevel
	if cfg.LogLevel != "" {
		if err := logLevel.Set(cfg.LogLevel); err != nil {
			log.Warnw("invalid log level, using default info", "logLevel", cfg.LogLevel, "error", err)
			logLevel = asynq.InfoLevel
		}
	} else {
		logLevel = asynq.InfoLevel
	}

	shutdownTimeout := 10 * time.Second
	if cfg.ShutdownTimeout > 0 {
		shutdownTimeout = time.Duration(cfg.ShutdownTimeout) * time.Second
	}

	serverConfig := asynq.Config{
		Concurrency:     cfg.Concurrency,
		StrictPriority:  cfg.StrictPriority,
		Queues:          queues,
		Logger:          &asynqLoggerAdapter{},
		LogLevel:        logLevel,
		RetryDelayFunc:  asynq.DefaultRetryDelayFunc,
		ShutdownTimeout: shutdownTimeout,
	}

	server := asynq.NewServer(redisOpt, serverConfig)
	mux := asynq.NewServeMux()

	q := &TaskQueue{
		client:   client,
		server:   server,
		mux:      mux,
		config:   cfg,
		handlers: make(map[string]TaskHandler),
		redisOpt: redisOpt,
	}

	log.Infow("asynq task queue created",
		"concurrency", cfg.Concurrency,
		"queues", queues,
	)

	return q, nil
}

// RegisterHandler 注册任务处理器
func (q *TaskQueue) RegisterHandler(taskType string, handler TaskHandler) {
	q.handlers[taskType] = handler

	q.mux.HandleFunc(taskType, func(ctx context.Context, t *asynq.Task) error {
		var payload NotifyPayload
		if err := sonic.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("unmarshal notify payload: %w", err)
		}

		log.Infow("processing task",
			"task_type", taskType,
			"notification_id", payload.NotificationId,
			"recipient_id", payload.RecipientId,
		)

		return handler.HandleTask(ctx, &payload)
	})

	log.Infow("task handler registered", "task_type", taskType)
}

// RegisterHandlerFunc 注册任务处理器函数
func (q *TaskQueue) RegisterHandlerFunc(taskType string, handlerFunc TaskHandlerFunc) {
	q.RegisterHandler(taskType, handlerFunc)
}

// Enqueue 入队通知投递任务
// 投递失败不影响业务写入，由 asynq 按重试策略兜底
func (q *TaskQueue) Enqueue(payload *NotifyPayload, queueName string) error {
	data, err := sonic.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal notify payload: %w", err)
	}

	if queueName == "" {
		queueName = q.config.DefaultQueue
		if queueName == "" {
			queueName = Default
		}
	}

	task := asynq.NewTask(TaskTypeNotifyDeliver, data)

	opts := []asynq.Option{
		asynq.Queue(queueName),
		asynq.MaxRetry(payload.RetryCount),
	}
	if payload.Timeout > 0 {
		opts = append(opts, asynq.Timeout(time.Duration(payload.Timeout)*time.Second))
	}

	info, err := q.client.Enqueue(task, opts...)
	if err != nil {
		return fmt.Errorf("enqueue task: %w", err)
	}

	log.Debugw("task enqueued",
		"task_id", info.ID,
		"queue", info.Queue,
		"notification_id", payload.NotificationId,
	)
	return nil
}

// Start 启动队列服务器，非阻塞
func (q *TaskQueue) Start() error {
	log.Info("starting task queue server")
	return q.server.Start(q.mux)
}

// Run 启动队列服务器并阻塞等待退出信号
func (q *TaskQueue) Run() error {
	log.Info("running task queue server")
	return q.server.Run(q.mux)
}

// Shutdown 关闭队列服务器与客户端
func (q *TaskQueue) Shutdown() {
	log.Info("shutting down task queue server")
	q.server.Shutdown()
	if err := q.client.Close(); err != nil {
		log.Errorw("failed to close asynq client", "error", err)
	}
}

// GetRedisConnOpt 获取 Redis 连接选项（用于创建 Inspector）
func (q *TaskQueue) GetRedisConnOpt() asynq.RedisConnOpt {
	return q.redisOpt
}

// redisConnOptWrapper 让 asynq 复用外部 Redis 客户端
type redisConnOptWrapper struct {
	client redis.UniversalClient
}

// MakeRedisClient 实现 RedisConnOpt 接口
func (r *redisConnOptWrapper) MakeRedisClient() interface{} {
	return r.client
}
