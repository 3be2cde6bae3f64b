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
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron"

	"github.com/go-vantage/vantage/internal/engine/conf"
	"github.com/go-vantage/vantage/internal/engine/router"
	"github.com/go-vantage/vantage/internal/engine/service"
	"github.com/go-vantage/vantage/internal/pkg/queue"
	"github.com/go-vantage/vantage/pkg/log"
)

type App struct {
	HttpApp *fiber.App
	Queue   *queue.TaskQueue
	Cron    *cron.Cron
	AppConf *conf.AppConfig
}

// InitAppFunc init app function type
type InitAppFunc func(configPath string) (*App, func(), error)

func NewApp(
	rt *router.Router,
	appConf *conf.AppConfig,
	taskQueue *queue.TaskQueue,
	billingService *service.BillingService,
) (*App, func(), error) {
	httpApp := rt.Router()

	// 订阅过期与账单逾期巡检
	c := cron.New()
	syncSpec := appConf.Billing.SyncCron
	if syncSpec == "" {
		syncSpec = "@daily"
	}
	if err := c.AddFunc(syncSpec, billingService.ExpireOverdueSubscriptions); err != nil {
		return nil, nil, fmt.Errorf("register billing cron failed: %w", err)
	}
	if err := c.AddFunc(syncSpec, billingService.MarkOverdueInvoices); err != nil {
		return nil, nil, fmt.Errorf("register billing cron failed: %w", err)
	}

	app := &App{
		HttpApp: httpApp,
		Queue:   taskQueue,
		Cron:    c,
		AppConf: appConf,
	}

	cleanup := func() {
		if taskQueue != nil {
			taskQueue.Shutdown()
		}
		c.Stop()
	}

	return app, cleanup, nil
}

// Bootstrap init app, return App instance and cleanup function
func Bootstrap(configFile string, initApp InitAppFunc) (*App, func(), error) {
	app, cleanup, err := initApp(configFile)
	if err != nil {
		return nil, nil, err
	}
	return app, cleanup, nil
}

// Run start app and wait for exit signal, then gracefully shutdown
func Run(app *App, cleanup func()) {
	appConf := app.AppConf

	// 通知投递队列
	if err := app.Queue.Start(); err != nil {
		log.Errorf("task queue start failed: %v", err)
	}

	app.Cron.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		addr := fmt.Sprintf("%s:%d", appConf.Http.Host, appConf.Http.Port)
		log.Infow("HTTP listener started", "address", addr)
		if err := app.HttpApp.Listen(addr); err != nil {
			log.Errorw("HTTP listener failed", "address", addr, "error", err)
		}
	}()

	sig := <-quit
	log.Infof("Received signal: %v, shutting down gracefully...", sig)

	shutdownTimeout := time.Duration(appConf.Http.ShutdownTimeout) * time.Second
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := app.HttpApp.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("HTTP server shutdown error: %v", err)
	} else {
		log.Info("HTTP server shut down gracefully")
	}

	cleanup()

	log.Info("Server shutdown complete")
}
