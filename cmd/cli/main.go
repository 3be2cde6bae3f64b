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

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/go-vantage/vantage/internal/engine/conf"
	"github.com/go-vantage/vantage/internal/engine/model"
	"github.com/go-vantage/vantage/internal/engine/repo"
	"github.com/go-vantage/vantage/internal/engine/service"
	"github.com/go-vantage/vantage/pkg/database"
	"github.com/go-vantage/vantage/pkg/id"
	"github.com/go-vantage/vantage/pkg/log"
	"github.com/go-vantage/vantage/pkg/version"
)

/**
 * @time: 2025/3/17 21:14
 * @file: main.go
 * @description: cli program
 */

var configFile string

var rootCmd = &cobra.Command{
	Use:   "vantage-cli",
	Short: "vantage cli is a command line tool",
	Long:  "vantage cli is a command line tool",
	Run: func(cmd *cobra.Command, args []string) {
		err := cmd.Help()
		if err != nil {
			return
		}
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "run database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("migrate failed: %w", err)
		}
		fmt.Println("migration complete")
		return nil
	},
}

var seedPlansCmd = &cobra.Command{
	Use:   "seed-plans",
	Short: "seed default billing plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		gdb := database.NewGormDB(db)
		billingService := service.NewBillingService(repo.NewBillingRepo(gdb), repo.NewCompanyRepo(gdb), service.Billing{})
		if err := billingService.SeedDefaultPlans(); err != nil {
			return err
		}
		fmt.Println("default plans seeded")
		return nil
	},
}

var (
	adminUsername string
	adminPassword string
	adminEmail    string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "create a platform admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminUsername == "" || adminPassword == "" {
			return fmt.Errorf("username and password are required")
		}
		db, err := openDB()
		if err != nil {
			return err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password failed: %w", err)
		}
		userRepo := repo.NewUserRepo(database.NewGormDB(db), nil)
		user := &model.User{
			UserId:    id.GetUUID(),
			Username:  adminUsername,
			Password:  string(hash),
			Email:     adminEmail,
			Role:      "admin",
			IsEnabled: 1,
		}
		if err := userRepo.AddUser(user); err != nil {
			return fmt.Errorf("create admin failed: %w", err)
		}
		fmt.Printf("admin %s created\n", adminUsername)
		return nil
	},
}

func openDB() (*gorm.DB, error) {
	appConf, err := conf.LoadConfigFile(configFile)
	if err != nil {
		return nil, err
	}
	logger, err := log.NewLog(&appConf.Log)
	if err != nil {
		return nil, err
	}
	return database.NewDatabase(appConf.Database, logger)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "conf.d/config.toml", "conf file path")
	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "admin username")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "admin password")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "admin email")

	rootCmd.AddCommand(version.VersionCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedPlansCmd)
	rootCmd.AddCommand(createAdminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
