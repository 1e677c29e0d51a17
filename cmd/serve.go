package cmd

import (
	"context"
	"interview_prep_backend/internal/app"
	"interview_prep_backend/internal/config"
	"interview_prep_backend/pkg/configwatcher"
	"interview_prep_backend/pkg/database"
	"interview_prep_backend/pkg/logger"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var forceMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			return err
		}
		cfg.ForceMigrate = forceMigrate

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		application, err := app.NewApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer logger.Log.Sync()
		defer application.Close()

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return application.Run(ctx)
		})
		if cfg.File != "" {
			g.Go(func() error {
				return configwatcher.Watch(ctx, cfg.File, application.Reload)
			})
		}

		if err := g.Wait(); err != nil && err != context.Canceled {
			logger.Log.Error("Server stopped with error", zap.Error(err))
			return err
		}
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "执行数据库迁移后退出",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			return err
		}
		cfg.ForceMigrate = true
		cfg.MigrateOnly = true

		logger.InitLogger(cfg)
		defer logger.Log.Sync()

		db, err := database.InitDB(cfg)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		logger.Log.Info("数据库迁移完成，退出程序")
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&forceMigrate, "migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
}
