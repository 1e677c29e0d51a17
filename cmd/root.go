// Package cmd 命令行入口：serve、migrate、extract
package cmd

import (
	"github.com/spf13/cobra"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:           "interview_prep_backend",
	Short:         "面试准备后端服务",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 不带子命令时等同于 serve
		return serveCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "configs", "config.yaml 所在目录")
	rootCmd.Flags().BoolVar(&forceMigrate, "migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	rootCmd.AddCommand(serveCmd, migrateCmd, extractCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
