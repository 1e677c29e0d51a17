// @title Interview Prep 后端 API
// @version 1.0
// @description 面试准备服务：子主题生成、出题、评分与练习统计。

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"interview_prep_backend/cmd"
	"os"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
