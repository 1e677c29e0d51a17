// Package docs 注册 Swagger 文档，由 swag init 重新生成时会被覆盖
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/generate-subtopics": {"post": {"tags": ["面试准备"], "summary": "生成面试子主题", "responses": {"200": {"description": "OK"}}}},
        "/validate-subtopics": {"post": {"tags": ["面试准备"], "summary": "校验子主题", "responses": {"200": {"description": "OK"}}}},
        "/refine-subtopics": {"post": {"tags": ["面试准备"], "summary": "优化子主题", "responses": {"200": {"description": "OK"}}}},
        "/categorize-subtopics": {"post": {"tags": ["面试准备"], "summary": "子主题分类", "responses": {"200": {"description": "OK"}}}},
        "/generate-questions": {"post": {"tags": ["面试准备"], "summary": "生成面试题", "responses": {"200": {"description": "OK"}}}},
        "/check-response": {"post": {"tags": ["面试准备"], "summary": "评估回答", "responses": {"200": {"description": "OK"}}}},
        "/register": {"post": {"tags": ["认证"], "summary": "注册新用户", "responses": {"201": {"description": "Created"}}}},
        "/login": {"post": {"tags": ["认证"], "summary": "用户登录", "responses": {"200": {"description": "OK"}}}},
        "/user-profile/{id}": {"get": {"tags": ["分析"], "summary": "用户练习概览", "responses": {"200": {"description": "OK"}}}},
        "/user-job-interests-with-scores": {"get": {"tags": ["分析"], "summary": "兴趣与得分", "responses": {"200": {"description": "OK"}}}},
        "/me/interests": {"get": {"tags": ["分析"], "summary": "我的兴趣记录", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "未登录"}}}},
        "/health": {"get": {"tags": ["系统"], "summary": "健康检查", "responses": {"200": {"description": "OK"}}}}
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Interview Prep 后端 API",
	Description:      "面试准备服务：子主题生成、出题、评分与练习统计。",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
