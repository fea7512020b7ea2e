// Package docs 注册 swagger 文档，内容与控制器上的 swag 注解保持一致
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {
			"name": "API支持",
			"url": "http://www.swagger.io/support"
		},
		"license": {
			"name": "Apache 2.0",
			"url": "http://www.apache.org/licenses/LICENSE-2.0.html"
		},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/api/assignments/{id}/submissions": {
			"post": {
				"tags": [
					"作业"
				],
				"summary": "提交作业",
				"description": "内容为空或只有空白时返回 400",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "作业ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					},
					{
						"description": "提交内容",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"400": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/api/badges": {
			"get": {
				"tags": [
					"排名"
				],
				"summary": "当前用户徽章",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/api/courses": {
			"get": {
				"tags": [
					"课程"
				],
				"summary": "课程列表",
				"description": "按标题、简介、教师名搜索课程（不区分大小写），q 为空时返回全部",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "搜索关键词",
						"name": "q",
						"in": "query",
						"required": false,
						"type": "string"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/api/courses/{id}": {
			"get": {
				"tags": [
					"课程"
				],
				"summary": "课程详情",
				"description": "返回课程、已上传视频以及当前用户是否已报名",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "课程ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"404": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/api/courses/{id}/assignments": {
			"get": {
				"tags": [
					"课程"
				],
				"summary": "课程作业列表",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "课程ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/api/courses/{id}/enroll": {
			"post": {
				"tags": [
					"课程"
				],
				"summary": "报名课程",
				"description": "每次调用都会新增一条报名记录",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "课程ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/api/courses/{id}/grade": {
			"get": {
				"tags": [
					"作业"
				],
				"summary": "课程总评",
				"description": "当前学生在课程下已发布成绩的平均分，保留一位小数",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "课程ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/api/daily-tasks": {
			"get": {
				"tags": [
					"每日任务"
				],
				"summary": "今日任务",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/api/daily-tasks/{taskId}": {
			"patch": {
				"tags": [
					"每日任务"
				],
				"summary": "切换任务完成状态",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "任务ID",
						"name": "taskId",
						"in": "path",
						"required": true,
						"type": "string"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"404": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/api/health": {
			"get": {
				"tags": [
					"系统"
				],
				"summary": "健康检查",
				"description": "检查记录存储是否可用",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"503": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/api/login": {
			"post": {
				"tags": [
					"认证"
				],
				"summary": "用户登录",
				"description": "邮箱密码登录，返回 JWT",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"description": "登录信息",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"200": {
						"description": "登录成功",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"400": {
						"description": "请求参数错误",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"401": {
						"description": "邮箱或密码错误",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/api/me": {
			"get": {
				"tags": [
					"认证"
				],
				"summary": "当前用户",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"401": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/api/my/assignments": {
			"get": {
				"tags": [
					"作业"
				],
				"summary": "我的全部作业",
				"description": "已报名课程下的作业，含提交状态（pending/submitted/graded）与逾期标记",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/api/my/courses": {
			"get": {
				"tags": [
					"课程"
				],
				"summary": "我报名的课程",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/api/my/submissions": {
			"get": {
				"tags": [
					"作业"
				],
				"summary": "我的提交",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/api/profile": {
			"get": {
				"tags": [
					"排名"
				],
				"summary": "个人主页",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"404": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/api/rank": {
			"get": {
				"tags": [
					"排名"
				],
				"summary": "当前用户等级",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/api/rankings": {
			"get": {
				"tags": [
					"排名"
				],
				"summary": "学生排行榜",
				"description": "score = 等级权重*100 + 报名数*10 + 提交数*20",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/api/register": {
			"post": {
				"tags": [
					"认证"
				],
				"summary": "注册新用户",
				"description": "使用提供的信息注册新用户，角色为 student 或 teacher",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"description": "用户注册信息",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"201": {
						"description": "创建成功",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"400": {
						"description": "请求参数错误",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"409": {
						"description": "邮箱已被注册",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"500": {
						"description": "服务器内部错误",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/api/teacher/courses": {
			"post": {
				"tags": [
					"教师"
				],
				"summary": "创建课程",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "课程信息",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"400": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			},
			"get": {
				"tags": [
					"教师"
				],
				"summary": "教师的课程及报名人数",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/api/teacher/courses/upload": {
			"post": {
				"tags": [
					"教师"
				],
				"summary": "创建课程并上传视频",
				"description": "multipart 表单：title、description、duration，videos 为视频文件，",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "课程标题",
						"name": "title",
						"in": "formData",
						"required": true,
						"type": "string"
					},
					{
						"description": "课程简介",
						"name": "description",
						"in": "formData",
						"required": false,
						"type": "string"
					},
					{
						"description": "课程时长",
						"name": "duration",
						"in": "formData",
						"required": false,
						"type": "string"
					},
					{
						"description": "视频文件",
						"name": "videos",
						"in": "formData",
						"required": true,
						"type": "file"
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"400": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"500": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/api/teacher/courses/{id}/assignments": {
			"post": {
				"tags": [
					"教师"
				],
				"summary": "创建作业",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "课程ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					},
					{
						"description": "作业信息",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"400": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/api/teacher/courses/{id}/students": {
			"get": {
				"tags": [
					"教师"
				],
				"summary": "课程的报名学生",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "课程ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/api/teacher/courses/{id}/submissions": {
			"get": {
				"tags": [
					"教师"
				],
				"summary": "课程下的全部提交",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "课程ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					},
					{
						"description": "只看某个作业",
						"name": "assignmentId",
						"in": "query",
						"required": false,
						"type": "string"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/api/teacher/submissions/{id}/grade": {
			"post": {
				"tags": [
					"教师"
				],
				"summary": "评分",
				"description": "写入成绩和评语，并自动标记为已审核",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "提交ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					},
					{
						"description": "成绩",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"400": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"404": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/api/teacher/submissions/{id}/publish": {
			"post": {
				"tags": [
					"教师"
				],
				"summary": "发布成绩",
				"description": "没有成绩时返回 400",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "提交ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"400": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"404": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/api/teacher/submissions/{id}/verify": {
			"post": {
				"tags": [
					"教师"
				],
				"summary": "审核提交",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "提交ID",
						"name": "id",
						"in": "path",
						"required": true,
						"type": "string"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"404": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"util.Response": {
			"type": "object",
			"properties": {
				"code": {
					"type": "integer"
				},
				"data": {},
				"message": {
					"type": "string"
				}
			}
		}
	},
	"securityDefinitions": {
		"ApiKeyAuth": {
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "LearnTrack 后端 API",
	Description:      "LearnTrack 学习管理平台的后端服务器：课程、报名、作业提交与评分、排名与徽章。",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
