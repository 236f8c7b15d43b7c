// Package docs registers the OpenAPI description served under /swagger.
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
        "/stats/summaries": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Period summaries",
                "parameters": [
                    {"type": "string", "description": "daily | weekly | monthly", "name": "granularity", "in": "query", "required": true},
                    {"type": "string", "description": "reference day, YYYY-MM-DD", "name": "date", "in": "query"},
                    {"type": "string", "description": "evaluation day, YYYY-MM-DD", "name": "today", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.PeriodSummary"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/stats/streaks": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Current and longest streak",
                "parameters": [
                    {"type": "string", "description": "evaluation day, YYYY-MM-DD", "name": "today", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.StreakState"}}
                }
            }
        },
        "/stats/streaks/live": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Streaks with unsaved state for today",
                "parameters": [
                    {"description": "today's state", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.liveStreakRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.StreakState"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/stats/streaks/snapshot": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Last streak computed in the background",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.StreakSnapshot"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/records": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Records in a date range",
                "parameters": [
                    {"type": "string", "description": "YYYY-MM-DD, inclusive", "name": "from", "in": "query", "required": true},
                    {"type": "string", "description": "YYYY-MM-DD, inclusive", "name": "to", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.DailyRecord"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/records/{date}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Log the task counts of a day",
                "parameters": [
                    {"type": "string", "description": "YYYY-MM-DD", "name": "date", "in": "path", "required": true},
                    {"description": "counts", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.logRecordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.DailyRecord"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["records"],
                "summary": "Delete the record of a day",
                "parameters": [
                    {"type": "string", "description": "YYYY-MM-DD", "name": "date", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/records/{date}/tasks": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Log a day from raw task state",
                "parameters": [
                    {"type": "string", "description": "YYYY-MM-DD", "name": "date", "in": "path", "required": true},
                    {"description": "tasks", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.logTasksRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.DailyRecord"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.DailyRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "date": {"type": "string"},
                "total_tasks": {"type": "integer"},
                "completed_tasks": {"type": "integer"},
                "completion_rate": {"type": "integer"},
                "status": {"type": "string"},
                "logged_at": {"type": "string"}
            }
        },
        "domain.PeriodSummary": {
            "type": "object",
            "properties": {
                "granularity": {"type": "string"},
                "period_start": {"type": "string"},
                "period_end": {"type": "string"},
                "total_tasks": {"type": "integer"},
                "completed_tasks": {"type": "integer"},
                "completion_rate": {"type": "integer"},
                "status": {"type": "string"},
                "days_counted": {"type": "integer"},
                "active_days": {"type": "integer"}
            }
        },
        "domain.StreakState": {
            "type": "object",
            "properties": {
                "current_streak": {"type": "integer"},
                "longest_streak": {"type": "integer"}
            }
        },
        "domain.StreakSnapshot": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"},
                "current_streak": {"type": "integer"},
                "longest_streak": {"type": "integer"},
                "computed_for": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.Task": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "due_date": {"type": "string"},
                "completed_at": {"type": "string"}
            }
        },
        "http.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "http.liveStreakRequest": {
            "type": "object",
            "properties": {
                "today": {"type": "string"},
                "total_tasks": {"type": "integer"},
                "completed_tasks": {"type": "integer"},
                "tasks": {"type": "array", "items": {"$ref": "#/definitions/domain.Task"}}
            }
        },
        "http.logRecordRequest": {
            "type": "object",
            "required": ["completed_tasks", "total_tasks"],
            "properties": {
                "total_tasks": {"type": "integer"},
                "completed_tasks": {"type": "integer"},
                "logged_at": {"type": "string"}
            }
        },
        "http.logTasksRequest": {
            "type": "object",
            "required": ["tasks"],
            "properties": {
                "tasks": {"type": "array", "items": {"$ref": "#/definitions/domain.Task"}},
                "logged_at": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Kanso Productivity Engine API",
	Description:      "Daily productivity records, period summaries and streaks.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
