// Package docs registers the OpenAPI document served under /swagger.
// It mirrors the swag annotations in cmd/api; refresh it with
// `go generate ./cmd/api` after changing a handler or dto.
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
        "/api/chat": {
            "post": {
                "description": "メッセージをセッション履歴に追加し、Ollama で応答を生成する。sessionId が未知なら新しいセッションを作成する。",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "チャット",
                "parameters": [
                    {
                        "description": "chat request",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.ChatRequestDTO"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ChatResponseDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}},
                    "404": {"description": "モデル未取得", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}},
                    "503": {"description": "Ollama 未起動", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            }
        },
        "/api/clear": {
            "post": {
                "description": "現在のセッションのメッセージ履歴を消去する。",
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "履歴クリア",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MessageResponseDTO"}}
                }
            }
        },
        "/api/sessions": {
            "get": {
                "description": "全セッションを作成日時の新しい順に返す。現在のセッションIDも含む。",
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "セッション一覧",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListSessionsResponseDTO"}}
                }
            },
            "post": {
                "description": "空のセッションを作成し、現在のセッションにする。",
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "新規セッション作成",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CreateSessionResponseDTO"}}
                }
            }
        },
        "/api/sessions/{id}": {
            "delete": {
                "description": "セッションを削除する。現在のセッションを削除した場合は新しいセッションが作成され、そのIDが newSessionId で返る。",
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "セッション削除",
                "parameters": [
                    {"type": "string", "description": "セッションID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DeleteSessionResponseDTO"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            }
        },
        "/api/sessions/{id}/switch": {
            "post": {
                "description": "指定したセッションを現在のセッションにし、メッセージ履歴を返す。",
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "セッション切り替え",
                "parameters": [
                    {"type": "string", "description": "セッションID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionDetailDTO"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponseDTO"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ChatMessageDTO": {
            "type": "object",
            "properties": {
                "content": {"type": "string", "example": "こんにちは"},
                "role": {"type": "string", "example": "user"}
            }
        },
        "dto.ChatRequestDTO": {
            "type": "object",
            "required": ["message"],
            "properties": {
                "message": {"type": "string", "example": "こんにちは"},
                "sessionId": {"type": "string", "example": "1700000000000"}
            }
        },
        "dto.ChatResponseDTO": {
            "type": "object",
            "properties": {
                "response": {"type": "string", "example": "こんにちは！"},
                "sessionId": {"type": "string", "example": "1700000000000"}
            }
        },
        "dto.CreateSessionResponseDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "1700000000000"},
                "title": {"type": "string", "example": "チャット 2023/11/15 7:13:20"}
            }
        },
        "dto.DeleteSessionResponseDTO": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "セッションを削除しました"},
                "newSessionId": {"type": "string", "example": "1700000000001"}
            }
        },
        "dto.ErrorResponseDTO": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "セッションが見つかりません"}
            }
        },
        "dto.HealthResponseDTO": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "OK"}
            }
        },
        "dto.ListSessionsResponseDTO": {
            "type": "object",
            "properties": {
                "currentSessionId": {"type": "string", "example": "1700000000000"},
                "sessions": {"type": "array", "items": {"$ref": "#/definitions/dto.SessionSummaryDTO"}}
            }
        },
        "dto.MessageResponseDTO": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "チャット履歴をクリアしました"}
            }
        },
        "dto.SessionDetailDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "1700000000000"},
                "messages": {"type": "array", "items": {"$ref": "#/definitions/dto.ChatMessageDTO"}},
                "title": {"type": "string", "example": "こんにちは"}
            }
        },
        "dto.SessionSummaryDTO": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "integer", "example": 1700000000000},
                "id": {"type": "string", "example": "1700000000000"},
                "messageCount": {"type": "integer", "example": 2},
                "title": {"type": "string", "example": "チャット 2023/11/15 7:13:20"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Gemma Chat API",
	Description:      "Chat front-end that relays session conversations to a local Ollama gemma model",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
