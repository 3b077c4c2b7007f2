// Package docs holds the OpenAPI document served under /swagger. It is kept
// in the template layout swag registers so echo-swagger can serve it.
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
        "/api/admin/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userListResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/auth/google/callback": {
            "get": {
                "tags": ["auth"],
                "summary": "Google login callback",
                "parameters": [
                    {"type": "string", "description": "Authorization code", "name": "code", "in": "query"},
                    {"type": "string", "description": "Login state", "name": "state", "in": "query"},
                    {"type": "string", "description": "Provider error", "name": "error", "in": "query"}
                ],
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/api/auth/google/login": {
            "get": {
                "tags": ["auth"],
                "summary": "Start Google login",
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/api/public/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.statusResponse"}}
                }
            }
        },
        "/api/public/login": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Demo login",
                "parameters": [
                    {"type": "string", "description": "Demo account (demo or admin)", "name": "username", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/user/journal": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["journal"],
                "summary": "List journal entries",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.entryListResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["journal"],
                "summary": "Create a journal entry",
                "parameters": [
                    {"description": "Entry", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createEntryRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.entryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/user/mood-calendar": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["journal"],
                "summary": "Daily average mood",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.moodCalendarResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/user/settings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Get settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Settings"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Replace settings",
                "parameters": [
                    {"description": "Settings", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.settingsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Settings"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.JournalEntry": {
            "type": "object",
            "properties": {
                "entry_datetime": {"type": "string"},
                "id": {"type": "string"},
                "mood": {"type": "integer"},
                "text": {"type": "string"}
            }
        },
        "domain.MoodCalendarDay": {
            "type": "object",
            "properties": {
                "average_mood": {"type": "number"},
                "date": {"type": "string"},
                "entries": {"type": "integer"}
            }
        },
        "domain.Settings": {
            "type": "object",
            "properties": {
                "display_name": {"type": "string"},
                "reminder_time": {"type": "string"},
                "theme": {"type": "string"}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "is_admin": {"type": "boolean"},
                "username": {"type": "string"}
            }
        },
        "handler.createEntryRequest": {
            "type": "object",
            "required": ["text"],
            "properties": {
                "entry_datetime": {"type": "string"},
                "mood": {"type": "integer", "maximum": 10, "minimum": 1},
                "text": {"type": "string", "maxLength": 5000}
            }
        },
        "handler.entryListResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/domain.JournalEntry"}}
            }
        },
        "handler.entryResponse": {
            "type": "object",
            "properties": {
                "item": {"$ref": "#/definitions/domain.JournalEntry"}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {
                "allowed": {"type": "array", "items": {"type": "string"}},
                "error": {"type": "string"}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string"},
                "user": {"$ref": "#/definitions/domain.User"}
            }
        },
        "handler.moodCalendarResponse": {
            "type": "object",
            "properties": {
                "days": {"type": "array", "items": {"$ref": "#/definitions/domain.MoodCalendarDay"}}
            }
        },
        "handler.settingsRequest": {
            "type": "object",
            "required": ["display_name", "reminder_time", "theme"],
            "properties": {
                "display_name": {"type": "string", "maxLength": 100},
                "reminder_time": {"type": "string"},
                "theme": {"type": "string", "maxLength": 50}
            }
        },
        "handler.statusResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}
            }
        },
        "handler.userListResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/domain.User"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the access token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Mood Journal API",
	Description:      "Private mood journal: demo and Google login, journal entries, mood calendar and settings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
