// Package docs holds the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o docs
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
        "/books": {
            "get": {
                "security": [{"Bearer": []}],
                "description": "Title and author match case-insensitive substrings, isbn matches exactly; filters combine with AND",
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Search books",
                "parameters": [
                    {"type": "string", "description": "Title contains", "name": "title", "in": "query"},
                    {"type": "string", "description": "Author contains", "name": "author", "in": "query"},
                    {"type": "string", "description": "Exact ISBN", "name": "isbn", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/book.Book"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httpx.MessageResponse"}}
                }
            },
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Create a book",
                "parameters": [
                    {"description": "Book", "name": "book", "in": "body", "required": true, "schema": {"$ref": "#/definitions/book.BookReq"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/book.Book"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpx.MessageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/httpx.MessageResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httpx.MessageResponse"}}
                }
            }
        },
        "/books/{id}": {
            "put": {
                "security": [{"Bearer": []}],
                "description": "Overwrites every field; an omitted published_year becomes null",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Replace a book",
                "parameters": [
                    {"type": "integer", "description": "Book ID", "name": "id", "in": "path", "required": true},
                    {"description": "Book", "name": "book", "in": "body", "required": true, "schema": {"$ref": "#/definitions/book.BookReq"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/book.Book"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.MessageResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httpx.MessageResponse"}}
                }
            },
            "delete": {
                "security": [{"Bearer": []}],
                "tags": ["books"],
                "summary": "Delete a book",
                "parameters": [
                    {"type": "integer", "description": "Book ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.MessageResponse"}}
                }
            }
        },
        "/login": {
            "post": {
                "description": "Exchange the account credentials for a bearer token valid for one hour",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.LoginReq"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.LoginResp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httpx.MessageResponse"}}
                }
            }
        }
    },
    "definitions": {
        "auth.LoginReq": {
            "type": "object",
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "auth.LoginResp": {
            "type": "object",
            "properties": {
                "token": {"type": "string"}
            }
        },
        "book.Book": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "id": {"type": "integer"},
                "isbn": {"type": "string"},
                "published_year": {"type": "integer"},
                "title": {"type": "string"}
            }
        },
        "book.BookReq": {
            "type": "object",
            "required": ["author", "title"],
            "properties": {
                "author": {"type": "string", "maxLength": 500},
                "isbn": {"type": "string", "maxLength": 32},
                "published_year": {"type": "integer", "maximum": 9999, "minimum": 0},
                "title": {"type": "string", "maxLength": 500}
            }
        },
        "httpx.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "httpx.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "httpx.MessageResponse": {
            "type": "object",
            "properties": {
                "details": {"type": "array", "items": {"$ref": "#/definitions/httpx.FieldError"}},
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
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
	Title:            "Books API",
	Description:      "CRUD over a books catalogue behind a bearer token.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
