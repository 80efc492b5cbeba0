// Package docs holds the swagger spec served at /swagger. Regenerate with
// `swag init -g cmd/ledger_backend/main.go -o cmd/docs` after changing handler annotations.
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
        "/health": {
            "get": {
                "description": "Liveness check; does not touch the database.",
                "produces": ["application/json"],
                "tags": ["root"],
                "summary": "Show the status of server.",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/accounts": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "List accounts", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Create a new account", "responses": {"201": {"description": "Created"}}}
        },
        "/accounts/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Get an account by ID or code", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Update an account", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/accounts/{id}/deactivate": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Deactivate an account", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/accounts/{id}/balance": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Get account balance", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/journal-entries": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["journal-entries"], "summary": "List journal entries", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["journal-entries"], "summary": "Post a journal entry", "parameters": [{"type": "string", "name": "Idempotency-Key", "in": "header"}], "responses": {"201": {"description": "Created"}}}
        },
        "/journal-entries/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["journal-entries"], "summary": "Get a journal entry", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/journal-entries/{id}/void": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["journal-entries"], "summary": "Void a journal entry", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/payroll/batches": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["payroll"], "summary": "List payroll batches", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["payroll"], "summary": "Create a payroll batch", "responses": {"201": {"description": "Created"}}}
        },
        "/payroll/batches/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["payroll"], "summary": "Get a payroll batch", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/payroll/batches/{id}/events": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["payroll"], "summary": "Get a payroll batch's history", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/payroll/batches/{id}/accrual": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["payroll"], "summary": "Post a payroll batch's accrual", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/payroll/batches/{id}/payment": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["payroll"], "summary": "Post a payroll batch's payment", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/payroll/batches/{id}/status": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["payroll"], "summary": "Change a payroll batch's status", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/payroll/records/{id}/paid": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["payroll"], "summary": "Mark a payroll record paid", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/reports/summary": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Financial summary", "responses": {"200": {"description": "OK"}}}
        },
        "/reports/trial-balance": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Trial balance", "responses": {"200": {"description": "OK"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Dealership Ledger API",
	Description:      "Double-entry ledger and payroll posting for a car dealership.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
