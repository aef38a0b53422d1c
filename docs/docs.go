// Package docs holds the hand-maintained Swagger document of the HTTP API and registers it with swag.
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
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Report survey store reachability",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/v1/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a survey author",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/v1/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Open a session and return its token",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.LoginResponse"}},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/v1/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "End the caller's session",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/v1/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Describe the authenticated caller",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/v1/surveys": {
            "get": {
                "produces": ["application/json"],
                "tags": ["surveys"],
                "summary": "List stored surveys",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Survey"}}},
                    "503": {"description": "Service Unavailable"}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["surveys"],
                "summary": "Create a survey",
                "parameters": [
                    {"description": "Survey draft", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.DraftInput"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        },
        "/v1/surveys/samples": {
            "get": {
                "produces": ["application/json"],
                "tags": ["surveys"],
                "summary": "List the built-in sample surveys",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Survey"}}}
                }
            }
        },
        "/v1/surveys/{surveyId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["surveys"],
                "summary": "Get a survey",
                "parameters": [
                    {"type": "string", "description": "Survey ID", "name": "surveyId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Survey"}},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["surveys"],
                "summary": "Update a survey",
                "parameters": [
                    {"type": "string", "description": "Survey ID", "name": "surveyId", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.SurveyPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["surveys"],
                "summary": "Delete a survey",
                "parameters": [
                    {"type": "string", "description": "Survey ID", "name": "surveyId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/v1/surveys/{surveyId}/responses": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["responses"],
                "summary": "List stored responses of a survey",
                "parameters": [
                    {"type": "string", "description": "Survey ID", "name": "surveyId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Response"}}},
                    "404": {"description": "Not Found"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["responses"],
                "summary": "Submit answers to a survey",
                "parameters": [
                    {"type": "string", "description": "Survey ID", "name": "surveyId", "in": "path", "required": true},
                    {"description": "Answers keyed by question index", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.SubmitResponseRequest"}}
                ],
                "responses": {
                    "200": {"description": "Simulated (sample survey)"},
                    "201": {"description": "Created"},
                    "404": {"description": "Not Found"},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.ValidationFailedResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.SubmitResponseRequest": {
            "type": "object",
            "properties": {
                "answers": {"type": "object", "additionalProperties": {"type": "string"}},
                "responses": {"type": "object", "additionalProperties": {"type": "string"}},
                "respondentEmail": {"type": "string"}
            }
        },
        "handler.ValidationFailedResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "violations": {"type": "array", "items": {"$ref": "#/definitions/model.RequiredFieldMissing"}}
            }
        },
        "model.DraftInput": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "createdBy": {"type": "string"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/model.Question"}}
            }
        },
        "model.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "model.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "expiresAt": {"type": "string"},
                "user": {"$ref": "#/definitions/model.User"}
            }
        },
        "model.Question": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["text", "textarea", "radio", "checkbox", "email", "number"]},
                "prompt": {"type": "string"},
                "options": {"type": "string"},
                "required": {"type": "boolean"}
            }
        },
        "model.RegisterRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "model.RequiredFieldMissing": {
            "type": "object",
            "properties": {
                "index": {"type": "integer"}
            }
        },
        "model.Response": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "surveyId": {"type": "string"},
                "answers": {"type": "object", "additionalProperties": {"type": "string"}},
                "respondentEmail": {"type": "string"},
                "submittedAt": {"type": "string"}
            }
        },
        "model.Survey": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/model.Question"}},
                "createdBy": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"},
                "isActive": {"type": "boolean"},
                "isSample": {"type": "boolean"}
            }
        },
        "model.SurveyPatch": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/model.Question"}},
                "isActive": {"type": "boolean"}
            }
        },
        "model.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "createdAt": {"type": "string"},
                "isActive": {"type": "boolean"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
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
	Title:            "Survey Form API",
	Description:      "Survey authoring and response collection.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
