// Package docs registers the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness and database check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.MessageResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Owner login",
                "parameters": [
                    {"description": "Credentials", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/user.LoginInput"}}
                ],
                "responses": {
                    "200": {"description": "JWT token and user info", "schema": {"$ref": "#/definitions/response.TokenResponse"}},
                    "401": {"description": "Invalid username or password", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/sign-api/{token}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sign"],
                "summary": "Load the form behind a signing link",
                "parameters": [
                    {"type": "string", "description": "Signing token", "name": "token", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/signing.FormSnapshot"}},
                    "404": {"description": "Invalid or expired link", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sign"],
                "summary": "Sign a form",
                "parameters": [
                    {"type": "string", "description": "Signing token", "name": "token", "in": "path", "required": true},
                    {"description": "Signer name, signature image and optional amendments", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/signing.SubmitSignatureDTO"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Invalid or expired link", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "Document changed since it was loaded", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "502": {"description": "Signature storage unavailable", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/forms/{id}/send": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["forms"],
                "summary": "Mint a signing link and deliver it",
                "parameters": [
                    {"type": "string", "description": "Form ID", "name": "id", "in": "path", "required": true},
                    {"description": "Delivery channel", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/form.SendFormDTO"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/form.SendFormResult"}},
                    "409": {"description": "Form already signed", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "response.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "code": {"type": "string"}}
        },
        "response.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "response.SuccessResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}}
        },
        "response.TokenResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "user_id": {"type": "integer"}, "username": {"type": "string"}}
        },
        "user.LoginInput": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "signing.FormSnapshot": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "type": {"type": "string"},
                "data": {"type": "object"},
                "version": {"type": "integer"},
                "project_name": {"type": "string"},
                "contact_name": {"type": "string"}
            }
        },
        "signing.SubmitSignatureDTO": {
            "type": "object",
            "required": ["signatureData", "signerName"],
            "properties": {
                "signerName": {"type": "string", "example": "Dana Cohen"},
                "signatureData": {"type": "string", "example": "data:image/png;base64,iVBORw0..."},
                "amendedFields": {"type": "object"},
                "version": {"type": "integer", "example": 1}
            }
        },
        "form.SendFormDTO": {
            "type": "object",
            "required": ["method"],
            "properties": {
                "method": {"type": "string", "enum": ["link", "email", "sms"]},
                "email": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "form.SendFormResult": {
            "type": "object",
            "properties": {
                "signing_url": {"type": "string"},
                "expires_at": {"type": "string"},
                "dispatched": {"type": "boolean"},
                "dispatch_error": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "ProjectSign API",
	Description:      "Contractor document signing service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
