// Package docs holds the Swagger spec served at /swagger/*any. Hand
// maintained in the shape swag init produces, kept in sync with the
// @Summary/@Router annotations in internal/api/handlers.go.
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
        "/api/capacity": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Steganography"],
                "summary": "Calculate audio embedding capacity",
                "parameters": [
                    {"type": "file", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "name": "format", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/api/hide_message": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["audio/wav"],
                "tags": ["Steganography"],
                "summary": "Hide a secret message in a WAV file",
                "parameters": [
                    {"type": "file", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "name": "message", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true},
                    {"type": "string", "name": "format", "in": "formData"},
                    {"type": "integer", "name": "lsb_deep", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "Stego WAV file"},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/api/extract_message": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["text/plain"],
                "tags": ["Steganography"],
                "summary": "Extract a secret message from a WAV file",
                "parameters": [
                    {"type": "file", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true},
                    {"type": "string", "name": "format", "in": "formData"},
                    {"type": "integer", "name": "lsb_deep", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "Recovered message"},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/api/clear_message": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["audio/wav"],
                "tags": ["Steganography"],
                "summary": "Erase a secret message from a WAV file",
                "parameters": [
                    {"type": "file", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true},
                    {"type": "string", "name": "format", "in": "formData"},
                    {"type": "integer", "name": "lsb_deep", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "Cleaned WAV file"},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/api/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Health Check",
                "responses": {
                    "200": {"description": "Service is healthy"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so other packages can
// modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "StegoWave API",
	Description:      "WAV LSB steganography codec service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
