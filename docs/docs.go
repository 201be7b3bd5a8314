// Package docs registra la definición OpenAPI que sirve /swagger.
// Se regenera con: swag init -g cmd/vetclinic/main.go -o docs
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/sesion/login": {
            "post": {
                "tags": ["sesion"],
                "summary": "Iniciar sesión",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/router.loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/respond.Body"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/respond.Body"}}
                }
            }
        },
        "/agenda/horarios": {
            "get": {
                "tags": ["agenda"],
                "summary": "Horarios disponibles de un veterinario en una fecha",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "veterinarioId", "in": "query"},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "fecha", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/respond.Body"}}}
            }
        },
        "/agenda/validar": {
            "post": {
                "tags": ["agenda"],
                "summary": "Pre-validar fecha y hora contra la política de atención",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/respond.Body"}},
                    "422": {"description": "Advertencias", "schema": {"$ref": "#/definitions/respond.Body"}}
                }
            }
        },
        "/agenda/agendar": {
            "post": {
                "tags": ["agenda"],
                "summary": "Agendar una cita",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/respond.Body"}},
                    "409": {"description": "Horario ocupado", "schema": {"$ref": "#/definitions/respond.Body"}},
                    "422": {"description": "Advertencias", "schema": {"$ref": "#/definitions/respond.Body"}}
                }
            }
        },
        "/pacientes/duplicados": {
            "get": {
                "tags": ["pacientes"],
                "summary": "Posibles pacientes duplicados por nombre",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "nombre", "in": "query", "required": true},
                    {"type": "integer", "name": "clienteId", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/respond.Body"}}}
            }
        },
        "/facturas": {
            "get": {
                "tags": ["facturas"],
                "summary": "Listar facturas",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "estado", "in": "query"},
                    {"type": "integer", "name": "clienteId", "in": "query"},
                    {"type": "string", "name": "desde", "in": "query"},
                    {"type": "string", "name": "hasta", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/respond.Body"}}}
            }
        },
        "/notificaciones/resumen": {
            "get": {
                "tags": ["notificaciones"],
                "summary": "Contador de no leídas y las más recientes",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/respond.Body"}}}
            }
        },
        "/reportes/{tipo}/pdf": {
            "get": {
                "tags": ["reportes"],
                "summary": "Exportar reporte en PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"type": "string", "name": "tipo", "in": "path", "required": true},
                    {"type": "string", "name": "desde", "in": "query", "required": true},
                    {"type": "string", "name": "hasta", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.Body"}}
                }
            }
        }
    },
    "definitions": {
        "router.loginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "toast.Toast": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "tipo": {"type": "string"},
                "mensaje": {"type": "string"}
            }
        },
        "respond.Body": {
            "type": "object",
            "properties": {
                "data": {},
                "toast": {"$ref": "#/definitions/toast.Toast"},
                "errores": {"type": "object", "additionalProperties": {"type": "string"}}
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
	Title:            "Veterinaria Humboldt BFF",
	Description:      "Vistas y acciones de la clínica sobre la API REST del backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
