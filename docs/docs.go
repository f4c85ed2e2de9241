// Package docs registers the OpenAPI description served by gin-swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "AccessToken": {
            "type": "apiKey",
            "name": "access-token",
            "in": "header"
        }
    },
    "paths": {
        "/": {
            "get": {"tags": ["status"], "summary": "Estado da API e do banco", "responses": {"200": {"description": "OK"}, "503": {"description": "Banco indisponível"}}}
        },
        "/usuarios": {
            "get": {"tags": ["usuarios"], "summary": "Lista os usuários (sem a senha)", "security": [{"AccessToken": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["usuarios"], "summary": "Cadastra um novo usuário", "responses": {"201": {"description": "Criado"}, "403": {"description": "Erro de validação"}}}
        },
        "/usuarios/login": {
            "post": {"tags": ["usuarios"], "summary": "Autentica o usuário e devolve o token JWT", "responses": {"200": {"description": "OK"}, "403": {"description": "Senha incorreta"}, "404": {"description": "Email não cadastrado"}}}
        },
        "/prestadores": {
            "get": {"tags": ["prestadores"], "summary": "Lista os prestadores", "security": [{"AccessToken": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["prestadores"], "summary": "Inclui um prestador", "security": [{"AccessToken": []}], "responses": {"201": {"description": "Criado"}, "400": {"description": "Erro de validação"}}},
            "put": {"tags": ["prestadores"], "summary": "Altera um prestador", "security": [{"AccessToken": []}], "responses": {"202": {"description": "Aceito"}, "400": {"description": "Erro de validação"}}}
        },
        "/prestadores/id/{id}": {
            "get": {"tags": ["prestadores"], "summary": "Obtém o prestador pelo id", "security": [{"AccessToken": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/prestadores/razao/{filtro}": {
            "get": {"tags": ["prestadores"], "summary": "Busca pela razão social ou nome fantasia", "security": [{"AccessToken": []}], "parameters": [{"name": "filtro", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/prestadores/{id}": {
            "delete": {"tags": ["prestadores"], "summary": "Exclui um prestador", "security": [{"AccessToken": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Não encontrado"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "API de Prestadores",
	Description:      "Cadastro de prestadores de serviço e usuários, com autenticação JWT.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
