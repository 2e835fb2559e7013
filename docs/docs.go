// Package docs registers the OpenAPI document served at /docs.
// Regenerate with: swag init --v3.1 -g cmd/server/main.go -o docs
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{.Description}}",
        "version": "{{.Version}}"
    },
    "servers": [{"url": "{{.BasePath}}"}],
    "tags": [
        {"name": "users", "description": "Accounts and authentication"},
        {"name": "products", "description": "Product catalog and stock"},
        {"name": "system", "description": "Service information"}
    ],
    "paths": {
        "/": {"get": {"tags": ["system"], "summary": "API information", "operationId": "getAPIInfo", "responses": {"200": {"description": "OK"}}}},
        "/health": {"get": {"tags": ["system"], "summary": "Health check", "operationId": "getHealth", "responses": {"200": {"description": "OK"}, "503": {"description": "Database unreachable"}}}},
        "/api/users/register": {"post": {"tags": ["users"], "summary": "Register a user", "operationId": "registerUser", "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/RegisterRequest"}}}}, "responses": {"201": {"$ref": "#/components/responses/User"}, "400": {"$ref": "#/components/responses/Error"}}}},
        "/api/users/login": {"post": {"tags": ["users"], "summary": "Log in", "operationId": "loginUser", "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/LoginRequest"}}}}, "responses": {"200": {"description": "Token issued"}, "401": {"$ref": "#/components/responses/Error"}, "429": {"$ref": "#/components/responses/Error"}}}},
        "/api/users": {"get": {"tags": ["users"], "summary": "List users", "operationId": "listUsers", "parameters": [{"$ref": "#/components/parameters/page"}, {"$ref": "#/components/parameters/limit"}], "responses": {"200": {"description": "Paginated users"}}}},
        "/api/users/me": {"get": {"tags": ["users"], "summary": "Current user", "operationId": "getCurrentUser", "security": [{"BearerAuth": []}], "responses": {"200": {"$ref": "#/components/responses/User"}, "401": {"$ref": "#/components/responses/Error"}}}},
        "/api/users/{id}": {
            "parameters": [{"$ref": "#/components/parameters/id"}],
            "get": {"tags": ["users"], "summary": "Get a user", "operationId": "getUser", "responses": {"200": {"$ref": "#/components/responses/User"}, "404": {"$ref": "#/components/responses/Error"}}},
            "put": {"tags": ["users"], "summary": "Update a user", "operationId": "updateUser", "responses": {"200": {"$ref": "#/components/responses/User"}, "400": {"$ref": "#/components/responses/Error"}, "404": {"$ref": "#/components/responses/Error"}}},
            "delete": {"tags": ["users"], "summary": "Deactivate a user", "operationId": "deleteUser", "responses": {"200": {"$ref": "#/components/responses/Message"}, "404": {"$ref": "#/components/responses/Error"}}}
        },
        "/api/users/{id}/change-password": {"post": {"tags": ["users"], "summary": "Change password", "operationId": "changeUserPassword", "parameters": [{"$ref": "#/components/parameters/id"}], "responses": {"200": {"$ref": "#/components/responses/Message"}, "400": {"$ref": "#/components/responses/Error"}}}},
        "/api/products": {
            "get": {"tags": ["products"], "summary": "List products", "operationId": "listProducts", "parameters": [
                {"$ref": "#/components/parameters/page"}, {"$ref": "#/components/parameters/limit"},
                {"name": "category", "in": "query", "schema": {"type": "string"}},
                {"name": "minPrice", "in": "query", "schema": {"type": "number"}},
                {"name": "maxPrice", "in": "query", "schema": {"type": "number"}},
                {"name": "search", "in": "query", "schema": {"type": "string"}},
                {"name": "sortBy", "in": "query", "schema": {"type": "string", "enum": ["createdAt", "updatedAt", "name", "price", "stock", "sku", "category", "brand", "ratings.average"]}},
                {"name": "sortOrder", "in": "query", "schema": {"type": "string", "enum": ["asc", "desc"], "default": "desc"}}
            ], "responses": {"200": {"description": "Paginated products"}, "400": {"$ref": "#/components/responses/Error"}}},
            "post": {"tags": ["products"], "summary": "Create a product", "operationId": "createProduct", "responses": {"201": {"$ref": "#/components/responses/Product"}, "400": {"$ref": "#/components/responses/Error"}}}
        },
        "/api/products/featured": {"get": {"tags": ["products"], "summary": "Featured products", "operationId": "listFeaturedProducts", "parameters": [{"$ref": "#/components/parameters/limit"}], "responses": {"200": {"description": "Featured products"}}}},
        "/api/products/categories": {"get": {"tags": ["products"], "summary": "Product categories", "operationId": "listProductCategories", "responses": {"200": {"description": "Sorted category names"}}}},
        "/api/products/category/{category}": {"get": {"tags": ["products"], "summary": "Products in a category", "operationId": "listProductsByCategory", "parameters": [{"name": "category", "in": "path", "required": true, "schema": {"type": "string"}}, {"$ref": "#/components/parameters/page"}, {"$ref": "#/components/parameters/limit"}], "responses": {"200": {"description": "Paginated products"}}}},
        "/api/products/sku/{sku}": {"get": {"tags": ["products"], "summary": "Get a product by SKU", "operationId": "getProductBySku", "parameters": [{"name": "sku", "in": "path", "required": true, "schema": {"type": "string"}}], "responses": {"200": {"$ref": "#/components/responses/Product"}, "404": {"$ref": "#/components/responses/Error"}}}},
        "/api/products/{id}": {
            "parameters": [{"$ref": "#/components/parameters/id"}],
            "get": {"tags": ["products"], "summary": "Get a product", "operationId": "getProduct", "responses": {"200": {"$ref": "#/components/responses/Product"}, "404": {"$ref": "#/components/responses/Error"}}},
            "put": {"tags": ["products"], "summary": "Update a product", "operationId": "updateProduct", "responses": {"200": {"$ref": "#/components/responses/Product"}, "400": {"$ref": "#/components/responses/Error"}, "404": {"$ref": "#/components/responses/Error"}}},
            "delete": {"tags": ["products"], "summary": "Deactivate a product", "operationId": "deleteProduct", "responses": {"200": {"$ref": "#/components/responses/Message"}, "404": {"$ref": "#/components/responses/Error"}}}
        },
        "/api/products/{id}/stock": {"patch": {"tags": ["products"], "summary": "Adjust stock", "operationId": "adjustProductStock", "parameters": [{"$ref": "#/components/parameters/id"}], "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/StockRequest"}}}}, "responses": {"200": {"description": "New stock level"}, "400": {"$ref": "#/components/responses/Error"}, "404": {"$ref": "#/components/responses/Error"}}}}
    },
    "components": {
        "securitySchemes": {
            "BearerAuth": {"type": "http", "scheme": "bearer", "bearerFormat": "JWT"}
        },
        "parameters": {
            "id": {"name": "id", "in": "path", "required": true, "schema": {"type": "string"}},
            "page": {"name": "page", "in": "query", "schema": {"type": "integer", "default": 1, "minimum": 1}},
            "limit": {"name": "limit", "in": "query", "schema": {"type": "integer", "default": 10, "minimum": 1, "maximum": 100}}
        },
        "schemas": {
            "Envelope": {"type": "object", "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {},
                "pagination": {"type": "object", "properties": {"page": {"type": "integer"}, "limit": {"type": "integer"}, "total": {"type": "integer"}, "pages": {"type": "integer"}}},
                "error": {"type": "string", "examples": ["ERR_NOT_FOUND"]},
                "details": {"type": "array", "items": {"type": "object", "properties": {"field": {"type": "string"}, "message": {"type": "string"}}}},
                "requestId": {"type": "string"}
            }},
            "RegisterRequest": {"type": "object", "required": ["name", "email", "password"], "properties": {
                "name": {"type": "string", "maxLength": 50},
                "email": {"type": "string", "format": "email"},
                "password": {"type": "string", "minLength": 6},
                "role": {"type": "string", "enum": ["user", "admin"]},
                "phone": {"type": "string"}
            }},
            "LoginRequest": {"type": "object", "required": ["email", "password"], "properties": {
                "email": {"type": "string", "format": "email"},
                "password": {"type": "string"}
            }},
            "StockRequest": {"type": "object", "required": ["quantity"], "properties": {
                "quantity": {"type": "integer", "minimum": 0},
                "operation": {"type": "string", "enum": ["add", "subtract"], "default": "add"}
            }}
        },
        "responses": {
            "User": {"description": "A user", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}},
            "Product": {"description": "A product", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}},
            "Message": {"description": "Confirmation", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}},
            "Error": {"description": "Error envelope", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "E-commerce Backend API",
	Description:      "Users and product catalog on MongoDB",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
