package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>editfolio — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the public surface.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "editfolio-backend", "version": "v0.1.0" },
  "paths": {
    "/auth/anonymous": {
      "post": { "summary": "Start an anonymous visitor session", "responses": { "200": { "description": "session token and identity" } } }
    },
    "/auth/login": {
      "post": { "summary": "Sign in with email and password", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}}, "responses": { "200": { "description": "session token and identity" }, "401": { "description": "authentication failed" } } }
    },
    "/auth/token": {
      "post": { "summary": "Sign in with a pre-provisioned token", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"token":{"type":"string"}}}}}}, "responses": { "200": { "description": "session token and identity" }, "401": { "description": "invalid token" } } }
    },
    "/auth/logout": {
      "post": { "summary": "Revoke the session and start a fresh anonymous one", "responses": { "200": { "description": "fresh anonymous session" } } }
    },
    "/auth/me": {
      "get": { "summary": "Inspect the caller identity and admin standing", "responses": { "200": { "description": "identity, state, isAdmin" } } }
    },
    "/api/collections": {
      "get": { "summary": "List known collections", "responses": { "200": { "description": "collection names" } } }
    },
    "/api/collections/{name}": {
      "get": { "summary": "Read the full contents of a collection", "responses": { "200": { "description": "documents" }, "404": { "description": "unknown collection" } } },
      "post": { "summary": "Create or merge-update one document", "responses": { "200": { "description": "saved id" }, "400": { "description": "validation failure" }, "403": { "description": "admin required" } } }
    },
    "/api/collections/{name}/{id}": {
      "delete": { "summary": "Delete one document (requires confirm=true)", "responses": { "204": { "description": "deleted" }, "400": { "description": "missing id or unconfirmed" }, "403": { "description": "admin required" } } }
    },
    "/api/settings": {
      "get": { "summary": "Read site settings with defaults filled in", "responses": { "200": { "description": "settings" } } },
      "put": { "summary": "Merge-update site settings", "responses": { "204": { "description": "saved" }, "403": { "description": "admin required" } } }
    },
    "/api/contact": {
      "post": { "summary": "Relay a contact form submission to SMS and email", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"name":{"type":"string"},"email":{"type":"string"},"message":{"type":"string"}}}}}}, "responses": { "200": { "description": "dispatched" }, "400": { "description": "missing field" }, "500": { "description": "delivery failed" } } }
    },
    "/api/uploads/thumbnail": {
      "post": { "summary": "Upload a portfolio thumbnail image", "responses": { "201": { "description": "object key and url" }, "403": { "description": "admin required" } } }
    },
    "/api/collections/{name}/live": {
      "get": { "summary": "Websocket stream of full collection snapshots", "responses": { "101": { "description": "switching protocols" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
