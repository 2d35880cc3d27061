// Package docs holds the OpenAPI description served under /swagger. It is
// kept in the layout swag emits and must list every route of the portal.
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
        "/login": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login page",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Page"}}}
            },
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "303": {"description": "Redirect to the landing page of the role"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.Page"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.Page"}},
                    "429": {"description": "Too Many Requests", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.Page"}}
                }
            }
        },
        "/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"303": {"description": "Redirect to /login"}}
            }
        },
        "/signup": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Signup options",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Page"}}}
            },
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Signup",
                "parameters": [
                    {"type": "string", "description": "First name", "name": "firstName", "in": "formData", "required": true},
                    {"type": "string", "description": "Last name", "name": "lastName", "in": "formData", "required": true},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "dateOfBirth", "in": "formData", "required": true},
                    {"type": "string", "description": "Faculty email", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true},
                    {"type": "string", "description": "14 digit national id", "name": "nationalId", "in": "formData", "required": true},
                    {"type": "integer", "description": "Faculty", "name": "facultyId", "in": "formData", "required": true},
                    {"type": "integer", "description": "Department", "name": "departmentId", "in": "formData", "required": true},
                    {"type": "integer", "description": "Academic year", "name": "year", "in": "formData", "required": true},
                    {"type": "file", "description": "National id scan (JPEG/PNG)", "name": "nationalIdScan", "in": "formData", "required": true},
                    {"type": "file", "description": "Profile photo (JPEG/PNG)", "name": "profilePhoto", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.Page"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.Page"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.Page"}}
                }
            }
        },
        "/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["student"],
                "summary": "Account status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Page"}},
                    "302": {"description": "Redirect to /login when signed out"}
                }
            }
        },
        "/status/photo": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["student"],
                "summary": "Upload profile photo while pending",
                "parameters": [{"type": "file", "description": "Profile photo (JPEG/PNG)", "name": "file", "in": "formData", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Page"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.Page"}}
                }
            }
        },
        "/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["student"],
                "summary": "Student profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Page"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.Page"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["student"],
                "summary": "Update profile",
                "parameters": [{"description": "Profile fields", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.profileUpdateRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Page"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.Page"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.Page"}}
                }
            }
        },
        "/me/photo": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["student"],
                "summary": "Upload profile photo",
                "parameters": [{"type": "file", "description": "Profile photo (JPEG/PNG)", "name": "file", "in": "formData", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Page"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.Page"}}
                }
            }
        },
        "/admin": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Admin dashboard",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Page"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.Page"}}
                }
            }
        },
        "/admin/pending": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Pending accounts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Page"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.Page"}}
                }
            }
        },
        "/admin/review/{userId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Review account",
                "parameters": [{"type": "string", "description": "User id", "name": "userId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Page"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.Page"}}
                }
            }
        },
        "/admin/review/{userId}/decision": {
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Approve or reject",
                "parameters": [
                    {"type": "string", "description": "User id", "name": "userId", "in": "path", "required": true},
                    {"description": "Decision", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.decisionRequest"}}
                ],
                "responses": {
                    "303": {"description": "Redirect to /admin/pending"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.Page"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.Page"}}
                }
            }
        },
        "/admin/review/{userId}/send-verification": {
            "post": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Send verification email",
                "parameters": [{"type": "string", "description": "User id", "name": "userId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Page"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.Page"}}
                }
            }
        },
        "/admin/review/{userId}/verify-email": {
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Verify email",
                "parameters": [
                    {"type": "string", "description": "User id", "name": "userId", "in": "path", "required": true},
                    {"description": "Verification token", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.verifyEmailRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Page"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.Page"}}
                }
            }
        },
        "/directory": {
            "get": {
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "Student directory",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Page"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.Page"}}
                }
            }
        },
        "/directory/{userId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "Public profile",
                "parameters": [{"type": "string", "description": "User id", "name": "userId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Page"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.Page"}}
                }
            }
        }
    },
    "definitions": {
        "handler.Page": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"type": "string"},
                "notice": {"type": "string"},
                "session": {"$ref": "#/definitions/handler.SessionView"},
                "view": {"type": "string"}
            }
        },
        "handler.SessionView": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "role": {"type": "string"},
                "status": {"type": "string"},
                "userId": {"type": "string"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["identifier", "password"],
            "properties": {
                "identifier": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.profileUpdateRequest": {
            "type": "object",
            "properties": {
                "bio": {"type": "string"},
                "github": {"type": "string"},
                "interests": {"type": "string"},
                "linkedin": {"type": "string"},
                "phone": {"type": "string"},
                "visibility": {"type": "string"}
            }
        },
        "handler.decisionRequest": {
            "type": "object",
            "properties": {
                "approved": {"type": "boolean"},
                "rejectionReason": {"type": "string"}
            }
        },
        "handler.verifyEmailRequest": {
            "type": "object",
            "required": ["token"],
            "properties": {
                "token": {"type": "string"}
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
	Title:            "Campus Card Portal Gateway",
	Description:      "Session-holding gateway in front of the campus card registration API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
