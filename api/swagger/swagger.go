package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "School Management API",
        "description": "REST backend for grades, classes, subjects, lessons, exams, assignments, people, announcements and events",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": ["http"],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [{"name": "Grades"}, {"name": "Classes"}, {"name": "Subjects"}, {"name": "Lessons"}, {"name": "Exams"}, {"name": "Assignments"}, {"name": "Teachers"}, {"name": "Students"}, {"name": "Parents"}, {"name": "Announcements"}, {"name": "Events"}, {"name": "Authentication"}, {"name": "Statistics"}],
    "paths": {
        "/health": {
            "get": {"summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/ready": {
            "get": {"summary": "Readiness probe", "responses": {"200": {"description": "Ready"}, "503": {"description": "Store unreachable"}}}
        },
        "/metrics": {
            "get": {"summary": "Prometheus metrics", "produces": ["text/plain"], "responses": {"200": {"description": "OK"}}}
        },
        "/api/auth/login": {
            "post": {"tags": ["Authentication"], "summary": "Authenticate user", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResponse"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/auth/me": {
            "get": {"tags": ["Authentication"], "summary": "Current user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/auth/updatepassword": {
            "put": {"tags": ["Authentication"], "summary": "Change password", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdatePasswordRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/TokenResponse"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/auth/logout": {
            "post": {"tags": ["Authentication"], "summary": "Logout current session", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/auth/logout-all": {
            "post": {"tags": ["Authentication"], "summary": "Logout everywhere", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/grades": {
            "get": {"tags": ["Grades"], "summary": "List grades", "security": [{"BearerAuth": []}], "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}, {"name": "search", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Page"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "post": {"tags": ["Grades"], "summary": "Create grade", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/grades/{id}": {
            "get": {"tags": ["Grades"], "summary": "Get grade", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "put": {"tags": ["Grades"], "summary": "Update grade", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "delete": {"tags": ["Grades"], "summary": "Delete grade", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/classes": {
            "get": {"tags": ["Classes"], "summary": "List classes", "security": [{"BearerAuth": []}], "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}, {"name": "search", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Page"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "post": {"tags": ["Classes"], "summary": "Create class", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/classes/{id}": {
            "get": {"tags": ["Classes"], "summary": "Get class", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "put": {"tags": ["Classes"], "summary": "Update class", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "delete": {"tags": ["Classes"], "summary": "Delete class", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/subjects": {
            "get": {"tags": ["Subjects"], "summary": "List subjects", "security": [{"BearerAuth": []}], "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}, {"name": "search", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Page"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "post": {"tags": ["Subjects"], "summary": "Create subject", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/subjects/{id}": {
            "get": {"tags": ["Subjects"], "summary": "Get subject", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "put": {"tags": ["Subjects"], "summary": "Update subject", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "delete": {"tags": ["Subjects"], "summary": "Delete subject", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/lessons": {
            "get": {"tags": ["Lessons"], "summary": "List lessons", "security": [{"BearerAuth": []}], "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}, {"name": "search", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Page"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "post": {"tags": ["Lessons"], "summary": "Create lesson", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/lessons/{id}": {
            "get": {"tags": ["Lessons"], "summary": "Get lesson", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "put": {"tags": ["Lessons"], "summary": "Update lesson", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "delete": {"tags": ["Lessons"], "summary": "Delete lesson", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/exams": {
            "get": {"tags": ["Exams"], "summary": "List exams", "security": [{"BearerAuth": []}], "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}, {"name": "search", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Page"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "post": {"tags": ["Exams"], "summary": "Create exam", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/exams/{id}": {
            "get": {"tags": ["Exams"], "summary": "Get exam", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "put": {"tags": ["Exams"], "summary": "Update exam", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "delete": {"tags": ["Exams"], "summary": "Delete exam", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/assignments": {
            "get": {"tags": ["Assignments"], "summary": "List assignments", "security": [{"BearerAuth": []}], "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}, {"name": "search", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Page"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "post": {"tags": ["Assignments"], "summary": "Create assignment", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/assignments/{id}": {
            "get": {"tags": ["Assignments"], "summary": "Get assignment", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "put": {"tags": ["Assignments"], "summary": "Update assignment", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "delete": {"tags": ["Assignments"], "summary": "Delete assignment", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/teachers": {
            "get": {"tags": ["Teachers"], "summary": "List teachers", "security": [{"BearerAuth": []}], "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}, {"name": "search", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Page"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "post": {"tags": ["Teachers"], "summary": "Create teacher", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/teachers/{id}": {
            "get": {"tags": ["Teachers"], "summary": "Get teacher", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "put": {"tags": ["Teachers"], "summary": "Update teacher", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "delete": {"tags": ["Teachers"], "summary": "Delete teacher", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/students": {
            "get": {"tags": ["Students"], "summary": "List students", "security": [{"BearerAuth": []}], "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}, {"name": "search", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Page"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "post": {"tags": ["Students"], "summary": "Create student", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/students/{id}": {
            "get": {"tags": ["Students"], "summary": "Get student", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "put": {"tags": ["Students"], "summary": "Update student", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "delete": {"tags": ["Students"], "summary": "Delete student", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/parents": {
            "get": {"tags": ["Parents"], "summary": "List parents", "security": [{"BearerAuth": []}], "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}, {"name": "search", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Page"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "post": {"tags": ["Parents"], "summary": "Create parent", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/parents/{id}": {
            "get": {"tags": ["Parents"], "summary": "Get parent", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "put": {"tags": ["Parents"], "summary": "Update parent", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "delete": {"tags": ["Parents"], "summary": "Delete parent", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/announcements": {
            "get": {"tags": ["Announcements"], "summary": "List announcements", "security": [{"BearerAuth": []}], "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}, {"name": "search", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Page"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "post": {"tags": ["Announcements"], "summary": "Create announcement", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/announcements/{id}": {
            "get": {"tags": ["Announcements"], "summary": "Get announcement", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "put": {"tags": ["Announcements"], "summary": "Update announcement", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "delete": {"tags": ["Announcements"], "summary": "Delete announcement", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/events": {
            "get": {"tags": ["Events"], "summary": "List events", "security": [{"BearerAuth": []}], "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}, {"name": "search", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Page"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "post": {"tags": ["Events"], "summary": "Create event", "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/events/{id}": {
            "get": {"tags": ["Events"], "summary": "Get event", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "put": {"tags": ["Events"], "summary": "Update event", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}},
            "delete": {"tags": ["Events"], "summary": "Delete event", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/exams/export": {
            "get": {"tags": ["Exams"], "summary": "Export exams", "security": [{"BearerAuth": []}], "produces": ["text/csv", "application/pdf"], "parameters": [{"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}], "responses": {"200": {"description": "File"}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/statistics/counts": {
            "get": {"tags": ["Statistics"], "summary": "Entity counts", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "500": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        },
        "/api/statistics/system": {
            "get": {"tags": ["Statistics"], "summary": "Process metrics snapshot", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/Failure"}}}}
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password", "role"],
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}, "role": {"type": "string", "enum": ["admin", "teacher", "student", "parent"]}}
        },
        "LoginResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "token": {"type": "string"}, "user": {"type": "object"}}
        },
        "UpdatePasswordRequest": {
            "type": "object",
            "required": ["currentPassword", "newPassword"],
            "properties": {"currentPassword": {"type": "string"}, "newPassword": {"type": "string", "minLength": 6}}
        },
        "TokenResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "token": {"type": "string"}}
        },
        "Envelope": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "data": {"type": "object"}}
        },
        "Page": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "count": {"type": "integer"}, "totalPages": {"type": "integer"}, "currentPage": {"type": "integer"}, "data": {"type": "array", "items": {"type": "object"}}}
        },
        "Failure": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "error": {"type": "string"}, "code": {"type": "string"}}
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
