// Package docs holds the OpenAPI document served under /swagger.
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
        "/auth/register": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Register a new student",
                "parameters": [
                    {
                        "description": "Registration information",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.RegisterRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/dto.AuthResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid request format",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Email already exists",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Log in",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/dto.AuthResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Invalid credentials",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/auth/me": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Current account",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/dto.AccountResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/profile": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "profile"
                ],
                "summary": "Get own profile",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/dto.ProfileResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Profile not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "profile"
                ],
                "summary": "Save own profile",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Profile",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ProfileRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/dto.SaveProfileResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid profile",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Recommendations could not be saved",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/recommendations": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "recommendations"
                ],
                "summary": "List own recommendations",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "maximum": 100,
                        "minimum": 1,
                        "type": "integer",
                        "description": "Maximum number of entries",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/dto.RecommendationListResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/recommendations/refresh": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "recommendations"
                ],
                "summary": "Refresh own recommendations",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/dto.RefreshResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "500": {
                        "description": "Recommendations could not be saved",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/recommendations/preview": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "recommendations"
                ],
                "summary": "Preview own recommendations",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/dto.PreviewMatch"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/scholarships": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "scholarships"
                ],
                "summary": "List scholarships",
                "parameters": [
                    {
                        "type": "integer",
                        "default": 1,
                        "description": "Page number",
                        "name": "page",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "default": 10,
                        "description": "Page size",
                        "name": "size",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/dto.ScholarshipListResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "scholarships"
                ],
                "summary": "Create a scholarship",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Scholarship",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateScholarshipRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/dto.ScholarshipResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid scholarship",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Admin role required",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/scholarships/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "scholarships"
                ],
                "summary": "Get scholarship details",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Scholarship ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/dto.ScholarshipResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Scholarship not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "scholarships"
                ],
                "summary": "Delete a scholarship",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Scholarship ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "403": {
                        "description": "Admin role required",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Scholarship not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "dto.APIResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean",
                    "example": true
                },
                "data": {},
                "error": {
                    "$ref": "#/definitions/dto.ErrorDetail"
                },
                "timestamp": {
                    "type": "string"
                }
            }
        },
        "dto.AccountResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "roleType": {
                    "type": "string",
                    "example": "STUDENT"
                }
            }
        },
        "dto.AuthResponse": {
            "type": "object",
            "properties": {
                "token": {
                    "$ref": "#/definitions/dto.TokenResponse"
                },
                "account": {
                    "$ref": "#/definitions/dto.AccountResponse"
                }
            }
        },
        "dto.CreateScholarshipRequest": {
            "type": "object",
            "required": [
                "deadline",
                "educationLevel",
                "provider",
                "scholarshipType",
                "title"
            ],
            "properties": {
                "title": {
                    "type": "string"
                },
                "provider": {
                    "type": "string"
                },
                "amount": {
                    "type": "number"
                },
                "deadline": {
                    "type": "string",
                    "example": "2026-12-31"
                },
                "description": {
                    "type": "string"
                },
                "eligibility": {
                    "type": "string"
                },
                "applicationProcess": {
                    "type": "string"
                },
                "website": {
                    "type": "string"
                },
                "scholarshipType": {
                    "type": "string",
                    "example": "merit"
                },
                "minCgpa": {
                    "type": "number"
                },
                "minAge": {
                    "type": "integer"
                },
                "maxAge": {
                    "type": "integer"
                },
                "incomeMin": {
                    "type": "number"
                },
                "incomeMax": {
                    "type": "number"
                },
                "citizenshipRequirements": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "fieldOfStudyRequirements": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "minorityPreferences": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "disabilityPreferences": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "educationLevel": {
                    "type": "string",
                    "enum": [
                        "high_school",
                        "undergraduate",
                        "graduate",
                        "phd",
                        "any"
                    ]
                }
            }
        },
        "dto.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string",
                    "example": "AUTH_001"
                },
                "message": {
                    "type": "string",
                    "example": "Email format is invalid"
                },
                "field": {
                    "type": "string",
                    "example": "email"
                },
                "severity": {
                    "type": "string",
                    "example": "ERROR"
                },
                "details": {},
                "debugInfo": {
                    "type": "string"
                }
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean",
                    "example": false
                },
                "error": {
                    "$ref": "#/definitions/dto.ErrorDetail"
                },
                "timestamp": {
                    "type": "string",
                    "example": "2026-04-23T12:01:05.123Z"
                }
            }
        },
        "dto.LoginRequest": {
            "type": "object",
            "required": [
                "email",
                "password"
            ],
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            }
        },
        "dto.PaginationInfo": {
            "type": "object",
            "properties": {
                "currentPage": {
                    "type": "integer"
                },
                "totalPages": {
                    "type": "integer"
                },
                "pageSize": {
                    "type": "integer"
                },
                "totalItems": {
                    "type": "integer"
                }
            }
        },
        "dto.PreviewMatch": {
            "type": "object",
            "properties": {
                "scholarshipId": {
                    "type": "integer"
                },
                "score": {
                    "type": "integer"
                },
                "reasons": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "fallback": {
                    "type": "boolean"
                }
            }
        },
        "dto.ProfileRequest": {
            "type": "object",
            "required": [
                "educationLevel"
            ],
            "properties": {
                "dateOfBirth": {
                    "type": "string",
                    "example": "2004-05-17"
                },
                "gender": {
                    "type": "string"
                },
                "nationality": {
                    "type": "string"
                },
                "citizenship": {
                    "type": "string"
                },
                "educationLevel": {
                    "type": "string",
                    "enum": [
                        "high_school",
                        "undergraduate",
                        "graduate",
                        "phd"
                    ]
                },
                "fieldOfStudy": {
                    "type": "string"
                },
                "cgpa": {
                    "type": "number",
                    "maximum": 10,
                    "minimum": 0
                },
                "graduationYear": {
                    "type": "integer",
                    "maximum": 2100,
                    "minimum": 1900
                },
                "familyIncome": {
                    "type": "number",
                    "minimum": 0
                },
                "financialAidNeeded": {
                    "type": "boolean"
                },
                "extracurriculars": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "achievements": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "disabilities": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "minorityGroups": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "dto.ProfileResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "accountId": {
                    "type": "integer"
                },
                "dateOfBirth": {
                    "type": "string"
                },
                "age": {
                    "type": "integer"
                },
                "gender": {
                    "type": "string"
                },
                "nationality": {
                    "type": "string"
                },
                "citizenship": {
                    "type": "string"
                },
                "educationLevel": {
                    "type": "string"
                },
                "fieldOfStudy": {
                    "type": "string"
                },
                "cgpa": {
                    "type": "number"
                },
                "graduationYear": {
                    "type": "integer"
                },
                "familyIncome": {
                    "type": "number"
                },
                "financialAidNeeded": {
                    "type": "boolean"
                },
                "extracurriculars": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "achievements": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "disabilities": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "minorityGroups": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "updatedAt": {
                    "type": "string"
                }
            }
        },
        "dto.RecommendationListResponse": {
            "type": "object",
            "properties": {
                "recommendations": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.RecommendationResponse"
                    }
                },
                "count": {
                    "type": "integer"
                }
            }
        },
        "dto.RecommendationResponse": {
            "type": "object",
            "properties": {
                "scholarshipId": {
                    "type": "integer"
                },
                "matchScore": {
                    "type": "integer",
                    "example": 85
                },
                "reasons": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "createdAt": {
                    "type": "string"
                },
                "scholarship": {
                    "$ref": "#/definitions/dto.ScholarshipResponse"
                }
            }
        },
        "dto.RefreshResponse": {
            "type": "object",
            "properties": {
                "count": {
                    "type": "integer",
                    "example": 4
                }
            }
        },
        "dto.RegisterRequest": {
            "type": "object",
            "required": [
                "email",
                "name",
                "password"
            ],
            "properties": {
                "name": {
                    "type": "string",
                    "maxLength": 150
                },
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string",
                    "minLength": 8
                }
            }
        },
        "dto.SaveProfileResponse": {
            "type": "object",
            "properties": {
                "profile": {
                    "$ref": "#/definitions/dto.ProfileResponse"
                },
                "recommendations": {
                    "type": "integer"
                }
            }
        },
        "dto.ScholarshipListResponse": {
            "type": "object",
            "properties": {
                "scholarships": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ScholarshipResponse"
                    }
                },
                "pagination": {
                    "$ref": "#/definitions/dto.PaginationInfo"
                }
            }
        },
        "dto.ScholarshipResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "title": {
                    "type": "string"
                },
                "provider": {
                    "type": "string"
                },
                "amount": {
                    "type": "number"
                },
                "deadline": {
                    "type": "string",
                    "example": "2026-12-31"
                },
                "description": {
                    "type": "string"
                },
                "eligibility": {
                    "type": "string"
                },
                "applicationProcess": {
                    "type": "string"
                },
                "website": {
                    "type": "string"
                },
                "scholarshipType": {
                    "type": "string",
                    "example": "merit"
                },
                "minCgpa": {
                    "type": "number"
                },
                "minAge": {
                    "type": "integer"
                },
                "maxAge": {
                    "type": "integer"
                },
                "incomeMin": {
                    "type": "number"
                },
                "incomeMax": {
                    "type": "number"
                },
                "citizenshipRequirements": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "fieldOfStudyRequirements": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "minorityPreferences": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "disabilityPreferences": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "educationLevel": {
                    "type": "string"
                },
                "deadlineApproaching": {
                    "type": "boolean"
                },
                "expired": {
                    "type": "boolean"
                }
            }
        },
        "dto.SuccessResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                }
            }
        },
        "dto.TokenResponse": {
            "type": "object",
            "properties": {
                "accessToken": {
                    "type": "string"
                },
                "tokenType": {
                    "type": "string",
                    "example": "Bearer"
                },
                "expiresIn": {
                    "type": "integer"
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT token for authorization",
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
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "ScholarMatch API",
	Description:      "Scholarship catalog and rule-based recommendation API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
