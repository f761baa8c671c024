package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Kairos API",
        "description": "Registration intake and administration for Kairos cohorts",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Webhooks", "description": "Form platform callbacks"},
        {"name": "Cohorts", "description": "Cohort lifecycle"},
        {"name": "Participants", "description": "Cohort rosters"},
        {"name": "Stats", "description": "Capacity counters"},
        {"name": "Admins", "description": "Admin accounts and approval"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/webhooks/tally": {
            "post": {
                "tags": ["Webhooks"],
                "summary": "Receive a Tally form submission",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TallyWebhookPayload"}}
                ],
                "responses": {
                    "200": {"description": "Processed", "schema": {"$ref": "#/definitions/IntakeResponse"}},
                    "400": {"description": "No active cohort", "schema": {"$ref": "#/definitions/IntakeError"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/IntakeError"}}
                }
            }
        },
        "/api/v1/public/cohort-stats": {
            "get": {
                "tags": ["Stats"],
                "summary": "Active cohort capacity",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/PublicCohortStats"}}
                }
            }
        },
        "/api/v1/auth/session": {
            "post": {
                "tags": ["Admins"],
                "summary": "Register the signed-in identity",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Existing admin", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "201": {"description": "Pending admin created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/me": {
            "get": {
                "tags": ["Admins"],
                "summary": "Current admin",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/admins": {
            "get": {
                "tags": ["Admins"],
                "summary": "List admin accounts",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/admins/{id}/approval": {
            "patch": {
                "tags": ["Admins"],
                "summary": "Approve or revoke an admin account",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ApprovalRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Self or main admin target", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/cohorts": {
            "get": {
                "tags": ["Cohorts"],
                "summary": "List cohorts",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Cohorts"],
                "summary": "Create cohort",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CohortRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/cohorts/active": {
            "get": {
                "tags": ["Cohorts"],
                "summary": "Get the active cohort",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No active cohort", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/cohorts/{id}": {
            "put": {
                "tags": ["Cohorts"],
                "summary": "Update cohort",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CohortRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Cohorts"],
                "summary": "Delete cohort and its participants",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/v1/cohorts/{id}/activate": {
            "post": {
                "tags": ["Cohorts"],
                "summary": "Make a cohort the active one",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown cohort", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/cohorts/{id}/stats": {
            "get": {
                "tags": ["Stats"],
                "summary": "Cohort counters",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/cohorts/{id}/participants": {
            "get": {
                "tags": ["Participants"],
                "summary": "List participants of a cohort",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["expressed_interest", "confirmed", "denied"]},
                    {"name": "form", "in": "query", "type": "string", "enum": ["completed", "pending"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Participants"],
                "summary": "Add a participant to a cohort",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateParticipantRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/cohorts/{id}/participants/export": {
            "get": {
                "tags": ["Participants"],
                "summary": "Download the cohort roster",
                "produces": ["text/csv", "application/pdf"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "form", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Roster file", "schema": {"type": "file"}}
                }
            }
        },
        "/api/v1/participants/{id}": {
            "get": {
                "tags": ["Participants"],
                "summary": "Get participant details",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Participants"],
                "summary": "Delete participant",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/v1/participants/{id}/status": {
            "patch": {
                "tags": ["Participants"],
                "summary": "Change participant status",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"status": {"type": "string"}}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/participants/{id}/form": {
            "patch": {
                "tags": ["Participants"],
                "summary": "Toggle the form completed flag",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"form_completed": {"type": "boolean"}}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "TallyField": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "label": {"type": "string"},
                "type": {"type": "string"},
                "value": {}
            }
        },
        "TallyWebhookPayload": {
            "type": "object",
            "properties": {
                "eventId": {"type": "string"},
                "eventType": {"type": "string"},
                "createdAt": {"type": "string"},
                "data": {
                    "type": "object",
                    "properties": {
                        "submissionId": {"type": "string"},
                        "formId": {"type": "string"},
                        "fields": {"type": "array", "items": {"$ref": "#/definitions/TallyField"}}
                    }
                }
            }
        },
        "IntakeResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "matched": {"type": "boolean"},
                "participantId": {"type": "string"}
            }
        },
        "IntakeError": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "PublicCohortStats": {
            "type": "object",
            "properties": {
                "cohort": {"type": "object"},
                "confirmedCount": {"type": "integer"},
                "capacity": {"type": "integer"},
                "isFull": {"type": "boolean"}
            }
        },
        "CohortRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "capacity": {"type": "integer"}
            }
        },
        "CreateParticipantRequest": {
            "type": "object",
            "required": ["name", "contact"],
            "properties": {
                "name": {"type": "string"},
                "contact": {"type": "string"}
            }
        },
        "ApprovalRequest": {
            "type": "object",
            "required": ["is_approved"],
            "properties": {
                "is_approved": {"type": "boolean"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
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
