package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Course Planner API",
        "description": "Term planning, conflict detection, and calendar projection",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Terms", "description": "Term resolution and registrar code mapping"},
        {"name": "Sections", "description": "Catalog section search and classification"},
        {"name": "Plan", "description": "Committed sections and unavailable blocks"},
        {"name": "Conflicts", "description": "Term conflict reports"},
        {"name": "Calendar", "description": "Materialized calendars and ICS feeds"},
        {"name": "Courses", "description": "Catalog courses and completed coursework"},
        {"name": "Export", "description": "Schedule downloads"}
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
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/terms": {
            "get": {
                "tags": ["Terms"],
                "summary": "List terms",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/terms/resolve": {
            "post": {
                "tags": ["Terms"],
                "summary": "Resolve a term by season and year",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ResolveTermRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/terms/code": {
            "get": {
                "tags": ["Terms"],
                "summary": "Map season and year to a registrar code",
                "parameters": [
                    {"name": "season", "in": "query", "type": "string", "required": true},
                    {"name": "year", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/terms/decode/{code}": {
            "get": {
                "tags": ["Terms"],
                "summary": "Decode a registrar term code",
                "parameters": [
                    {"name": "code", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/sections": {
            "get": {
                "tags": ["Sections"],
                "summary": "Search catalog sections",
                "parameters": [
                    {"name": "term", "in": "query", "type": "string"},
                    {"name": "course_id", "in": "query", "type": "string"},
                    {"name": "q", "in": "query", "type": "string"},
                    {"name": "term_id", "in": "query", "type": "string"},
                    {"name": "hide_course_clashes", "in": "query", "type": "boolean"},
                    {"name": "hide_block_clashes", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sections/{crn}": {
            "get": {
                "tags": ["Sections"],
                "summary": "Get a catalog section",
                "parameters": [
                    {"name": "crn", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/sections/{crn}/conflicts": {
            "get": {
                "tags": ["Sections"],
                "summary": "Classify a section against a term plan",
                "parameters": [
                    {"name": "crn", "in": "path", "type": "string", "required": true},
                    {"name": "term_id", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/terms/{id}/plan": {
            "get": {
                "tags": ["Plan"],
                "summary": "List planned sections",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/terms/{id}/plan/courses": {
            "post": {
                "tags": ["Plan"],
                "summary": "Commit a section to the plan",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddCourseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "404": {"description": "Not found"},
                    "409": {"description": "Already planned"}
                }
            }
        },
        "/terms/{id}/plan/courses/{crn}": {
            "delete": {
                "tags": ["Plan"],
                "summary": "Remove a planned section",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "crn", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Removed"}
                }
            }
        },
        "/terms/{id}/blocks": {
            "post": {
                "tags": ["Plan"],
                "summary": "Create an unavailable block",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateBlockRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation error"},
                    "412": {"description": "Block limit reached"}
                }
            }
        },
        "/terms/{id}/blocks/{eventId}": {
            "put": {
                "tags": ["Plan"],
                "summary": "Move or rename an unavailable block",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "eventId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "412": {"description": "Course events cannot be edited"}
                }
            },
            "delete": {
                "tags": ["Plan"],
                "summary": "Delete an unavailable block",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "eventId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Removed"}
                }
            }
        },
        "/terms/{id}/conflicts": {
            "get": {
                "tags": ["Conflicts"],
                "summary": "Full conflict report",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/terms/{id}/conflicts/summary": {
            "get": {
                "tags": ["Conflicts"],
                "summary": "Conflict counts by type",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/terms/{id}/calendar": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Calendar events for a term",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/terms/{id}/calendar.ics": {
            "get": {
                "tags": ["Calendar"],
                "summary": "iCalendar feed",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "ICS payload"}
                }
            }
        },
        "/terms/{id}/export": {
            "get": {
                "tags": ["Export"],
                "summary": "Export the term schedule",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf", "xlsx"]}
                ],
                "responses": {
                    "200": {"description": "File payload"},
                    "400": {"description": "Unsupported format"}
                }
            }
        },
        "/courses/{id}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get a course",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/courses/{id}/corequisites": {
            "get": {
                "tags": ["Courses"],
                "summary": "List corequisites",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/courses/{id}/completed": {
            "put": {
                "tags": ["Courses"],
                "summary": "Flag coursework as taken",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MarkCompletedRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        },
        "ResolveTermRequest": {
            "type": "object",
            "required": ["season", "year"],
            "properties": {
                "season": {"type": "string", "enum": ["Fall", "Winter", "Spring", "Summer"]},
                "year": {"type": "integer"}
            }
        },
        "AddCourseRequest": {
            "type": "object",
            "required": ["crn"],
            "properties": {
                "crn": {"type": "string"}
            }
        },
        "CreateBlockRequest": {
            "type": "object",
            "required": ["start", "end"],
            "properties": {
                "title": {"type": "string"},
                "start": {"type": "string", "format": "date-time"},
                "end": {"type": "string", "format": "date-time"}
            }
        },
        "MarkCompletedRequest": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "title": {"type": "string"},
                "completed": {"type": "boolean"}
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
