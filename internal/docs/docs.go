// Package docs registers the OpenAPI description served at /swagger/doc.json.
// The template follows the swag generator layout; keep it in sync with the handler annotations.
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
        "/dimensions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List the five personality dimensions with their state texts",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/questions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List the question bank",
                "parameters": [
                    {"type": "string", "description": "Only questions of this dimension", "name": "dimension", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Unknown dimension"}}
            }
        },
        "/mastery/options": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List ambitions, creative states and mastery metrics",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/results": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Score an answer set and resolve its profile",
                "parameters": [
                    {"description": "Answers by question id", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ResultsRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid answers"}}
            }
        },
        "/insights": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Generate mastery insights from scores, states and selections",
                "parameters": [
                    {"description": "Scores, states and selections", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/InsightsRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid request body"}}
            }
        },
        "/stats/profiles": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Most frequent profiles among completed sessions",
                "parameters": [{"type": "integer", "description": "Rows to return (default 10, max 50)", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid limit"}}
            }
        },
        "/stats/profiles/{key}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Count and rank of one profile among completed sessions",
                "parameters": [{"type": "string", "name": "key", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Unknown profile"}}
            }
        },
        "/sessions": {
            "post": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Start a quiz session",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/sessions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Get a session",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "tags": ["sessions"],
                "summary": "Delete a session and close its live stream",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No content"}, "404": {"description": "Not found"}}
            }
        },
        "/sessions/{id}/answers/{questionId}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Record one slider answer and return the preview results",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "questionId", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AnswerRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid answer"}, "404": {"description": "Not found"}}
            }
        },
        "/sessions/{id}/mastery": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Store mastery selections and return insights",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MasterySelections"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid selection"}, "404": {"description": "Not found"}}
            }
        },
        "/sessions/{id}/results": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Compute results and move the session to the results step",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/sessions/{id}/insights": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Mastery insights for a session with selections",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}, "409": {"description": "Mastery not selected"}}
            }
        },
        "/sessions/{id}/progress": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Answered and total questions per dimension",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        }
    },
    "definitions": {
        "ResultsRequest": {
            "type": "object",
            "properties": {
                "answers": {"type": "object", "additionalProperties": {"type": "integer", "minimum": 0, "maximum": 100}}
            }
        },
        "AnswerRequest": {
            "type": "object",
            "properties": {"value": {"type": "integer", "minimum": 0, "maximum": 100}}
        },
        "MasterySelections": {
            "type": "object",
            "properties": {
                "ambition": {"type": "string", "enum": ["Precision", "Expansion", "Influence", "Freedom", "Legacy"]},
                "creativeState": {"type": "string", "enum": ["Flow", "Focus", "Inspiration", "Ease"]},
                "masteryMetric": {"type": "string", "enum": ["Consistency", "Breakthroughs", "Fulfillment", "Recognition"]}
            }
        },
        "InsightsRequest": {
            "type": "object",
            "properties": {
                "dimensionScores": {"type": "object", "additionalProperties": {"type": "number"}},
                "dimensionStates": {"type": "object", "additionalProperties": {"type": "string", "enum": ["left", "balanced", "right"]}},
                "selections": {"$ref": "#/definitions/MasterySelections"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Creative Mastery API",
	Description:      "Personality quiz scoring, profile resolution and mastery insights.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
