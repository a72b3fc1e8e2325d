// Package swagger registers the OpenAPI document served under /swagger.
// It is kept by hand in swag's registration format and must list every
// route of the compare feature; cmd's server tests check that it does.
package swagger

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
        "/compare": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Compares two sources, or two sheets of one workbook, by a key column. Optionally writes the CSV report.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["compare"],
                "summary": "Compare Tables",
                "parameters": [
                    {
                        "description": "Comparison parameters",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/diff.Params"}
                    }
                ],
                "responses": {
                    "200": {"description": "Comparison Result", "schema": {"$ref": "#/definitions/compare.CompareResponse"}},
                    "400": {"description": "Invalid Parameters", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "422": {"description": "Key Or Columns Not Comparable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Source Could Not Be Loaded", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/compare/jobs": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Validates the parameters and runs the comparison in the background. Poll the returned job id.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["compare"],
                "summary": "Submit Comparison Job",
                "parameters": [
                    {
                        "description": "Comparison parameters",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/diff.Params"}
                    }
                ],
                "responses": {
                    "202": {"description": "Submitted Job", "schema": {"$ref": "#/definitions/compare.Job"}},
                    "400": {"description": "Invalid Parameters", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/compare/jobs/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Returns the status of a submitted comparison and its result once finished.",
                "produces": ["application/json"],
                "tags": ["compare"],
                "summary": "Get Comparison Job",
                "parameters": [
                    {"type": "string", "description": "Job ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Job", "schema": {"$ref": "#/definitions/compare.Job"}},
                    "404": {"description": "Job Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/compare/runs": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Lists recorded comparisons, newest first.",
                "produces": ["application/json"],
                "tags": ["compare"],
                "summary": "List Comparison Runs",
                "parameters": [
                    {"type": "integer", "default": 50, "description": "Maximum number of runs", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Runs", "schema": {"type": "array", "items": {"$ref": "#/definitions/history.Run"}}},
                    "404": {"description": "History Disabled", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/compare/runs/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Returns a recorded comparison by id.",
                "produces": ["application/json"],
                "tags": ["compare"],
                "summary": "Get Comparison Run",
                "parameters": [
                    {"type": "string", "description": "Run ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Run", "schema": {"$ref": "#/definitions/history.Run"}},
                    "404": {"description": "Run Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "compare.CompareResponse": {
            "type": "object",
            "properties": {
                "report_location": {"type": "string"},
                "result": {"$ref": "#/definitions/diff.Result"},
                "summary": {"$ref": "#/definitions/diff.Summary"}
            }
        },
        "compare.Job": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "id": {"type": "string"},
                "result": {"$ref": "#/definitions/diff.Result"},
                "status": {"type": "string", "enum": ["pending", "succeeded", "failed"]},
                "submitted_at": {"type": "string"}
            }
        },
        "diff.ColumnDiff": {
            "type": "object",
            "properties": {
                "column": {"type": "string"},
                "value_a": {},
                "value_b": {}
            }
        },
        "diff.Duplicates": {
            "type": "object",
            "properties": {
                "a": {"type": "integer"},
                "b": {"type": "integer"}
            }
        },
        "diff.Mismatch": {
            "type": "object",
            "properties": {
                "columns": {"type": "array", "items": {"$ref": "#/definitions/diff.ColumnDiff"}},
                "detail": {"type": "string"},
                "key": {}
            }
        },
        "diff.Params": {
            "type": "object",
            "properties": {
                "delimiter": {"type": "string"},
                "key_column": {"type": "string"},
                "kind": {"type": "string", "enum": ["spreadsheet", "delimited"]},
                "mode": {"type": "string", "enum": ["sources", "partitions"]},
                "partition_a": {"type": "string"},
                "partition_b": {"type": "string"},
                "report_path": {"type": "string"},
                "single_source": {"type": "string"},
                "source_a": {"type": "string"},
                "source_b": {"type": "string"},
                "write_report": {"type": "boolean"}
            }
        },
        "diff.Result": {
            "type": "object",
            "properties": {
                "common_columns": {"type": "array", "items": {"type": "string"}},
                "description": {"type": "string"},
                "duplicates": {"$ref": "#/definitions/diff.Duplicates"},
                "generated_at": {"type": "string"},
                "identical": {"type": "array", "items": {}},
                "key_column": {"type": "string"},
                "mismatches": {"type": "array", "items": {"$ref": "#/definitions/diff.Mismatch"}},
                "mode": {"type": "string"},
                "not_in_a": {"type": "array", "items": {}},
                "not_in_b": {"type": "array", "items": {}},
                "source_a": {"$ref": "#/definitions/diff.SourceInfo"},
                "source_b": {"$ref": "#/definitions/diff.SourceInfo"}
            }
        },
        "diff.SourceInfo": {
            "type": "object",
            "properties": {
                "location": {"type": "string"},
                "name": {"type": "string"},
                "partition": {"type": "string"},
                "rows": {"type": "integer"}
            }
        },
        "diff.Summary": {
            "type": "object",
            "properties": {
                "identical": {"type": "integer"},
                "mismatched": {"type": "integer"},
                "not_in_a": {"type": "integer"},
                "not_in_b": {"type": "integer"}
            }
        },
        "history.Run": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "description": {"type": "string"},
                "duplicates_a": {"type": "integer"},
                "duplicates_b": {"type": "integer"},
                "error": {"type": "string"},
                "id": {"type": "string"},
                "identical": {"type": "integer"},
                "key_column": {"type": "string"},
                "mismatched": {"type": "integer"},
                "mode": {"type": "string"},
                "not_in_a": {"type": "integer"},
                "not_in_b": {"type": "integer"},
                "partition_a": {"type": "string"},
                "partition_b": {"type": "string"},
                "report_location": {"type": "string"},
                "source_a": {"type": "string"},
                "source_b": {"type": "string"},
                "status": {"type": "string", "enum": ["succeeded", "failed"]}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "tablediff API",
	Description:      "Key-based comparison of spreadsheets and delimited files.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
