package parseresponse

import "remedypedia/internal/common/validation"

var questionsSchema = validation.MustCompileSchema(`{
	"type": "array",
	"minItems": 6,
	"maxItems": 6,
	"items": {
		"type": "object",
		"required": ["title", "type", "options"],
		"properties": {
			"title": {"type": "string", "minLength": 1},
			"type": {"type": "string", "enum": ["checkbox", "radio"]},
			"options": {
				"type": "array",
				"minItems": 1,
				"items": {"type": "string"}
			}
		}
	}
}`)

var remediesSchema = validation.MustCompileSchema(`{
	"type": "object",
	"required": ["summary", "remedies", "ancientRemedies"],
	"properties": {
		"summary": {"type": "string", "minLength": 1},
		"remedies": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["name", "description", "usage"],
				"properties": {
					"name": {"type": "string", "minLength": 1},
					"description": {"type": "string"},
					"usage": {"type": "string"},
					"warnings": {"type": ["string", "null"]},
					"sources": {
						"type": ["array", "null"],
						"items": {"type": "string"}
					}
				}
			}
		},
		"ancientRemedies": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name", "culture", "traditionalUse", "modernFindings"],
				"properties": {
					"name": {"type": "string", "minLength": 1},
					"culture": {"type": "string"},
					"traditionalUse": {"type": "string"},
					"modernFindings": {"type": "string"}
				}
			}
		}
	}
}`)
