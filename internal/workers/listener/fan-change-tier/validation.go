package fanchangetier

import "fanclub/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"artistId", "newTierId"},
		Properties: map[string]validation.Property{
			"userId": {
				Type:    "string",
				Pattern: validation.IDPattern,
			},
			"artistId": {
				Type:    "string",
				Pattern: validation.IDPattern,
			},
			"newTierId": {
				Type:        "string",
				Description: "Target tier; must belong to the same artist",
				Pattern:     validation.IDPattern,
			},
		},
		AdditionalProperties: true,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"subscription", "previousTierId", "changed"},
		Properties: map[string]validation.Property{
			"subscription":   {Type: "object"},
			"previousTierId": {Type: "string"},
			"changed":        {Type: "boolean"},
			"eventType":      {Type: "string", Enum: []string{"tier_changed"}},
		},
		AdditionalProperties: false,
	}
}
