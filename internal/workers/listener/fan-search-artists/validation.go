package fansearchartists

import "fanclub/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"query": {
				Type:        "string",
				Description: "Artist name fragment; empty lists every artist open to subscriptions",
				MaxLength:   validation.IntPtr(100),
			},
			"limit": {
				Type:    "integer",
				Minimum: validation.FloatPtr(1),
				Maximum: validation.FloatPtr(100),
			},
		},
		AdditionalProperties: true,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"artists", "total"},
		Properties: map[string]validation.Property{
			"artists": {
				Type: "array",
				Items: &validation.Property{
					Type:     "object",
					Required: []string{"id", "name"},
				},
			},
			"total": {Type: "integer", Minimum: validation.FloatPtr(0)},
		},
		AdditionalProperties: false,
	}
}
