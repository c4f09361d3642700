package fancancelsubscription

import "fanclub/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"artistId"},
		Properties: map[string]validation.Property{
			"userId":   {Type: "string", Pattern: validation.IDPattern},
			"artistId": {Type: "string", Pattern: validation.IDPattern},
		},
		AdditionalProperties: true,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"subscription", "eventType"},
		Properties: map[string]validation.Property{
			"subscription": {
				Type:     "object",
				Required: []string{"status", "canceledAt"},
				Properties: map[string]validation.Property{
					"status": {Type: "string", Enum: []string{"canceled"}},
				},
			},
			"eventType": {Type: "string", Enum: []string{"canceled"}},
		},
		AdditionalProperties: false,
	}
}
