package artistmanagetier

import "fanclub/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"action"},
		Properties: map[string]validation.Property{
			"action": {
				Type: "string",
				Enum: []string{string(ActionCreate), string(ActionUpdate), string(ActionDelete)},
			},
			"artistId": {Type: "string", Pattern: validation.IDPattern},
			"tierId":   {Type: "string", Pattern: validation.IDPattern},
			"name": {
				Type:      "string",
				MinLength: validation.IntPtr(1),
				MaxLength: validation.IntPtr(60),
			},
			"priceMonthly": {
				Type:        "number",
				Description: "Monthly price in USD",
				Minimum:     validation.FloatPtr(0.01),
				Maximum:     validation.FloatPtr(999.99),
			},
			"tagline":     {Type: "string", MaxLength: validation.IntPtr(120)},
			"description": {Type: "string", MaxLength: validation.IntPtr(2000)},
			"features": {
				Type:     "array",
				MaxItems: validation.IntPtr(20),
				Items:    &validation.Property{Type: "string"},
			},
			"contentPreview": {
				Type: "array",
				Items: &validation.Property{
					Type:     "object",
					Required: []string{"type", "title"},
					Properties: map[string]validation.Property{
						"type":  {Type: "string", Enum: []string{"clip", "playlist", "merch", "early-access"}},
						"title": {Type: "string", MinLength: validation.IntPtr(1)},
					},
				},
			},
			"highlight": {
				Type: "string",
				Enum: []string{"", "Most Popular", "Best Value"},
			},
		},
		AdditionalProperties: true,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"action", "tierId", "tierCount"},
		Properties: map[string]validation.Property{
			"action":    {Type: "string"},
			"tierId":    {Type: "string"},
			"tier":      {Type: "object", Required: []string{"id", "artistId", "name", "priceMonthly"}},
			"tierCount": {Type: "integer", Minimum: validation.FloatPtr(0)},
		},
		AdditionalProperties: false,
	}
}
