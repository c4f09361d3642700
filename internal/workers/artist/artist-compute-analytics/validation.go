package artistcomputeanalytics

import "fanclub/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"artistId"},
		Properties: map[string]validation.Property{
			"artistId": {Type: "string", Pattern: validation.IDPattern},
			"refresh": {
				Type:        "boolean",
				Description: "Recompute even when a cached snapshot exists",
			},
		},
		AdditionalProperties: true,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"analytics", "cached"},
		Properties: map[string]validation.Property{
			"analytics": {
				Type:     "object",
				Required: []string{"artistId", "totalSubscribers", "mrr", "churnRate", "subscribersByTier", "revenueHistory"},
				Properties: map[string]validation.Property{
					"totalSubscribers": {Type: "integer", Minimum: validation.FloatPtr(0)},
					"mrr":              {Type: "number", Minimum: validation.FloatPtr(0)},
					"churnRate":        {Type: "number", Minimum: validation.FloatPtr(0), Maximum: validation.FloatPtr(100)},
				},
			},
			"cached": {Type: "boolean"},
		},
		AdditionalProperties: false,
	}
}
