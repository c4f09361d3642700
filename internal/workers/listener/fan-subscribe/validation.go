package fansubscribe

import "fanclub/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"artistId", "tierId"},
		Properties: map[string]validation.Property{
			"userId": {
				Type:        "string",
				Description: "Subscribing user; the signed-in user when omitted",
				Pattern:     validation.IDPattern,
			},
			"artistId": {
				Type:        "string",
				Description: "Artist to subscribe to",
				Pattern:     validation.IDPattern,
			},
			"tierId": {
				Type:        "string",
				Description: "Tier of that artist",
				Pattern:     validation.IDPattern,
			},
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
				Required: []string{"userId", "artistId", "tierId", "status", "startDate"},
			},
			"eventType": {
				Type: "string",
				Enum: []string{"subscribed"},
			},
		},
		AdditionalProperties: false,
	}
}
