package fannotifysubscription

import "fanclub/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"eventType"},
		Properties: map[string]validation.Property{
			"eventType": {
				Type: "string",
				Enum: []string{"subscribed", "tier_changed", "canceled"},
			},
			"subscription": {
				Type:     "object",
				Required: []string{"userId", "artistId", "tierId"},
			},
			"userId":   {Type: "string", Pattern: validation.IDPattern},
			"artistId": {Type: "string", Pattern: validation.IDPattern},
			"tierId":   {Type: "string", Pattern: validation.IDPattern},
		},
		AdditionalProperties: true,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"notification"},
		Properties: map[string]validation.Property{
			"notification": {
				Type:     "object",
				Required: []string{"notificationId", "emailStatus", "eventStatus", "sentAt"},
				Properties: map[string]validation.Property{
					"emailStatus": {Type: "string", Enum: []string{"sent", "failed", "disabled", "skipped"}},
					"eventStatus": {Type: "string", Enum: []string{"sent", "failed", "disabled", "skipped"}},
				},
			},
		},
		AdditionalProperties: false,
	}
}
