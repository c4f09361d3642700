package artistcreatecontent

import (
	"fanclub/internal/common/validation"
	"fanclub/internal/models"
)

func contentTypes() []string {
	out := make([]string, 0, len(models.ContentTypes))
	for _, t := range models.ContentTypes {
		out = append(out, string(t))
	}
	return out
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"artistId", "type", "title", "tierAccess"},
		Properties: map[string]validation.Property{
			"artistId": {Type: "string", Pattern: validation.IDPattern},
			"type": {
				Type: "string",
				Enum: contentTypes(),
			},
			"title": {
				Type:      "string",
				MinLength: validation.IntPtr(1),
				MaxLength: validation.IntPtr(120),
			},
			"description": {Type: "string", MaxLength: validation.IntPtr(2000)},
			"tierAccess": {
				Type:        "array",
				Description: "Tiers that unlock the content",
				MinItems:    validation.IntPtr(1),
				MaxItems:    validation.IntPtr(3),
				Items:       &validation.Property{Type: "string", Pattern: validation.IDPattern},
			},
			"thumbnailUrl": {Type: "string"},
			"content":      {Type: "string", MaxLength: validation.IntPtr(500)},
		},
		AdditionalProperties: true,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"content", "eligibleSubscribers"},
		Properties: map[string]validation.Property{
			"content": {
				Type:     "object",
				Required: []string{"id", "artistId", "type", "title", "tierAccess", "createdAt"},
			},
			"eligibleSubscribers": {Type: "integer", Minimum: validation.FloatPtr(0)},
		},
		AdditionalProperties: false,
	}
}
