package fancheckcontentaccess

import "fanclub/internal/common/validation"

// GetInputSchema accepts contentId, artistId or both; Execute rejects a job
// carrying neither.
func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"userId":    {Type: "string", Pattern: validation.IDPattern},
			"contentId": {Type: "string", Pattern: validation.IDPattern},
			"artistId":  {Type: "string", Pattern: validation.IDPattern},
		},
		AdditionalProperties: true,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"userId"},
		Properties: map[string]validation.Property{
			"userId":               {Type: "string"},
			"contentId":            {Type: "string"},
			"hasAccess":            {Type: "boolean"},
			"artistId":             {Type: "string"},
			"accessibleContentIds": {Type: "array", Items: &validation.Property{Type: "string"}},
			"lockedContentIds":     {Type: "array", Items: &validation.Property{Type: "string"}},
		},
		AdditionalProperties: false,
	}
}
