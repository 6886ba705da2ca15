package tool

import (
	"encoding/json"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

type destinationInput struct {
	Destination string `json:"destination"`
}

// parseDestination accepts either a bare destination or the JSON arguments
// a model sends for a tool call ({"destination": "..."}).
func parseDestination(input string) string {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "{") {
		var args destinationInput
		if err := json.Unmarshal([]byte(trimmed), &args); err == nil {
			return strings.TrimSpace(args.Destination)
		}
	}
	return trimmed
}

func destinationSchema(description string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"destination": {
				Type:        "string",
				Description: description,
			},
		},
		Required: []string{"destination"},
	}
}
