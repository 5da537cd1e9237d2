package services

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseJSONResponse decodes the JSON document embedded in a model reply.
func parseJSONResponse(response string, target interface{}) error {
	cleaned := extractJSON(response)

	if err := json.Unmarshal([]byte(cleaned), target); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return nil
}

// extractJSON strips markdown fences and any prose around the outermost
// object or array.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	objOK := startObj != -1 && endObj > startObj
	arrOK := startArr != -1 && endArr > startArr

	switch {
	case objOK && (!arrOK || startObj < startArr):
		return text[startObj : endObj+1]
	case arrOK:
		return text[startArr : endArr+1]
	}

	return strings.TrimSpace(text)
}
