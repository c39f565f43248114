package generation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONObject finds the first balanced JSON object in a model response.
// Handles markdown code-fence wrappers and leading prose.
func ExtractJSONObject(response string) string {
	start := strings.Index(response, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(response); i++ {
		c := response[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return response[start : i+1]
			}
		}
	}
	return ""
}

// DecodeObject extracts and unmarshals the first JSON object in a model
// response into a generic map.
func DecodeObject(response string) (map[string]any, error) {
	jsonStr := ExtractJSONObject(response)
	if jsonStr == "" {
		return nil, fmt.Errorf("no JSON object found in response")
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &out); err != nil {
		return nil, fmt.Errorf("JSON parse failed: %w", err)
	}
	return out, nil
}
