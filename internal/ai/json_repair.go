// json_repair.go - Cleans up model output before it is parsed as JSON

package ai

import (
	"fmt"
	"regexp"
	"strings"
)

var jsonStringPattern = regexp.MustCompile(`"([^"\\]*(?:\\.[^"\\]*)*)"`)

// extractJSONObject strips markdown code fences and any prose around the outermost object
func extractJSONObject(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return ""
	}
	return text[start : end+1]
}

// fixJSONEscaping escapes raw control characters that models sometimes leave
// inside JSON string values (literal newlines, tabs).
func fixJSONEscaping(jsonStr string) string {
	return jsonStringPattern.ReplaceAllStringFunc(jsonStr, func(match string) string {
		content := match[1 : len(match)-1]

		var builder strings.Builder
		for _, ch := range content {
			switch {
			case ch == '\n':
				builder.WriteString(`\n`)
			case ch == '\r':
				builder.WriteString(`\r`)
			case ch == '\t':
				builder.WriteString(`\t`)
			case ch < 0x20:
				builder.WriteString(fmt.Sprintf(`\u%04x`, ch))
			default:
				builder.WriteRune(ch)
			}
		}

		return `"` + builder.String() + `"`
	})
}
