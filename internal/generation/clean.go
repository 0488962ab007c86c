package generation

import "strings"

// CleanResponse removes markdown code fences from a completion. Models
// wrap JSON in ``` or ```json fences despite instructions not to; the
// response is only trusted to be JSON after this pass.
func CleanResponse(resp string) string {
	resp = strings.TrimSpace(resp)
	resp = strings.TrimPrefix(resp, "```json")
	resp = strings.TrimPrefix(resp, "```")
	resp = strings.TrimSuffix(resp, "```")
	return strings.TrimSpace(resp)
}

// extractJSONObject scans the input for the first top-level JSON object
// candidate, used as a fallback when the fence-stripped text still fails to
// parse (e.g. prose around the object). It tracks brace depth with string
// and escape awareness; iterating bytes is safe because the ASCII
// delimiters never appear inside a UTF-8 multi-byte sequence.
func extractJSONObject(s string) (string, bool) {
	var depth int
	start := -1
	var inString, escape bool

	for i := 0; i < len(s); i++ {
		b := s[i]

		if escape {
			escape = false
			continue
		}
		if inString {
			if b == '\\' {
				escape = true
			} else if b == '"' {
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			inString = true
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start != -1 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
