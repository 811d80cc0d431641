package llm

import "strings"

// Reply-parsing helpers. Models are asked for bare JSON but routinely
// wrap it in prose or markdown fences, so callers extract the first
// balanced JSON value instead of unmarshaling the whole reply.

// StripFences removes a surrounding markdown code fence, with or
// without a language tag, leaving the inner text untouched.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// Drop the language tag on the opening fence line
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		first := strings.TrimSpace(s[:idx])
		if first == "" || !strings.ContainsAny(first, "{[") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ExtractJSONObject returns the first balanced {...} substring of s,
// or "" when none exists.
func ExtractJSONObject(s string) string {
	return extractBalanced(s, '{', '}')
}

// ExtractJSONArray returns the first balanced [...] substring of s,
// or "" when none exists.
func ExtractJSONArray(s string) string {
	return extractBalanced(s, '[', ']')
}

// extractBalanced scans for the first open rune and returns everything
// through its matching close. The scan is string- and escape-aware so
// braces inside JSON string values never unbalance the count.
func extractBalanced(s string, open, close byte) string {
	start := strings.IndexByte(s, open)
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

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
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	return ""
}
