// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"strconv"
	"strings"
)

const (
	// ErrorString replaces a $base_path[N] placeholder whose index is out of
	// range. The resulting candidate is not expected to exist, so the search
	// simply moves on to the next include path.
	ErrorString = "ERRORSTRING"

	placeholderPrefix = "$base_path["
	placeholderSuffix = "]"
)

// ExpandTemplate replaces every $base_path[N] placeholder in template with
// basePaths[N]. N must be a non-empty run of ASCII digits; anything else after
// the prefix is left untouched. Substituted text is not scanned again, so a base
// path that itself contains a placeholder is inserted literally.
func ExpandTemplate(template string, basePaths []string) string {
	if !strings.Contains(template, placeholderPrefix) {
		return template
	}

	var sb strings.Builder
	rest := template
	for {
		start := strings.Index(rest, placeholderPrefix)
		if start < 0 {
			sb.WriteString(rest)
			break
		}
		sb.WriteString(rest[:start])
		after := rest[start+len(placeholderPrefix):]

		digits := leadingDigits(after)
		if digits == "" || !strings.HasPrefix(after[len(digits):], placeholderSuffix) {
			// Not a placeholder; emit the prefix literally and keep scanning after it.
			sb.WriteString(placeholderPrefix)
			rest = after
			continue
		}

		sb.WriteString(lookupBasePath(digits, basePaths))
		rest = after[len(digits)+len(placeholderSuffix):]
	}
	return sb.String()
}

// ExpandTemplates expands each template in order.
func ExpandTemplates(templates, basePaths []string) []string {
	out := make([]string, len(templates))
	for i, tmpl := range templates {
		out[i] = ExpandTemplate(tmpl, basePaths)
	}
	return out
}

func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}

// lookupBasePath maps a digit run to a base path. Indexes too large to parse
// are out of range by definition.
func lookupBasePath(digits string, basePaths []string) string {
	idx, err := strconv.Atoi(digits)
	if err != nil || idx >= len(basePaths) {
		return ErrorString
	}
	return basePaths[idx]
}
