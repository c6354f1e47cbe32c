package httpmetrics

import (
	"regexp"
	"strings"
)

var (
	uuidRegex     = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
	objectIDRegex = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
)

// NormalizePath collapses ids in path segments so that metric label
// cardinality stays bounded. Any segment after /api/notes/ or /api/users/ is
// treated as an id, including malformed ones.
func NormalizePath(path string) string {
	if path == "" {
		return "/"
	}

	normalized := uuidRegex.ReplaceAllString(path, "{id}")

	parts := strings.Split(normalized, "/")
	for i, part := range parts {
		switch {
		case part == "":
		case strings.HasPrefix(part, "{"), objectIDRegex.MatchString(part), isNumeric(part):
			parts[i] = "{id}"
		case i == 3 && parts[1] == "api" && (parts[2] == "notes" || parts[2] == "users"):
			parts[i] = "{id}"
		}
	}

	result := strings.Join(parts, "/")
	if result == "" {
		return "/"
	}

	return result
}

func isNumeric(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
