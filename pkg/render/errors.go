package render

import (
	"sort"
	"strconv"
	"strings"
)

// ErrorMapping splits an error payload into field-level and form-level
// messages. Field keys are the form's own field names.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// FirstFieldErrors flattens Fields to the first message per field, the shape
// the validator's error map uses.
func (m ErrorMapping) FirstFieldErrors() map[string]string {
	if len(m.Fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(m.Fields))
	for name, messages := range m.Fields {
		if len(messages) > 0 {
			out[name] = messages[0]
		}
	}
	return out
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload normalises an error payload keyed by loose paths
// ("checkOut", "body.checkOut", "/data/email", "form") onto the supplied
// field names. Unknown paths are treated as form-level errors so messages
// are not lost.
func MapErrorPayload(fields []string, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	known := make(map[string]struct{}, len(fields))
	for _, name := range fields {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			known[trimmed] = struct{}{}
		}
	}

	// Deterministic form-level ordering.
	paths := make([]string, 0, len(payload))
	for path := range payload {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, rawPath := range paths {
		normalizedMessages := normalizeMessages(payload[rawPath])
		if len(normalizedMessages) == 0 {
			continue
		}

		mapped, formLevel := mapErrorPath(rawPath, known)
		if formLevel || mapped == "" {
			mapping.Form = append(mapping.Form, normalizedMessages...)
			continue
		}
		mapping.Fields[mapped] = append(mapping.Fields[mapped], normalizedMessages...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func mapErrorPath(raw string, known map[string]struct{}) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", true
	}

	segments := dropWrapperSegments(stripNumericSegments(parsePathSegments(trimmed)))
	if len(segments) == 0 {
		return "", true
	}

	// Flat forms: the first segment naming a known field wins.
	for _, segment := range segments {
		if _, ok := known[segment]; ok {
			return segment, false
		}
	}
	return "", true
}

func parsePathSegments(path string) []string {
	if path == "" {
		return nil
	}

	clean := strings.TrimSpace(path)
	clean = strings.TrimPrefix(clean, "#/")
	clean = strings.TrimPrefix(clean, "$/")
	clean = strings.TrimPrefix(clean, "$.")
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = strings.TrimPrefix(clean, "#")
		clean = strings.TrimPrefix(clean, "/")
		clean = strings.TrimPrefix(clean, ".")
		clean = strings.TrimPrefix(clean, "$")
	}

	replacer := strings.NewReplacer("[", ".", "]", "", "//", "/")
	clean = replacer.Replace(clean)
	clean = strings.Trim(clean, "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	wrappers := map[string]struct{}{
		"body":    {},
		"request": {},
		"payload": {},
		"data":    {},
		"fields":  {},
	}

	out := segments
	for len(out) > 0 {
		if _, ok := wrappers[strings.ToLower(out[0])]; ok {
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func stripNumericSegments(segments []string) []string {
	if len(segments) == 0 {
		return segments
	}

	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
