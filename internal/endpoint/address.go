package endpoint

import (
	"strconv"
	"strings"
)

// String serializes the endpoint into its canonical representation:
// `id`, `id(name)`, `id[index]` or `id(name)[index]`.
func (e Endpoint) String() string {
	var sb strings.Builder
	sb.WriteString(e.ModelID)
	if e.HasName() {
		sb.WriteRune('(')
		sb.WriteString(e.Name)
		sb.WriteRune(')')
	}
	if e.HasIndex() {
		sb.WriteRune('[')
		sb.WriteString(strconv.Itoa(e.Index))
		sb.WriteRune(']')
	}
	return sb.String()
}

// Equal checks for equality between two endpoints.
func (e Endpoint) Equal(other Endpoint) bool {
	return e == other
}

// Expand substitutes the endpoint's name and index into a variable template.
// Placeholders without a matching qualifier are left untouched so that a
// mistake stays visible in the output instead of being papered over.
func (e Endpoint) Expand(template string) string {
	out := template
	if e.HasName() {
		out = strings.ReplaceAll(out, NamePlaceholder, e.Name)
	}
	if e.HasIndex() {
		out = strings.ReplaceAll(out, IndexPlaceholder, strconv.Itoa(e.Index))
	}
	return out
}

// IsTemplate reports whether a variable name still contains a placeholder.
func IsTemplate(v string) bool {
	return strings.Contains(v, NamePlaceholder) || strings.Contains(v, IndexPlaceholder)
}
