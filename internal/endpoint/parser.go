package endpoint

import (
	"fmt"
	"regexp"
	"strconv"
)

// endpointRegex matches `id`, `id(name)`, `id[3]` and `id(name)[3]`.
var endpointRegex = regexp.MustCompile(`^([A-Za-z0-9_.\-]+)(?:\(([^()\[\]]+)\))?(?:\[(\d+)\])?$`)

// Parse creates an Endpoint by parsing its canonical string representation.
func Parse(raw string) (Endpoint, error) {
	if raw == "" {
		return Endpoint{}, fmt.Errorf("endpoint cannot be empty")
	}

	matches := endpointRegex.FindStringSubmatch(raw)
	if matches == nil {
		return Endpoint{}, fmt.Errorf("invalid endpoint format: %q", raw)
	}

	e := Named(matches[1], matches[2])
	if matches[3] != "" {
		index, err := strconv.Atoi(matches[3])
		if err != nil {
			// Unreachable due to regex `\d+`
			return Endpoint{}, fmt.Errorf("internal error parsing index: %w", err)
		}
		e.Index = index
	}
	return e, nil
}
