package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

// Field names accepted for paged list responses, in priority order. The
// first present list field wins even when it is empty; a bare JSON array is
// accepted as the list itself. The first positive page count wins and the
// count defaults to 1.
var (
	listFields      = []string{"results", "exercises"}
	pageCountFields = []string{"totalPages", "total_pages", "pageCount"}
)

// normalizePage extracts the list and page count from a paged payload.
func normalizePage(payload json.RawMessage) (json.RawMessage, int) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, 1
	}
	if trimmed[0] == '[' {
		return trimmed, 1
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, 1
	}

	var list json.RawMessage
	for _, name := range listFields {
		if raw, ok := fields[name]; ok && isArray(raw) {
			list = raw
			break
		}
	}

	total := 1
	for _, name := range pageCountFields {
		if n, ok := positiveInt(fields[name]); ok {
			total = n
			break
		}
	}
	return list, total
}

// normalizeCategoryPage decodes a category page. Elements that do not decode
// are left out and reported in the returned error.
func normalizeCategoryPage(payload json.RawMessage) (CategoryPage, error) {
	list, total := normalizePage(payload)
	categories, err := decodeList[Category](list)
	return CategoryPage{Categories: categories, TotalPages: total}, err
}

func normalizeExercisePage(payload json.RawMessage) (ExercisePage, error) {
	list, total := normalizePage(payload)
	exercises, err := decodeList[Exercise](list)
	return ExercisePage{Exercises: exercises, TotalPages: total}, err
}

func decodeList[T any](list json.RawMessage) ([]T, error) {
	if len(list) == 0 {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(list, &items); err != nil {
		return nil, err
	}
	var (
		out  []T
		errs error
	)
	for i, raw := range items {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		out = append(out, item)
	}
	return out, errs
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// positiveInt accepts JSON numbers and numeric strings.
func positiveInt(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		if num >= 1 {
			return int(num), true
		}
		return 0, false
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		n, err := strconv.Atoi(strings.TrimSpace(str))
		if err == nil && n >= 1 {
			return n, true
		}
	}
	return 0, false
}
