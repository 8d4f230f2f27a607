package helpers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// ParseID parses a positive numeric record id from a path parameter.
func ParseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// ParseDate accepts RFC3339 as well as the plain date and date-time forms
// produced by HTML date inputs.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, NewValidationError("invalid date %q, use RFC3339 or YYYY-MM-DD", s)
}

// ParseStringList normalizes a list field that may arrive as repeated form
// values, a JSON array string or, when allowLines is set, a newline-separated
// string. Blank entries are dropped and order is kept.
func ParseStringList(raw []string, allowLines bool) ([]string, error) {
	out := []string{}
	if len(raw) == 0 {
		return out, nil
	}

	if len(raw) > 1 {
		return appendNonBlank(out, raw...), nil
	}

	value := strings.TrimSpace(raw[0])
	if value == "" {
		return out, nil
	}

	var items []any
	if err := json.Unmarshal([]byte(value), &items); err == nil {
		for _, item := range items {
			if item == nil {
				continue
			}
			if s, ok := item.(string); ok {
				out = appendNonBlank(out, s)
				continue
			}
			out = appendNonBlank(out, fmt.Sprint(item))
		}
		return out, nil
	}

	if !allowLines {
		return nil, NewValidationError("expected a JSON array")
	}
	return appendNonBlank(out, strings.Split(value, "\n")...), nil
}

func appendNonBlank(dst []string, values ...string) []string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			dst = append(dst, v)
		}
	}
	return dst
}

// ParseIndexList reads an index array sent as repeated form values or as a
// single JSON array. Entries that are not integers become -1 so positions
// stay aligned with the files they describe.
func ParseIndexList(raw []string) []int {
	if len(raw) == 1 && strings.HasPrefix(strings.TrimSpace(raw[0]), "[") {
		var items []any
		if err := json.Unmarshal([]byte(raw[0]), &items); err == nil {
			raw = make([]string, 0, len(items))
			for _, item := range items {
				raw = append(raw, fmt.Sprint(item))
			}
		}
	}

	indexes := make([]int, 0, len(raw))
	for _, r := range raw {
		i, err := strconv.Atoi(strings.TrimSpace(r))
		if err != nil || i < 0 {
			i = -1
		}
		indexes = append(indexes, i)
	}
	return indexes
}

// Pagination holds optional page/limit query values. A zero Limit means the
// whole list.
type Pagination struct {
	Page  int
	Limit int
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

func ParsePagination(page, limit string) (Pagination, error) {
	p := Pagination{Page: 1}
	if limit == "" {
		return p, nil
	}

	limitNum, err := StringToInt(limit)
	if err != nil || limitNum < 1 {
		return p, NewValidationError("Invalid limit.")
	}
	p.Limit = limitNum

	if page != "" {
		pageNum, err := StringToInt(page)
		if err != nil || pageNum < 1 {
			return p, NewValidationError("Invalid page number.")
		}
		p.Page = pageNum
	}
	return p, nil
}
