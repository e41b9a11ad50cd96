package ingestion

import (
	"fmt"
	"strconv"
	"strings"
)

// The dataset CSVs carry list columns serialized as Python literals, e.g.
// ['flour', 'eggs'] or [51.5, 0.0, 13.0]. These helpers decode the two
// shapes the dataset uses: flat lists of strings and flat lists of numbers.

// parseStringList decodes a Python list literal of strings.
func parseStringList(s string) ([]string, error) {
	body, err := listBody(s)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}

	var items []string
	var current strings.Builder
	inString := false
	var quote byte
	escaped := false

	for i := 0; i < len(body); i++ {
		ch := body[i]
		switch {
		case escaped:
			current.WriteByte(ch)
			escaped = false
		case inString && ch == '\\':
			escaped = true
		case inString && ch == quote:
			inString = false
		case inString:
			current.WriteByte(ch)
		case ch == '\'' || ch == '"':
			inString = true
			quote = ch
		case ch == ',':
			items = append(items, current.String())
			current.Reset()
		}
		// Whitespace and anything else between items is ignored.
	}
	if inString {
		return nil, fmt.Errorf("unterminated string in list literal")
	}
	items = append(items, current.String())
	return items, nil
}

// parseFloatList decodes a Python list literal of numbers.
func parseFloatList(s string) ([]float64, error) {
	body, err := listBody(s)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}

	parts := strings.Split(body, ",")
	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q in list literal: %w", part, err)
		}
		values = append(values, v)
	}
	return values, nil
}

func listBody(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return "", fmt.Errorf("not a list literal: %q", s)
	}
	return s[1 : len(s)-1], nil
}
