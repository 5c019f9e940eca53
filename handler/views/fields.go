package views

import (
	"strings"

	"github.com/fatih/structs"
)

// Select render v as a map holding only the json fields listed in fields,
// comma separated. An empty list keeps every field.
func Select(v interface{}, fields string) map[string]interface{} {
	s := structs.New(v)
	s.TagName = "json"
	m := s.Map()

	fields = strings.TrimSpace(fields)
	if fields == "" {
		return m
	}

	keep := make(map[string]bool)
	for _, f := range strings.Split(fields, ",") {
		keep[strings.TrimSpace(f)] = true
	}

	for k := range m {
		if !keep[k] {
			delete(m, k)
		}
	}

	return m
}
