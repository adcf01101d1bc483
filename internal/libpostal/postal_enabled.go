//go:build libpostal

package libpostal

import (
	expand "github.com/openvenues/gopostal/expand"
	parser "github.com/openvenues/gopostal/parser"
)

// Available reports whether libpostal is compiled in
const Available = true

func parseComponents(raw string) ([]Component, error) {
	parsed := parser.ParseAddress(raw)
	components := make([]Component, 0, len(parsed))
	for _, c := range parsed {
		components = append(components, Component{Label: c.Label, Value: c.Value})
	}
	return components, nil
}

func expandAddress(raw string) ([]string, error) {
	opts := expand.GetDefaultExpansionOptions()
	opts.Languages = []string{"en"}
	return expand.ExpandAddressOptions(raw, opts), nil
}
