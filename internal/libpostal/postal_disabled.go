//go:build !libpostal

package libpostal

// Available reports whether libpostal is compiled in
const Available = false

func parseComponents(string) ([]Component, error) {
	return nil, ErrUnavailable
}

func expandAddress(string) ([]string, error) {
	return nil, ErrUnavailable
}
