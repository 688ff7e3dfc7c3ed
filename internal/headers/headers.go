package headers

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Not map[string][]string, unlike http.Header. Names keep the case they
// arrived with.
type Headers map[string]string

var ErrMalformedHeader = fmt.Errorf("malformed header")

const separator = ": "

func NewHeaders() Headers {
	return Headers{}
}

// Set overwrites any earlier value, so a repeated name keeps its last value.
func (h Headers) Set(name, value string) {
	h[name] = value
}

func (h Headers) Get(name string) (string, bool) {
	v, ok := h[name]
	return v, ok
}

// ForEach visits headers in name order.
func (h Headers) ForEach(fn func(name, value string)) {
	names := make([]string, 0, len(h))
	for n := range h {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fn(n, h[n])
	}
}

// ParseLine parses one header line with its CRLF already stripped.
func ParseLine(line string) (name, value string, err error) {
	idx := strings.IndexByte(line, ':')
	if idx == -1 {
		return "", "", errors.Join(ErrMalformedHeader, fmt.Errorf("no colon in %q", line))
	}
	if idx == 0 {
		return "", "", errors.Join(ErrMalformedHeader, fmt.Errorf("empty name in %q", line))
	}
	name = line[:idx]
	rest := line[idx:]
	if !strings.HasPrefix(rest, separator) {
		return "", "", errors.Join(ErrMalformedHeader, fmt.Errorf("missing %q separator in %q", separator, line))
	}
	value = rest[len(separator):]
	if strings.HasPrefix(value, " ") {
		return "", "", errors.Join(ErrMalformedHeader, fmt.Errorf("extra space after separator in %q", line))
	}
	return name, value, nil
}
