package request

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.httpfs.me/internal/headers"
)

// Method is the closed set of request methods the server understands.
type Method int

const (
	MethodUnsupported Method = iota
	MethodGet
	MethodPost
)

func (m Method) String() string {
	switch m {
	case MethodGet:
		return "GET"
	case MethodPost:
		return "POST"
	}
	return "UNSUPPORTED"
}

func ParseMethod(token string) (Method, error) {
	switch token {
	case "GET":
		return MethodGet, nil
	case "POST":
		return MethodPost, nil
	}
	return MethodUnsupported, errors.Join(ErrUnsupportedMethod, fmt.Errorf("method %q", token))
}

type RequestLine struct {
	HttpVersion   string
	RequestTarget string
	Method        Method
}

// String renders the start line without its CRLF, using single spaces.
func (r RequestLine) String() string {
	return r.Method.String() + " " + r.RequestTarget + " " + versionPrefix + r.HttpVersion
}

type Request struct {
	RequestLine RequestLine
	Headers     headers.Headers
	Body        []byte
}

// BufferSize is the size of the single read a request must fit in.
const BufferSize = 1024

var ErrMalformedStartLine = fmt.Errorf("malformed start line")
var ErrUnsupportedMethod = fmt.Errorf("unsupported method")
var ErrMalformedHeader = headers.ErrMalformedHeader
var ErrMalformedRequest = fmt.Errorf("malformed request: header block not terminated")
var ErrEmptyRequest = fmt.Errorf("empty request")
var SEPARATOR = "\r\n"

const versionPrefix = "HTTP/"

func parseRequestLine(b string) (*RequestLine, string, error) {
	end := strings.IndexAny(b, " \r\n")
	if end == -1 {
		end = len(b)
	}
	if end == 0 {
		return nil, b, ErrMalformedStartLine
	}
	method, err := ParseMethod(b[:end])
	if err != nil {
		return nil, b, err
	}

	idx := strings.Index(b, SEPARATOR)
	if idx < end {
		return nil, b, errors.Join(ErrMalformedStartLine, fmt.Errorf("no line terminator"))
	}
	line := b[end:idx]
	restOfMsg := b[idx+len(SEPARATOR):]

	line, ok := skipSpaces(line)
	if !ok {
		return nil, restOfMsg, errors.Join(ErrMalformedStartLine, fmt.Errorf("no space after method"))
	}
	sp := strings.IndexByte(line, ' ')
	if sp == -1 {
		return nil, restOfMsg, errors.Join(ErrMalformedStartLine, fmt.Errorf("missing version"))
	}
	target := line[:sp]
	line, _ = skipSpaces(line[sp:])

	version, ok := strings.CutPrefix(line, versionPrefix)
	if !ok || !validVersion(version) {
		return nil, restOfMsg, errors.Join(ErrMalformedStartLine, fmt.Errorf("bad version %q", line))
	}

	rl := &RequestLine{
		Method:        method,
		RequestTarget: target,
		HttpVersion:   version,
	}
	return rl, restOfMsg, nil
}

// skipSpaces drops one or more leading spaces and reports whether there was any.
func skipSpaces(s string) (string, bool) {
	trimmed := strings.TrimLeft(s, " ")
	return trimmed, len(trimmed) < len(s)
}

func validVersion(v string) bool {
	if v == "" {
		return false
	}
	for i := 0; i < len(v); i++ {
		c := v[i]
		if (c < '0' || c > '9') && c != '.' {
			return false
		}
	}
	return true
}

// Parse parses one complete request: start line, headers, blank line and
// body. Any violation fails the whole parse.
func Parse(raw string) (*Request, error) {
	rl, rest, err := parseRequestLine(raw)
	if err != nil {
		return nil, err
	}

	h := headers.NewHeaders()
	for {
		idx := strings.Index(rest, SEPARATOR)
		if idx == -1 {
			return nil, ErrMalformedRequest
		}
		line := rest[:idx]
		rest = rest[idx+len(SEPARATOR):]
		if line == "" {
			break
		}
		name, value, err := headers.ParseLine(line)
		if err != nil {
			return nil, err
		}
		h.Set(name, value)
	}

	return &Request{
		RequestLine: *rl,
		Headers:     h,
		Body:        []byte(rest),
	}, nil
}

// RequestFromReader performs a single read of at most BufferSize bytes and
// parses what arrived. Anything sent after that read is ignored.
func RequestFromReader(reader io.Reader) (*Request, error) {
	buf := make([]byte, BufferSize)
	n, err := reader.Read(buf)
	if n == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			return nil, ErrEmptyRequest
		}
		return nil, errors.Join(fmt.Errorf("unable to read request"), err)
	}
	slog.Debug("raw request", "bytes", n, "data", string(buf[:n]))

	return Parse(string(buf[:n]))
}
