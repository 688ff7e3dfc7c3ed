package response

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

type StatusCode int

const (
	StatusOK       StatusCode = 200
	StatusCreated  StatusCode = 201
	StatusNotFound StatusCode = 404
)

func (s StatusCode) Reason() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusCreated:
		return "Created"
	case StatusNotFound:
		return "Not Found"
	}
	return ""
}

const (
	ContentTypeText  = "text/plain"
	ContentTypeOctet = "application/octet-stream"
)

const httpVersion = "HTTP/1.1"

// Response is what the router hands back to the connection. When ContentType
// is empty no headers are written at all.
type Response struct {
	StatusCode  StatusCode
	ContentType string
	Body        []byte
}

func New(status StatusCode) *Response {
	return &Response{StatusCode: status}
}

func WithBody(status StatusCode, contentType string, body []byte) *Response {
	return &Response{
		StatusCode:  status,
		ContentType: contentType,
		Body:        body,
	}
}

func NotFound() *Response {
	return New(StatusNotFound)
}

// Write serializes the response. Content-Length always reflects len(Body).
func (r *Response) Write(w io.Writer) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %d %s\r\n", httpVersion, r.StatusCode, r.StatusCode.Reason())
	if r.ContentType != "" {
		fmt.Fprintf(&buf, "Content-Type: %s\r\n", r.ContentType)
		fmt.Fprintf(&buf, "Content-Length: %s\r\n", strconv.Itoa(len(r.Body)))
	}
	buf.WriteString("\r\n")
	buf.Write(r.Body)

	_, err := w.Write(buf.Bytes())
	return err
}

func (r *Response) Bytes() []byte {
	var buf bytes.Buffer
	_ = r.Write(&buf)
	return buf.Bytes()
}
