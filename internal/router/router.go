package router

import (
	"errors"
	"fmt"
	"strings"

	"go.httpfs.me/internal/request"
	"go.httpfs.me/internal/response"
	"go.httpfs.me/internal/storage"
)

var ErrMissingHeader = fmt.Errorf("missing expected header")
var ErrFileWrite = fmt.Errorf("file write failed")

const (
	echoPrefix  = "/echo/"
	filesPrefix = "/files/"
	userAgent   = "User-Agent"
)

// FileStore is the filesystem capability the /files/ routes use.
type FileStore interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
}

// Router holds no per-request state; one instance serves every connection.
type Router struct {
	files FileStore
}

// New returns a Router. A nil store disables the /files/ routes.
func New(files FileStore) *Router {
	return &Router{files: files}
}

// Dispatch picks the first matching route. An error means the request could
// not be served and no response should be written.
func (r *Router) Dispatch(req *request.Request) (*response.Response, error) {
	method := req.RequestLine.Method
	target := req.RequestLine.RequestTarget

	switch {
	case method == request.MethodGet && target == "/":
		return response.New(response.StatusOK), nil

	case method == request.MethodGet && target == "/user-agent":
		ua, ok := req.Headers.Get(userAgent)
		if !ok {
			return nil, errors.Join(ErrMissingHeader, fmt.Errorf("header %q", userAgent))
		}
		return response.WithBody(response.StatusOK, response.ContentTypeText, []byte(ua)), nil

	case method == request.MethodGet && strings.HasPrefix(target, echoPrefix):
		echo := strings.TrimPrefix(target, echoPrefix)
		return response.WithBody(response.StatusOK, response.ContentTypeText, []byte(echo)), nil

	case method == request.MethodGet && strings.HasPrefix(target, filesPrefix) && r.files != nil:
		return r.readFile(strings.TrimPrefix(target, filesPrefix))

	case method == request.MethodPost && strings.HasPrefix(target, filesPrefix) && r.files != nil:
		return r.writeFile(strings.TrimPrefix(target, filesPrefix), req.Body)
	}

	return response.NotFound(), nil
}

// Any read failure is answered with 404.
func (r *Router) readFile(name string) (*response.Response, error) {
	data, err := r.files.ReadFile(name)
	if err != nil {
		return response.NotFound(), nil
	}
	return response.WithBody(response.StatusOK, response.ContentTypeOctet, data), nil
}

func (r *Router) writeFile(name string, body []byte) (*response.Response, error) {
	if err := r.files.WriteFile(name, body); err != nil {
		if errors.Is(err, storage.ErrInvalidPath) {
			return response.NotFound(), nil
		}
		return nil, errors.Join(ErrFileWrite, err)
	}
	return response.New(response.StatusCreated), nil
}
