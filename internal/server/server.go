package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"go.httpfs.me/internal/request"
	"go.httpfs.me/internal/router"
)

const DefaultAddr = "127.0.0.1:4221"

type Server struct {
	Addr   string
	Router *router.Router
}

func New(r *router.Router) *Server {
	return &Server{Addr: DefaultAddr, Router: r}
}

// ListenAndServe blocks until ctx is cancelled or Accept fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}

// Serve accepts on l and handles each connection in its own goroutine. It
// closes l when ctx is done and then returns nil.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	defer l.Close()

	stop := context.AfterFunc(ctx, func() {
		l.Close()
	})
	defer stop()

	slog.Info("listening", "addr", l.Addr().String())
	for {
		conn, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		go func() {
			if err := s.handleConnection(conn); err != nil {
				slog.Error("connection error", "remote", conn.RemoteAddr().String(), "err", err)
			}
		}()
	}
}

func (s *Server) handleConnection(conn net.Conn) error {
	defer conn.Close()
	slog.Debug("accepted connection", "remote", conn.RemoteAddr().String())

	req, err := request.RequestFromReader(conn)
	if err != nil {
		return fmt.Errorf("parse request: %w", err)
	}

	res, err := s.Router.Dispatch(req)
	if err != nil {
		return fmt.Errorf("dispatch %s: %w", req.RequestLine.String(), err)
	}
	slog.Info("request",
		"method", req.RequestLine.Method.String(),
		"target", req.RequestLine.RequestTarget,
		"status", int(res.StatusCode),
	)

	if err := res.Write(conn); err != nil {
		return errors.Join(fmt.Errorf("unable to write response"), err)
	}
	return nil
}
