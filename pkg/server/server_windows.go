//go:build windows

package server

import (
	"errors"
	"log"
	"time"
)

var ErrUnsupported = errors.New("ssh hosting is not supported on windows")

const DefaultIdleTimeout = 30 * time.Minute

type Options struct {
	Addr        string
	HostKey     string
	IdleTimeout time.Duration
	Command     string
	Logger      *log.Logger
}

type Server struct{}

func New(opts Options) (*Server, error) {
	return nil, ErrUnsupported
}

func (s *Server) ListenAndServe() error { return ErrUnsupported }

func (s *Server) Close() error { return nil }

func CommandArgs(nick string) []string {
	return []string{"--ui", "tui", "--name", nick}
}
