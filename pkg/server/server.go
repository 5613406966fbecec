//go:build !windows

// Package server hosts chesscoach over ssh. Every connection gets its own
// chesscoach process attached to a pseudo-terminal.
package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"os/exec"
	"time"

	"github.com/creack/pty"
	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"
)

const DefaultIdleTimeout = 30 * time.Minute

type Options struct {
	Addr        string
	HostKey     string
	IdleTimeout time.Duration
	// Command is the chesscoach binary started for each session.
	Command string
	Logger  *log.Logger
}

type Server struct {
	*ssh.Server
	opts   Options
	logger *log.Logger
}

func New(opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.IdleTimeout == 0 {
		opts.IdleTimeout = DefaultIdleTimeout
	}
	if opts.Command == "" {
		return nil, fmt.Errorf("server needs a command to run")
	}
	s := &Server{opts: opts, logger: opts.Logger}
	s.Server = &ssh.Server{
		Addr:        opts.Addr,
		IdleTimeout: opts.IdleTimeout,
		Handler:     s.handle,
		PtyCallback: func(ctx ssh.Context, pty ssh.Pty) bool {
			return true
		},
		PublicKeyHandler: func(ctx ssh.Context, key ssh.PublicKey) bool {
			return true
		},
		PasswordHandler: func(ctx ssh.Context, password string) bool {
			return true
		},
		KeyboardInteractiveHandler: func(ctx ssh.Context, challenger gossh.KeyboardInteractiveChallenge) bool {
			return true
		},
	}
	// Without a host key file gliderlabs generates a fresh key on start.
	if opts.HostKey != "" {
		if err := s.SetOption(ssh.HostKeyFile(opts.HostKey)); err != nil {
			return nil, fmt.Errorf("load host key: %w", err)
		}
	}
	return s, nil
}

func (s *Server) ListenAndServe() error {
	s.logger.Printf("SSH server listening on %s", s.opts.Addr)
	return s.Server.ListenAndServe()
}

// CommandArgs are the arguments passed to the per-session process.
func CommandArgs(nick string) []string {
	return []string{"--ui", "tui", "--name", nick}
}

func (s *Server) handle(sess ssh.Session) {
	ptyReq, winCh, isPty := sess.Pty()
	if !isPty {
		io.WriteString(sess, "non-interactive terminals are not supported, try ssh -t\n")
		sess.Exit(1)
		return
	}

	nick := Nickname(sess.User())
	s.logger.Printf("%s connected as %s from %s", sess.User(), nick, sess.RemoteAddr())
	defer s.logger.Printf("%s disconnected", nick)

	cmdCtx, cancelCmd := context.WithCancel(sess.Context())
	defer cancelCmd()

	cmd := exec.CommandContext(cmdCtx, s.opts.Command, CommandArgs(nick)...)
	cmd.Env = append(sess.Environ(), fmt.Sprintf("TERM=%s", ptyReq.Term))

	f, err := pty.StartWithSize(cmd, winsize(ptyReq.Window))
	if err != nil {
		s.logger.Printf("Failed to start %s: %s", s.opts.Command, err)
		io.WriteString(sess, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		sess.Exit(1)
		return
	}
	defer f.Close()

	go func() {
		for win := range winCh {
			if err := pty.Setsize(f, winsize(win)); err != nil {
				s.logger.Printf("Failed to resize %s: %s", nick, err)
			}
		}
	}()

	go func() {
		io.Copy(f, sess)
	}()
	io.Copy(sess, f)

	cancelCmd()
	if err := cmd.Wait(); err != nil {
		s.logger.Printf("%s exited: %s", nick, err)
	}
}

func winsize(w ssh.Window) *pty.Winsize {
	return &pty.Winsize{Rows: uint16(w.Height), Cols: uint16(w.Width)}
}
