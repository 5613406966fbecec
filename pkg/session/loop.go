package session

import (
	"context"
	"errors"
	"time"
)

var ErrClosed = errors.New("session loop closed")

const QueueSize = 10

// Loop owns a Session and runs every operation on it from one goroutine.
// Front ends post closures with Do; deferred computer moves come back
// through the same queue.
type Loop struct {
	session *Session
	ops     chan func(*Session)
	done    chan struct{}
}

// NewLoop builds a session whose deferred work is scheduled on the loop.
func NewLoop(opts Options) (*Loop, error) {
	l := &Loop{
		ops:  make(chan func(*Session), QueueSize),
		done: make(chan struct{}),
	}
	if opts.Scheduler == nil {
		opts.Scheduler = SchedulerFunc(l.afterFunc)
	}
	s, err := New(opts)
	if err != nil {
		return nil, err
	}
	l.session = s
	return l, nil
}

func (l *Loop) afterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		l.Do(func(*Session) { fn() })
	})
}

// Run publishes the opening state and serves operations until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	l.session.Start()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case op := <-l.ops:
			op(l.session)
		}
	}
}

// Do queues fn. It returns false once the loop has stopped.
func (l *Loop) Do(fn func(*Session)) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.ops <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Call runs fn on the loop and waits for its error.
func (l *Loop) Call(fn func(*Session) error) error {
	errc := make(chan error, 1)
	if !l.Do(func(s *Session) { errc <- fn(s) }) {
		return ErrClosed
	}
	select {
	case err := <-errc:
		return err
	case <-l.done:
		return ErrClosed
	}
}

func (l *Loop) ID() string { return l.session.ID() }
