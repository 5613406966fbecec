// Package web serves games to browsers over websockets.
package web

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/qnkhuat/chesscoach/pkg/opponent"
	"github.com/qnkhuat/chesscoach/pkg/protocol"
	"github.com/qnkhuat/chesscoach/pkg/random"
	"github.com/qnkhuat/chesscoach/pkg/session"
)

const OutboxSize = 20

type Options struct {
	Difficulty opponent.Difficulty
	Delay      *session.Delay
	Noise      float64
	Origins    []string
	Logger     *log.Logger
}

type Server struct {
	app    *fiber.App
	opts   Options
	logger *log.Logger

	mu    sync.Mutex
	loops map[string]*session.Loop
}

func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if len(opts.Origins) == 0 {
		opts.Origins = []string{"*"}
	}
	s := &Server{
		app:    fiber.New(fiber.Config{DisableStartupMessage: true}),
		opts:   opts,
		logger: opts.Logger,
		loops:  make(map[string]*session.Loop),
	}
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(opts.Origins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, OPTIONS",
	}))
	s.app.Get("/healthz", s.health)
	s.app.Use("/ws", upgrade)
	s.app.Get("/ws", websocket.New(s.handle, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         opts.Origins,
	}))
	return s
}

func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen(addr string) error {
	s.logger.Printf("Web server listening on %s", addr)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// Sessions is the number of connected games.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.loops)
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "sessions": s.Sessions()})
}

func upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

func (s *Server) newLoop(ctx context.Context, outbox chan<- []byte) (*session.Loop, error) {
	rnd, err := random.New(0)
	if err != nil {
		return nil, err
	}
	selector := opponent.New(rnd)
	selector.Noise = s.opts.Noise
	return session.NewLoop(session.Options{
		Selector:   selector,
		Difficulty: s.opts.Difficulty,
		Delay:      s.opts.Delay,
		Rand:       rnd,
		Logger:     s.logger,
		Sink: session.SinkFunc(func(u session.Update) {
			send(ctx, outbox, protocol.MessageState{Update: u})
		}),
	})
}

func send(ctx context.Context, outbox chan<- []byte, m protocol.MessageInterface) {
	select {
	case outbox <- protocol.Encode(m):
	case <-ctx.Done():
	}
}

func (s *Server) handle(c *websocket.Conn) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	outbox := make(chan []byte, OutboxSize)
	loop, err := s.newLoop(ctx, outbox)
	if err != nil {
		s.logger.Printf("Failed to start session: %s", err)
		c.Close()
		return
	}
	id := loop.ID()
	s.mu.Lock()
	s.loops[id] = loop
	s.mu.Unlock()
	s.logger.Printf("Session %s connected from %s", id, c.RemoteAddr())
	defer func() {
		s.mu.Lock()
		delete(s.loops, id)
		s.mu.Unlock()
		s.logger.Printf("Session %s disconnected", id)
	}()

	go loop.Run(ctx)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case b := <-outbox:
				if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
					s.logger.Printf("Session %s write: %s", id, err)
					cancel()
					return
				}
			}
		}
	}()

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		m, err := protocol.Decode(message)
		if err != nil {
			send(ctx, outbox, protocol.MessageError{Error: err.Error()})
			continue
		}
		if err := dispatch(ctx, loop, outbox, m); err != nil {
			if errors.Is(err, session.ErrClosed) {
				return
			}
			send(ctx, outbox, protocol.MessageError{Error: err.Error()})
		}
	}
}

// dispatch runs one inbound message on the session loop.
func dispatch(ctx context.Context, loop *session.Loop, outbox chan<- []byte, m protocol.MessageInterface) error {
	switch msg := m.(type) {
	case protocol.MessageMove:
		return loop.Call(func(s *session.Session) error {
			return s.Submit(msg.From, msg.To)
		})
	case protocol.MessageNewGame:
		return loop.Call(func(s *session.Session) error {
			s.NewGame()
			return nil
		})
	case protocol.MessageDifficulty:
		d, err := opponent.ParseDifficulty(msg.Level)
		if err != nil {
			return err
		}
		return loop.Call(func(s *session.Session) error {
			s.SetDifficulty(d)
			return nil
		})
	case protocol.MessageHint:
		return loop.Call(func(s *session.Session) error {
			targets, err := s.Select(msg.Square)
			if err != nil {
				return err
			}
			send(ctx, outbox, protocol.MessageHint{Square: msg.Square, Targets: targets})
			return nil
		})
	}
	return protocol.ErrUnknownMessage
}
