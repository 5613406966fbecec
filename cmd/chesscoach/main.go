package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/qnkhuat/chesscoach/pkg/applog"
	"github.com/qnkhuat/chesscoach/pkg/config"
	"github.com/qnkhuat/chesscoach/pkg/console"
	"github.com/qnkhuat/chesscoach/pkg/gui"
	"github.com/qnkhuat/chesscoach/pkg/opponent"
	"github.com/qnkhuat/chesscoach/pkg/random"
	"github.com/qnkhuat/chesscoach/pkg/session"
	"golang.org/x/term"
)

func main() {
	fs := flag.NewFlagSet("chesscoach", flag.ExitOnError)
	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := applog.InitLog(cfg.LogPath, "CLIENT: "); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Exited with error: %s", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func useTUI(cfg config.Config) bool {
	switch cfg.UI {
	case config.UITUI:
		return true
	case config.UIText:
		return false
	}
	if cfg.JSON {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func sessionOptions(cfg config.Config) (session.Options, error) {
	rnd, err := random.New(cfg.Seed)
	if err != nil {
		return session.Options{}, err
	}
	selector := opponent.New(rnd)
	selector.Noise = cfg.Noise
	return session.Options{
		Selector:   selector,
		Difficulty: cfg.Difficulty,
		Delay:      cfg.Delay(),
		Rand:       rnd,
		Logger:     log.Default(),
	}, nil
}

func run(ctx context.Context, cfg config.Config) error {
	opts, err := sessionOptions(cfg)
	if err != nil {
		return err
	}
	if useTUI(cfg) {
		return runTUI(ctx, cfg, opts)
	}
	return runText(ctx, cfg, opts)
}

func runTUI(ctx context.Context, cfg config.Config, opts session.Options) error {
	theme, err := gui.Lookup(cfg.Theme)
	if err != nil {
		return err
	}
	cl := gui.NewClient(theme, cfg.Name)
	opts.Sink = cl
	loop, err := session.NewLoop(opts)
	if err != nil {
		return err
	}
	cl.Attach(loop)
	log.Printf("New client %s (%s, seed %d)", loop.ID(), cfg.Difficulty, cfg.Seed)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go loop.Run(ctx)
	go func() {
		<-ctx.Done()
		cl.Stop()
	}()
	return cl.Run()
}

func runText(ctx context.Context, cfg config.Config, opts session.Options) error {
	c := console.New(os.Stdin, os.Stdout, cfg.JSON, log.Default())
	opts.Sink = c
	opts.Scheduler = session.SleepScheduler
	opts.Welcome = console.Welcome
	s, err := session.New(opts)
	if err != nil {
		return err
	}
	c.Bind(s)
	log.Printf("New console session %s (%s)", s.ID(), cfg.Difficulty)

	// Reading stdin cannot be interrupted, so a signal ends the process
	// without waiting for the console.
	errc := make(chan error, 1)
	go func() { errc <- c.Run(ctx) }()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
