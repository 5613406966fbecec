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

	"github.com/gliderlabs/ssh"
	"github.com/qnkhuat/chesscoach/pkg/applog"
	"github.com/qnkhuat/chesscoach/pkg/config"
	"github.com/qnkhuat/chesscoach/pkg/server"
)

func main() {
	fs := flag.NewFlagSet("chesscoach-server", flag.ExitOnError)
	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := applog.InitLog(cfg.LogPath, "SERVER: "); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	s, err := server.New(server.Options{
		Addr:        cfg.SSHAddr,
		HostKey:     cfg.HostKey,
		IdleTimeout: cfg.IdleTimeout,
		Command:     cfg.Command,
		Logger:      log.Default(),
	})
	if err != nil {
		log.Panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Println("Shutting down")
		s.Close()
	}()

	if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Panic(err)
	}
}
