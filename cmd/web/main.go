package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/qnkhuat/chesscoach/pkg/applog"
	"github.com/qnkhuat/chesscoach/pkg/config"
	"github.com/qnkhuat/chesscoach/pkg/web"
)

func main() {
	fs := flag.NewFlagSet("chesscoach-web", flag.ExitOnError)
	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := applog.InitLog(cfg.LogPath, "WEB: "); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	s := web.New(web.Options{
		Difficulty: cfg.Difficulty,
		Delay:      cfg.Delay(),
		Noise:      cfg.Noise,
		Origins:    cfg.Origins,
		Logger:     log.Default(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Println("Shutting down")
		if err := s.Shutdown(); err != nil {
			log.Printf("Shutdown: %s", err)
		}
	}()

	if err := s.Listen(cfg.WebAddr); err != nil {
		log.Panic(err)
	}
}
