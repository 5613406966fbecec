// Package config loads chesscoach settings from the environment and then
// from command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/qnkhuat/chesscoach/pkg/opponent"
	"github.com/qnkhuat/chesscoach/pkg/session"
)

var ErrInvalid = errors.New("invalid config")

const (
	UIAuto = "auto"
	UITUI  = "tui"
	UIText = "text"
)

type Config struct {
	UI         string              `env:"CHESSCOACH_UI"         envDefault:"auto"`
	JSON       bool                `env:"CHESSCOACH_JSON"`
	Difficulty opponent.Difficulty `env:"CHESSCOACH_DIFFICULTY" envDefault:"medium"`
	Theme      string              `env:"CHESSCOACH_THEME"      envDefault:"classic"`
	Name       string              `env:"CHESSCOACH_NAME"`
	LogPath    string              `env:"CHESSCOACH_LOG"        envDefault:"./log"`
	Seed       int64               `env:"CHESSCOACH_SEED"`
	ThinkMin   time.Duration       `env:"CHESSCOACH_THINK_MIN"  envDefault:"500ms"`
	ThinkMax   time.Duration       `env:"CHESSCOACH_THINK_MAX"  envDefault:"1500ms"`
	Noise      float64             `env:"CHESSCOACH_NOISE"      envDefault:"2.5"`

	SSHAddr     string        `env:"CHESSCOACH_SSH_ADDR"     envDefault:":2022"`
	HostKey     string        `env:"CHESSCOACH_HOST_KEY"`
	IdleTimeout time.Duration `env:"CHESSCOACH_IDLE_TIMEOUT" envDefault:"30m"`
	Command     string        `env:"CHESSCOACH_COMMAND"      envDefault:"chesscoach"`

	WebAddr string   `env:"CHESSCOACH_WEB_ADDR" envDefault:":8080"`
	Origins []string `env:"CHESSCOACH_ORIGINS"  envDefault:"*" envSeparator:","`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Load reads the environment, then lets flags override it.
func Load(fs *flag.FlagSet, args []string) (Config, error) {
	cfg, err := ParseEnv()
	if err != nil {
		return Config{}, err
	}
	origins := stringList(cfg.Origins)

	fs.StringVar(&cfg.UI, "ui", cfg.UI, "interface: auto, tui or text")
	fs.BoolVar(&cfg.JSON, "json", cfg.JSON, "print JSON lines in text mode")
	fs.TextVar(&cfg.Difficulty, "difficulty", cfg.Difficulty, "computer strength: easy, medium or hard")
	fs.StringVar(&cfg.Theme, "theme", cfg.Theme, "board theme")
	fs.StringVar(&cfg.Name, "name", cfg.Name, "player nickname")
	fs.StringVar(&cfg.LogPath, "log", cfg.LogPath, "path to log file, - for stderr")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 picks one")
	fs.DurationVar(&cfg.ThinkMin, "think-min", cfg.ThinkMin, "shortest computer think time")
	fs.DurationVar(&cfg.ThinkMax, "think-max", cfg.ThinkMax, "longest computer think time")
	fs.Float64Var(&cfg.Noise, "noise", cfg.Noise, "score noise of the hard computer")
	fs.StringVar(&cfg.SSHAddr, "ssh-addr", cfg.SSHAddr, "ssh listen address")
	fs.StringVar(&cfg.HostKey, "host-key", cfg.HostKey, "ssh host key file")
	fs.DurationVar(&cfg.IdleTimeout, "idle-timeout", cfg.IdleTimeout, "close idle ssh sessions after")
	fs.StringVar(&cfg.Command, "command", cfg.Command, "binary started for each ssh session")
	fs.StringVar(&cfg.WebAddr, "web-addr", cfg.WebAddr, "websocket listen address")
	fs.Var(&origins, "origins", "comma separated allowed origins")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Origins = origins

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.UI {
	case UIAuto, UITUI, UIText:
	default:
		return fmt.Errorf("%w: ui %q", ErrInvalid, c.UI)
	}
	if c.ThinkMin < 0 || c.ThinkMax < c.ThinkMin {
		return fmt.Errorf("%w: think time %s-%s", ErrInvalid, c.ThinkMin, c.ThinkMax)
	}
	if c.Noise < 0 {
		return fmt.Errorf("%w: negative noise", ErrInvalid)
	}
	if c.Theme == "" {
		return fmt.Errorf("%w: empty theme", ErrInvalid)
	}
	return nil
}

// Delay is the computer think time range. Zero durations are kept, so
// -think-min 0 -think-max 0 makes the computer answer at once.
func (c Config) Delay() *session.Delay {
	return &session.Delay{Min: c.ThinkMin, Max: c.ThinkMax}
}
