// Package applog sets up the process log. The terminal belongs to the UI, so
// logs go to a file.
package applog

import (
	"fmt"
	"io"
	"log"
	"os"
)

// InitLog points the standard logger at dest with the given prefix. An empty
// dest or "-" keeps stderr.
func InitLog(dest, prefix string) error {
	log.SetPrefix(prefix)
	if dest == "" || dest == "-" {
		return nil
	}
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return nil
}

// New returns a logger writing to w with the standard logger's prefix and flags.
func New(w io.Writer, prefix string) *log.Logger {
	return log.New(w, log.Prefix()+prefix, log.Flags())
}

// Discard is a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}
