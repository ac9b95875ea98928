package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// serverLogger logs request failures and refresh outcomes to stderr when the
// debug log is off.
func serverLogger() *log.Logger {
	l := log.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(log.InfoLevel)
	l.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	return l
}
